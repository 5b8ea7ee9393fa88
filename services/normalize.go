package services

import "strings"

// Ingredient is one normalized, tagged token from a label's ingredient list.
type Ingredient struct {
	Raw       string   `json:"raw"`
	Canonical string   `json:"canonical"`
	Known     bool     `json:"known"`
	Category  string   `json:"category"`
	Function  string   `json:"function"`
	Flags     []string `json:"flags"`
	Evidence  string   `json:"evidence"`
	Notes     string   `json:"notes"`
}

// HasFlag reports whether the ingredient carries the given tag.
func (i Ingredient) HasFlag(flag string) bool {
	for _, f := range i.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

func cleanToken(t string) string {
	t = strings.Join(strings.Fields(t), " ")
	return strings.Trim(t, " .;:")
}

// splitOutsideParens splits on commas that are not inside parentheses, so
// "whey (milk, soy)" stays one token. A depth counter instead of a regexp
// because RE2 has no lookahead.
func splitOutsideParens(text string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, text[start:i])
				start = i + 1
			}
		}
	}
	return append(out, text[start:])
}

// explodeParens turns "whey (milk, soy)" into ["whey", "milk", "soy"]. Outer
// and inner parts are all kept so each can be tagged independently.
func explodeParens(token string) []string {
	token = strings.TrimSpace(token)
	open := strings.Index(token, "(")
	closing := strings.LastIndex(token, ")")
	if open < 0 || closing < open {
		return []string{token}
	}

	var out []string
	if outer := strings.TrimSpace(token[:open]); outer != "" {
		out = append(out, outer)
	}
	for _, part := range strings.Split(token[open+1:closing], ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// stripLabelPrefix removes an optional leading "ingredients:" label,
// case-insensitively.
func stripLabelPrefix(text string) string {
	lower := strings.ToLower(text)
	if !strings.HasPrefix(lower, "ingredients") {
		return text
	}
	rest := strings.TrimSpace(text[len("ingredients"):])
	if !strings.HasPrefix(rest, ":") {
		return text
	}
	return strings.TrimSpace(rest[1:])
}

// NormalizeIngredients parses raw label text into an ordered list of tagged
// Ingredient records, deduplicated by canonical name (first occurrence wins).
// Blank input yields an empty list, not an error.
func NormalizeIngredients(text string, kb *KnowledgeBase) []Ingredient {
	text = strings.TrimSpace(text)
	if text == "" {
		return []Ingredient{}
	}
	text = stripLabelPrefix(text)

	var expanded []string
	for _, tok := range splitOutsideParens(text) {
		if tok = cleanToken(tok); tok == "" {
			continue
		}
		expanded = append(expanded, explodeParens(tok)...)
	}

	results := []Ingredient{}
	seen := make(map[string]bool)
	for _, raw := range expanded {
		rawClean := cleanToken(raw)
		if rawClean == "" {
			continue
		}

		canonical := kb.Resolve(rawClean)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true

		ing := Ingredient{
			Raw:       rawClean,
			Canonical: canonical,
			Category:  "unknown",
			Function:  "unknown",
			Flags:     []string{},
			Evidence:  "unknown",
		}
		if meta, ok := kb.Get(canonical); ok {
			ing.Known = true
			ing.Category = meta.Category
			ing.Function = meta.Function
			if len(meta.Flags) > 0 {
				ing.Flags = meta.Flags
			}
			ing.Evidence = meta.Evidence
			ing.Notes = meta.Notes
		}
		results = append(results, ing)
	}
	return results
}
