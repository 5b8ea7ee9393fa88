package services

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Intent is the user's inferred health/nutrition optimization goal.
type Intent string

const (
	IntentGeneral    Intent = "general"
	IntentSugar      Intent = "sugar"
	IntentGut        Intent = "gut"
	IntentAllergens  Intent = "allergens"
	IntentMuscle     Intent = "muscle"
	IntentCleanLabel Intent = "clean_label"
	IntentKids       Intent = "kids"
)

// intentPriority is both the set of valid intents and the tie-break order
// when accumulated scores are equal.
var intentPriority = []Intent{
	IntentSugar,
	IntentAllergens,
	IntentGut,
	IntentMuscle,
	IntentCleanLabel,
	IntentKids,
	IntentGeneral,
}

// ValidIntent reports whether s names a supported intent.
func ValidIntent(s string) bool {
	for _, it := range intentPriority {
		if Intent(s) == it {
			return true
		}
	}
	return false
}

// Confidence classifies how separated the top intent is from the runner-up.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// UserPrefs is the preference ledger supplied with a request or loaded from
// a stored ledger. Missing lists read as empty.
type UserPrefs struct {
	Avoid []string `json:"avoid"`
	Limit []string `json:"limit"`
	Goals []string `json:"goals"`
}

// IntentWeight is one (intent, accumulated weight) pair.
type IntentWeight struct {
	Intent Intent
	Weight float64
}

// RankedScores holds every intent's weight ordered descending. It marshals
// to a JSON object whose keys appear in rank order, which a plain Go map
// cannot guarantee.
type RankedScores []IntentWeight

func (r RankedScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, iw := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(iw.Intent))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(iw.Weight)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IntentScore is the outcome of intent inference.
type IntentScore struct {
	TopIntent  Intent              `json:"top_intent"`
	Confidence Confidence          `json:"confidence"`
	Scores     RankedScores        `json:"scores"`
	Reasons    map[Intent][]string `json:"reasons"`
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

// InferIntent scores candidate intents from the tagged ingredients, an
// optional explicit hint, and the preference ledger. Scoring is additive
// over independent evidence sources; every intent starts at zero and
// "general" always gets a small baseline so it stays a ranked candidate.
func InferIntent(ingredients []Ingredient, optimizeFor string, prefs UserPrefs) IntentScore {
	scores := make(map[Intent]float64, len(intentPriority))
	for _, it := range intentPriority {
		scores[it] = 0
	}
	reasons := make(map[Intent][]string)

	add := func(it Intent, weight float64, reason string) {
		scores[it] += weight
		reasons[it] = append(reasons[it], reason)
	}

	// 1) explicit hint; unrecognized values are silently ignored
	if optimizeFor != "" && ValidIntent(optimizeFor) {
		add(Intent(optimizeFor), 2.0, "User selected optimize_for")
	}

	// 2) preference ledger
	avoid := toSet(prefs.Avoid)
	limit := toSet(prefs.Limit)
	goals := toSet(prefs.Goals)

	if avoid["lactose"] || avoid["milk"] || avoid["dairy"] {
		add(IntentAllergens, 1.5, "Preference: avoid dairy/lactose")
	}
	if limit["added_sugar"] || limit["sugar"] {
		add(IntentSugar, 1.5, "Preference: limit sugar")
	}
	if goals["bulking"] || goals["muscle"] || goals["protein"] {
		add(IntentMuscle, 1.0, "Goal: muscle/protein")
	}

	// 3) ingredient-trigger inference
	for _, ing := range ingredients {
		if ing.HasFlag("added_sugar") || ing.Category == "sweetener" {
			add(IntentSugar, 1.0, "Sweetener/sugar marker: "+ing.Raw)
		}
		if ing.HasFlag("emulsifier") || ing.Category == "emulsifier" {
			add(IntentGut, 0.7, "Emulsifier marker: "+ing.Raw)
		}
		if ing.HasFlag("preservative") || ing.Category == "preservative" {
			add(IntentCleanLabel, 0.6, "Preservative marker: "+ing.Raw)
		}
		if ing.HasFlag("allergen") || ing.Category == "allergen" {
			add(IntentAllergens, 1.2, "Allergen marker: "+ing.Raw)
		}
		if ing.HasFlag("protein") || ing.Category == "protein" {
			add(IntentMuscle, 0.8, "Protein marker: "+ing.Raw)
		}
		if ing.HasFlag("kid_sensitive") {
			add(IntentKids, 0.8, "Often avoided for kids: "+ing.Raw)
		}
	}

	add(IntentGeneral, 0.2, "Default fallback")

	// rank: score descending, equal scores keep the fixed priority order
	ranked := make(RankedScores, 0, len(intentPriority))
	for _, it := range intentPriority {
		ranked = append(ranked, IntentWeight{Intent: it, Weight: scores[it]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})

	topScore := ranked[0].Weight
	secondScore := ranked[1].Weight
	gap := topScore - secondScore
	if gap < 0 {
		gap = 0
	}

	confidence := ConfidenceHigh
	if topScore < 0.8 {
		confidence = ConfidenceLow
	} else if gap < 0.4 {
		confidence = ConfidenceMedium
	}

	outReasons := make(map[Intent][]string, len(reasons))
	for it, rs := range reasons {
		if len(rs) > 3 {
			rs = rs[:3]
		}
		outReasons[it] = rs
	}

	return IntentScore{
		TopIntent:  ranked[0].Intent,
		Confidence: confidence,
		Scores:     ranked,
		Reasons:    outReasons,
	}
}
