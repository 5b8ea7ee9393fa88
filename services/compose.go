package services

import "strings"

// CardDetails backs the expandable section of a decision card.
type CardDetails struct {
	Concerns        []string `json:"concerns"`
	Tradeoff        string   `json:"tradeoff"`
	Uncertainty     string   `json:"uncertainty"`
	RecognizedCount int      `json:"recognized_count"`
	UnknownCount    int      `json:"unknown_count"`
}

// DecisionCard is the composed, human-readable summary returned to the
// caller. Immutable once produced; clients resend it unchanged as context
// for follow-up questions.
type DecisionCard struct {
	FitScore     int         `json:"fit_score"`
	Color        Color       `json:"color"`
	TopIntent    Intent      `json:"top_intent"`
	Headline     string      `json:"headline"`
	WhyItMatters string      `json:"why_it_matters"`
	Bullets      []string    `json:"bullets"`
	Details      CardDetails `json:"details"`
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func pickTopConcerns(intent Intent, fit FitResult) []string {
	reds := fit.RedFlags
	yellows := fit.YellowFlags

	var concerns []string
	switch intent {
	case IntentSugar:
		if len(reds) > 0 {
			concerns = append(concerns, "Added sugar markers: "+strings.Join(firstN(reds, 3), ", "))
		}
		if len(yellows) > 0 && len(concerns) < 2 {
			concerns = append(concerns, "Possible fast carbs: "+strings.Join(firstN(yellows, 2), ", "))
		}
	case IntentAllergens:
		if len(reds) > 0 {
			concerns = append(concerns, "Allergen risk: "+strings.Join(firstN(reds, 3), ", "))
		}
		if len(yellows) > 0 && len(concerns) < 2 {
			concerns = append(concerns, "Potential traces / caution: "+strings.Join(firstN(yellows, 2), ", "))
		}
	case IntentGut:
		if len(yellows) > 0 {
			concerns = append(concerns, "Emulsifiers/sweeteners to watch: "+strings.Join(firstN(yellows, 3), ", "))
		}
	case IntentCleanLabel:
		if len(yellows) > 0 {
			concerns = append(concerns, "Additives present: "+strings.Join(firstN(yellows, 3), ", "))
		}
	case IntentKids:
		if len(yellows) > 0 {
			concerns = append(concerns, "Kid-sensitive markers: "+strings.Join(firstN(yellows, 3), ", "))
		}
	case IntentMuscle:
		if len(reds) > 0 {
			concerns = append(concerns, "Sugar may reduce fit: "+strings.Join(firstN(reds, 2), ", "))
		} else {
			concerns = append(concerns, "No major red flags for muscle intent detected")
		}
	default:
		if len(yellows) > 0 {
			concerns = append(concerns, "Notable ingredients: "+strings.Join(firstN(yellows, 3), ", "))
		}
	}

	if len(concerns) == 0 {
		return []string{"No major concerns detected from this label text"}
	}
	return firstN(concerns, 2)
}

var tradeoffByIntent = map[Intent]string{
	IntentSugar:      "Lower-sugar options sometimes use sweeteners; better calories, mixed tolerance for some.",
	IntentGut:        "Emulsifiers are common in processed foods; effects vary by person and evidence is still evolving.",
	IntentCleanLabel: "Clean-label choices often trade shelf-life for fewer additives.",
	IntentMuscle:     "Higher-protein products may still include sweeteners/flavor systems for taste.",
	IntentKids:       "Kids vary: some tolerate additives fine; others do better with simpler ingredient lists.",
	IntentAllergens:  "Even small amounts can matter for allergies; if severe, avoid and verify manufacturer info.",
}

var whyByIntent = map[Intent]string{
	IntentSugar:      "Added sugars can affect energy swings, acne triggers for some, and calorie control.",
	IntentGut:        "Some additives/emulsifiers may bother sensitive guts; reactions are personal.",
	IntentAllergens:  "Allergen exposure can be serious; label signals matter more than most nutrition claims.",
	IntentCleanLabel: "If you prefer fewer additives, preservatives/colorants are the main signals.",
	IntentKids:       "For kids, simpler ingredient lists often reduce trial-and-error with sensitivities.",
	IntentMuscle:     "For muscle goals, protein markers help; watch excess sugar if you're leaning out.",
	IntentGeneral:    "Portion size + frequency matters; ingredients help spot obvious flags.",
}

// uncertaintyNote is a 3-way priority rule; exactly one note is produced.
func uncertaintyNote(fit FitResult, intent IntentScore) string {
	if fit.UnknownCount >= 2 {
		return "Some ingredients couldn't be confidently recognized (label/OCR ambiguity). Double-check the pack."
	}
	if intent.Confidence == ConfidenceLow {
		return "I'm not fully sure what you're optimizing for. Tap a goal (Sugar/Gut/Allergens/etc.) for sharper guidance."
	}
	return "Amounts matter, but ingredient lists don't show quantities. Treat this as a cautious flag, not a verdict."
}

// ComposeDecisionCard renders inference and scoring output into the decision
// card shown to the user. Pure and deterministic given its inputs.
func ComposeDecisionCard(normalized []Ingredient, intent IntentScore, fit FitResult) DecisionCard {
	top := intent.TopIntent

	concerns := pickTopConcerns(top, fit)

	tradeoff, ok := tradeoffByIntent[top]
	if !ok {
		tradeoff = "Ingredients don't tell the whole story (portion size and frequency matter)."
	}
	why, ok := whyByIntent[top]
	if !ok {
		why = "Ingredients help spot obvious flags."
	}
	uncertainty := uncertaintyNote(fit, intent)

	recognized := 0
	for _, ing := range normalized {
		if ing.Known {
			recognized++
		}
	}

	return DecisionCard{
		FitScore:     fit.FitScore,
		Color:        fit.Color,
		TopIntent:    top,
		Headline:     strings.ToUpper(string(fit.Color)) + " fit for '" + string(top) + "'",
		WhyItMatters: why,
		Bullets: []string{
			"Top concern: " + concerns[0],
			"Tradeoff: " + tradeoff,
			"Uncertainty: " + uncertainty,
		},
		Details: CardDetails{
			Concerns:        concerns,
			Tradeoff:        tradeoff,
			Uncertainty:     uncertainty,
			RecognizedCount: recognized,
			UnknownCount:    fit.UnknownCount,
		},
	}
}
