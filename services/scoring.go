package services

import "math"

// Color is the traffic-light rendering of a fit score.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// FitResult is the raw fit computation for one product/intent pairing.
type FitResult struct {
	FitScore     int      `json:"fit_score"`
	Color        Color    `json:"color"`
	Risk         float64  `json:"risk"`
	RedFlags     []string `json:"red_flags"`
	YellowFlags  []string `json:"yellow_flags"`
	UnknownCount int      `json:"unknown_count"`
}

// ScoreFit walks every ingredient once and accumulates risk points against
// the active intent. The same tag can carry different weight under different
// intents: added sugar is a red flag when optimizing for sugar but only a
// mild yellow signal for muscle, where protein markers reduce risk instead.
func ScoreFit(normalized []Ingredient, top Intent) FitResult {
	risk := 0.0
	unknownCount := 0
	var redFlags, yellowFlags []string

	for _, ing := range normalized {
		if !ing.Known {
			unknownCount++
		}

		switch top {
		case IntentSugar:
			if ing.HasFlag("added_sugar") || ing.Category == "sweetener" {
				risk += 2.0
				redFlags = append(redFlags, ing.Raw)
			}
			if ing.HasFlag("high_glycemic") {
				risk += 1.0
				yellowFlags = append(yellowFlags, ing.Raw)
			}

		case IntentGut:
			if ing.HasFlag("emulsifier") || ing.Category == "emulsifier" {
				risk += 1.3
				yellowFlags = append(yellowFlags, ing.Raw)
			}
			if ing.HasFlag("artificial_sweetener") {
				risk += 0.8
				yellowFlags = append(yellowFlags, ing.Raw)
			}

		case IntentAllergens:
			if ing.HasFlag("allergen") || ing.Category == "allergen" {
				risk += 2.5
				redFlags = append(redFlags, ing.Raw)
			}
			if ing.HasFlag("may_contain") {
				risk += 1.0
				yellowFlags = append(yellowFlags, ing.Raw)
			}

		case IntentCleanLabel:
			if ing.HasFlag("preservative") || ing.Category == "preservative" {
				risk += 1.2
				yellowFlags = append(yellowFlags, ing.Raw)
			}
			if ing.HasFlag("colorant") {
				risk += 0.8
				yellowFlags = append(yellowFlags, ing.Raw)
			}
			if !ing.Known {
				risk += 0.2
			}

		case IntentKids:
			if ing.HasFlag("kid_sensitive") {
				risk += 1.4
				yellowFlags = append(yellowFlags, ing.Raw)
			}
			if ing.HasFlag("added_sugar") || ing.Category == "sweetener" {
				risk += 1.6
				yellowFlags = append(yellowFlags, ing.Raw)
			}

		case IntentMuscle:
			// protein helps here; sugar matters less than under "sugar"
			if ing.HasFlag("protein") || ing.Category == "protein" {
				risk -= 0.8
			}
			if ing.HasFlag("added_sugar") || ing.Category == "sweetener" {
				risk += 0.7
				yellowFlags = append(yellowFlags, ing.Raw)
			}

		default: // general
			if ing.HasFlag("added_sugar") {
				risk += 1.0
				yellowFlags = append(yellowFlags, ing.Raw)
			}
			if ing.HasFlag("allergen") {
				risk += 0.8
				yellowFlags = append(yellowFlags, ing.Raw)
			}
			if ing.HasFlag("preservative") {
				risk += 0.6
				yellowFlags = append(yellowFlags, ing.Raw)
			}
		}

		// evidence still emerging adds a touch of uncertainty under any intent
		if ing.Evidence == "emerging" {
			risk += 0.1
		}
	}

	// unrecognized ingredients increase uncertainty, capped
	risk += math.Min(1.5, 0.2*float64(unknownCount))

	score := 100 - risk*12
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	color := ColorRed
	switch {
	case score >= 75:
		color = ColorGreen
	case score >= 45:
		color = ColorYellow
	}

	return FitResult{
		FitScore:     int(math.Round(score)),
		Color:        color,
		Risk:         math.Round(risk*100) / 100,
		RedFlags:     dedupeCap(redFlags, 5),
		YellowFlags:  dedupeCap(yellowFlags, 6),
		UnknownCount: unknownCount,
	}
}

// dedupeCap removes repeats preserving first-seen order and truncates to max.
func dedupeCap(in []string, max int) []string {
	out := []string{}
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}
