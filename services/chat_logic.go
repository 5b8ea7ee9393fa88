package services

import (
	"fmt"
	"regexp"
	"strings"
)

// ChatCard is the loosely-bound decision card a client echoes back as
// follow-up context. Pointer and zero-value fields let absent data degrade
// to defaults instead of failing.
type ChatCard struct {
	FitScore *int     `json:"fit_score"`
	Color    string   `json:"color"`
	Bullets  []string `json:"bullets"`
}

// ChatIntent is the slice of the inferred-intent blob the responder reads.
type ChatIntent struct {
	TopIntent string `json:"top_intent"`
}

// AnalysisState is a prior analyze response resent by the client. The
// responder is stateless; this blob is its only memory.
type AnalysisState struct {
	DecisionCard          ChatCard     `json:"decision_card"`
	NormalizedIngredients []Ingredient `json:"normalized_ingredients"`
	InferredIntent        ChatIntent   `json:"inferred_intent"`
}

type followupRule struct {
	match  func(msg string) bool
	handle func(msg string, st AnalysisState) (string, []string)
}

var dailyRe = regexp.MustCompile(`\bok(ay)? daily\b|\bevery day\b|\bdaily\b`)

func containsAny(msg string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

// Patterns overlap ("is sugar okay daily?" matches both the daily and sugar
// branches), so evaluation order is part of the contract: first match wins.
var followupRules = []followupRule{
	{
		match:  func(m string) bool { return dailyRe.MatchString(m) },
		handle: answerDaily,
	},
	{
		match:  func(m string) bool { return containsAny(m, "explain", "like i'm 12", "eli12") },
		handle: answerExplain,
	},
	{
		match:  func(m string) bool { return containsAny(m, "allergen", "lactose", "milk") },
		handle: answerAllergens,
	},
	{
		match:  func(m string) bool { return strings.Contains(m, "sugar") },
		handle: answerSugar,
	},
	{
		match:  func(m string) bool { return containsAny(m, "why", "reason") },
		handle: answerWhy,
	},
}

// AnswerFollowup answers a free-text question against a previously produced
// analysis. It never errors: unmatched questions and missing state fields
// fall through to the summary reply.
func AnswerFollowup(message string, st AnalysisState) (string, []string) {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, rule := range followupRules {
		if rule.match(msg) {
			return rule.handle(msg, st)
		}
	}
	return answerSummary(msg, st)
}

func ingredientsByFlag(ings []Ingredient, flag string) []string {
	var out []string
	for _, ing := range ings {
		if ing.HasFlag(flag) {
			out = append(out, ing.Raw)
		}
	}
	return out
}

func answerDaily(_ string, st AnalysisState) (string, []string) {
	var reply string
	switch st.DecisionCard.Color {
	case "green":
		reply = "Likely okay frequently for your current intent, but portion size matters. If you notice symptoms, reduce frequency."
	case "yellow":
		reply = "I'd treat it as an occasional or moderate-frequency choice for your intent. If you want a daily staple, look for a simpler/less-flagged option."
	default:
		reply = "For your intent, daily use is not ideal. Consider alternatives with fewer red-flag ingredients for your goal."
	}
	return reply, []string{"Compare with another product", "Change optimize goal", "Show ingredients flagged"}
}

func answerExplain(_ string, _ AnalysisState) (string, []string) {
	reply := "Think of ingredients as signals. A few ingredients (like certain sugars, allergens, or additives) are the ones that usually matter. I highlight those first, explain the tradeoff, and tell you what I'm unsure about."
	return reply, []string{"Show top concerns", "Compare with another product"}
}

func answerAllergens(_ string, st AnalysisState) (string, []string) {
	actions := []string{"Show uncertainty note", "Scan/paste full label text"}
	allergens := ingredientsByFlag(st.NormalizedIngredients, "allergen")
	if len(allergens) == 0 {
		return "I don't see common allergen markers in the text provided, but always verify the label and any 'may contain' statements.", actions
	}
	reply := fmt.Sprintf("Allergen markers I see: %s. If your allergy is severe, avoid and verify manufacturer cross-contamination info.", strings.Join(allergens, ", "))
	return reply, actions
}

func answerSugar(_ string, st AnalysisState) (string, []string) {
	actions := []string{"Compare with a lower-sugar option", "Change optimize goal"}
	sugars := ingredientsByFlag(st.NormalizedIngredients, "added_sugar")
	if len(sugars) == 0 {
		return "I didn't detect common added-sugar markers from the text provided.", actions
	}
	reply := fmt.Sprintf("Added sugar markers detected: %s. If you're optimizing for sugar, this is the main reason the fit drops.", strings.Join(sugars, ", "))
	return reply, actions
}

func answerWhy(_ string, st AnalysisState) (string, []string) {
	bullets := st.DecisionCard.Bullets
	if len(bullets) > 3 {
		bullets = bullets[:3]
	}
	reply := "Here's the reasoning:\n- " + strings.Join(bullets, "\n- ")
	return reply, []string{"Show all recognized ingredients", "Compare with another product"}
}

func answerSummary(_ string, st AnalysisState) (string, []string) {
	intent := st.InferredIntent.TopIntent
	if intent == "" {
		intent = string(IntentGeneral)
	}
	color := st.DecisionCard.Color
	if color == "" {
		color = "unknown"
	}

	reply := fmt.Sprintf("Summary for intent '%s': fit is %s.", intent, strings.ToUpper(color))
	if st.DecisionCard.FitScore != nil {
		reply += fmt.Sprintf(" Score %d/100.", *st.DecisionCard.FitScore)
	}
	reply += " Ask me 'okay daily?', 'what's the top concern?', or 'compare with another product'."
	return reply, []string{"Okay daily?", "Top concern?", "Compare"}
}
