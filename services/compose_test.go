package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func analyzeParts(t *testing.T, text, optimizeFor string) ([]Ingredient, IntentScore, FitResult) {
	t.Helper()
	kb := testKB()
	ings := NormalizeIngredients(text, kb)
	intent := InferIntent(ings, optimizeFor, UserPrefs{})
	fit := ScoreFit(ings, intent.TopIntent)
	return ings, intent, fit
}

func TestComposeAlwaysThreeBullets(t *testing.T) {
	ings, intent, fit := analyzeParts(t, "water, sugar, cocoa (milk)", "")

	card := ComposeDecisionCard(ings, intent, fit)

	require.Len(t, card.Bullets, 3)
	require.True(t, strings.HasPrefix(card.Bullets[0], "Top concern: "))
	require.True(t, strings.HasPrefix(card.Bullets[1], "Tradeoff: "))
	require.True(t, strings.HasPrefix(card.Bullets[2], "Uncertainty: "))
}

func TestComposeHeadlineFormat(t *testing.T) {
	ings, intent, fit := analyzeParts(t, "sugar, corn syrup, glucose syrup", "sugar")

	card := ComposeDecisionCard(ings, intent, fit)

	require.Equal(t, strings.ToUpper(string(fit.Color))+" fit for 'sugar'", card.Headline)
	require.Equal(t, IntentSugar, card.TopIntent)
	require.Equal(t, fit.FitScore, card.FitScore)
	require.Equal(t, fit.Color, card.Color)
}

func TestComposeConcernFallback(t *testing.T) {
	ings, intent, fit := analyzeParts(t, "water, dates", "")

	card := ComposeDecisionCard(ings, intent, fit)

	require.Equal(t, []string{"No major concerns detected from this label text"}, card.Details.Concerns)
}

func TestComposeSugarConcernsRedBeforeYellow(t *testing.T) {
	ings, intent, fit := analyzeParts(t, "sugar, corn syrup", "sugar")

	card := ComposeDecisionCard(ings, intent, fit)

	require.NotEmpty(t, card.Details.Concerns)
	require.True(t, strings.HasPrefix(card.Details.Concerns[0], "Added sugar markers: "))
	require.LessOrEqual(t, len(card.Details.Concerns), 2)
}

func TestComposeMuscleWithoutRedFlags(t *testing.T) {
	ings, intent, fit := analyzeParts(t, "whey (milk), pea protein", "muscle")

	card := ComposeDecisionCard(ings, intent, fit)

	require.Equal(t, "No major red flags for muscle intent detected", card.Details.Concerns[0])
}

func TestComposeUncertaintyPriority(t *testing.T) {
	kb := testKB()

	t.Run("unknowns win", func(t *testing.T) {
		ings := NormalizeIngredients("glorbium extract, frozzle gum", kb)
		intent := InferIntent(ings, "", UserPrefs{})
		fit := ScoreFit(ings, intent.TopIntent)
		require.GreaterOrEqual(t, fit.UnknownCount, 2)

		card := ComposeDecisionCard(ings, intent, fit)
		require.Contains(t, card.Details.Uncertainty, "OCR ambiguity")
	})

	t.Run("low confidence prompts for a goal", func(t *testing.T) {
		ings := NormalizeIngredients("water", kb)
		intent := InferIntent(ings, "", UserPrefs{})
		require.Equal(t, ConfidenceLow, intent.Confidence)

		fit := ScoreFit(ings, intent.TopIntent)
		card := ComposeDecisionCard(ings, intent, fit)
		require.Contains(t, card.Details.Uncertainty, "Tap a goal")
	})

	t.Run("default quantities caveat", func(t *testing.T) {
		ings := NormalizeIngredients("sugar, corn syrup", kb)
		intent := InferIntent(ings, "sugar", UserPrefs{})
		fit := ScoreFit(ings, intent.TopIntent)
		require.Less(t, fit.UnknownCount, 2)
		require.NotEqual(t, ConfidenceLow, intent.Confidence)

		card := ComposeDecisionCard(ings, intent, fit)
		require.Contains(t, card.Details.Uncertainty, "don't show quantities")
	})
}

func TestComposeCounts(t *testing.T) {
	ings, intent, fit := analyzeParts(t, "water, sugar, glorbium extract", "")

	card := ComposeDecisionCard(ings, intent, fit)

	require.Equal(t, 2, card.Details.RecognizedCount)
	require.Equal(t, 1, card.Details.UnknownCount)
}

func TestComposeWhyItMattersPerIntent(t *testing.T) {
	for _, intent := range []Intent{IntentSugar, IntentGut, IntentAllergens, IntentCleanLabel, IntentKids, IntentMuscle, IntentGeneral} {
		score := IntentScore{TopIntent: intent, Confidence: ConfidenceHigh}
		card := ComposeDecisionCard(nil, score, FitResult{Color: ColorGreen})
		require.NotEmpty(t, card.WhyItMatters, "intent %s", intent)
	}
}
