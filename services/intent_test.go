package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rankOf(scores RankedScores, intent Intent) int {
	for i, iw := range scores {
		if iw.Intent == intent {
			return i
		}
	}
	return -1
}

func TestInferIntentExplicitHint(t *testing.T) {
	got := InferIntent(nil, "sugar", UserPrefs{})

	require.Equal(t, IntentSugar, got.TopIntent)
	require.Equal(t, ConfidenceHigh, got.Confidence)
	require.InDelta(t, 2.0, got.Scores[0].Weight, 1e-9)
	require.Contains(t, got.Reasons[IntentSugar], "User selected optimize_for")
}

func TestInferIntentUnknownHintIgnored(t *testing.T) {
	got := InferIntent(nil, "speed", UserPrefs{})

	require.Equal(t, IntentGeneral, got.TopIntent)
	require.Equal(t, ConfidenceLow, got.Confidence)
	require.NotContains(t, got.Reasons, Intent("speed"))
}

func TestInferIntentPreferenceLedger(t *testing.T) {
	tests := []struct {
		name  string
		prefs UserPrefs
		want  Intent
	}{
		{"avoid dairy", UserPrefs{Avoid: []string{"dairy"}}, IntentAllergens},
		{"avoid lactose", UserPrefs{Avoid: []string{"lactose"}}, IntentAllergens},
		{"limit sugar", UserPrefs{Limit: []string{"sugar"}}, IntentSugar},
		{"limit added_sugar", UserPrefs{Limit: []string{"added_sugar"}}, IntentSugar},
		{"goal bulking", UserPrefs{Goals: []string{"bulking"}}, IntentMuscle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferIntent(nil, "", tt.prefs)
			require.Equal(t, tt.want, got.TopIntent)
		})
	}
}

func TestInferIntentIngredientTriggers(t *testing.T) {
	kb := testKB()
	ings := NormalizeIngredients("water, sugar, milk", kb)

	got := InferIntent(ings, "", UserPrefs{})

	// milk (allergen +1.2) edges out sugar (+1.0); small gap means medium
	require.Equal(t, IntentAllergens, got.TopIntent)
	require.Equal(t, ConfidenceMedium, got.Confidence)
	require.Contains(t, got.Reasons[IntentAllergens][0], "milk")
}

func TestInferIntentTieBreakIsDeterministic(t *testing.T) {
	// avoid-dairy and limit-sugar both contribute 1.5; the fixed priority
	// order puts sugar ahead of allergens
	prefs := UserPrefs{Avoid: []string{"dairy"}, Limit: []string{"sugar"}}

	for i := 0; i < 20; i++ {
		got := InferIntent(nil, "", prefs)
		require.Equal(t, IntentSugar, got.TopIntent)
		require.Equal(t, IntentAllergens, got.Scores[1].Intent)
	}
}

func TestInferIntentScoresSortedDescending(t *testing.T) {
	kb := testKB()
	ings := NormalizeIngredients("sugar, milk, soy lecithin, sodium benzoate, whey protein", kb)

	got := InferIntent(ings, "gut", UserPrefs{Goals: []string{"protein"}})

	require.Len(t, got.Scores, 7)
	for i := 1; i < len(got.Scores); i++ {
		require.GreaterOrEqual(t, got.Scores[i-1].Weight, got.Scores[i].Weight)
	}
	require.Equal(t, got.Scores[0].Intent, got.TopIntent)
}

func TestInferIntentReasonsCappedAtThree(t *testing.T) {
	kb := testKB()
	ings := NormalizeIngredients("sugar, corn syrup, glucose syrup, honey", kb)

	got := InferIntent(ings, "", UserPrefs{Limit: []string{"sugar"}})

	require.Len(t, got.Reasons[IntentSugar], 3)
}

func TestInferIntentHintNeverLowersRank(t *testing.T) {
	kb := testKB()
	ings := NormalizeIngredients("milk, soy lecithin, sodium benzoate", kb)

	without := InferIntent(ings, "", UserPrefs{})
	with := InferIntent(ings, "sugar", UserPrefs{})

	require.LessOrEqual(t, rankOf(with.Scores, IntentSugar), rankOf(without.Scores, IntentSugar))
}

func TestRankedScoresMarshalPreservesOrder(t *testing.T) {
	got := InferIntent(nil, "gut", UserPrefs{})

	raw, err := json.Marshal(got.Scores)
	require.NoError(t, err)

	body := string(raw)
	require.True(t, strings.HasPrefix(body, `{"gut":`), body)
	require.Less(t, strings.Index(body, `"gut"`), strings.Index(body, `"general"`))
}
