package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func canonicals(ings []Ingredient) []string {
	out := make([]string, 0, len(ings))
	for _, ing := range ings {
		out = append(out, ing.Canonical)
	}
	return out
}

func TestNormalizeBlankInput(t *testing.T) {
	kb := testKB()

	require.Empty(t, NormalizeIngredients("", kb))
	require.Empty(t, NormalizeIngredients("   \t ", kb))
}

func TestNormalizeStripsLabelPrefix(t *testing.T) {
	kb := testKB()

	for _, text := range []string{
		"Ingredients: water, sugar",
		"INGREDIENTS: water, sugar",
		"  ingredients : water, sugar",
	} {
		got := NormalizeIngredients(text, kb)
		require.Equal(t, []string{"water", "sugar"}, canonicals(got), "input %q", text)
	}
}

func TestNormalizeParenthesisAwareSplit(t *testing.T) {
	kb := testKB()

	// the comma inside the parentheses must not split the token
	got := NormalizeIngredients("whey (milk, soy lecithin), dates", kb)
	require.Equal(t, []string{"whey protein", "milk", "soy lecithin", "dates"}, canonicals(got))
}

func TestNormalizeExplodesParentheses(t *testing.T) {
	kb := testKB()

	got := NormalizeIngredients("Water, Sugar, Cocoa (Milk)", kb)
	require.Equal(t, []string{"water", "sugar", "cocoa", "milk"}, canonicals(got))

	milk := got[3]
	require.True(t, milk.Known)
	require.True(t, milk.HasFlag("allergen"))
	require.Equal(t, "Milk", milk.Raw)
}

func TestNormalizeDedupByCanonical(t *testing.T) {
	kb := testKB()

	got := NormalizeIngredients("Sugar, cane sugar, SUGAR.", kb)
	require.Len(t, got, 1)
	// first occurrence's raw text survives
	require.Equal(t, "Sugar", got[0].Raw)
	require.Equal(t, "sugar", got[0].Canonical)
}

func TestNormalizeUnknownIngredient(t *testing.T) {
	kb := testKB()

	got := NormalizeIngredients("glorbium extract", kb)
	require.Len(t, got, 1)
	require.False(t, got[0].Known)
	require.Equal(t, "glorbium extract", got[0].Canonical)
	require.Equal(t, "unknown", got[0].Category)
	require.Equal(t, "unknown", got[0].Evidence)
	require.Empty(t, got[0].Flags)
}

func TestNormalizeCleansTokens(t *testing.T) {
	kb := testKB()

	got := NormalizeIngredients("  water ;, , sugar. ", kb)
	require.Equal(t, []string{"water", "sugar"}, canonicals(got))
}

func TestNormalizeIdempotent(t *testing.T) {
	kb := testKB()
	text := "Ingredients: water, sugar, cocoa (milk), carrageenan, glorbium extract"

	first := NormalizeIngredients(text, kb)
	second := NormalizeIngredients(text, kb)
	require.Equal(t, first, second)
}

func TestNormalizeNoDuplicateCanonicals(t *testing.T) {
	kb := testKB()

	got := NormalizeIngredients("whey (milk), skim milk, whey protein, sugar, sucrose", kb)
	seen := make(map[string]bool)
	for _, ing := range got {
		require.False(t, seen[ing.Canonical], "duplicate canonical %q", ing.Canonical)
		seen[ing.Canonical] = true
	}
}
