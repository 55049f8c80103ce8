package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeIngredientUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantName   string
		wantAmount string
	}{
		{
			name:     "bare string form",
			input:    `"tomato"`,
			wantName: "tomato",
		},
		{
			name:       "object with string amount",
			input:      `{"name": "rice", "amount": "2 cups"}`,
			wantName:   "rice",
			wantAmount: "2 cups",
		},
		{
			name:       "object with numeric amount",
			input:      `{"name": "egg", "amount": 3}`,
			wantName:   "egg",
			wantAmount: "3",
		},
		{
			name:     "object without amount",
			input:    `{"name": "salt"}`,
			wantName: "salt",
		},
		{
			name:     "malformed entry yields empty name",
			input:    `42`,
			wantName: "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var ing RecipeIngredient
			require.NoError(t, json.Unmarshal([]byte(tc.input), &ing))
			assert.Equal(t, tc.wantName, ing.Name)
			assert.Equal(t, tc.wantAmount, ing.Amount)
		})
	}
}

func TestRecipeIngredientListMixedForms(t *testing.T) {
	t.Parallel()

	var recipe Recipe
	input := `{
		"name": "Pav Bhaji",
		"ingredients": ["pav", {"name": "butter", "amount": "2 tbsp"}, 42]
	}`
	require.NoError(t, json.Unmarshal([]byte(input), &recipe))

	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, "pav", recipe.Ingredients[0].Name)
	assert.Equal(t, "butter", recipe.Ingredients[1].Name)
	assert.Equal(t, "2 tbsp", recipe.Ingredients[1].Amount)
	assert.Equal(t, "", recipe.Ingredients[2].Name, "malformed entries are kept empty for the matcher to skip")
}

func TestMatchResultRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, MatchResult{}.Ratio())
	assert.Equal(t, 0.5, MatchResult{MatchedCount: 1, TotalCount: 2}.Ratio())
	assert.Equal(t, 1.0, MatchResult{MatchedCount: 3, TotalCount: 3}.Ratio())
}

func TestFormatIngredients(t *testing.T) {
	t.Parallel()

	got := FormatIngredients([]RecipeIngredient{
		{Name: "pav", Amount: "4"},
		{Name: "butter"},
	})
	assert.Equal(t, "- pav (4)\n- butter\n", got)
}
