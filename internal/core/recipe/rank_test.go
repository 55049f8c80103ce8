package recipe

import (
	"context"
	"testing"

	"noshnurture/internal/core/ingredient"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func suggestionsWithRatios(names []string, ratios []float64) []common.Suggestion {
	out := make([]common.Suggestion, len(ratios))
	for i, r := range ratios {
		out[i] = common.Suggestion{
			Recipe: common.Recipe{Name: names[i]},
			Ratio:  r,
		}
	}
	return out
}

func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("orders by ratio descending", func(t *testing.T) {
		t.Parallel()
		got := Rank(suggestionsWithRatios([]string{"a", "b", "c"}, []float64{0.33, 1.0, 0.5}), 0)

		assert.Equal(t, "b", got[0].Recipe.Name)
		assert.Equal(t, "c", got[1].Recipe.Name)
		assert.Equal(t, "a", got[2].Recipe.Name)
	})

	t.Run("equal ratios keep input order", func(t *testing.T) {
		t.Parallel()
		got := Rank(suggestionsWithRatios([]string{"first", "second", "third"}, []float64{0.5, 0.5, 0.5}), 0)

		assert.Equal(t, "first", got[0].Recipe.Name)
		assert.Equal(t, "second", got[1].Recipe.Name)
		assert.Equal(t, "third", got[2].Recipe.Name)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		t.Parallel()
		got := Rank(suggestionsWithRatios([]string{"a", "b", "c", "d"}, []float64{0.1, 0.9, 0.4, 0.7}), 2)

		assert.Len(t, got, 2)
		assert.Equal(t, "b", got[0].Recipe.Name)
		assert.Equal(t, "d", got[1].Recipe.Name)
	})

	t.Run("limit above length returns all", func(t *testing.T) {
		t.Parallel()
		got := Rank(suggestionsWithRatios([]string{"a"}, []float64{0.5}), 10)
		assert.Len(t, got, 1)
	})
}

func TestMatchAll(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(t)
	available := pantry.NewAvailableSetFrom([]string{"tomato", "onion", "salt"})

	recipes := []common.Recipe{
		{Name: "full", Ingredients: ingredients("tomato", "onion")},
		{Name: "half", Ingredients: ingredients("tomato", "paneer")},
		{Name: "none", Ingredients: ingredients("paneer", "cream")},
	}

	// Order of results must match recipe order regardless of worker count.
	results := m.matchAll(context.Background(), recipes, available, ingredient.ModeFuzzy, 3)

	assert.Len(t, results, 3)
	assert.Equal(t, 2, results[0].MatchedCount)
	assert.Equal(t, 1, results[1].MatchedCount)
	assert.Equal(t, 0, results[2].MatchedCount)
}
