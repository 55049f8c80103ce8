package recipe

import (
	"context"
	"sort"
	"sync"

	"noshnurture/internal/core/ingredient"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/pkg/common"
)

// Rank sorts suggestions by availability ratio, highest first, and
// truncates to limit. The sort is stable so equal-ratio recipes keep their
// input order.
func Rank(suggestions []common.Suggestion, limit int) []common.Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Ratio > suggestions[j].Ratio
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// matchAll runs MatchRecipe over every recipe with a bounded worker pool.
// Results land at the recipe's own index, so output order is independent of
// scheduling.
func (m *Matcher) matchAll(ctx context.Context, recipes []common.Recipe, available *pantry.AvailableSet, mode ingredient.Mode, workers int) []common.MatchResult {
	if workers <= 0 {
		workers = 1
	}

	results := make([]common.MatchResult, len(recipes))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, r := range recipes {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, rec common.Recipe) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = m.MatchRecipe(ctx, rec.Ingredients, available, mode)
		}(i, r)
	}
	wg.Wait()

	return results
}
