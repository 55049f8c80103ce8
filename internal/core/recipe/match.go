package recipe

import (
	"context"
	"strings"

	"noshnurture/internal/core/ingredient"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/pkg/common"
)

// staples are near-universal pantry ingredients exempted from strict
// availability: a cook without table salt still "has" the recipe.
var staples = []string{"water", "salt", "oil", "sugar", "pepper"}

// Matcher classifies recipe ingredients against an available set.
type Matcher struct {
	normalizer *ingredient.Normalizer
	minRatio   float64
}

// NewMatcher creates a Matcher. minRatio is the length-ratio gate for the
// substring fallback; 0.6 is the calibrated default.
func NewMatcher(n *ingredient.Normalizer, minRatio float64) *Matcher {
	if minRatio <= 0 {
		minRatio = 0.6
	}
	return &Matcher{
		normalizer: n,
		minRatio:   minRatio,
	}
}

// MatchRecipe classifies every ingredient as matched or missing. Each
// ingredient lands in exactly one bucket; empty or malformed entries are
// skipped and count toward neither.
func (m *Matcher) MatchRecipe(ctx context.Context, ingredients []common.RecipeIngredient, available *pantry.AvailableSet, mode ingredient.Mode) common.MatchResult {
	result := common.MatchResult{
		Matched: []string{},
		Missing: []string{},
	}

	for _, ing := range ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		if name == "" {
			continue
		}
		result.TotalCount++

		if m.matchIngredient(ctx, name, available, mode) {
			result.Matched = append(result.Matched, name)
			continue
		}
		result.Missing = append(result.Missing, name)
	}
	result.MatchedCount = len(result.Matched)

	stapleMissing := 0
	nonStapleMissing := 0
	for _, miss := range result.Missing {
		if isStaple(miss) {
			stapleMissing++
			continue
		}
		nonStapleMissing++
	}

	if result.TotalCount > 0 {
		result.IsExactNow = (nonStapleMissing == 0 && stapleMissing <= 1) ||
			result.MatchedCount >= result.TotalCount
	}

	return result
}

// matchIngredient checks the normalized form against the set, then falls
// back to gated substring containment against every member.
func (m *Matcher) matchIngredient(ctx context.Context, name string, available *pantry.AvailableSet, mode ingredient.Mode) bool {
	normalized := m.normalizer.NormalizeContext(ctx, name, mode)
	if normalized != "" && available.Contains(normalized) {
		return true
	}

	// The length-ratio gate keeps "powder" from matching "garlic powder"
	// in either direction. Lowering it trades precision for recall.
	for _, inv := range available.Members() {
		if lengthRatio(name, inv) < m.minRatio {
			continue
		}
		if strings.Contains(name, inv) || strings.Contains(inv, name) {
			return true
		}
	}
	return false
}

func lengthRatio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb)
}

// isStaple reports whether name is a staple, by case-insensitive substring
// containment in either direction.
func isStaple(name string) bool {
	name = strings.ToLower(name)
	for _, s := range staples {
		if strings.Contains(name, s) || strings.Contains(s, name) {
			return true
		}
	}
	return false
}
