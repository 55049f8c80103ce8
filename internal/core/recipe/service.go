package recipe

import (
	"context"
	"time"

	"noshnurture/internal/core/ingredient"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/pkg/common"

	"go.uber.org/zap"
)

// SuggestOptions tunes one suggestion request.
type SuggestOptions struct {
	// Limit caps the number of returned suggestions. Zero means the
	// service default.
	Limit int
	// Mode selects the normalization strategy.
	Mode ingredient.Mode
	// ExpiringWithinDays marks matched ingredients whose inventory item
	// expires within this many days. Zero means the service default.
	ExpiringWithinDays int
}

// defaultExpiringWindow is the soonest-to-expire window, in days, used to
// flag suggestions that consume at-risk inventory.
const defaultExpiringWindow = 3

// SuggestionService turns raw inventory plus candidate recipes into a
// ranked suggestion list.
type SuggestionService struct {
	canonicalizer *pantry.Canonicalizer
	matcher       *Matcher
	workers       int
	defaultLimit  int
}

// NewSuggestionService creates a SuggestionService. workers bounds the
// concurrent per-recipe matching; defaultLimit applies when a request
// leaves Limit unset.
func NewSuggestionService(c *pantry.Canonicalizer, m *Matcher, workers, defaultLimit int) *SuggestionService {
	if workers <= 0 {
		workers = 5
	}
	if defaultLimit <= 0 {
		defaultLimit = 6
	}
	return &SuggestionService{
		canonicalizer: c,
		matcher:       m,
		workers:       workers,
		defaultLimit:  defaultLimit,
	}
}

// GenerateSuggestions canonicalizes the inventory, matches every recipe
// against it concurrently and returns the top suggestions by availability
// ratio. The available set is rebuilt on every call; expiry distances
// shift daily and must never be served stale.
func (s *SuggestionService) GenerateSuggestions(ctx context.Context, records []common.InventoryRecord, recipes []common.Recipe, opts SuggestOptions) []common.Suggestion {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	window := opts.ExpiringWithinDays
	if window <= 0 {
		window = defaultExpiringWindow
	}

	start := time.Now()
	available, expiry := s.canonicalizer.BuildAvailableSet(ctx, records, opts.Mode)
	expiring := expiringSet(expiry, window)

	results := s.matcher.matchAll(ctx, recipes, available, opts.Mode, s.workers)

	suggestions := make([]common.Suggestion, 0, len(recipes))
	for i, r := range recipes {
		match := results[i]
		suggestions = append(suggestions, common.Suggestion{
			Recipe:       r,
			Match:        match,
			Ratio:        match.Ratio(),
			Cuisine:      InferCuisine(r),
			UsesExpiring: s.usesExpiring(ctx, match.Matched, expiring, opts.Mode),
		})
	}

	ranked := Rank(suggestions, limit)
	if len(ranked) > 0 {
		common.LogDebug("top suggestion",
			zap.String("recipe", ranked[0].Recipe.Name),
			zap.Float64("ratio", ranked[0].Ratio),
			zap.String("ingredients", common.FormatIngredients(ranked[0].Recipe.Ingredients)),
		)
	}

	common.LogInfo("generated recipe suggestions",
		zap.Int("records", len(records)),
		zap.Int("recipes", len(recipes)),
		zap.Int("available", available.Len()),
		zap.Int("returned", len(ranked)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ranked
}

// MatchAgainst classifies one ingredient list against an explicit set of
// available strings, bypassing inventory canonicalization.
func (s *SuggestionService) MatchAgainst(ctx context.Context, ingredients []common.RecipeIngredient, available []string, mode ingredient.Mode) common.MatchResult {
	set := pantry.NewAvailableSetFrom(available)
	return s.matcher.MatchRecipe(ctx, ingredients, set, mode)
}

// expiringSet collects canonicals whose soonest inventory item expires
// within window days. Non-positive days count as expiring; the item is
// already due.
func expiringSet(entries []common.CanonicalExpiryEntry, window int) map[string]struct{} {
	out := make(map[string]struct{})
	for _, e := range entries {
		if e.DaysUntilExpiry <= window {
			out[e.Canonical] = struct{}{}
		}
	}
	return out
}

// usesExpiring returns the matched ingredients that consume expiring
// inventory, preserving matched order. Matched entries carry the recipe's
// raw wording, so each is normalized before the canonical comparison.
func (s *SuggestionService) usesExpiring(ctx context.Context, matched []string, expiring map[string]struct{}, mode ingredient.Mode) []string {
	if len(expiring) == 0 {
		return nil
	}
	var out []string
	for _, m := range matched {
		if _, ok := expiring[m]; ok {
			out = append(out, m)
			continue
		}
		canonical := s.matcher.normalizer.NormalizeContext(ctx, m, mode)
		if _, ok := expiring[canonical]; ok {
			out = append(out, m)
		}
	}
	return out
}
