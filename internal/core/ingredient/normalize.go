package ingredient

import (
	"context"
	"strings"

	"noshnurture/internal/core/cache"
	"noshnurture/internal/pkg/common"

	"go.uber.org/zap"
)

// Mode selects the resolution strategy when exact and synonym lookups miss.
type Mode string

const (
	// ModeFuzzy resolves misses by edit distance against the vocabulary.
	ModeFuzzy Mode = "fuzzy"
	// ModeSemantic additionally consults the semantic matcher when the
	// fuzzy path finds nothing.
	ModeSemantic Mode = "semantic"
)

// ParseMode maps a request string onto a Mode, defaulting to fuzzy.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeSemantic)) {
		return ModeSemantic
	}
	return ModeFuzzy
}

// SemanticMatcher is the optional embedding-based fallback capability. A
// nil matcher, an error or an empty suggestion all mean "no suggestion";
// errors never propagate past the normalizer.
type SemanticMatcher interface {
	Suggest(ctx context.Context, text string, candidates []string) (string, error)
}

// Normalizer canonicalizes noisy product and ingredient strings against a
// fixed vocabulary. It is deterministic for a given vocabulary and mode,
// never returns an error and never mutates shared state, so one instance
// serves concurrent callers.
type Normalizer struct {
	vocab       *Vocabulary
	semantic    SemanticMatcher
	store       cache.Store
	maxDistance int
}

// NewNormalizer creates a Normalizer. semantic and store may be nil.
func NewNormalizer(vocab *Vocabulary, semantic SemanticMatcher, store cache.Store, maxDistance int) *Normalizer {
	if maxDistance <= 0 {
		maxDistance = 2
	}
	return &Normalizer{
		vocab:       vocab,
		semantic:    semantic,
		store:       store,
		maxDistance: maxDistance,
	}
}

// Vocabulary returns the vocabulary this normalizer resolves against.
func (n *Normalizer) Vocabulary() *Vocabulary {
	return n.vocab
}

// Clean lowercases raw, folds smart quotes to an ASCII apostrophe, strips
// a trailing possessive 's, replaces every non-alphanumeric rune with a
// space and collapses repeated whitespace.
func Clean(raw string) string {
	s := strings.ToLower(raw)
	s = strings.NewReplacer("‘", "'", "’", "'", "ʼ", "'").Replace(s)
	s = strings.TrimSuffix(strings.TrimSpace(s), "'s")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalize resolves raw to a canonical ingredient using the synchronous
// fuzzy path. On total failure it returns the cleaned candidate string;
// it never returns an error.
func (n *Normalizer) Normalize(raw string) string {
	result, _ := n.resolve(context.Background(), raw, ModeFuzzy)
	return result
}

// NormalizeSemantic resolves raw with the semantic fallback enabled.
func (n *Normalizer) NormalizeSemantic(ctx context.Context, raw string) string {
	result, _ := n.resolve(ctx, raw, ModeSemantic)
	return result
}

// NormalizeContext resolves raw in the given mode. The context only
// matters in semantic mode, where the matcher may perform I/O.
func (n *Normalizer) NormalizeContext(ctx context.Context, raw string, mode Mode) string {
	result, _ := n.resolve(ctx, raw, mode)
	return result
}

// Resolve is NormalizeContext plus a flag reporting whether the result is
// a member of the canonical vocabulary.
func (n *Normalizer) Resolve(ctx context.Context, raw string, mode Mode) (string, bool) {
	return n.resolve(ctx, raw, mode)
}

func (n *Normalizer) resolve(ctx context.Context, raw string, mode Mode) (string, bool) {
	cacheKey := "normalize:" + string(mode) + ":" + strings.ToLower(strings.TrimSpace(raw))
	if n.store != nil {
		if val, ok := n.store.Get(ctx, cacheKey); ok {
			common.LogCacheHit("normalize", cacheKey)
			return val, n.vocab.Contains(val)
		}
	}

	result, resolved := n.resolveUncached(ctx, raw, mode)

	if n.store != nil && result != "" {
		n.store.Set(ctx, cacheKey, result)
	}
	return result, resolved
}

func (n *Normalizer) resolveUncached(ctx context.Context, raw string, mode Mode) (string, bool) {
	clean := Clean(raw)
	if clean == "" {
		return "", false
	}

	// Token-level synonym substitution. An empty synonym value marks the
	// token as noise (brand, pack size) and drops it.
	tokens := strings.Fields(clean)
	mapped := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if v, ok := n.vocab.Synonym(t); ok {
			if v == "" {
				continue
			}
			mapped = append(mapped, v)
			continue
		}
		mapped = append(mapped, t)
	}

	// Candidate selection: the full substituted phrase when it is already
	// canonical, otherwise the last token. The trailing noun of a
	// "brand qualifier ingredient" phrase is usually the ingredient; this
	// is a heuristic, and the synonym table carries full phrases like
	// "chili powder" so it rarely has to fire on multi-word ingredients.
	joined := strings.Join(mapped, " ")
	candidate := joined
	if !n.vocab.Contains(joined) {
		if len(mapped) > 0 {
			candidate = mapped[len(mapped)-1]
		} else {
			candidate = ""
		}
	}

	if candidate != "" && n.vocab.Contains(candidate) {
		return candidate, true
	}

	// Full-phrase synonym lookup on the original cleaned text lets
	// multi-word brand phrases bypass the last-token heuristic.
	if v, ok := n.vocab.Synonym(clean); ok && v != "" {
		return v, true
	}

	if candidate != "" {
		if best, ok := n.fuzzyLookup(candidate); ok {
			return best, true
		}
	}

	if mode == ModeSemantic && n.semantic != nil {
		suggestion, err := n.semantic.Suggest(ctx, clean, n.vocab.Canonicals())
		if err != nil {
			common.LogDebug("semantic matcher unavailable, falling back",
				zap.String("input", clean),
				zap.Error(err),
			)
		} else if suggestion != "" {
			return normalizeKey(suggestion), true
		}
	}

	return candidate, false
}

// fuzzyLookup snaps candidate onto the nearest canonical ingredient within
// maxDistance edits. Equal distances resolve to the earlier vocabulary
// entry; the vocabulary is ordered precisely so this tie-break is stable.
func (n *Normalizer) fuzzyLookup(candidate string) (string, bool) {
	best := ""
	bestDist := n.maxDistance + 1
	for _, canonical := range n.vocab.Canonicals() {
		if d := Distance(candidate, canonical); d < bestDist {
			best = canonical
			bestDist = d
			if d == 0 {
				break
			}
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
