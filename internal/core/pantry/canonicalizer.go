package pantry

import (
	"context"
	"strings"
	"time"

	"noshnurture/internal/core/ingredient"
	"noshnurture/internal/pkg/common"
)

// expiryLayouts are the accepted inventory date formats, day first.
var expiryLayouts = []string{"02-01-2006", "02/01/2006"}

// Canonicalizer maps inventory records to the available-ingredient set
// used for recipe matching. Resolution is layered: canonical: tags win,
// then fuzzy normalization of the product name, then the raw name; plain
// tags and product-name tokens are always added on top so that a record
// failing every resolution still participates in matching.
type Canonicalizer struct {
	normalizer  *ingredient.Normalizer
	minTokenLen int
	now         func() time.Time
}

// NewCanonicalizer creates a Canonicalizer. minTokenLen bounds the token
// fallback; tokens shorter than it are discarded as noise.
func NewCanonicalizer(n *ingredient.Normalizer, minTokenLen int) *Canonicalizer {
	if minTokenLen <= 0 {
		minTokenLen = 3
	}
	return &Canonicalizer{
		normalizer:  n,
		minTokenLen: minTokenLen,
		now:         time.Now,
	}
}

// BuildAvailableSet resolves every record into the available set and the
// canonical-expiry entries. The set is rebuilt fresh on every call; days
// until expiry change daily, so it must never be reused across requests.
func (c *Canonicalizer) BuildAvailableSet(ctx context.Context, records []common.InventoryRecord, mode ingredient.Mode) (*AvailableSet, []common.CanonicalExpiryEntry) {
	available := NewAvailableSet()
	expiry := make([]common.CanonicalExpiryEntry, 0, len(records))

	for _, rec := range records {
		name := strings.TrimSpace(rec.ProductName)

		// Tags are a cache/override: a canonical: tag skips normalization
		// entirely.
		canonical, fromTag := CanonicalFromTags(rec.Tags)
		if !fromTag && name != "" {
			canonical = c.normalizer.NormalizeContext(ctx, name, mode)
			if canonical == "" {
				canonical = strings.ToLower(name)
			}
		}

		if canonical != "" {
			available.Add(canonical)
			expiry = append(expiry, common.CanonicalExpiryEntry{
				Canonical:       canonical,
				DaysUntilExpiry: c.daysUntilExpiry(rec),
			})
		}

		for _, tag := range rec.Tags {
			trimmed := strings.TrimSpace(tag)
			if trimmed == "" {
				continue
			}
			if len(trimmed) >= len(CanonicalTagPrefix) &&
				strings.EqualFold(trimmed[:len(CanonicalTagPrefix)], CanonicalTagPrefix) {
				continue
			}
			available.Add(trimmed)
		}

		// Token fallback: brand-heavy names often fail full
		// canonicalization yet share a token with recipes that need only
		// part of the phrase ("Britannia Pav" vs bread). Recall over
		// precision; every item stays matchable.
		for _, token := range tokenizeName(name) {
			if len(token) >= c.minTokenLen {
				available.Add(token)
			}
		}
	}

	return available, expiry
}

// daysUntilExpiry computes days from today to the record's expiry date,
// both normalized to midnight. A missing or malformed date falls back to
// the record's stored value.
func (c *Canonicalizer) daysUntilExpiry(rec common.InventoryRecord) int {
	raw := strings.TrimSpace(rec.ExpiryDate)
	if raw == "" {
		return rec.DaysUntilExpiry
	}

	var expiry time.Time
	parsed := false
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			expiry = t
			parsed = true
			break
		}
	}
	if !parsed {
		return rec.DaysUntilExpiry
	}

	now := c.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expiry = time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)

	return int(expiry.Sub(today).Hours() / 24)
}

// tokenizeName splits a product name on non-alphanumeric boundaries.
func tokenizeName(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
}
