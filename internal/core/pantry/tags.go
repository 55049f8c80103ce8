package pantry

import (
	"strings"
)

// CanonicalTagPrefix marks a tag that caches a previously computed
// canonical name, e.g. "canonical:pav bhaji masala".
const CanonicalTagPrefix = "canonical:"

// CanonicalFromTags returns the cached canonical name from a record's
// tags, if present. The prefix check is case-insensitive and the value is
// returned lowercased and trimmed.
func CanonicalFromTags(tags []string) (string, bool) {
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if len(trimmed) < len(CanonicalTagPrefix) {
			continue
		}
		if strings.EqualFold(trimmed[:len(CanonicalTagPrefix)], CanonicalTagPrefix) {
			value := strings.ToLower(strings.TrimSpace(trimmed[len(CanonicalTagPrefix):]))
			if value == "" {
				continue
			}
			return value, true
		}
	}
	return "", false
}

// HasCanonicalTag reports whether tags already carry a canonical: entry.
func HasCanonicalTag(tags []string) bool {
	_, ok := CanonicalFromTags(tags)
	return ok
}

// EnsureCanonicalTag returns tags with "canonical:<name>" appended, unless
// a canonical: tag already exists. The existing tag wins; callers must not
// end up with two canonical entries on one record.
func EnsureCanonicalTag(tags []string, canonical string) []string {
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	if canonical == "" || HasCanonicalTag(tags) {
		return tags
	}
	out := make([]string, len(tags), len(tags)+1)
	copy(out, tags)
	return append(out, CanonicalTagPrefix+canonical)
}
