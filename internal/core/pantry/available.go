package pantry

import (
	"encoding/json"
	"strings"
)

// AvailableSet is the set of lowercase ingredient strings one user's
// inventory makes available for matching. Insertion order is preserved so
// API responses are reproducible; membership checks are case-insensitive.
type AvailableSet struct {
	order []string
	index map[string]struct{}
}

// NewAvailableSet creates an empty set.
func NewAvailableSet() *AvailableSet {
	return &AvailableSet{
		index: make(map[string]struct{}),
	}
}

// NewAvailableSetFrom creates a set seeded with the given members.
func NewAvailableSetFrom(members []string) *AvailableSet {
	s := NewAvailableSet()
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add inserts v, lowercased and trimmed. Empty strings and duplicates are
// ignored.
func (s *AvailableSet) Add(v string) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return
	}
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = struct{}{}
	s.order = append(s.order, v)
}

// Contains reports whether v is a member, case-insensitively.
func (s *AvailableSet) Contains(v string) bool {
	_, ok := s.index[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Members returns the set in insertion order. The returned slice is a
// copy.
func (s *AvailableSet) Members() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of members.
func (s *AvailableSet) Len() int {
	return len(s.order)
}

// MarshalJSON renders the set as an ordered JSON array.
func (s *AvailableSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.order)
}
