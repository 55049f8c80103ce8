package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "identical strings",
			a:    "tomato",
			b:    "tomato",
			want: 0,
		},
		{
			name: "single substitution",
			a:    "tomato",
			b:    "tomata",
			want: 1,
		},
		{
			name: "single insertion",
			a:    "tomato",
			b:    "tomatto",
			want: 1,
		},
		{
			name: "two edits",
			a:    "paner",
			b:    "paneer",
			want: 1,
		},
		{
			name: "empty against word",
			a:    "",
			b:    "salt",
			want: 4,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Distance(tc.a, tc.b))
			assert.Equal(t, tc.want, Distance(tc.b, tc.a), "distance must be symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, Similarity("onion", "onion"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("", "salt"))

	// One edit over six runes.
	assert.InDelta(t, 5.0/6.0, Similarity("tomato", "tomata"), 1e-9)
}
