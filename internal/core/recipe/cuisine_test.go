package recipe

import (
	"testing"

	"noshnurture/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestInferCuisine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		recipe common.Recipe
		want   string
	}{
		{
			name:   "explicit cuisine wins",
			recipe: common.Recipe{Name: "Pasta Primavera", Cuisine: "Fusion"},
			want:   "Fusion",
		},
		{
			name:   "masala reads as indian",
			recipe: common.Recipe{Name: "Pav Bhaji"},
			want:   CuisineIndian,
		},
		{
			name:   "keyword in ingredients counts",
			recipe: common.Recipe{Name: "Weeknight Dinner", Ingredients: ingredients("paneer", "onion")},
			want:   CuisineIndian,
		},
		{
			name:   "noodles read as east asian",
			recipe: common.Recipe{Name: "Veg Noodles"},
			want:   CuisineEastAsian,
		},
		{
			name:   "indian bucket outranks east asian",
			recipe: common.Recipe{Name: "Masala Noodles"},
			want:   CuisineIndian,
		},
		{
			name:   "pasta reads as italian",
			recipe: common.Recipe{Name: "Creamy Pasta"},
			want:   CuisineItalian,
		},
		{
			name:   "roast reads as european",
			recipe: common.Recipe{Name: "Roasted Vegetables Traybake"},
			want:   CuisineEuropean,
		},
		{
			name:   "no keyword falls back to international",
			recipe: common.Recipe{Name: "Fruit Salad"},
			want:   CuisineInternational,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, InferCuisine(tc.recipe))
		})
	}
}
