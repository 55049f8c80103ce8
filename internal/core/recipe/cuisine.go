package recipe

import (
	"strings"

	"noshnurture/internal/pkg/common"
)

// Cuisine labels returned by InferCuisine.
const (
	CuisineIndian        = "Indian"
	CuisineEastAsian     = "East Asian"
	CuisineItalian       = "Italian"
	CuisineEuropean      = "European"
	CuisineInternational = "International"
)

// cuisineKeywords is checked in order; the first bucket with a hit wins.
var cuisineKeywords = []struct {
	cuisine  string
	keywords []string
}{
	{CuisineIndian, []string{"curry", "masala", "dosa", "biryani", "dal", "tandoori", "naan", "paneer", "pav bhaji", "sambar", "chutney"}},
	{CuisineEastAsian, []string{"stir-fry", "stir fry", "fried rice", "wok", "noodles", "ramen", "teriyaki", "soy"}},
	{CuisineItalian, []string{"pasta", "pizza", "risotto", "pesto", "lasagna", "spaghetti"}},
	{CuisineEuropean, []string{"roasted", "traybake", "steak", "schnitzel", "gratin", "stew"}},
}

// InferCuisine guesses a cuisine label from the recipe name and ingredient
// names when the recipe carries none. Keyword buckets are ordered by
// specificity, so "paneer masala noodles" reads as Indian, not East Asian.
func InferCuisine(r common.Recipe) string {
	if c := strings.TrimSpace(r.Cuisine); c != "" {
		return c
	}

	var sb strings.Builder
	sb.WriteString(strings.ToLower(r.Name))
	for _, ing := range r.Ingredients {
		sb.WriteByte(' ')
		sb.WriteString(strings.ToLower(ing.Name))
	}
	text := sb.String()

	for _, bucket := range cuisineKeywords {
		for _, kw := range bucket.keywords {
			if strings.Contains(text, kw) {
				return bucket.cuisine
			}
		}
	}
	return CuisineInternational
}
