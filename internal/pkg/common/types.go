package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InventoryRecord is one pantry row as consumed from storage. Either
// ExpiryDate (DD-MM-YYYY or DD/MM/YYYY) or DaysUntilExpiry is present;
// ExpiryDate wins when both are set and parseable.
type InventoryRecord struct {
	ProductName     string   `json:"product_name"`
	Tags            []string `json:"tags"`
	ExpiryDate      string   `json:"expiry_date,omitempty"`
	DaysUntilExpiry int      `json:"days_until_expiry,omitempty"`
}

// CanonicalExpiryEntry pairs a resolved canonical ingredient with the days
// until its inventory item expires.
type CanonicalExpiryEntry struct {
	Canonical       string `json:"canonical"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// RecipeIngredient is one recipe ingredient. On the wire it may be a bare
// string or an object {name, amount} where amount is a string or a number.
type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form. A malformed
// entry yields an empty name, which the matcher skips.
func (r *RecipeIngredient) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Name = s
		r.Amount = ""
		return nil
	}

	var obj struct {
		Name   string          `json:"name"`
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Wrong shape: skip rather than abort the batch.
		r.Name = ""
		r.Amount = ""
		return nil
	}
	r.Name = obj.Name
	r.Amount = rawAmountToString(obj.Amount)
	return nil
}

func rawAmountToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// Recipe is a recipe as consumed from an external source.
type Recipe struct {
	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name"`
	Cuisine     string             `json:"cuisine,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// MatchResult classifies every ingredient of one recipe against the
// available set. Invariant: len(Matched)+len(Missing) == TotalCount.
type MatchResult struct {
	Matched      []string `json:"matched"`
	Missing      []string `json:"missing"`
	MatchedCount int      `json:"matched_count"`
	TotalCount   int      `json:"total_count"`
	IsExactNow   bool     `json:"is_exact_now"`
}

// Ratio is the availability ratio used for ranking. A zero TotalCount
// ranks lowest.
func (m MatchResult) Ratio() float64 {
	if m.TotalCount == 0 {
		return 0
	}
	return float64(m.MatchedCount) / float64(m.TotalCount)
}

// Suggestion is one ranked recipe with its match breakdown.
type Suggestion struct {
	Recipe       Recipe      `json:"recipe"`
	Match        MatchResult `json:"match"`
	Ratio        float64     `json:"ratio"`
	Cuisine      string      `json:"cuisine"`
	UsesExpiring []string    `json:"uses_expiring,omitempty"`
}

// FormatIngredients renders a recipe ingredient list for logs.
func FormatIngredients(ingredients []RecipeIngredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		if ing.Amount != "" {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", ing.Name, ing.Amount))
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s\n", ing.Name))
	}
	return sb.String()
}
