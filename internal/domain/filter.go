package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SortOption selects the ordering of a filtered product view.
type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNewest    SortOption = "newest"
)

// ParseSortOption maps user input to a sort option. Empty or unknown values
// fall back to SortFeatured.
func ParseSortOption(s string) SortOption {
	switch opt := SortOption(strings.ToLower(strings.TrimSpace(s))); opt {
	case SortPriceAsc, SortPriceDesc, SortNewest:
		return opt
	default:
		return SortFeatured
	}
}

// FilterCriteria narrows and orders the catalog. Empty string fields and nil
// price bounds are not applied.
type FilterCriteria struct {
	Category string
	Brand    string
	Size     string
	Query    string
	Sort     SortOption
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}
