package catalog

import (
	"sort"
	"strings"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
)

// Filter returns the products matching c, ordered by c.Sort. The input slice
// is never modified. Empty criteria fields are skipped; the sort is stable so
// ties keep catalog order.
func Filter(products []domain.Product, c domain.FilterCriteria) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.Category != "" && !p.InCategory(c.Category) {
			continue
		}
		if c.Brand != "" && p.BrandID != c.Brand {
			continue
		}
		if c.Size != "" && !p.HasSize(c.Size) {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if c.MinPrice != nil && p.Price.LessThan(*c.MinPrice) {
			continue
		}
		if c.MaxPrice != nil && p.Price.GreaterThan(*c.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, less(out, domain.ParseSortOption(string(c.Sort))))
	return out
}

func matchesQuery(p domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query)
}

func less(ps []domain.Product, opt domain.SortOption) func(i, j int) bool {
	switch opt {
	case domain.SortPriceAsc:
		return func(i, j int) bool { return ps[i].Price.LessThan(ps[j].Price) }
	case domain.SortPriceDesc:
		return func(i, j int) bool { return ps[i].Price.GreaterThan(ps[j].Price) }
	case domain.SortNewest:
		return func(i, j int) bool {
			return ps[i].Status == domain.StatusNew && ps[j].Status != domain.StatusNew
		}
	default:
		return func(i, j int) bool {
			return ps[i].IsFeatured() && !ps[j].IsFeatured()
		}
	}
}
