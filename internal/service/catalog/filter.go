package catalog

import (
	"sort"
	"strings"

	"shophub/internal/domain"
)

// CategoryAll is the sentinel category that matches every product.
const CategoryAll = "All"

// FilterState carries the browse filters. MinPriceCents and MaxPriceCents are
// accepted on the wire but not applied by Filter; see DESIGN.md.
type FilterState struct {
	Category      string
	MinPriceCents int64
	MaxPriceCents int64
	Search        string
}

// Filter reduces products to the subset matching the filter state. Category
// matches exactly (empty or "All" matches everything); search is a
// case-insensitive substring test against the product name only. Result order
// is catalog order.
func Filter(products []domain.Product, f FilterState) []domain.Product {
	search := strings.ToLower(f.Search)
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Sort options accepted by SortProducts.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortName      = "name"
)

// SortProducts orders products in place. An empty or unknown option keeps
// catalog order.
func SortProducts(products []domain.Product, option string) {
	switch option {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].PriceCents < products[j].PriceCents })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].PriceCents > products[j].PriceCents })
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	case SortName:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	}
}
