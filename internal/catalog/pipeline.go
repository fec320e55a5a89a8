// Package catalog derives the storefront display lists from a product
// collection held in memory. It is pure: it never talks to the store and
// knows nothing about fallback substitution.
package catalog

import (
	"sort"

	"github.com/chamberedinseams/storefront/internal/domain"
)

// SortKey selects the ordering applied by FilterAndSort.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price_low"
	SortPriceDesc SortKey = "price_high"
)

// Criteria is the ephemeral filter/sort state for the main grid.
// CategoryID of zero means all categories; nil price bounds are unset.
type Criteria struct {
	CategoryID int64
	MinPrice   *float64
	MaxPrice   *float64
	Sort       SortKey
}

// DefaultStaffPickCount matches the four carousel slots the shop renders.
const DefaultStaffPickCount = 4

// SelectStaffPicks returns the bounded staff-picks set: flagged products
// first in source order, then non-picks as backfill until minCount items
// are collected or the source runs out. Staff picks are never displaced by
// backfill and no product appears twice.
func SelectStaffPicks(products []domain.Product, minCount int) []domain.Product {
	if minCount <= 0 || len(products) == 0 {
		return nil
	}

	picks := make([]domain.Product, 0, minCount)
	for _, p := range products {
		if !p.IsStaffPick {
			continue
		}
		picks = append(picks, p)
		if len(picks) == minCount {
			return picks
		}
	}

	for _, p := range products {
		if p.IsStaffPick {
			continue
		}
		picks = append(picks, p)
		if len(picks) == minCount {
			break
		}
	}
	return picks
}

// FilterAndSort applies the criteria in fixed order: category, minimum
// price, maximum price, then a stable sort by the selected key. Price
// bounds are inclusive. An empty result is not an error.
func FilterAndSort(products []domain.Product, criteria Criteria) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if criteria.CategoryID != 0 && p.CategoryID != criteria.CategoryID {
			continue
		}
		if criteria.MinPrice != nil && p.Price < *criteria.MinPrice {
			continue
		}
		if criteria.MaxPrice != nil && p.Price > *criteria.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	switch criteria.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	case SortNewest:
		fallthrough
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}
	return filtered
}

// ParseSortKey normalizes a query-string sort value, defaulting to newest.
func ParseSortKey(value string) SortKey {
	switch SortKey(value) {
	case SortOldest, SortPriceAsc, SortPriceDesc:
		return SortKey(value)
	default:
		return SortNewest
	}
}
