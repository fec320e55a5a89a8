package catalog

import (
	"time"

	"github.com/chamberedinseams/storefront/internal/domain"
)

// Fallback category ids used by the demo catalog. They intentionally
// mirror the ids seeded by the application on first run.
const (
	FallbackCategoryJackets     int64 = 1
	FallbackCategoryTops        int64 = 2
	FallbackCategoryBottoms     int64 = 3
	FallbackCategoryFootwear    int64 = 4
	FallbackCategoryAccessories int64 = 5
)

// Fallback returns the fixed demo catalog substituted by the shop API when
// the product store is empty or unreachable. Consumers surface a demo-mode
// notice alongside it.
func Fallback() []domain.Product {
	added := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		{
			ID:          1,
			Title:       "Vintage Denim Jacket",
			Description: "Classic 90s denim jacket in excellent condition",
			Price:       99.00,
			CategoryID:  FallbackCategoryJackets,
			IsStaffPick: true,
			IsActive:    true,
			CreatedAt:   added,
			UpdatedAt:   added,
		},
		{
			ID:          2,
			Title:       "Retro T-Shirt",
			Description: "Vintage band t-shirt from the 80s",
			Price:       49.00,
			CategoryID:  FallbackCategoryTops,
			IsActive:    true,
			CreatedAt:   added,
			UpdatedAt:   added,
		},
		{
			ID:          3,
			Title:       "Leather Boots",
			Description: "Vintage leather boots, barely worn",
			Price:       199.00,
			CategoryID:  FallbackCategoryFootwear,
			IsStaffPick: true,
			IsActive:    true,
			CreatedAt:   added,
			UpdatedAt:   added,
		},
		{
			ID:          4,
			Title:       "Vintage Sweater",
			Description: "Hand-knitted wool sweater from the 70s",
			Price:       79.00,
			CategoryID:  FallbackCategoryTops,
			IsActive:    true,
			CreatedAt:   added,
			UpdatedAt:   added,
		},
		{
			ID:          5,
			Title:       "Denim Jeans",
			Description: "Classic 90s high-waisted jeans",
			Price:       89.00,
			CategoryID:  FallbackCategoryBottoms,
			IsActive:    true,
			CreatedAt:   added,
			UpdatedAt:   added,
		},
		{
			ID:          6,
			Title:       "Leather Satchel",
			Description: "Worn-in leather satchel with brass hardware",
			Price:       129.00,
			CategoryID:  FallbackCategoryAccessories,
			IsActive:    true,
			CreatedAt:   added,
			UpdatedAt:   added,
		},
	}
}
