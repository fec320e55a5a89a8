package catalog

import (
	"testing"
	"time"

	"github.com/chamberedinseams/storefront/internal/domain"
)

func mkProduct(id int64, price float64, pick bool, created time.Time) domain.Product {
	return domain.Product{
		ID:          id,
		Title:       "item",
		Price:       price,
		CategoryID:  1,
		IsStaffPick: pick,
		IsActive:    true,
		CreatedAt:   created,
	}
}

func ids(products []domain.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a []int64, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectStaffPicksBackfill(t *testing.T) {
	now := time.Now()
	// [A(pick), B, C(pick), D, E] with minCount=4 -> [A, C, B, D]
	products := []domain.Product{
		mkProduct(1, 10, true, now),
		mkProduct(2, 10, false, now),
		mkProduct(3, 10, true, now),
		mkProduct(4, 10, false, now),
		mkProduct(5, 10, false, now),
	}

	got := SelectStaffPicks(products, 4)
	if !equalIDs(ids(got), []int64{1, 3, 2, 4}) {
		t.Fatalf("unexpected staff picks order: %v", ids(got))
	}
}

func TestSelectStaffPicksNeverDisplacesPicks(t *testing.T) {
	now := time.Now()
	products := []domain.Product{
		mkProduct(1, 10, false, now),
		mkProduct(2, 10, true, now),
		mkProduct(3, 10, true, now),
		mkProduct(4, 10, true, now),
		mkProduct(5, 10, true, now),
		mkProduct(6, 10, true, now),
	}

	got := SelectStaffPicks(products, 4)
	if !equalIDs(ids(got), []int64{2, 3, 4, 5}) {
		t.Fatalf("picks should fill all slots before backfill: %v", ids(got))
	}
}

func TestSelectStaffPicksBounds(t *testing.T) {
	now := time.Now()
	products := []domain.Product{
		mkProduct(1, 10, false, now),
		mkProduct(2, 10, true, now),
	}

	got := SelectStaffPicks(products, 4)
	if len(got) != 2 {
		t.Fatalf("result length should be min(minCount, total): got %d", len(got))
	}
	seen := map[int64]bool{}
	for _, p := range got {
		if seen[p.ID] {
			t.Fatalf("product %d selected twice", p.ID)
		}
		seen[p.ID] = true
	}

	if got := SelectStaffPicks(nil, 4); len(got) != 0 {
		t.Fatalf("empty input should yield empty output, got %d", len(got))
	}
}

func TestFilterAndSortPriceBoundsInclusive(t *testing.T) {
	now := time.Now()
	products := []domain.Product{
		mkProduct(1, 10, false, now),
		mkProduct(2, 25, false, now),
		mkProduct(3, 50, false, now),
		mkProduct(4, 80, false, now),
		mkProduct(5, 90, false, now),
	}
	minP, maxP := 25.0, 80.0

	got := FilterAndSort(products, Criteria{MinPrice: &minP, MaxPrice: &maxP})
	if !equalIDs(ids(got), []int64{2, 3, 4}) {
		t.Fatalf("boundary values must be kept: %v", ids(got))
	}
}

func TestFilterAndSortStableTies(t *testing.T) {
	now := time.Now()
	products := []domain.Product{
		mkProduct(1, 50, false, now),
		mkProduct(2, 20, false, now),
		mkProduct(3, 20, false, now),
		mkProduct(4, 80, false, now),
	}

	got := FilterAndSort(products, Criteria{Sort: SortPriceAsc})
	if !equalIDs(ids(got), []int64{2, 3, 1, 4}) {
		t.Fatalf("equal prices must keep input order: %v", ids(got))
	}
}

func TestFilterAndSortCategoryAndDates(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{
		mkProduct(1, 10, false, t0),
		mkProduct(2, 10, false, t0.Add(48*time.Hour)),
		mkProduct(3, 10, false, t0.Add(24*time.Hour)),
	}
	products[2].CategoryID = 9

	got := FilterAndSort(products, Criteria{Sort: SortNewest})
	if !equalIDs(ids(got), []int64{2, 3, 1}) {
		t.Fatalf("newest first expected: %v", ids(got))
	}

	got = FilterAndSort(products, Criteria{Sort: SortOldest})
	if !equalIDs(ids(got), []int64{1, 3, 2}) {
		t.Fatalf("oldest first expected: %v", ids(got))
	}

	got = FilterAndSort(products, Criteria{CategoryID: 9})
	if !equalIDs(ids(got), []int64{3}) {
		t.Fatalf("category filter expected only id 3: %v", ids(got))
	}
}

func TestFilterRemovalNeverShrinksResult(t *testing.T) {
	now := time.Now()
	products := []domain.Product{
		mkProduct(1, 10, false, now),
		mkProduct(2, 25, false, now),
		mkProduct(3, 50, false, now),
	}
	minP := 20.0

	with := FilterAndSort(products, Criteria{MinPrice: &minP})
	without := FilterAndSort(products, Criteria{})
	if len(without) < len(with) {
		t.Fatalf("removing a filter shrank the result: %d < %d", len(without), len(with))
	}
}

func TestFallbackCatalogShape(t *testing.T) {
	demo := Fallback()
	if len(demo) != 6 {
		t.Fatalf("demo catalog must hold 6 items, got %d", len(demo))
	}
	cats := map[int64]bool{}
	for _, p := range demo {
		if !p.IsActive {
			t.Fatalf("demo product %d must be active", p.ID)
		}
		cats[p.CategoryID] = true
	}
	if len(cats) < 4 {
		t.Fatalf("demo catalog should span categories, got %d", len(cats))
	}
}
