package store

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chamberedinseams/storefront/internal/domain"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Category{}, &domain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormStore(db)
}

func seedCategory(t *testing.T, s *GormStore, id int64, name string) {
	t.Helper()
	if err := s.db.Create(&domain.Category{ID: id, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	s := newTestStore(t)
	seedCategory(t, s, 1, "Jackets")
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, ProductPayload{
		Title:       "Vintage Denim Jacket",
		Description: "Classic 90s denim",
		Price:       99,
		CategoryID:  1,
		IsStaffPick: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}
	if !created.IsActive {
		t.Fatal("create without explicit flag should default to active")
	}

	got, err := s.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Vintage Denim Jacket" || got.Price != 99 || !got.IsStaffPick {
		t.Fatalf("unexpected product %+v", got)
	}
	if got.Category == nil || got.Category.Name != "Jackets" {
		t.Fatalf("expected preloaded category, got %+v", got.Category)
	}
}

func TestUpdateProductPreservesActiveFlag(t *testing.T) {
	s := newTestStore(t)
	seedCategory(t, s, 1, "Jackets")
	ctx := context.Background()

	inactive := false
	created, err := s.CreateProduct(ctx, ProductPayload{
		Title: "Old Coat", Price: 50, CategoryID: 1, IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// nil IsActive keeps the stored flag
	updated, err := s.UpdateProduct(ctx, created.ID, ProductPayload{
		Title: "Old Coat Revised", Price: 55, CategoryID: 1,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive {
		t.Fatal("update with nil flag must not reactivate the product")
	}
	if updated.Title != "Old Coat Revised" || updated.Price != 55 {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if !updated.UpdatedAt.After(created.CreatedAt) && !updated.UpdatedAt.Equal(created.CreatedAt) {
		t.Fatal("expected updated_at to move forward")
	}

	active := true
	updated, err = s.UpdateProduct(ctx, created.ID, ProductPayload{
		Title: "Old Coat Revised", Price: 55, CategoryID: 1, IsActive: &active,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsActive {
		t.Fatal("explicit flag must be applied")
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdateProduct(context.Background(), 4242, ProductPayload{Title: "x", Price: 1, CategoryID: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProductTwice(t *testing.T) {
	s := newTestStore(t)
	seedCategory(t, s, 1, "Jackets")
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, ProductPayload{Title: "Boots", Price: 150, CategoryID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.DeleteProduct(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetProduct(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: expected ErrNotFound, got %v", err)
	}
}

func TestListProductsActiveOnly(t *testing.T) {
	s := newTestStore(t)
	seedCategory(t, s, 1, "Jackets")
	ctx := context.Background()

	inactive := false
	if _, err := s.CreateProduct(ctx, ProductPayload{Title: "Visible", Price: 10, CategoryID: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateProduct(ctx, ProductPayload{Title: "Hidden", Price: 20, CategoryID: 1, IsActive: &inactive}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := s.ListProducts(ctx, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}

	active, err := s.ListProducts(ctx, true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Title != "Visible" {
		t.Fatalf("expected only the active product, got %+v", active)
	}
}

func TestListCategoriesOrdered(t *testing.T) {
	s := newTestStore(t)
	seedCategory(t, s, 2, "Tops")
	seedCategory(t, s, 1, "Jackets")

	categories, err := s.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 2 || categories[0].ID != 1 || categories[1].ID != 2 {
		t.Fatalf("expected id-ordered categories, got %+v", categories)
	}
}
