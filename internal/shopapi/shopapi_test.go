package shopapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chamberedinseams/storefront/config"
	"github.com/chamberedinseams/storefront/internal/app"
	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/internal/webserver"
	"github.com/chamberedinseams/storefront/pkg/common"
)

func setupShop(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()

	webserver.Init(app.NewTestApplication(cfg, db))
	InitRouter()

	return webserver.Echo(), db
}

func seedProduct(t *testing.T, db *gorm.DB, title string, price float64, categoryID int64, staffPick, active bool, createdAt time.Time) domain.Product {
	t.Helper()
	p := domain.Product{
		ID:          common.UUIDint64(),
		Title:       title,
		Price:       price,
		CategoryID:  categoryID,
		IsStaffPick: staffPick,
		IsActive:    active,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product %s: %v", title, err)
	}
	return p
}

func getJSON(t *testing.T, e *echo.Echo, path string, out interface{}) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v: %s", path, err, rec.Body.String())
		}
	}
	return rec.Code
}

func TestCatalogDemoFallback(t *testing.T) {
	e, _ := setupShop(t)

	var resp catalogResponse
	if code := getJSON(t, e, "/shop/catalog", &resp); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !resp.DemoMode {
		t.Fatal("empty store must serve demo catalog")
	}
	if len(resp.Products) == 0 {
		t.Fatal("demo catalog must not be empty")
	}
}

func TestCatalogFiltersAndSort(t *testing.T) {
	e, db := setupShop(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedProduct(t, db, "Jacket", 99, 1, false, true, base)
	seedProduct(t, db, "Tee", 25, 2, false, true, base.Add(time.Hour))
	seedProduct(t, db, "Boots", 199, 4, false, true, base.Add(2*time.Hour))
	seedProduct(t, db, "Hidden", 10, 1, false, false, base.Add(3*time.Hour))

	var resp catalogResponse
	getJSON(t, e, "/shop/catalog", &resp)
	if resp.DemoMode {
		t.Fatal("stocked store must not be in demo mode")
	}
	if resp.Total != 3 {
		t.Fatalf("inactive products must be hidden, got %d", resp.Total)
	}
	// default sort is newest first
	if resp.Products[0].Title != "Boots" {
		t.Fatalf("expected newest first, got %s", resp.Products[0].Title)
	}

	getJSON(t, e, "/shop/catalog?category_id=1", &resp)
	if resp.Total != 1 || resp.Products[0].Title != "Jacket" {
		t.Fatalf("category filter failed: %+v", resp.Products)
	}

	getJSON(t, e, "/shop/catalog?min_price=25&max_price=99", &resp)
	if resp.Total != 2 {
		t.Fatalf("price bounds are inclusive, got %d", resp.Total)
	}

	getJSON(t, e, "/shop/catalog?sort=price_low", &resp)
	if resp.Products[0].Title != "Tee" || resp.Products[len(resp.Products)-1].Title != "Boots" {
		t.Fatalf("price_low sort failed: %+v", resp.Products)
	}
}

func TestStaffPicksBackfill(t *testing.T) {
	e, db := setupShop(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedProduct(t, db, "Pick One", 99, 1, true, true, base.Add(4*time.Hour))
	seedProduct(t, db, "Filler A", 25, 2, false, true, base.Add(3*time.Hour))
	seedProduct(t, db, "Pick Two", 199, 4, true, true, base.Add(2*time.Hour))
	seedProduct(t, db, "Filler B", 49, 2, false, true, base.Add(time.Hour))
	seedProduct(t, db, "Filler C", 59, 3, false, true, base)

	var resp staffPicksResponse
	getJSON(t, e, "/shop/staffpicks", &resp)
	if len(resp.Products) != 4 {
		t.Fatalf("expected 4 picks, got %d", len(resp.Products))
	}
	if resp.Products[0].Title != "Pick One" || resp.Products[1].Title != "Pick Two" {
		t.Fatalf("flagged picks must lead: %+v", resp.Products)
	}
	for _, p := range resp.Products[2:] {
		if p.IsStaffPick {
			t.Fatalf("backfill slots must hold non-picks: %+v", p)
		}
	}

	getJSON(t, e, "/shop/staffpicks?limit=2", &resp)
	if len(resp.Products) != 2 || !resp.Products[0].IsStaffPick || !resp.Products[1].IsStaffPick {
		t.Fatalf("limit=2 must return only flagged picks: %+v", resp.Products)
	}
}

func TestProductDetail(t *testing.T) {
	e, db := setupShop(t)

	base := time.Now()
	visible := seedProduct(t, db, "Jacket", 99, 1, false, true, base)
	hidden := seedProduct(t, db, "Hidden", 10, 1, false, false, base)

	var p domain.Product
	if code := getJSON(t, e, fmt.Sprintf("/shop/products/%d", visible.ID), &p); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if p.Title != "Jacket" {
		t.Fatalf("unexpected product %+v", p)
	}

	if code := getJSON(t, e, fmt.Sprintf("/shop/products/%d", hidden.ID), nil); code != http.StatusNotFound {
		t.Fatalf("inactive product must be 404, got %d", code)
	}
	if code := getJSON(t, e, "/shop/products/424242", nil); code != http.StatusNotFound {
		t.Fatalf("missing product must be 404, got %d", code)
	}
	if code := getJSON(t, e, "/shop/products/abc", nil); code != http.StatusBadRequest {
		t.Fatalf("malformed id must be 400, got %d", code)
	}
}

func TestCategoriesList(t *testing.T) {
	e, db := setupShop(t)

	for i, name := range []string{"Jackets", "Tops"} {
		if err := db.Create(&domain.Category{ID: int64(i + 1), Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	var categories []domain.Category
	if code := getJSON(t, e, "/shop/categories", &categories); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(categories) != 2 || categories[0].Name != "Jackets" {
		t.Fatalf("unexpected categories %+v", categories)
	}
}
