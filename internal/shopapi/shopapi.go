// Package shopapi implements the public storefront JSON API. It reads
// through the product store, derives display lists with the catalog
// pipeline and substitutes the demo catalog when the store is empty or
// unreachable.
package shopapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/chamberedinseams/storefront/internal/catalog"
	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/internal/store"
	"github.com/chamberedinseams/storefront/internal/webserver"
)

type catalogResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	DemoMode bool             `json:"demo_mode"`
}

type staffPicksResponse struct {
	Products []domain.Product `json:"products"`
	DemoMode bool             `json:"demo_mode"`
}

// InitRouter registers every public storefront route.
func InitRouter() {
	webserver.ShopGET("/catalog", listCatalog)
	webserver.ShopGET("/staffpicks", listStaffPicks)
	webserver.ShopGET("/products/:id", getProduct)
	webserver.ShopGET("/categories", listCategories)
	webserver.ShopGET("/archive", listArchive)
}

// loadProducts reads the active catalog, falling back to the demo set when
// the store errors out or holds nothing.
func loadProducts(c echo.Context) ([]domain.Product, bool) {
	products, err := webserver.GetAppContext(c).Store().ListProducts(c.Request().Context(), true)
	if err != nil {
		zap.L().Warn("catalog read failed, serving demo data", zap.Error(err))
		return catalog.Fallback(), true
	}
	if len(products) == 0 {
		return catalog.Fallback(), true
	}
	return products, false
}

func parseCriteria(c echo.Context) catalog.Criteria {
	criteria := catalog.Criteria{
		CategoryID: cast.ToInt64(strings.TrimSpace(c.QueryParam("category_id"))),
		Sort:       catalog.ParseSortKey(strings.TrimSpace(c.QueryParam("sort"))),
	}
	if raw := strings.TrimSpace(c.QueryParam("min_price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			criteria.MinPrice = &v
		}
	}
	if raw := strings.TrimSpace(c.QueryParam("max_price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			criteria.MaxPrice = &v
		}
	}
	return criteria
}

func listCatalog(c echo.Context) error {
	products, demoMode := loadProducts(c)
	result := catalog.FilterAndSort(products, parseCriteria(c))
	return c.JSON(http.StatusOK, catalogResponse{
		Products: result,
		Total:    len(result),
		DemoMode: demoMode,
	})
}

func listStaffPicks(c echo.Context) error {
	count := catalog.DefaultStaffPickCount
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 20 {
			count = v
		}
	}

	products, demoMode := loadProducts(c)
	return c.JSON(http.StatusOK, staffPicksResponse{
		Products: catalog.SelectStaffPicks(products, count),
		DemoMode: demoMode,
	})
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid product id"})
	}

	p, err := webserver.GetAppContext(c).Store().GetProduct(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
	} else if err != nil {
		zap.L().Error("product read failed", zap.Int64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "product read failed"})
	}
	// inactive items are hidden from the public surface
	if !p.IsActive {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
	}

	return c.JSON(http.StatusOK, p)
}

func listCategories(c echo.Context) error {
	categories, err := webserver.GetAppContext(c).Store().ListCategories(c.Request().Context())
	if err != nil {
		zap.L().Error("category read failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "category read failed"})
	}
	return c.JSON(http.StatusOK, categories)
}

// listArchive serves the cached lookbook feed; an unconfigured feed yields
// an empty list rather than an error.
func listArchive(c echo.Context) error {
	feed := webserver.GetAppContext(c).Archive()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"posts":     feed.Posts(),
		"fetchedAt": feed.FetchedAt(),
	})
}
