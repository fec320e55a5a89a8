package adminapi

import (
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/internal/webserver"
)

type productExportRow struct {
	ID          int64   `csv:"id"`
	Title       string  `csv:"title"`
	Description string  `csv:"description"`
	Price       float64 `csv:"price"`
	Category    string  `csv:"category"`
	ImageURL    string  `csv:"image_url"`
	ImageFile   string  `csv:"image_file"`
	IsStaffPick bool    `csv:"is_staff_pick"`
	IsActive    bool    `csv:"is_active"`
	CreatedAt   string  `csv:"created_at"`
}

func registerExportRoutes() {
	webserver.ApiGET("/crm/products/export", exportProducts)
}

// exportProducts streams the full catalog as a CSV attachment.
func exportProducts(c echo.Context) error {
	var products []domain.Product
	if err := GetDB(c).Model(&domain.Product{}).Preload("Category").
		Order("created_at DESC").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	rows := make([]productExportRow, 0, len(products))
	for _, p := range products {
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		rows = append(rows, productExportRow{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Category:    categoryName,
			ImageURL:    p.ImageURL,
			ImageFile:   p.ImageFile,
			IsStaffPick: p.IsStaffPick,
			IsActive:    p.IsActive,
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		})
	}

	csvData, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to encode CSV", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csvData))
}
