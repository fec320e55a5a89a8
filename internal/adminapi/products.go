package adminapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/internal/form"
	"github.com/chamberedinseams/storefront/internal/store"
	"github.com/chamberedinseams/storefront/internal/webserver"
	"github.com/chamberedinseams/storefront/pkg/common"
)

type productPayload struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	CategoryID  int64    `json:"categoryId,string" validate:"required,gt=0"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url,max=500"`
	IsStaffPick bool     `json:"isStaffPick"`
	IsActive    *bool    `json:"isActive"`
}

func registerProductRoutes() {
	webserver.ApiGET("/crm/products", listProducts)
	webserver.ApiGET("/crm/products/:id", getProduct)
	webserver.ApiPOST("/crm/products", createProduct)
	webserver.ApiPUT("/crm/products/:id", updateProduct)
	webserver.ApiDELETE("/crm/products/:id", deleteProduct)
	webserver.ApiPOST("/crm/products/:id/image", uploadProductImage)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"title":      "title",
		"price":      "price",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, exists := allowed[strings.TrimSpace(c.QueryParam("sort"))]
	if !exists {
		sortCol = "created_at"
	}
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	db := GetDB(c).Model(&domain.Product{}).Preload("Category")
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("title ILIKE ? OR description ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", "%"+strings.ToLower(q)+"%", "%"+strings.ToLower(q)+"%")
		}
	}
	if categoryID := strings.TrimSpace(c.QueryParam("categoryId")); categoryID != "" {
		db = db.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page-1)*pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	p, err := GetAppContext(c).Store().GetProduct(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	actx := GetAppContext(c)
	p, err := actx.Store().CreateProduct(c.Request().Context(), store.ProductPayload{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Price:       *payload.Price,
		CategoryID:  payload.CategoryID,
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		IsStaffPick: payload.IsStaffPick,
		IsActive:    payload.IsActive,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	actx.Bus().Publish(form.TopicCatalogRefresh, "create_product", fmt.Sprintf("created product %d %s", p.ID, p.Title))
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	actx := GetAppContext(c)
	p, err := actx.Store().UpdateProduct(c.Request().Context(), id, store.ProductPayload{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Price:       *payload.Price,
		CategoryID:  payload.CategoryID,
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		IsStaffPick: payload.IsStaffPick,
		IsActive:    payload.IsActive,
	})
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}

	actx.Bus().Publish(form.TopicCatalogRefresh, "update_product", fmt.Sprintf("updated product %d %s", p.ID, p.Title))
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	actx := GetAppContext(c)
	if err := actx.Store().DeleteProduct(c.Request().Context(), id); errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}

	actx.Bus().Publish(form.TopicCatalogRefresh, "delete_product", fmt.Sprintf("deleted product %d", id))
	return ok(c, map[string]interface{}{"id": id})
}

// uploadProductImage stores a multipart file under the uploads dir and points
// the product at it, replacing any previous link URL.
func uploadProductImage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	actx := GetAppContext(c)
	p, err := actx.Store().GetProduct(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing image file", nil)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unsupported image type", ext)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to read upload", err.Error())
	}
	defer src.Close()

	filename := fmt.Sprintf("product_%d_%d%s", id, common.UUIDint64(), ext)
	destPath := actx.Config().Workdir("uploads", filename)
	dest, err := os.Create(destPath)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store upload", err.Error())
	}
	defer dest.Close()
	if _, err := io.Copy(dest, src); err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store upload", err.Error())
	}

	// Uploaded file wins over a previously linked URL.
	if err := GetDB(c).Model(&domain.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"image_file": filename,
		"image_url":  "",
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product image", err.Error())
	}

	actx.Bus().Publish(form.TopicCatalogRefresh, "upload_image", fmt.Sprintf("uploaded image for product %d %s", id, p.Title))
	return ok(c, map[string]interface{}{
		"id":       id,
		"image":    "/uploads/" + filename,
		"filename": filename,
	})
}
