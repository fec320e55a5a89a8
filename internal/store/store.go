// Package store defines the product/category persistence boundary and its
// GORM implementation. The store is the source of truth; consumers hold
// transient copies refreshed after every mutation.
package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/chamberedinseams/storefront/internal/domain"
)

// ErrNotFound reports an update/delete referencing a nonexistent id.
var ErrNotFound = errors.New("record not found")

// ProductPayload carries one write operation's fields. Price and category
// id are parsed from form text by the caller before the payload is built.
// Active is a pointer so an omitted value defaults to true on create and
// preserves the stored flag on update.
type ProductPayload struct {
	Title       string
	Description string
	Price       float64
	CategoryID  int64
	ImageURL    string
	ImageFile   string
	IsStaffPick bool
	IsActive    *bool
}

// ProductStore is the CRUD surface over products.
type ProductStore interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, payload ProductPayload) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, payload ProductPayload) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CategoryStore is the read surface over categories.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
