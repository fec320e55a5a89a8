package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/pkg/common"
)

// GormStore implements ProductStore and CategoryStore over a GORM handle.
type GormStore struct {
	db *gorm.DB
}

var (
	_ ProductStore  = (*GormStore)(nil)
	_ CategoryStore = (*GormStore)(nil)
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	query := s.db.WithContext(ctx).Model(&domain.Product{}).Preload("Category")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var products []domain.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (s *GormStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	return &p, nil
}

func (s *GormStore) CreateProduct(ctx context.Context, payload ProductPayload) (*domain.Product, error) {
	now := time.Now()
	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	p := domain.Product{
		ID:          common.UUIDint64(),
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		ImageURL:    payload.ImageURL,
		ImageFile:   payload.ImageFile,
		CategoryID:  payload.CategoryID,
		IsStaffPick: payload.IsStaffPick,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return &p, nil
}

func (s *GormStore) UpdateProduct(ctx context.Context, id int64, payload ProductPayload) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query product")
	}

	p.Title = payload.Title
	p.Description = payload.Description
	p.Price = payload.Price
	p.ImageURL = payload.ImageURL
	p.ImageFile = payload.ImageFile
	p.CategoryID = payload.CategoryID
	p.IsStaffPick = payload.IsStaffPick
	if payload.IsActive != nil {
		p.IsActive = *payload.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return &p, nil
}

// DeleteProduct removes a product by id. Deleting an id that is already
// gone fails with ErrNotFound rather than silently succeeding twice.
func (s *GormStore) DeleteProduct(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}
