package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"bookshop/internal/model"
	"bookshop/internal/pagination"
)

// ProductFilter narrows product queries. Absent fields impose no constraint;
// present fields combine with AND.
type ProductFilter struct {
	Name     string
	MinPrice *float64
	MaxPrice *float64
}

// Scope applies the filter to a query. Name matches case-insensitive
// substrings; price bounds are inclusive.
func (f ProductFilter) Scope(tx *gorm.DB) *gorm.DB {
	if f.Name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.MinPrice != nil {
		tx = tx.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		tx = tx.Where("price <= ?", *f.MaxPrice)
	}
	return tx
}

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListPage(ctx context.Context, req pagination.Request) ([]model.Product, int64, error)
	Search(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	SearchPage(ctx context.Context, filter ProductFilter, req pagination.Request) ([]model.Product, int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a GORM-backed repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListPage(ctx context.Context, req pagination.Request) ([]model.Product, int64, error) {
	return pagination.FindPage[model.Product](ctx, r.db, req)
}

// Search returns matches newest first.
func (r *productRepository) Search(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	err := filter.Scope(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// SearchPage pages through matches newest first; the filter applies
// identically to the page fetch and the count.
func (r *productRepository) SearchPage(ctx context.Context, filter ProductFilter, req pagination.Request) ([]model.Product, int64, error) {
	ordered := func(tx *gorm.DB) *gorm.DB {
		return filter.Scope(tx).Order("created_at DESC")
	}
	return pagination.FindPage[model.Product](ctx, r.db, req, ordered)
}
