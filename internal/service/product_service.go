package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"bookshop/internal/cache"
	apperrors "bookshop/internal/errors"
	"bookshop/internal/model"
	"bookshop/internal/pagination"
	"bookshop/internal/repository"
	"bookshop/internal/storage"
)

const (
	productCacheTTL  = 5 * time.Minute
	maxProductImages = 5
)

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Price       float64
	Quantity    int
	Description string
	Detail      model.ProductDetail
	CategoryID  *uint
}

// UpdateProductInput carries optional product fields for a partial update;
// nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Price       *float64
	Quantity    *int
	Description *string
	Detail      *model.ProductDetail
	CategoryID  *uint
}

// ProductService exposes catalog operations.
type ProductService interface {
	Create(ctx context.Context, input ProductInput, images []*multipart.FileHeader) (*model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListPage(ctx context.Context, req pagination.Request) ([]model.Product, int64, error)
	Search(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, id uint, input UpdateProductInput, images []*multipart.FileHeader, replaceImages bool) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo   repository.ProductRepository
	images storage.ImageStore
	cache  *cache.Client
}

// NewProductService builds a ProductService.
func NewProductService(repo repository.ProductRepository, images storage.ImageStore, cache *cache.Client) ProductService {
	return &productService{repo: repo, images: images, cache: cache}
}

func (s *productService) cacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productService) Create(ctx context.Context, input ProductInput, images []*multipart.FileHeader) (*model.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}

	paths, err := s.saveImages(images)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        input.Name,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Images:      paths,
		Description: input.Description,
		Detail:      input.Detail,
		Status:      1,
		CategoryID:  input.CategoryID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.removeImages(paths)
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) ListPage(ctx context.Context, req pagination.Request) ([]model.Product, int64, error) {
	return s.repo.ListPage(ctx, req)
}

func (s *productService) Search(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return s.repo.Search(ctx, filter)
}

func (s *productService) Update(ctx context.Context, id uint, input UpdateProductInput, images []*multipart.FileHeader, replaceImages bool) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
		}
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Detail != nil {
		product.Detail = *input.Detail
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}

	if len(images) > 0 {
		paths, err := s.saveImages(images)
		if err != nil {
			return nil, err
		}
		if replaceImages {
			s.removeImages(product.Images)
			product.Images = paths
		} else {
			product.Images = append(product.Images, paths...)
		}
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return product, nil
}

// Delete removes the product row and its stored image files.
func (s *productService) Delete(ctx context.Context, id uint) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return err
	}

	s.removeImages(product.Images)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *productService) saveImages(images []*multipart.FileHeader) ([]string, error) {
	if len(images) > maxProductImages {
		return nil, fmt.Errorf("%w: at most %d images per product", apperrors.ErrValidation, maxProductImages)
	}

	paths := make([]string, 0, len(images))
	for _, file := range images {
		path, err := s.images.Save(file)
		if err != nil {
			s.removeImages(paths)
			return nil, fmt.Errorf("save image: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *productService) removeImages(paths []string) {
	for _, path := range paths {
		_ = s.images.Remove(path)
	}
}
