package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "bookshop/internal/errors"
	"bookshop/internal/model"
	"bookshop/internal/repository"
)

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name        string
	ParentID    *uint
	Description string
	Status      *int
}

// CategoryService exposes category operations.
type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (*model.Category, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id uint, input CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService builds a CategoryService.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	category := &model.Category{
		Name:        input.Name,
		ParentID:    input.ParentID,
		Description: input.Description,
		Status:      1,
	}
	if input.Status != nil {
		category.Status = *input.Status
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.ParentID != nil {
		category.ParentID = input.ParentID
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.Status != nil {
		category.Status = *input.Status
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
