package service

import (
	"context"

	"github.com/fintrack-ledger/internal/domain/category"
)

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	categoryRepo category.Repository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo category.Repository) CategoryService {
	return &CategoryServiceImpl{
		categoryRepo: categoryRepo,
	}
}

// CreateCategory creates a new category. An empty color falls back to the
// domain default.
func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, name string, categoryType category.Type, color string) (*category.Category, error) {
	cat, err := category.New(name, categoryType, color)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, cat); err != nil {
		return nil, err
	}

	return cat, nil
}

// ListCategories retrieves all categories
func (s *CategoryServiceImpl) ListCategories(ctx context.Context) ([]*category.Category, error) {
	return s.categoryRepo.List(ctx)
}
