package services

import (
	"context"

	"watchstore/internal/apperrors"
	"watchstore/internal/domain"
	"watchstore/internal/repository"
)

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	exists, err := s.categories.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("category already exists: %s", in.Name)
	}

	category := &domain.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint64, in CategoryInput) (*domain.Category, error) {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" && in.Name != category.Name {
		exists, err := s.categories.ExistsByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Conflict("category already exists: %s", in.Name)
		}
		category.Name = in.Name
	}
	if in.Description != "" {
		category.Description = in.Description
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint64) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.NotFound("category not found with id %d", id)
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if _, err := s.GetCategoryByID(ctx, id); err != nil {
		return err
	}
	hasProducts, err := s.categories.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return apperrors.Business("cannot delete category that still has products")
	}
	return s.categories.DeleteByID(ctx, id)
}
