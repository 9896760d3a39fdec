package services

import (
	"context"
	"testing"

	"watchstore/internal/apperrors"
	"watchstore/internal/domain"
	"watchstore/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("product is attached to its category", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint64(1)).Return(&domain.Category{ID: 1, Name: "Dive Watches"}, nil)
		products.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
		service := NewProductService(products, categories)

		product, err := service.CreateProduct(context.Background(), CreateProductInput{
			Name:       "Diver 200m",
			Price:      decimal.RequireFromString("100.00"),
			Stock:      10,
			CategoryID: 1,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Dive Watches", product.Category.Name)
		products.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)
		service := NewProductService(products, categories)

		product, err := service.CreateProduct(context.Background(), CreateProductInput{CategoryID: 99})

		assert.True(t, apperrors.IsNotFound(err))
		assert.Nil(t, product)
		products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	t.Run("without redis it reads the database", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		products.On("FindByID", mock.Anything, uint64(1)).Return(CreateTestProduct(1, "Diver 200m", "100.00", 10), nil)
		service := NewProductService(products, new(mocks.MockCategoryRepository))

		product, err := service.GetProductByID(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "Diver 200m", product.Name)
		products.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		products.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)
		service := NewProductService(products, new(mocks.MockCategoryRepository))

		product, err := service.GetProductByID(context.Background(), 99)

		assert.True(t, apperrors.IsNotFound(err))
		assert.Nil(t, product)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	products := new(mocks.MockProductRepository)
	categories := new(mocks.MockCategoryRepository)
	products.On("FindByID", mock.Anything, uint64(1)).Return(CreateTestProduct(1, "Diver 200m", "100.00", 10), nil)
	products.On("Save", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	service := NewProductService(products, categories)

	price := decimal.RequireFromString("129.90")
	product, err := service.UpdateProduct(context.Background(), 1, UpdateProductInput{Price: &price})

	assert.NoError(t, err)
	assert.True(t, product.Price.Equal(price))
	assert.Equal(t, "Diver 200m", product.Name)
	assert.Equal(t, 10, product.Stock)
	products.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	t.Run("refuses when orders reference the product", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		products.On("FindByID", mock.Anything, uint64(1)).Return(CreateTestProduct(1, "Diver 200m", "100.00", 10), nil)
		products.On("HasOrderItems", mock.Anything, uint64(1)).Return(true, nil)
		service := NewProductService(products, new(mocks.MockCategoryRepository))

		err := service.DeleteProduct(context.Background(), 1)

		assert.True(t, apperrors.IsBusiness(err))
		assert.Contains(t, err.Error(), "cannot delete product that exists in orders")
		products.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("deletes an unreferenced product", func(t *testing.T) {
		products := new(mocks.MockProductRepository)
		products.On("FindByID", mock.Anything, uint64(1)).Return(CreateTestProduct(1, "Diver 200m", "100.00", 10), nil)
		products.On("HasOrderItems", mock.Anything, uint64(1)).Return(false, nil)
		products.On("DeleteByID", mock.Anything, uint64(1)).Return(nil)
		service := NewProductService(products, new(mocks.MockCategoryRepository))

		assert.NoError(t, service.DeleteProduct(context.Background(), 1))
		products.AssertExpectations(t)
	})
}

func TestCategoryService_CreateCategory(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("ExistsByName", mock.Anything, "Dive Watches").Return(true, nil)
		service := NewCategoryService(categories)

		category, err := service.CreateCategory(context.Background(), CategoryInput{Name: "Dive Watches"})

		assert.True(t, apperrors.IsConflict(err))
		assert.Nil(t, category)
		categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	t.Run("refuses when products remain in the category", func(t *testing.T) {
		categories := new(mocks.MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint64(1)).Return(&domain.Category{ID: 1, Name: "Dive Watches"}, nil)
		categories.On("HasProducts", mock.Anything, uint64(1)).Return(true, nil)
		service := NewCategoryService(categories)

		err := service.DeleteCategory(context.Background(), 1)

		assert.True(t, apperrors.IsBusiness(err))
		categories.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}
