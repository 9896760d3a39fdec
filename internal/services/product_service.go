package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"watchstore/internal/apperrors"
	"watchstore/internal/domain"
	"watchstore/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	Rating      float64
	Reviews     int
	CategoryID  uint64
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	ImageURL    *string
	Rating      *float64
	Reviews     *int
	CategoryID  *uint64
}

type ProductService struct {
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	redisClient *redis.Client
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

func (s *ProductService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	category, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperrors.NotFound("category not found with id %d", in.CategoryID)
	}

	product := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		Rating:      in.Rating,
		Reviews:     in.Reviews,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	product.Category = *category
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint64, in UpdateProductInput) (*domain.Product, error) {
	product, err := s.lookupProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Rating != nil {
		product.Rating = *in.Rating
	}
	if in.Reviews != nil {
		product.Reviews = *in.Reviews
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := s.categories.FindByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperrors.NotFound("category not found with id %d", *in.CategoryID)
		}
		product.CategoryID = *in.CategoryID
		product.Category = *category
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, id)
	return product, nil
}

// GetProductByID reads through the Redis cache with a short TTL; a cache
// miss or an unreachable Redis falls back to the database.
func (s *ProductService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	cacheKey := productCacheKey(id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	product, err := s.lookupProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *ProductService) ListProductsByCategory(ctx context.Context, categoryID uint64) ([]domain.Product, error) {
	return s.products.FindByCategoryID(ctx, categoryID)
}

func (s *ProductService) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	return s.products.Search(ctx, keyword)
}

// DeleteProduct refuses to remove a product that is still referenced by
// any order line item; orders must outlive the products they snapshot.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint64) error {
	if _, err := s.lookupProduct(ctx, id); err != nil {
		return err
	}
	referenced, err := s.products.HasOrderItems(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.Business("cannot delete product that exists in orders")
	}
	if err := s.products.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, id)
	return nil
}

// WarmupCache preloads the given products into Redis, fetching them
// concurrently. Individual failures are logged, not returned.
func (s *ProductService) WarmupCache(ctx context.Context, productIDs []uint64) error {
	if s.redisClient == nil {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range productIDs {
		id := id
		g.Go(func() error {
			product, err := s.lookupProduct(ctx, id)
			if err != nil {
				log.Printf("Failed to warm up cache for product %d: %v", id, err)
				return nil
			}
			if data, err := json.Marshal(product); err == nil {
				s.redisClient.Set(ctx, productCacheKey(id), data, 5*time.Minute)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *ProductService) lookupProduct(ctx context.Context, id uint64) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found with id %d", id)
	}
	return product, nil
}

func (s *ProductService) invalidateCache(ctx context.Context, id uint64) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, productCacheKey(id))
	}
}

func productCacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}
