package mysql

import (
	"context"
	"errors"

	"watchstore/internal/domain"
	"watchstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *productRepo) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FindByIDForUpdate reads the product under SELECT ... FOR UPDATE so that
// concurrent stock checks on the same row serialize.
func (r *productRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).Preload("Category").Find(&out).Error
	return out, err
}

func (r *productRepo) FindByCategoryID(ctx context.Context, categoryID uint64) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&out).Error
	return out, err
}

func (r *productRepo) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	var out []domain.Product
	like := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("name LIKE ? OR description LIKE ?", like, like).
		Find(&out).Error
	return out, err
}

func (r *productRepo) HasOrderItems(ctx context.Context, productID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepo) DeleteByID(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}
