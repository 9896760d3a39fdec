package mysql

import (
	"context"
	"errors"

	"watchstore/internal/domain"
	"watchstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	// Create inserts the order row and all item rows; associated Product
	// and User structs must not be set at this point.
	result := r.db.WithContext(ctx).Create(order)
	if result.Error != nil {
		return result.Error
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) Update(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error; err != nil {
		return err
	}
	for i := range order.Items {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&order.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.withAggregate(ctx).First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var o domain.Order
	err := r.withAggregate(ctx).Where("order_number = ?", orderNumber).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.withAggregate(ctx).Order("orders.created_at DESC").Find(&out).Error
	return out, err
}

func (r *orderRepo) FindByUserID(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.withAggregate(ctx).
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) Search(ctx context.Context, keyword string) ([]domain.Order, error) {
	var out []domain.Order
	like := "%" + keyword + "%"
	err := r.withAggregate(ctx).
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.order_number LIKE ? OR users.email LIKE ? OR users.full_name LIKE ?", like, like, like).
		Order("orders.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) DeleteByID(ctx context.Context, id uint64) error {
	// Item rows go with the order via the FK cascade.
	return r.db.WithContext(ctx).Delete(&domain.Order{}, id).Error
}

func (r *orderRepo) withAggregate(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Preload("User").
		Preload("Items").
		Preload("Items.Product")
}
