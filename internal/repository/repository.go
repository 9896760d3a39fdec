package repository

import (
	"context"

	"watchstore/internal/domain"
)

// Lookup methods return (nil, nil) when the row does not exist; callers
// translate that into a typed not-found error.

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByUserID(ctx context.Context, userID uint64) ([]domain.Order, error)
	Search(ctx context.Context, keyword string) ([]domain.Order, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Save(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	// FindByIDForUpdate takes a row lock on the product; only meaningful
	// inside a UnitOfWork transaction.
	FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByCategoryID(ctx context.Context, categoryID uint64) ([]domain.Product, error)
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
	HasOrderItems(ctx context.Context, productID uint64) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Search(ctx context.Context, keyword string) ([]domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Save(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	HasProducts(ctx context.Context, categoryID uint64) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error
}

type Repositories struct {
	Orders     OrderRepository
	Products   ProductRepository
	Users      UserRepository
	Categories CategoryRepository
}

// UnitOfWork runs fn against a repository set bound to one transaction.
// A non-nil error from fn rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}
