package mysql

import (
	"context"

	"watchstore/internal/repository"

	"gorm.io/gorm"
)

type unitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) repository.UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(r repository.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories binds all repositories to the same gorm handle, which may
// be a transaction.
func NewRepositories(db *gorm.DB) repository.Repositories {
	return repository.Repositories{
		Orders:     NewOrderRepository(db),
		Products:   NewProductRepository(db),
		Users:      NewUserRepository(db),
		Categories: NewCategoryRepository(db),
	}
}
