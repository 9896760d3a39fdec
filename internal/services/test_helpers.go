package services

import (
	"context"
	"strings"
	"sync"

	"watchstore/internal/domain"
	"watchstore/internal/repository"

	"github.com/shopspring/decimal"
)

func CreateTestUser(id uint64, email, fullName string) *domain.User {
	return &domain.User{
		ID:       id,
		Email:    email,
		FullName: fullName,
		Phone:    "0123456789",
		Address:  "1 Test Street",
		Role:     domain.RoleCustomer,
	}
}

func CreateTestProduct(id uint64, name string, price string, stock int) *domain.Product {
	return &domain.Product{
		ID:         id,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		CategoryID: 1,
	}
}

// fakeStore is an in-memory store whose UnitOfWork serializes transactions
// with a mutex and rolls back by restoring a snapshot. It exists for the
// properties mocks cannot express: rollback on mid-cart failure and
// concurrent checkouts racing on the same stock row.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uint64]*domain.User
	products map[uint64]*domain.Product
	orders   map[uint64]*domain.Order
	orderSeq uint64
	itemSeq  uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uint64]*domain.User),
		products: make(map[uint64]*domain.Product),
		orders:   make(map[uint64]*domain.Order),
	}
}

func (f *fakeStore) repos() repository.Repositories {
	return repository.Repositories{
		Orders:   &fakeOrderRepo{s: f},
		Products: &fakeProductRepo{s: f},
		Users:    &fakeUserRepo{s: f},
	}
}

func (f *fakeStore) Do(ctx context.Context, fn func(r repository.Repositories) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	products, orders := f.snapshot()
	if err := fn(f.repos()); err != nil {
		f.products, f.orders = products, orders
		return err
	}
	return nil
}

func (f *fakeStore) snapshot() (map[uint64]*domain.Product, map[uint64]*domain.Order) {
	products := make(map[uint64]*domain.Product, len(f.products))
	for id, p := range f.products {
		cp := *p
		products[id] = &cp
	}
	orders := make(map[uint64]*domain.Order, len(f.orders))
	for id, o := range f.orders {
		orders[id] = copyOrder(o)
	}
	return products, orders
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp
}

func (f *fakeStore) stockOf(id uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

func (f *fakeStore) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.s.orderSeq++
	order.ID = r.s.orderSeq
	for i := range order.Items {
		r.s.itemSeq++
		order.Items[i].ID = r.s.itemSeq
		order.Items[i].OrderID = order.ID
	}
	r.s.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	r.s.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	o, found := r.s.orders[id]
	if !found {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *fakeOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	for _, o := range r.s.orders {
		if o.OrderNumber == orderNumber {
			return copyOrder(o), nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, *copyOrder(o))
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByUserID(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, *copyOrder(o))
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Search(ctx context.Context, keyword string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.s.orders {
		u := r.s.users[o.UserID]
		if strings.Contains(o.OrderNumber, keyword) ||
			(u != nil && (strings.Contains(u.Email, keyword) || strings.Contains(u.FullName, keyword))) {
			out = append(out, *copyOrder(o))
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	_, found := r.s.orders[id]
	return found, nil
}

func (r *fakeOrderRepo) DeleteByID(ctx context.Context, id uint64) error {
	delete(r.s.orders, id)
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Save(ctx context.Context, product *domain.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	p, found := r.s.products[id]
	if !found {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// The surrounding Do already holds the store lock, which stands in for the
// database row lock.
func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByCategoryID(ctx context.Context, categoryID uint64) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.s.products {
		if strings.Contains(p.Name, keyword) || strings.Contains(p.Description, keyword) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) HasOrderItems(ctx context.Context, productID uint64) (bool, error) {
	for _, o := range r.s.orders {
		for _, it := range o.Items {
			if it.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeProductRepo) DeleteByID(ctx context.Context, id uint64) error {
	delete(r.s.products, id)
	return nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Save(ctx context.Context, user *domain.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	u, found := r.s.users[id]
	if !found {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Search(ctx context.Context, keyword string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.s.users {
		if strings.Contains(u.Email, keyword) || strings.Contains(u.FullName, keyword) || strings.Contains(u.Phone, keyword) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.FindByEmail(ctx, email)
	return u != nil, nil
}

func (r *fakeUserRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	_, found := r.s.users[id]
	return found, nil
}

func (r *fakeUserRepo) DeleteByID(ctx context.Context, id uint64) error {
	delete(r.s.users, id)
	return nil
}
