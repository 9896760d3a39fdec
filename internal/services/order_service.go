package services

import (
	"context"
	"log"

	"watchstore/internal/apperrors"
	"watchstore/internal/domain"
	"watchstore/internal/infra/mailer"
	rabbit "watchstore/internal/infra/rabbitmq"
	"watchstore/internal/repository"

	"github.com/shopspring/decimal"
)

type CheckoutInput struct {
	UserID          uint64
	ShippingAddress string
	PhoneNumber     string
	Items           []domain.CartItem
}

type UpdateOrderInput struct {
	Status          *domain.OrderStatus
	ShippingAddress *string
	PhoneNumber     *string
}

type OrderService struct {
	uow       repository.UnitOfWork
	orders    repository.OrderRepository
	notifier  mailer.Notifier
	publisher rabbit.PublisherInterface
}

func NewOrderService(uow repository.UnitOfWork, orders repository.OrderRepository, notifier mailer.Notifier, publisher rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		uow:       uow,
		orders:    orders,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Checkout builds an order from the cart inside one transaction: every
// product is read under a row lock, its stock checked and decremented, and
// the order with all items written together. Any failure rolls back every
// stock change. The confirmation mail and the order.created event go out
// only after the commit.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperrors.Business("cart is empty")
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, apperrors.Business("quantity must be at least 1 for product %d", it.ProductID)
		}
	}

	var (
		order *domain.Order
		user  *domain.User
	)
	err := s.uow.Do(ctx, func(r repository.Repositories) error {
		u, err := r.Users.FindByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if u == nil {
			return apperrors.NotFound("user not found with id %d", in.UserID)
		}
		user = u

		o := &domain.Order{
			OrderNumber:     domain.NewOrderNumber(),
			UserID:          u.ID,
			Status:          domain.StatusPending,
			ShippingAddress: in.ShippingAddress,
			PhoneNumber:     in.PhoneNumber,
			TotalAmount:     decimal.Zero,
		}

		resolved := make([]domain.Product, 0, len(in.Items))
		for _, it := range in.Items {
			p, err := r.Products.FindByIDForUpdate(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return apperrors.NotFound("product not found with id %d", it.ProductID)
			}
			if p.Stock < it.Quantity {
				return apperrors.Business("insufficient stock for product %q", p.Name)
			}

			item := domain.OrderItem{
				ProductID: p.ID,
				Quantity:  it.Quantity,
				Price:     p.Price,
			}
			item.Recalculate()
			o.Items = append(o.Items, item)
			o.TotalAmount = o.TotalAmount.Add(item.Subtotal)

			p.Stock -= it.Quantity
			if err := r.Products.Save(ctx, p); err != nil {
				return err
			}
			resolved = append(resolved, *p)
		}

		if err := r.Orders.Create(ctx, o); err != nil {
			return err
		}

		// Attach resolved records for the response only, after the insert
		// so gorm does not try to write them as associations.
		o.User = *u
		for i := range o.Items {
			o.Items[i].Product = resolved[i]
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.afterCheckout(context.Background(), order, user)

	return order, nil
}

func (s *OrderService) afterCheckout(ctx context.Context, order *domain.Order, user *domain.User) {
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("Failed to publish order.created for %s: %v", order.OrderNumber, err)
	}
	if err := s.notifier.NotifyOrderConfirmed(ctx, user.Email, user.FullName, order.OrderNumber, order.TotalAmount); err != nil {
		log.Printf("Failed to send confirmation mail for %s: %v", order.OrderNumber, err)
	}
}

// UpdateOrder applies a partial update to the mutable order fields. Nil
// input fields are left untouched. Items and totals are never recomputed
// here.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint64, in UpdateOrderInput) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order not found with id %d", id)
	}

	if in.Status != nil {
		o.Status = *in.Status
	}
	if in.ShippingAddress != nil {
		o.ShippingAddress = *in.ShippingAddress
	}
	if in.PhoneNumber != nil {
		o.PhoneNumber = *in.PhoneNumber
	}

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateOrderItemQuantity changes one item's quantity. The stock delta is
// checked under a row lock, the item subtotal is recomputed from the
// captured price and the order total is re-summed over all items.
func (s *OrderService) UpdateOrderItemQuantity(ctx context.Context, orderID, orderItemID uint64, quantity int) (*domain.Order, error) {
	if quantity <= 0 {
		return nil, apperrors.Business("quantity must be greater than 0")
	}

	var order *domain.Order
	err := s.uow.Do(ctx, func(r repository.Repositories) error {
		o, err := r.Orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperrors.NotFound("order not found with id %d", orderID)
		}

		item := o.ItemByID(orderItemID)
		if item == nil {
			return apperrors.NotFound("order item not found with id %d", orderItemID)
		}

		p, err := r.Products.FindByIDForUpdate(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperrors.NotFound("product not found with id %d", item.ProductID)
		}

		delta := quantity - item.Quantity
		if p.Stock < delta {
			return apperrors.Business("insufficient stock for product %q", p.Name)
		}
		p.Stock -= delta
		if err := r.Products.Save(ctx, p); err != nil {
			return err
		}

		item.Quantity = quantity
		item.Recalculate()
		o.RecomputeTotal()

		if err := r.Orders.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order not found with id %d", id)
	}
	return o, nil
}

func (s *OrderService) GetOrderByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	o, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperrors.NotFound("order not found with order number %s", orderNumber)
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	return s.orders.FindByUserID(ctx, userID)
}

// SearchOrders does a substring match on the order number and on the
// owning user's email and full name.
func (s *OrderService) SearchOrders(ctx context.Context, keyword string) ([]domain.Order, error) {
	return s.orders.Search(ctx, keyword)
}

// DeleteOrder removes the order and its items. Stock decremented at
// checkout is intentionally not returned; the admin flow this mirrors
// treats deletion as record cleanup, not cancellation.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	exists, err := s.orders.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("order not found with id %d", id)
	}
	return s.orders.DeleteByID(ctx, id)
}
