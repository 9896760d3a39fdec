package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// CartItem is the transient checkout input: a product reference and a
// requested quantity, not yet persisted.
type CartItem struct {
	ProductID uint64 `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order owns its items: they are created with the order in one transaction
// and deleted with it (FK cascade). Items never exist on their own.
type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber     string          `json:"orderNumber" gorm:"not null;uniqueIndex;size:64"`
	UserID          uint64          `json:"userId" gorm:"not null;index"`
	User            User            `json:"user" gorm:"foreignKey:UserID"`
	Items           []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	ShippingAddress string          `json:"shippingAddress" gorm:"not null;size:255"`
	PhoneNumber     string          `json:"phoneNumber" gorm:"not null;size:255"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

// OrderItem snapshots the product price at checkout time; later price
// changes on the product never affect an existing order.
type OrderItem struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"orderId" gorm:"not null;index"`
	ProductID uint64          `json:"productId" gorm:"not null;index"`
	Product   Product         `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
}

// Recalculate sets Subtotal from the captured price, never from the
// live product.
func (i *OrderItem) Recalculate() {
	i.Subtotal = i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemByID returns the item with the given id, or nil.
func (o *Order) ItemByID(itemID uint64) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// RecomputeTotal sums all item subtotals from scratch. Always a full sum,
// so the total stays consistent no matter which items were touched.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for idx := range o.Items {
		total = total.Add(o.Items[idx].Subtotal)
	}
	o.TotalAmount = total
}

// NewOrderNumber builds a unique, time-sortable order number. The uuid
// suffix keeps two checkouts within the same millisecond from colliding.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD%d%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
