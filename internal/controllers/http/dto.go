package http

import (
	"watchstore/internal/domain"

	"github.com/shopspring/decimal"
)

type CartItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	UserID          uint64            `json:"userId" binding:"required"`
	ShippingAddress string            `json:"shippingAddress" binding:"required"`
	PhoneNumber     string            `json:"phoneNumber" binding:"required"`
	CartItems       []CartItemRequest `json:"cartItems" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Status          *domain.OrderStatus `json:"status"`
	ShippingAddress *string             `json:"shippingAddress"`
	PhoneNumber     *string             `json:"phoneNumber"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Email    *string          `json:"email"`
	Password *string          `json:"password"`
	FullName *string          `json:"fullName"`
	Phone    *string          `json:"phone"`
	Address  *string          `json:"address"`
	Role     *domain.UserRole `json:"role"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	ImageURL    string          `json:"imageUrl"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	CategoryID  uint64          `json:"categoryId" binding:"required"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"imageUrl"`
	Rating      *float64         `json:"rating"`
	Reviews     *int             `json:"reviews"`
	CategoryID  *uint64          `json:"categoryId"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
