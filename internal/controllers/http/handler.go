package http

import (
	"strconv"

	"watchstore/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Handler struct {
	orders     *services.OrderService
	users      *services.UserService
	products   *services.ProductService
	categories *services.CategoryService
	rdb        *redis.Client
}

func NewHandler(orders *services.OrderService, users *services.UserService, products *services.ProductService, categories *services.CategoryService, rdb *redis.Client) *Handler {
	return &Handler{
		orders:     orders,
		users:      users,
		products:   products,
		categories: categories,
		rdb:        rdb,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/users/register", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/users", h.ListUsers)
	r.GET("/users/search", h.SearchUsers)
	r.GET("/users/:id", h.GetUser)
	r.PUT("/users/:id", h.UpdateUser)
	r.DELETE("/users/:id", h.DeleteUser)

	r.POST("/categories", h.CreateCategory)
	r.GET("/categories", h.ListCategories)
	r.GET("/categories/:id", h.GetCategory)
	r.PUT("/categories/:id", h.UpdateCategory)
	r.DELETE("/categories/:id", h.DeleteCategory)

	r.POST("/products", h.CreateProduct)
	r.GET("/products", h.ListProducts)
	r.GET("/products/search", h.SearchProducts)
	r.GET("/products/category/:categoryId", h.ListProductsByCategory)
	r.GET("/products/:id", h.GetProduct)
	r.PUT("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)

	r.POST("/orders/checkout", h.Checkout)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/search", h.SearchOrders)
	r.GET("/orders/number/:orderNumber", h.GetOrderByNumber)
	r.GET("/orders/user/:userId", h.ListOrdersByUser)
	r.GET("/orders/:id", h.GetOrder)
	r.PUT("/orders/:id", h.UpdateOrder)
	r.PUT("/orders/:id/items/:orderItemId", h.UpdateOrderItemQuantity)
	r.DELETE("/orders/:id", h.DeleteOrder)
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
