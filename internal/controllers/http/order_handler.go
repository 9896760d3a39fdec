package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"watchstore/internal/domain"
	"watchstore/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	items := make([]domain.CartItem, 0, len(req.CartItems))
	for _, it := range req.CartItems {
		items = append(items, domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.orders.Checkout(c.Request.Context(), services.CheckoutInput{
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Items:           items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateUserOrders(req.UserID)
	created(c, "Order created successfully", order)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := h.orders.UpdateOrder(c.Request.Context(), id, services.UpdateOrderInput{
		Status:          req.Status,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateUserOrders(order.UserID)
	ok(c, "Order updated successfully", order)
}

func (h *Handler) UpdateOrderItemQuantity(c *gin.Context) {
	orderID, okID := pathID(c, "id")
	if !okID {
		return
	}
	itemID, okItem := pathID(c, "orderItemId")
	if !okItem {
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		badRequest(c, "invalid quantity")
		return
	}

	order, err := h.orders.UpdateOrderItemQuantity(c.Request.Context(), orderID, itemID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateUserOrders(order.UserID)
	ok(c, "Order item updated successfully", order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	order, err := h.orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", order)
}

func (h *Handler) GetOrderByNumber(c *gin.Context) {
	order, err := h.orders.GetOrderByOrderNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", orders)
}

// ListOrdersByUser serves from a short-lived Redis cache; any order write
// for the user drops the key.
func (h *Handler) ListOrdersByUser(c *gin.Context) {
	userID, okID := pathID(c, "userId")
	if !okID {
		return
	}

	ctx := c.Request.Context()
	cacheKey := userOrdersCacheKey(userID)

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var orders []domain.Order
			if err := json.Unmarshal([]byte(b), &orders); err == nil {
				c.JSON(http.StatusOK, ApiResponse{Success: true, Data: orders})
				return
			}
		}
	}

	orders, err := h.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(orders); err == nil {
			h.rdb.Set(ctx, cacheKey, data, 10*time.Second)
		}
	}
	ok(c, "", orders)
}

func (h *Handler) SearchOrders(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		badRequest(c, "keyword required")
		return
	}
	orders, err := h.orders.SearchOrders(c.Request.Context(), keyword)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "", orders)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "Order deleted successfully", nil)
}

func (h *Handler) invalidateUserOrders(userID uint64) {
	if h.rdb != nil {
		h.rdb.Del(context.Background(), userOrdersCacheKey(userID))
	}
}

func userOrdersCacheKey(userID uint64) string {
	return "orders:user:" + strconv.FormatUint(userID, 10)
}
