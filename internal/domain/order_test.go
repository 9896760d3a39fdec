package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber(t *testing.T) {
	n := NewOrderNumber()
	assert.True(t, strings.HasPrefix(n, "ORD"))
	assert.Greater(t, len(n), len("ORD")+13)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		num := NewOrderNumber()
		assert.False(t, seen[num], "duplicate order number %s", num)
		seen[num] = true
	}
}

func TestOrderItem_Recalculate(t *testing.T) {
	item := OrderItem{
		Quantity: 3,
		Price:    decimal.RequireFromString("100.00"),
	}
	item.Recalculate()
	assert.Equal(t, "300.00", item.Subtotal.StringFixed(2))

	// the captured price drives the subtotal even after the product changes
	item.Quantity = 5
	item.Recalculate()
	assert.Equal(t, "500.00", item.Subtotal.StringFixed(2))
}

func TestOrder_RecomputeTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Subtotal: decimal.RequireFromString("300.00")},
			{Subtotal: decimal.RequireFromString("25.50")},
		},
	}
	order.RecomputeTotal()
	assert.Equal(t, "325.50", order.TotalAmount.StringFixed(2))

	order.Items = nil
	order.RecomputeTotal()
	assert.True(t, order.TotalAmount.IsZero())
}

func TestOrder_ItemByID(t *testing.T) {
	order := Order{
		Items: []OrderItem{{ID: 11}, {ID: 12}},
	}

	item := order.ItemByID(12)
	assert.NotNil(t, item)
	assert.Equal(t, uint64(12), item.ID)

	// the pointer aliases the slice so callers can mutate in place
	item.Quantity = 9
	assert.Equal(t, 9, order.Items[1].Quantity)

	assert.Nil(t, order.ItemByID(99))
}
