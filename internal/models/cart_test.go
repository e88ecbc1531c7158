package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartHelpers(t *testing.T) {
	cart := Cart{
		{ID: "B1", Name: "Bread", Price: 200, Quantity: 2},
		{ID: "C1", Name: "Cake", Price: 1500, Quantity: 1},
		{ID: "R1", Name: "Rusk", Price: 99.5, Quantity: 3},
	}

	assert.Equal(t, 1, cart.Find("C1"))
	assert.Equal(t, -1, cart.Find("nope"))
	assert.Equal(t, 6, cart.TotalQuantity())
	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("2198.5")))

	trimmed := cart.Remove("C1")
	assert.Len(t, trimmed, 2)
	assert.Equal(t, "B1", trimmed[0].ID)
	assert.Equal(t, "R1", trimmed[1].ID)
	assert.Len(t, cart, 3, "remove must not mutate the receiver")
}

func TestEmptyCart(t *testing.T) {
	var cart Cart
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.TotalQuantity())
	assert.True(t, cart.Subtotal().IsZero())
	assert.Empty(t, cart.Remove("x"))
}
