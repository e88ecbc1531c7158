package models

import "github.com/shopspring/decimal"

// CartLineItem is one product in a cart. Name and Price are captured when the
// product is first added and never refreshed afterwards.
type CartLineItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// LineTotal is Price x Quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is ordered by insertion and unique by item ID.
type Cart []CartLineItem

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Find returns the index of the item with id, or -1.
func (c Cart) Find(id string) int {
	for i, item := range c {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Remove drops the item with id, keeping the order of the rest.
func (c Cart) Remove(id string) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func (c Cart) TotalQuantity() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

func (c Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}
