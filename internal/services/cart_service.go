package services

import (
	"context"
	"sync"

	"bakery-cart-backend/configs"
)

// CartService hands out per-visitor sessions pairing a CartStore with the
// CartView that renders it.
type CartService struct {
	stores   *CartStoreFactory
	checkout configs.CheckoutConfig
}

func NewCartService(stores *CartStoreFactory, checkout configs.CheckoutConfig) *CartService {
	return &CartService{
		stores:   stores,
		checkout: checkout,
	}
}

// CartSession is one request's view of a visitor cart.
type CartSession struct {
	Store *CartStore
	View  *CartView

	mu            sync.Mutex
	confirmations []string
}

// Session wires the view as a store observer so every write refreshes the
// given badges.
func (s *CartService) Session(visitorID string, badges ...BadgeSink) *CartSession {
	session := &CartSession{}
	store := s.stores.ForVisitor(visitorID, WithConfirmer(session))
	view := NewCartView(store, s.checkout, badges...)
	store.observers = append(store.observers, view)

	session.Store = store
	session.View = view
	return session
}

func (c *CartSession) Confirm(_ context.Context, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmations = append(c.confirmations, message)
}

// Confirmations returns the messages produced so far in this session.
func (c *CartSession) Confirmations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.confirmations...)
}
