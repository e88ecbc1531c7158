package handlers

import (
	"bakery-cart-backend/internal/services"
)

// CartServiceInterface defines the contract for cart service
type CartServiceInterface interface {
	Session(visitorID string, badges ...services.BadgeSink) *services.CartSession
}
