package services

import (
	"context"
	"encoding/json"
	"time"

	"bakery-cart-backend/internal/models"
	"bakery-cart-backend/pkg/logger"
	"bakery-cart-backend/pkg/messaging"
)

type EventSender interface {
	SendMessage(ctx context.Context, key string, value interface{}) error
}

// CartEventPublisher forwards persisted carts to the event bus. Send failures
// are logged and never fail the cart write.
type CartEventPublisher struct {
	sender EventSender
	logger *logger.Logger
	now    func() time.Time
}

func NewCartEventPublisher(sender EventSender, log *logger.Logger) *CartEventPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &CartEventPublisher{sender: sender, logger: log, now: time.Now}
}

func (p *CartEventPublisher) CartPersisted(ctx context.Context, visitorID string, cart models.Cart) {
	items, err := json.Marshal(cart)
	if err != nil {
		p.logger.Error(ctx, "cart_event.encode_failed", err)
		return
	}

	event := messaging.CartEvent{
		Type:       messaging.CartUpdated,
		VisitorID:  visitorID,
		ItemCount:  cart.TotalQuantity(),
		Items:      items,
		OccurredAt: p.now().UTC(),
	}
	if err := p.sender.SendMessage(ctx, visitorID, event); err != nil {
		p.logger.Warn(p.logger.WithVisitorID(ctx, visitorID), "cart_event.publish_failed", err)
	}
}
