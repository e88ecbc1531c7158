package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"bakery-cart-backend/internal/models"
	"bakery-cart-backend/internal/repositories"
	"bakery-cart-backend/pkg/logger"
)

// ErrPersistedStateUnreadable marks stored cart data that failed to decode.
// Load logs it and substitutes an empty cart; it is never returned.
var ErrPersistedStateUnreadable = errors.New("persisted cart state unreadable")

// MaxQuantity bounds a single line so increments and badge sums cannot wrap.
const MaxQuantity = math.MaxInt32

// CartObserver is told about every successful Persist.
type CartObserver interface {
	CartPersisted(ctx context.Context, visitorID string, cart models.Cart)
}

// Confirmer receives the user-facing message produced by AddItem.
type Confirmer interface {
	Confirm(ctx context.Context, message string)
}

// CartStore owns one visitor's persisted cart and its mutation rules.
type CartStore struct {
	storage   repositories.CartStorage
	key       string
	visitorID string
	logger    *logger.Logger
	observers []CartObserver
	confirmer Confirmer
}

type CartStoreOption func(*CartStore)

func WithObserver(o CartObserver) CartStoreOption {
	return func(s *CartStore) {
		s.observers = append(s.observers, o)
	}
}

func WithConfirmer(c Confirmer) CartStoreOption {
	return func(s *CartStore) {
		s.confirmer = c
	}
}

func NewCartStore(storage repositories.CartStorage, key, visitorID string, log *logger.Logger, opts ...CartStoreOption) *CartStore {
	if log == nil {
		log = logger.Nop()
	}
	s := &CartStore{
		storage:   storage,
		key:       key,
		visitorID: visitorID,
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CartStore) Key() string {
	return s.key
}

// Load returns the persisted cart. Missing, unreadable and undecodable state
// all yield an empty cart.
func (s *CartStore) Load(ctx context.Context) models.Cart {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.Error(s.logContext(ctx), "cart.load_failed", err)
		return models.Cart{}
	}
	if !found {
		return models.Cart{}
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		s.logger.Warn(s.logContext(ctx), "cart.decode_failed", fmt.Errorf("%w: %v", ErrPersistedStateUnreadable, err))
		return models.Cart{}
	}

	valid := make(models.Cart, 0, len(cart))
	for _, item := range cart {
		if item.Quantity > 0 {
			valid = append(valid, item)
		}
	}
	return valid
}

// Persist writes cart unconditionally and then notifies observers.
func (s *CartStore) Persist(ctx context.Context, cart models.Cart) error {
	if cart == nil {
		cart = models.Cart{}
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	for _, o := range s.observers {
		o.CartPersisted(ctx, s.visitorID, cart)
	}
	return nil
}

// AddItem bumps the quantity of an existing line by one, or appends a new line
// with quantity 1. An existing line keeps its original name and price.
func (s *CartStore) AddItem(ctx context.Context, id, name string, price float64) error {
	cart := s.Load(ctx)

	if idx := cart.Find(id); idx >= 0 {
		if cart[idx].Quantity < MaxQuantity {
			cart[idx].Quantity++
		}
	} else {
		cart = append(cart, models.CartLineItem{
			ID:       id,
			Quantity: 1,
			Name:     name,
			Price:    price,
		})
	}

	if err := s.Persist(ctx, cart); err != nil {
		return err
	}

	if s.confirmer != nil {
		s.confirmer.Confirm(ctx, fmt.Sprintf("Added %s to cart!", name))
	}
	return nil
}

// SetQuantity overwrites the quantity of id. Quantities of zero or less remove
// the line; an unknown id leaves the cart as it was. Values above MaxQuantity
// are clamped.
func (s *CartStore) SetQuantity(ctx context.Context, id string, quantity int) error {
	cart := s.Load(ctx)
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}

	if quantity <= 0 {
		cart = cart.Remove(id)
	} else if idx := cart.Find(id); idx >= 0 {
		cart[idx].Quantity = quantity
	}

	return s.Persist(ctx, cart)
}

func (s *CartStore) logContext(ctx context.Context) context.Context {
	return s.logger.WithFields(ctx, map[string]any{
		"visitor_id":  s.visitorID,
		"storage_key": s.key,
	})
}

// ParseQuantity coerces raw form input to an integer the way a leading-integer
// parse does: "3" and "3.9" give 3, "-1" gives -1. ok is false when raw holds
// no leading integer at all or its magnitude exceeds MaxQuantity.
func ParseQuantity(raw string) (quantity int, ok bool) {
	raw = strings.TrimSpace(raw)

	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(raw[:end])
	if err != nil || n > MaxQuantity || n < -MaxQuantity {
		return 0, false
	}
	return n, true
}

// StorageKey namespaces a visitor's record under the fixed cart key name.
func StorageKey(name, visitorID string) string {
	return name + ":" + visitorID
}

// CartStoreFactory builds per-visitor stores sharing storage, logger and
// process-wide observers.
type CartStoreFactory struct {
	storage   repositories.CartStorage
	keyName   string
	logger    *logger.Logger
	observers []CartObserver
}

func NewCartStoreFactory(storage repositories.CartStorage, keyName string, log *logger.Logger, observers ...CartObserver) *CartStoreFactory {
	return &CartStoreFactory{
		storage:   storage,
		keyName:   keyName,
		logger:    log,
		observers: observers,
	}
}

func (f *CartStoreFactory) ForVisitor(visitorID string, opts ...CartStoreOption) *CartStore {
	all := make([]CartStoreOption, 0, len(f.observers)+len(opts))
	for _, o := range f.observers {
		all = append(all, WithObserver(o))
	}
	all = append(all, opts...)
	return NewCartStore(f.storage, StorageKey(f.keyName, visitorID), visitorID, f.logger, all...)
}
