package repositories

import (
	"context"
	"errors"
)

// ErrUnsupportedBackend is returned when the configured backend is unknown.
var ErrUnsupportedBackend = errors.New("unsupported storage backend")

// CartStorage is the durable key/value port carts are persisted through.
// Get reports found=false, not an error, when key has never been written.
type CartStorage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
