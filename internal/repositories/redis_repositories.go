package repositories

import (
	"context"
	"errors"

	"bakery-cart-backend/pkg/cache"
)

type redisCartStorage struct {
	cache *cache.RedisCache
}

func NewRedisCartStorage(c *cache.RedisCache) CartStorage {
	return &redisCartStorage{cache: c}
}

func (s *redisCartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.cache.GetString(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set writes without expiry; carts persist until overwritten.
func (s *redisCartStorage) Set(ctx context.Context, key, value string) error {
	return s.cache.SetString(ctx, key, value, 0)
}
