package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned when a key does not exist.
var ErrMiss = errors.New("cache: key not found")

// Commands is the subset of the go-redis client the cache uses.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type RedisCache struct {
	client *redis.Client
	store  Commands
}

func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return &RedisCache{client: client, store: client}, nil
}

// NewRedisCacheWithCommands wraps an existing command set, such as a
// go-redis cluster client or a test double. Close is a no-op for it.
func NewRedisCacheWithCommands(store Commands) *RedisCache {
	return &RedisCache{store: store}
}

// GetString returns the raw value stored at key, or ErrMiss.
func (r *RedisCache) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.store.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

// SetString stores value with no expiry when expiration is zero.
func (r *RedisCache) SetString(ctx context.Context, key, value string, expiration time.Duration) error {
	return r.store.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCache) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
