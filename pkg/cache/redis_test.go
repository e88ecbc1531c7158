package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCommands struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMockCommands() *mockCommands {
	return &mockCommands{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCommands) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := m.values[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *mockCommands) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.values[key] = value.(string)
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestStringRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCommands()
	c := NewRedisCacheWithCommands(mock)

	_, err := c.GetString(ctx, "bakeryCart:v1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.SetString(ctx, "bakeryCart:v1", `[{"id":"B1"}]`, 0))
	got, err := c.GetString(ctx, "bakeryCart:v1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"B1"}]`, got)
	assert.Equal(t, time.Duration(0), mock.ttls["bakeryCart:v1"])

	require.NoError(t, c.SetString(ctx, "bakeryCart:v1", `[]`, 0))
	got, err = c.GetString(ctx, "bakeryCart:v1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
}

func TestCloseWithoutClient(t *testing.T) {
	c := NewRedisCacheWithCommands(newMockCommands())
	assert.NoError(t, c.Close())
}
