package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bakery-cart-backend/pkg/cache"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func exerciseCartStorage(t *testing.T, storage CartStorage) {
	t.Helper()
	ctx := context.Background()

	_, found, err := storage.Get(ctx, "bakeryCart:a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.Set(ctx, "bakeryCart:a", `[{"id":"B1","quantity":1,"name":"Bread","price":200}]`))
	require.NoError(t, storage.Set(ctx, "bakeryCart:b", `[]`))

	value, found, err := storage.Get(ctx, "bakeryCart:a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"B1","quantity":1,"name":"Bread","price":200}]`, value)

	require.NoError(t, storage.Set(ctx, "bakeryCart:a", `[]`), "overwrite must succeed")
	value, _, err = storage.Get(ctx, "bakeryCart:a")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	value, found, err = storage.Get(ctx, "bakeryCart:b")
	require.NoError(t, err)
	assert.True(t, found, "other keys are untouched")
	assert.Equal(t, `[]`, value)
}

func TestMemoryCartStorage(t *testing.T) {
	exerciseCartStorage(t, NewMemoryCartStorage())
}

func TestPostgresCartStorageOnSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	exerciseCartStorage(t, NewPostgresCartStorage(db))
}

// redisCommands is an in-memory stand-in for the go-redis client.
type redisCommands struct {
	values map[string]string
	getErr error
}

func (r *redisCommands) Get(_ context.Context, key string) *redis.StringCmd {
	if r.getErr != nil {
		return redis.NewStringResult("", r.getErr)
	}
	if v, ok := r.values[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (r *redisCommands) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	r.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func TestRedisCartStorage(t *testing.T) {
	commands := &redisCommands{values: map[string]string{}}
	exerciseCartStorage(t, NewRedisCartStorage(cache.NewRedisCacheWithCommands(commands)))
}

func TestRedisCartStorageReadError(t *testing.T) {
	commands := &redisCommands{values: map[string]string{}, getErr: errors.New("connection reset")}
	storage := NewRedisCartStorage(cache.NewRedisCacheWithCommands(commands))

	_, found, err := storage.Get(context.Background(), "bakeryCart:a")
	assert.EqualError(t, err, "connection reset")
	assert.False(t, found)
}

func TestMongoCartStorage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("missing key", func(mt *mtest.T) {
		storage := NewMongoCartStorage(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bakery.carts", mtest.FirstBatch))

		_, found, err := storage.Get(context.Background(), "bakeryCart:a")
		require.NoError(mt, err)
		assert.False(mt, found)
	})

	mt.Run("stored payload", func(mt *mtest.T) {
		storage := NewMongoCartStorage(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bakery.carts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "bakeryCart:a"},
			{Key: "payload", Value: `[{"id":"B1","quantity":2,"name":"Bread","price":200}]`},
		}))

		value, found, err := storage.Get(context.Background(), "bakeryCart:a")
		require.NoError(mt, err)
		assert.True(mt, found)
		assert.Equal(mt, `[{"id":"B1","quantity":2,"name":"Bread","price":200}]`, value)
	})

	mt.Run("upsert", func(mt *mtest.T) {
		storage := NewMongoCartStorage(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, storage.Set(context.Background(), "bakeryCart:a", `[]`))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		assert.Equal(mt, "carts", started.Command.Lookup("update").StringValue())
	})

	mt.Run("read error", func(mt *mtest.T) {
		storage := NewMongoCartStorage(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		_, found, err := storage.Get(context.Background(), "bakeryCart:a")
		assert.Error(mt, err)
		assert.False(mt, found)
	})
}
