package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bakery-cart-backend/internal/repositories"
	"bakery-cart-backend/pkg/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	key   string
	value interface{}
}

type stubSender struct {
	sent []sentMessage
	err  error
}

func (s *stubSender) SendMessage(_ context.Context, key string, value interface{}) error {
	s.sent = append(s.sent, sentMessage{key: key, value: value})
	return s.err
}

func TestPublisherEmitsCartUpdated(t *testing.T) {
	ctx := context.Background()
	sender := &stubSender{}
	publisher := NewCartEventPublisher(sender, nil)
	publisher.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	factory := NewCartStoreFactory(repositories.NewMemoryCartStorage(), "bakeryCart", nil, publisher)
	store := factory.ForVisitor("visitor-7")

	require.NoError(t, store.AddItem(ctx, "B1", "Bread", 200))
	require.NoError(t, store.AddItem(ctx, "B1", "Bread", 200))

	require.Len(t, sender.sent, 2)
	last := sender.sent[1]
	assert.Equal(t, "visitor-7", last.key)

	event, ok := last.value.(messaging.CartEvent)
	require.True(t, ok)
	assert.Equal(t, messaging.CartUpdated, event.Type)
	assert.Equal(t, 2, event.ItemCount)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), event.OccurredAt)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Items, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "B1", items[0]["id"])
}

func TestPublisherFailureDoesNotFailWrite(t *testing.T) {
	sender := &stubSender{err: errors.New("broker down")}
	factory := NewCartStoreFactory(repositories.NewMemoryCartStorage(), "bakeryCart", nil, NewCartEventPublisher(sender, nil))
	store := factory.ForVisitor("v")

	assert.NoError(t, store.AddItem(context.Background(), "B1", "Bread", 200))
	assert.Len(t, store.Load(context.Background()), 1)
}
