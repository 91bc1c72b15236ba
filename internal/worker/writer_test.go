package worker

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staticSources(products []models.Product, cart []models.CartItem, orders []models.Order, user *models.User) Sources {
	return Sources{
		Products: func() []models.Product { return products },
		Cart:     func() []models.CartItem { return cart },
		Orders:   func() []models.Order { return orders },
		User:     func() *models.User { return user },
	}
}

func TestFlushWritesAllSlots(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	writer := NewSnapshotWriter(store, 0)
	writer.SetSources(staticSources(
		[]models.Product{{ID: "p1", Name: "Desk Lamp", Price: 500}},
		[]models.CartItem{{LineID: "l1", Quantity: 1}},
		[]models.Order{{ID: "ORD-1", Status: models.OrderStatusPending}},
		&models.User{ID: "admin"},
	))

	ctx := context.Background()
	require.NoError(t, writer.Flush(ctx))

	products, err := store.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Desk Lamp", products[0].Name)

	cart, err := store.LoadCart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 1)

	orders, err := store.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	user, err := store.LoadUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.ID)
}

func TestNotifyTriggersDebouncedWrite(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	writer := NewSnapshotWriter(store, 5*time.Millisecond)
	writer.SetSources(staticSources(
		[]models.Product{{ID: "p1", Name: "Desk Lamp", Price: 500}},
		nil, nil, nil,
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go writer.Start(ctx)

	writer.Notify()
	writer.Notify() // coalesced with the first

	require.Eventually(t, func() bool {
		products, err := store.LoadProducts(context.Background())
		return err == nil && len(products) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestNotifyNeverBlocks(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	writer := NewSnapshotWriter(store, time.Hour)
	for i := 0; i < 100; i++ {
		writer.Notify()
	}
}
