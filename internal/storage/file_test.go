package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	return store, dir
}

func TestFileStoreMissingSlots(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	products, err := store.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	cart, err := store.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	orders, err := store.LoadOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	user, err := store.LoadUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	products := []models.Product{{
		ID:        "p1",
		Name:      "Desk Lamp",
		Price:     500,
		Images:    []string{"a.png"},
		Category:  models.CategoryHome,
		CreatedAt: time.Now().Truncate(time.Second),
	}}
	cart := []models.CartItem{{
		LineID: "l1", ProductID: "p1", Name: "Desk Lamp", Price: 500, Quantity: 2,
	}}
	orders := []models.Order{{
		ID:              "ORD-1",
		Items:           cart,
		Subtotal:        1000,
		DeliveryCharges: 250,
		Total:           1250,
		CustomerMobile:  "03001234567",
		CustomerAddress: "House 1",
		CustomerCity:    "Karachi",
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now().Truncate(time.Second),
	}}
	user := &models.User{ID: "admin", Name: "Store Admin", Role: models.RoleAdmin}

	require.NoError(t, store.SaveProducts(ctx, products))
	require.NoError(t, store.SaveCart(ctx, cart))
	require.NoError(t, store.SaveOrders(ctx, orders))
	require.NoError(t, store.SaveUser(ctx, user))

	// reopen against the same directory
	reopened, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	gotProducts, err := reopened.LoadProducts(ctx)
	require.NoError(t, err)
	require.Len(t, gotProducts, 1)
	assert.Equal(t, "Desk Lamp", gotProducts[0].Name)

	gotCart, err := reopened.LoadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, cart, gotCart)

	gotOrders, err := reopened.LoadOrders(ctx)
	require.NoError(t, err)
	require.Len(t, gotOrders, 1)
	assert.Equal(t, "ORD-1", gotOrders[0].ID)
	assert.Equal(t, int64(1250), gotOrders[0].Total)

	gotUser, err := reopened.LoadUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, gotUser)
	assert.Equal(t, "admin", gotUser.ID)
}

func TestFileStoreCorruptSlotDegrades(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	path := filepath.Join(dir, SlotProducts+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	products, err := store.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFileStoreSignedOutUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, nil))

	user, err := store.LoadUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFileStoreSlotReplacedWhole(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, []models.CartItem{
		{LineID: "l1", Quantity: 1},
		{LineID: "l2", Quantity: 1},
	}))
	require.NoError(t, store.SaveCart(ctx, nil))

	cart, err := store.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}
