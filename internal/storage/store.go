package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-service/internal/models"

	"go.uber.org/zap"
)

// Slot names. Each slot holds one serialized collection and is replaced whole
// on every save; there is no cross-slot atomicity.
const (
	SlotProducts = "products"
	SlotCart     = "cart"
	SlotOrders   = "orders"
	SlotUser     = "user"
)

// Store persists the four state slots. A missing slot loads as the empty
// collection (nil user). An unparsable slot is discarded with a warning and
// loads as the empty default; it never fails process start.
type Store interface {
	LoadProducts(ctx context.Context) ([]models.Product, error)
	SaveProducts(ctx context.Context, products []models.Product) error

	LoadCart(ctx context.Context) ([]models.CartItem, error)
	SaveCart(ctx context.Context, items []models.CartItem) error

	LoadOrders(ctx context.Context) ([]models.Order, error)
	SaveOrders(ctx context.Context, orders []models.Order) error

	LoadUser(ctx context.Context) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error

	Close() error
}

// slotBackend is the raw keyed byte store a Store implementation sits on.
// get returns (nil, nil) when the slot is absent.
type slotBackend interface {
	get(ctx context.Context, slot string) ([]byte, error)
	set(ctx context.Context, slot string, data []byte) error
	close() error
}

// snapshotStore adapts a slotBackend into the typed Store contract.
type snapshotStore struct {
	backend slotBackend
	logger  *zap.Logger
}

func newSnapshotStore(backend slotBackend, logger *zap.Logger) *snapshotStore {
	return &snapshotStore{backend: backend, logger: logger}
}

func (s *snapshotStore) LoadProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.load(ctx, SlotProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *snapshotStore) SaveProducts(ctx context.Context, products []models.Product) error {
	return s.save(ctx, SlotProducts, products)
}

func (s *snapshotStore) LoadCart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.load(ctx, SlotCart, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *snapshotStore) SaveCart(ctx context.Context, items []models.CartItem) error {
	return s.save(ctx, SlotCart, items)
}

func (s *snapshotStore) LoadOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.load(ctx, SlotOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *snapshotStore) SaveOrders(ctx context.Context, orders []models.Order) error {
	return s.save(ctx, SlotOrders, orders)
}

func (s *snapshotStore) LoadUser(ctx context.Context) (*models.User, error) {
	var user *models.User
	if err := s.load(ctx, SlotUser, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *snapshotStore) SaveUser(ctx context.Context, user *models.User) error {
	return s.save(ctx, SlotUser, user)
}

func (s *snapshotStore) Close() error {
	return s.backend.close()
}

func (s *snapshotStore) load(ctx context.Context, slot string, v interface{}) error {
	data, err := s.backend.get(ctx, slot)
	if err != nil {
		return fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("Discarding unparsable snapshot",
			zap.String("slot", slot),
			zap.Error(err))
	}
	return nil
}

func (s *snapshotStore) save(ctx context.Context, slot string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal slot %s: %w", slot, err)
	}
	if err := s.backend.set(ctx, slot, data); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	return nil
}
