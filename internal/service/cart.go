package service

import (
	"sync"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartEngine holds the in-progress cart: an ordered sequence of lines.
// Totals are recomputed from current state on every read, never cached.
type CartEngine struct {
	mu          sync.Mutex
	items       []models.CartItem
	deliveryFee int64
	writer      Notifier
	logger      *zap.Logger
}

// NewCartEngine creates a cart engine seeded with the persisted lines.
func NewCartEngine(items []models.CartItem, deliveryFee int64, writer Notifier) *CartEngine {
	return &CartEngine{
		items:       items,
		deliveryFee: deliveryFee,
		writer:      writer,
		logger:      util.GetLogger(),
	}
}

// AddItem appends a new line with quantity 1. It does not search for an
// existing line with the same product id; repeated adds create separate lines.
func (e *CartEngine) AddItem(p models.Product) models.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	item := models.CartItem{
		LineID:    uuid.New().String(),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}

	e.items = append(e.items, item)
	util.CartItemsAddedTotal.Inc()
	e.notify()

	e.logger.Debug("Cart line added",
		zap.String("line_id", item.LineID),
		zap.String("product_id", p.ID))
	return item
}

// UpdateQuantity adds delta to the line's quantity, clamped to a minimum
// of 1. A delta that would drive the quantity below 1 is clamped, not
// rejected.
func (e *CartEngine) UpdateQuantity(lineID string, delta int) (models.CartItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].LineID != lineID {
			continue
		}
		q := e.items[i].Quantity + delta
		if q < 1 {
			q = 1
		}
		e.items[i].Quantity = q
		e.notify()
		return e.items[i], nil
	}
	return models.CartItem{}, ErrLineNotFound
}

// RemoveItem deletes the line whose id matches; no-op if absent.
func (e *CartEngine) RemoveItem(lineID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].LineID == lineID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			util.CartItemsRemovedTotal.Inc()
			e.notify()
			return
		}
	}
}

// Totals computes subtotal, delivery charges and total from current cart
// state. The delivery fee applies whenever the cart is non-empty.
func (e *CartEngine) Totals() models.Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalsLocked()
}

func (e *CartEngine) totalsLocked() models.Totals {
	var t models.Totals
	for _, item := range e.items {
		t.Subtotal += item.Price * int64(item.Quantity)
	}
	if len(e.items) > 0 {
		t.DeliveryCharges = e.deliveryFee
	}
	t.Total = t.Subtotal + t.DeliveryCharges
	return t
}

// Items returns a value copy of the cart lines.
func (e *CartEngine) Items() []models.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]models.CartItem, len(e.items))
	copy(items, e.items)
	return items
}

// Count returns the sum of line quantities.
func (e *CartEngine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, item := range e.items {
		count += item.Quantity
	}
	return count
}

// Len returns the number of cart lines.
func (e *CartEngine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// Clear empties the cart. Invoked as a side effect of successful order
// placement.
func (e *CartEngine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.notify()
}

func (e *CartEngine) notify() {
	if e.writer != nil {
		e.writer.Notify()
	}
}
