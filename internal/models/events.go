package models

import (
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventTypeOrderPlaced      = "ORDER_PLACED"
	EventTypeProductAdded     = "PRODUCT_ADDED"
	EventTypeProductDeleted   = "PRODUCT_DELETED"
	EventTypeSettlementFailed = "SETTLEMENT_FAILED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBaseEvent builds a BaseEvent with a fresh id and the current time.
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// OrderPlacedEvent published when a checkout completes and an order is
// committed to the ledger
type OrderPlacedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	Total     int64  `json:"total"`
	ItemCount int    `json:"item_count"`
	City      string `json:"city"`
}

// ProductAddedEvent published when the admin adds a product
type ProductAddedEvent struct {
	BaseEvent
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"`
	Category  Category `json:"category"`
}

// ProductDeletedEvent published when the admin deletes a product
type ProductDeletedEvent struct {
	BaseEvent
	ProductID string `json:"product_id"`
}

// SettlementFailedEvent published when payment settlement fails and the
// checkout returns to the payment step
type SettlementFailedEvent struct {
	BaseEvent
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}
