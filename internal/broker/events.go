package broker

import (
	"context"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// EventPublisher publishes domain events. With a nil producer the publisher
// is disabled and events are only logged; publishing is always best-effort
// from the caller's point of view.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
}

// NewEventPublisher creates a new event publisher. producer may be nil.
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		logger:   util.GetLogger(),
	}
}

// PublishOrderPlaced publishes OrderPlaced event
func (ep *EventPublisher) PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	return ep.publish(ctx, fmt.Sprintf("order-%s", event.OrderID), event.EventType, event)
}

// PublishProductAdded publishes ProductAdded event
func (ep *EventPublisher) PublishProductAdded(ctx context.Context, event *models.ProductAddedEvent) error {
	return ep.publish(ctx, fmt.Sprintf("product-%s", event.ProductID), event.EventType, event)
}

// PublishProductDeleted publishes ProductDeleted event
func (ep *EventPublisher) PublishProductDeleted(ctx context.Context, event *models.ProductDeletedEvent) error {
	return ep.publish(ctx, fmt.Sprintf("product-%s", event.ProductID), event.EventType, event)
}

// PublishSettlementFailed publishes SettlementFailed event
func (ep *EventPublisher) PublishSettlementFailed(ctx context.Context, event *models.SettlementFailedEvent) error {
	return ep.publish(ctx, event.EventID, event.EventType, event)
}

func (ep *EventPublisher) publish(ctx context.Context, key, eventType string, event interface{}) error {
	if ep.producer == nil {
		ep.logger.Debug("Event publisher disabled, dropping event",
			zap.String("event_type", eventType))
		return nil
	}
	return ep.producer.PublishEvent(ctx, key, event)
}
