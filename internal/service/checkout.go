package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// Step is a checkout state.
type Step string

const (
	StepCart       Step = "CART"
	StepShipping   Step = "SHIPPING"
	StepPayment    Step = "PAYMENT"
	StepProcessing Step = "PROCESSING"
	StepSuccess    Step = "SUCCESS"
)

// CheckoutState is the externally visible checkout state.
type CheckoutState struct {
	Step      Step   `json:"step"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// CheckoutEngine drives the five-step checkout flow and owns the append-only
// order ledger, newest first. Processing is entered once and left exactly
// once: to Success (order committed, cart cleared) or back to Payment with
// fields retained when settlement fails.
type CheckoutEngine struct {
	mu        sync.Mutex
	step      Step
	address   string
	city      string
	mobile    string
	lastError string

	orders    []models.Order
	cart      *CartEngine
	settler   Settler
	publisher *broker.EventPublisher
	whatsapp  *notify.WhatsApp
	writer    Notifier
	logger    *zap.Logger
}

// NewCheckoutEngine creates a checkout engine seeded with the persisted
// order ledger.
func NewCheckoutEngine(
	cart *CartEngine,
	orders []models.Order,
	settler Settler,
	publisher *broker.EventPublisher,
	whatsapp *notify.WhatsApp,
	writer Notifier,
) *CheckoutEngine {
	return &CheckoutEngine{
		step:      StepCart,
		orders:    orders,
		cart:      cart,
		settler:   settler,
		publisher: publisher,
		whatsapp:  whatsapp,
		writer:    writer,
		logger:    util.GetLogger(),
	}
}

// State returns the current checkout state.
func (e *CheckoutEngine) State() CheckoutState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return CheckoutState{
		Step:      e.step,
		Address:   e.address,
		City:      e.city,
		LastError: e.lastError,
	}
}

// Step returns the current step.
func (e *CheckoutEngine) Step() Step {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.step
}

// Begin moves Cart -> Shipping. Refused while the cart is empty.
func (e *CheckoutEngine) Begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.step != StepCart {
		return ErrInvalidStep
	}
	if e.cart.Len() == 0 {
		return ErrEmptyCart
	}

	e.step = StepShipping
	util.CheckoutsStartedTotal.Inc()
	return nil
}

// SetShipping moves Shipping -> Payment. Requires a non-empty address and a
// city from the fixed enumeration; the mobile number is not yet required.
func (e *CheckoutEngine) SetShipping(address, city string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.step != StepShipping {
		return ErrInvalidStep
	}
	if strings.TrimSpace(address) == "" {
		return ErrAddressRequired
	}
	if !models.ValidCity(city) {
		return ErrUnknownCity
	}

	e.address = address
	e.city = city
	e.step = StepPayment
	return nil
}

// Confirm moves Payment -> Processing and runs settlement. On success the
// order snapshot is committed to the head of the ledger with status Pending
// and the cart is cleared. On settlement failure the flow returns to Payment
// with shipping and payment fields retained.
func (e *CheckoutEngine) Confirm(ctx context.Context, account string) (models.Order, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutEngine.Confirm")
	defer span.End()

	e.mu.Lock()
	if e.step != StepPayment {
		e.mu.Unlock()
		return models.Order{}, ErrInvalidStep
	}
	if strings.TrimSpace(account) == "" {
		e.mu.Unlock()
		return models.Order{}, ErrAccountRequired
	}
	e.mobile = account
	e.step = StepProcessing
	amount := e.cart.Totals().Total
	e.mu.Unlock()

	start := time.Now()
	err := e.settler.Settle(ctx, amount, account)
	util.SettlementLatency.Observe(time.Since(start).Seconds())

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.step = StepPayment
		e.lastError = err.Error()
		util.SettlementFailedTotal.Inc()

		event := &models.SettlementFailedEvent{
			BaseEvent: models.NewBaseEvent(models.EventTypeSettlementFailed),
			Amount:    amount,
			Reason:    err.Error(),
		}
		if pubErr := e.publisher.PublishSettlementFailed(ctx, event); pubErr != nil {
			e.logger.Error("Failed to publish SettlementFailed event", zap.Error(pubErr))
		}

		e.logger.Warn("Settlement failed, returning to payment step", zap.Error(err))
		return models.Order{}, fmt.Errorf("settlement failed: %w", err)
	}

	totals := e.cart.Totals()
	order := models.Order{
		ID:              fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
		Items:           e.cart.Items(),
		Subtotal:        totals.Subtotal,
		DeliveryCharges: totals.DeliveryCharges,
		Total:           totals.Total,
		CustomerMobile:  e.mobile,
		CustomerAddress: e.address,
		CustomerCity:    e.city,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
	}

	e.orders = append([]models.Order{order}, e.orders...)
	e.cart.Clear()
	e.step = StepSuccess
	e.lastError = ""
	util.OrdersPlacedTotal.Inc()
	e.notify()

	event := &models.OrderPlacedEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeOrderPlaced),
		OrderID:   order.ID,
		Total:     order.Total,
		ItemCount: len(order.Items),
		City:      order.CustomerCity,
	}
	if pubErr := e.publisher.PublishOrderPlaced(ctx, event); pubErr != nil {
		e.logger.Error("Failed to publish OrderPlaced event", zap.Error(pubErr))
	}

	e.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)))
	return order, nil
}

// Close resets the flow to Cart and discards in-progress shipping and
// payment fields. Cart contents are preserved unless Success was reached,
// in which case placement already cleared them.
func (e *CheckoutEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.step = StepCart
	e.address = ""
	e.city = ""
	e.mobile = ""
	e.lastError = ""
}

// WhatsAppLink is the alternative exit from Payment: it formats the cart
// into a message payload and returns the messaging deep link. It does not
// transition the flow and does not create a persisted order.
func (e *CheckoutEngine) WhatsAppLink() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.step != StepPayment {
		return "", ErrInvalidStep
	}

	items := e.cart.Items()
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	totals := e.cart.Totals()
	msg := e.whatsapp.ComposeOrderMessage(items, totals.Total, e.address, e.city, e.mobile)
	util.WhatsAppHandoffsTotal.Inc()
	return e.whatsapp.DeepLink(msg), nil
}

// Orders returns the ledger, newest first.
func (e *CheckoutEngine) Orders() []models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	orders := make([]models.Order, len(e.orders))
	copy(orders, e.orders)
	return orders
}

func (e *CheckoutEngine) notify() {
	if e.writer != nil {
		e.writer.Notify()
	}
}
