package worker

import (
	"context"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/storage"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// Sources produce the current value of each persisted slot.
type Sources struct {
	Products func() []models.Product
	Cart     func() []models.CartItem
	Orders   func() []models.Order
	User     func() *models.User
}

// SnapshotWriter mirrors in-memory state to the snapshot store. Engines call
// Notify after a mutation; notifications are coalesced over the debounce
// interval and all four slots are written together. Writes are best-effort:
// failures are logged and counted, never surfaced to the mutating action.
type SnapshotWriter struct {
	store    storage.Store
	sources  Sources
	debounce time.Duration
	notify   chan struct{}
	logger   *zap.Logger
}

// NewSnapshotWriter creates a snapshot writer. Call SetSources before Start.
func NewSnapshotWriter(store storage.Store, debounce time.Duration) *SnapshotWriter {
	return &SnapshotWriter{
		store:    store,
		debounce: debounce,
		notify:   make(chan struct{}, 1),
		logger:   util.GetLogger(),
	}
}

// SetSources binds the slot sources. The writer is constructed before the
// engines so they can carry it as their notifier; sources are bound once the
// engines exist.
func (w *SnapshotWriter) SetSources(sources Sources) {
	w.sources = sources
}

// Notify signals that state changed. Never blocks.
func (w *SnapshotWriter) Notify() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Start runs the write loop until ctx is cancelled, then performs a final
// flush.
func (w *SnapshotWriter) Start(ctx context.Context) error {
	w.logger.Info("Starting snapshot writer", zap.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			return w.finalFlush()
		case <-w.notify:
			if w.debounce > 0 {
				timer := time.NewTimer(w.debounce)
				select {
				case <-timer.C:
				case <-ctx.Done():
					timer.Stop()
					return w.finalFlush()
				}
			}
			// coalesce anything that arrived during the debounce window
			select {
			case <-w.notify:
			default:
			}
			if err := w.Flush(ctx); err != nil {
				w.logger.Error("Snapshot flush failed", zap.Error(err))
			}
		}
	}
}

func (w *SnapshotWriter) finalFlush() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.Flush(ctx)
}

// Flush writes all four slots. Each slot write is independent; the first
// error is returned after all slots have been attempted.
func (w *SnapshotWriter) Flush(ctx context.Context) error {
	var firstErr error

	w.writeSlot(ctx, storage.SlotProducts, &firstErr, func(ctx context.Context) error {
		return w.store.SaveProducts(ctx, w.sources.Products())
	})
	w.writeSlot(ctx, storage.SlotCart, &firstErr, func(ctx context.Context) error {
		return w.store.SaveCart(ctx, w.sources.Cart())
	})
	w.writeSlot(ctx, storage.SlotOrders, &firstErr, func(ctx context.Context) error {
		return w.store.SaveOrders(ctx, w.sources.Orders())
	})
	w.writeSlot(ctx, storage.SlotUser, &firstErr, func(ctx context.Context) error {
		return w.store.SaveUser(ctx, w.sources.User())
	})

	return firstErr
}

func (w *SnapshotWriter) writeSlot(ctx context.Context, slot string, firstErr *error, save func(context.Context) error) {
	if err := save(ctx); err != nil {
		util.SnapshotWriteFailures.WithLabelValues(slot).Inc()
		w.logger.Error("Failed to write snapshot slot",
			zap.String("slot", slot),
			zap.Error(err))
		if *firstErr == nil {
			*firstErr = err
		}
		return
	}
	util.SnapshotWritesTotal.WithLabelValues(slot).Inc()
}
