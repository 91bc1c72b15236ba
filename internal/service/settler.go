package service

import (
	"context"
	"time"
)

// Settler confirms payment for an amount against an account. Implementations
// may take arbitrarily long; they must honour ctx cancellation. The checkout
// engine treats any non-nil error as a failed settlement.
type Settler interface {
	Settle(ctx context.Context, amount int64, account string) error
}

// DelaySettler stands in for a real payment gateway: it waits a fixed
// settlement delay and succeeds. The delay is placeholder latency, not a
// retryable network call.
type DelaySettler struct {
	Delay time.Duration
}

func (d DelaySettler) Settle(ctx context.Context, amount int64, account string) error {
	timer := time.NewTimer(d.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
