package audit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer is the backpressure policy between consecutive page analyses.
// It is a separate policy object so the pacing strategy can change
// without touching scheduling logic.
type Pacer interface {
	Wait(ctx context.Context) error
}

// fixedDelayPacer enforces a fixed minimum interval between pages with
// a token bucket of size one.
type fixedDelayPacer struct {
	limiter *rate.Limiter
}

// NewFixedDelayPacer creates a pacer that allows one page per delay
// interval. A non-positive delay disables pacing.
func NewFixedDelayPacer(delay time.Duration) Pacer {
	if delay <= 0 {
		return nopPacer{}
	}
	return &fixedDelayPacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

func (p *fixedDelayPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type nopPacer struct{}

func (nopPacer) Wait(context.Context) error { return nil }
