package screen

import (
	"context"
	"time"
)

// Gate paces provider calls. The engine waits on the gate before each
// per-symbol fetch, keeping external rate-limit accommodation out of the
// pricing logic and out of tests.
type Gate interface {
	// Wait blocks until the next call is allowed or ctx is done.
	Wait(ctx context.Context) error
}

// IntervalGate releases at most one call per interval. The first call
// passes immediately.
type IntervalGate struct {
	interval time.Duration
	last     time.Time
}

// NewIntervalGate builds a gate with the given minimum spacing between
// calls. A non-positive interval never waits.
func NewIntervalGate(interval time.Duration) *IntervalGate {
	return &IntervalGate{interval: interval}
}

func (g *IntervalGate) Wait(ctx context.Context) error {
	if g.interval > 0 && !g.last.IsZero() {
		if wait := g.interval - time.Since(g.last); wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	g.last = time.Now()
	return ctx.Err()
}

// NopGate never waits.
type NopGate struct{}

func (NopGate) Wait(ctx context.Context) error { return ctx.Err() }
