// Package pace provides the throttling strategy for outbound traffic.
// Discovery steps pause after every network-issuing branch; pacing is purely
// polite rate limiting and carries no correctness guarantee.
package pace

import (
	"context"
	"time"
)

// FixedDelay pauses for a fixed duration between discovery steps and a
// (usually shorter) duration between per-job detail fetches. A cancelled
// context cuts any pause short.
type FixedDelay struct {
	StepDelay time.Duration
	JobDelay  time.Duration
}

// NewFixedDelay returns a pacer with the given step and per-job delays.
func NewFixedDelay(step, job time.Duration) *FixedDelay {
	return &FixedDelay{StepDelay: step, JobDelay: job}
}

// Pause blocks for the step delay.
func (p *FixedDelay) Pause(ctx context.Context) {
	sleep(ctx, p.StepDelay)
}

// JobPause blocks for the per-job delay.
func (p *FixedDelay) JobPause(ctx context.Context) {
	sleep(ctx, p.JobDelay)
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Nop pauses for nothing. Tests use it so runs complete instantly.
type Nop struct{}

func (Nop) Pause(context.Context)    {}
func (Nop) JobPause(context.Context) {}
