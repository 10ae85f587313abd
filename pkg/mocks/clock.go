package mocks

import (
	"context"
	"time"

	"github.com/user/framegrab/pkg/ports"
)

// Clock is a deterministic implementation of ports.Clock for tests.
// Sleep advances the clock by the requested duration instead of waiting,
// so stall windows and budgets elapse instantly and reproducibly.
type Clock struct {
	Current time.Time
	Slept   []time.Duration

	// OnSleep, when set, runs before each sleep advances the clock.
	// Tests use it to mutate source state as simulated time passes.
	OnSleep func(d time.Duration)
}

// NewClock creates a Clock starting at an arbitrary fixed instant.
func NewClock() *Clock {
	return &Clock{Current: time.Unix(1700000000, 0)}
}

// Now returns the simulated current time.
func (c *Clock) Now() time.Time {
	return c.Current
}

// Sleep advances the simulated time by d.
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.OnSleep != nil {
		c.OnSleep(d)
	}
	c.Current = c.Current.Add(d)
	c.Slept = append(c.Slept, d)
	return nil
}

// Ensure Clock implements ports.Clock
var _ ports.Clock = (*Clock)(nil)
