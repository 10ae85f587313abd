// Package systemclock provides the real-time implementation of ports.Clock.
package systemclock

import (
	"context"
	"time"

	"github.com/user/framegrab/pkg/ports"
)

// Clock implements ports.Clock using the system timer.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current system time.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// Sleep suspends the calling goroutine for d, or until the context is
// cancelled, whichever comes first.
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Ensure Clock implements ports.Clock
var _ ports.Clock = (*Clock)(nil)
