package ports

import (
	"context"
	"time"
)

// Clock abstracts time for the polling loops so that stall windows and
// budgets can be tested without real waiting.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep suspends the calling task for the given duration. It returns
	// early with the context error if the context is cancelled first.
	Sleep(ctx context.Context, d time.Duration) error
}
