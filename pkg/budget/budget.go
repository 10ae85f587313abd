// Package budget tracks the wall-clock allowance for one extraction run.
package budget

import (
	"time"
)

// DefaultTotal is the default global allowance for a whole run.
const DefaultTotal = 120 * time.Second

// DefaultPerInstantCap is the default ceiling for a single instant's wait,
// so one stalled instant cannot starve all subsequent instants.
const DefaultPerInstantCap = 3 * time.Second

// Budget apportions a single global wall-clock allowance across the instants
// of one extraction run. It is owned by that run and is not safe for
// concurrent use, matching the strictly sequential capture loop.
type Budget struct {
	remaining     time.Duration
	perInstantCap time.Duration
	consumed      time.Duration
}

// New creates a Budget with the given global allowance and per-instant cap.
// Non-positive arguments fall back to the defaults.
func New(total, perInstantCap time.Duration) *Budget {
	if total <= 0 {
		total = DefaultTotal
	}
	if perInstantCap <= 0 {
		perInstantCap = DefaultPerInstantCap
	}
	return &Budget{
		remaining:     total,
		perInstantCap: perInstantCap,
	}
}

// Remaining returns the unconsumed portion of the global allowance.
// It never goes below zero.
func (b *Budget) Remaining() time.Duration {
	if b.remaining < 0 {
		return 0
	}
	return b.remaining
}

// Consumed returns the total time charged so far.
func (b *Budget) Consumed() time.Duration {
	return b.consumed
}

// NextAllowance returns how long the next instant may wait for readiness:
// the per-instant cap or the remaining allowance, whichever is smaller.
func (b *Budget) NextAllowance() time.Duration {
	remaining := b.Remaining()
	if remaining < b.perInstantCap {
		return remaining
	}
	return b.perInstantCap
}

// Charge deducts elapsed time from the global allowance.
func (b *Budget) Charge(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	b.remaining -= elapsed
	b.consumed += elapsed
}

// Exhausted reports whether the global allowance is used up.
func (b *Budget) Exhausted() bool {
	return b.remaining <= 0
}
