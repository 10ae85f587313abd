package capture

import (
	"fmt"

	"github.com/user/framegrab/pkg/probe"
)

// Reason classifies why an extraction run aborted.
type Reason int

const (
	// ReasonNetworkStalled means the source's decode readiness never
	// advanced, e.g. a geo-restricted or dead stream.
	ReasonNetworkStalled Reason = iota
	// ReasonBufferNotProgressing means buffering stopped short of the
	// target instant.
	ReasonBufferNotProgressing
	// ReasonTimedOut means the per-instant allowance elapsed.
	ReasonTimedOut
	// ReasonBudgetExhausted means the global wall-clock allowance was
	// consumed before the instant could even be attempted.
	ReasonBudgetExhausted
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNetworkStalled:
		return "network-stalled"
	case ReasonBufferNotProgressing:
		return "buffer-not-progressing"
	case ReasonTimedOut:
		return "timed-out"
	case ReasonBudgetExhausted:
		return "budget-exhausted"
	default:
		return "unknown"
	}
}

// RunError aborts an extraction run. It carries enough detail for the
// caller to render an actionable message: the classified reason, the instant
// index at which the run failed, and how many frames had been captured up to
// that point. No partial frame sequence accompanies it.
type RunError struct {
	Reason   Reason
	Index    int
	Captured int
	Instant  float64
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("extraction aborted (%s) at instant %d (%.3fs) after %d captured frames",
		e.Reason, e.Index, e.Instant, e.Captured)
}

// reasonFromOutcome maps a non-ready probe outcome to an abort reason.
func reasonFromOutcome(outcome probe.Outcome) Reason {
	switch outcome {
	case probe.OutcomeNetworkStalled:
		return ReasonNetworkStalled
	case probe.OutcomeBufferNotProgressing:
		return ReasonBufferNotProgressing
	default:
		return ReasonTimedOut
	}
}
