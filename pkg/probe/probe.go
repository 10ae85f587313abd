// Package probe implements readiness polling for a video source position.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/user/framegrab/pkg/ports"
)

// Outcome classifies how a readiness wait ended.
type Outcome int

const (
	// OutcomeReady means a buffered range covers the target instant.
	OutcomeReady Outcome = iota
	// OutcomeNetworkStalled means the decode-readiness level stayed below
	// the minimal threshold for the whole stall window. Typical causes are
	// geo-restriction or a dead stream.
	OutcomeNetworkStalled
	// OutcomeBufferNotProgressing means readiness was adequate but the
	// buffered edge near the target stopped growing short of it.
	OutcomeBufferNotProgressing
	// OutcomeTimedOut means the allowed wait elapsed without readiness.
	OutcomeTimedOut
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeNetworkStalled:
		return "network-stalled"
	case OutcomeBufferNotProgressing:
		return "buffer-not-progressing"
	case OutcomeTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Policy holds the tunable stall-detection parameters. The windows are
// observed reference behavior, not load-bearing invariants, so they stay
// configurable rather than hard-coded in the loop.
type Policy struct {
	// IdlePollInterval is the cadence while the source reports less than
	// current-data readiness. Polling slowly here keeps CPU cost down
	// when nothing is arriving anyway.
	IdlePollInterval time.Duration

	// ActivePollInterval is the cadence once the source is at least
	// partially ready, for responsive detection of buffer coverage.
	ActivePollInterval time.Duration

	// ReadyStateStallWindow is how long the readiness level may sit below
	// current-data before the wait is classified as network-stalled.
	ReadyStateStallWindow time.Duration

	// BufferStallWindow is how long the buffered edge may stay frozen
	// short of the target before the wait is classified as not
	// progressing.
	BufferStallWindow time.Duration
}

// DefaultPolicy returns the reference stall-detection parameters.
func DefaultPolicy() Policy {
	return Policy{
		IdlePollInterval:      250 * time.Millisecond,
		ActivePollInterval:    50 * time.Millisecond,
		ReadyStateStallWindow: time.Second,
		BufferStallWindow:     500 * time.Millisecond,
	}
}

// Probe waits for a video source to genuinely reach a target instant.
//
// Readiness is defined purely by buffered-range coverage of the requested
// time, never by pixel content. A source that is positioned correctly but
// shows the same picture as before is simply ready; freeze frames and static
// scenes are expected outcomes, not failures.
type Probe struct {
	source ports.VideoSource
	clock  ports.Clock
	policy Policy
	logger ports.Logger
}

// New creates a Probe for the given source.
func New(source ports.VideoSource, clock ports.Clock, logger ports.Logger, policy Policy) *Probe {
	if policy.IdlePollInterval <= 0 {
		policy.IdlePollInterval = DefaultPolicy().IdlePollInterval
	}
	if policy.ActivePollInterval <= 0 {
		policy.ActivePollInterval = DefaultPolicy().ActivePollInterval
	}
	if policy.ReadyStateStallWindow <= 0 {
		policy.ReadyStateStallWindow = DefaultPolicy().ReadyStateStallWindow
	}
	if policy.BufferStallWindow <= 0 {
		policy.BufferStallWindow = DefaultPolicy().BufferStallWindow
	}
	return &Probe{
		source: source,
		clock:  clock,
		policy: policy,
		logger: logger.WithComponent("probe"),
	}
}

// WaitUntilReady polls the source until a buffered range covers the target
// instant, a stall is detected, or maxWait elapses. The outcome is produced
// fresh for this call; all stall-tracking state is local to it.
//
// An error is returned only for source I/O failures or context cancellation.
// Classified waits (including timeouts) are outcomes, not errors.
func (p *Probe) WaitUntilReady(ctx context.Context, target float64, maxWait time.Duration) (Outcome, error) {
	start := p.clock.Now()
	deadline := start.Add(maxWait)

	// Stall-tracking state threaded through the loop. A sample counts
	// toward a stall only while its value stays unchanged, so each tracker
	// starts counting at its first observation.
	var (
		stateTracked bool
		lastState    ports.ReadyState
		stateSince   time.Time

		edgeTracked bool
		lastEdge    float64
		edgeSince   time.Time
	)

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		ranges, err := p.source.Buffered()
		if err != nil {
			return 0, fmt.Errorf("buffered ranges: %w", err)
		}
		if covers(ranges, target) {
			p.logger.Debug("Target %.3fs covered after %v", target, p.clock.Now().Sub(start))
			return OutcomeReady, nil
		}

		state, err := p.source.ReadyState()
		if err != nil {
			return 0, fmt.Errorf("ready state: %w", err)
		}

		now := p.clock.Now()
		if !stateTracked || state != lastState {
			stateTracked = true
			lastState = state
			stateSince = now
		} else if state < ports.ReadyStateCurrentData && now.Sub(stateSince) >= p.policy.ReadyStateStallWindow {
			p.logger.Debug("Ready state stuck at %s for %v", state, now.Sub(stateSince))
			return OutcomeNetworkStalled, nil
		}

		if state >= ports.ReadyStateCurrentData {
			edge := bufferedEdge(ranges, target)
			if !edgeTracked || edge != lastEdge {
				edgeTracked = true
				lastEdge = edge
				edgeSince = now
			} else if now.Sub(edgeSince) >= p.policy.BufferStallWindow {
				p.logger.Debug("Buffered edge stuck at %.3fs short of %.3fs", edge, target)
				return OutcomeBufferNotProgressing, nil
			}
		}

		remaining := deadline.Sub(now)
		if remaining <= 0 {
			return OutcomeTimedOut, nil
		}

		interval := p.policy.IdlePollInterval
		if state >= ports.ReadyStateCurrentData {
			interval = p.policy.ActivePollInterval
		}
		if interval > remaining {
			interval = remaining
		}
		if err := p.clock.Sleep(ctx, interval); err != nil {
			return 0, err
		}
	}
}

// covers reports whether any buffered range contains the target instant.
func covers(ranges []ports.TimeRange, target float64) bool {
	for _, r := range ranges {
		if r.Contains(target) {
			return true
		}
	}
	return false
}

// bufferedEdge returns the furthest buffered end that is still short of the
// target, the edge that must grow for the target to become covered. Returns
// -1 when no range has been buffered below the target yet.
func bufferedEdge(ranges []ports.TimeRange, target float64) float64 {
	edge := -1.0
	for _, r := range ranges {
		if r.End <= target && r.End > edge {
			edge = r.End
		}
	}
	return edge
}
