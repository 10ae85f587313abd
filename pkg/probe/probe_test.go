package probe

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/mocks"
	"github.com/user/framegrab/pkg/ports"
)

func newTestProbe(source *mocks.VideoSource, clock *mocks.Clock) *Probe {
	return New(source, clock, logger.NewNoop(), DefaultPolicy())
}

func TestWaitUntilReady_CoveredImmediately(t *testing.T) {
	source := &mocks.VideoSource{
		BufferedFunc: func() ([]ports.TimeRange, error) {
			return []ports.TimeRange{{Start: 0, End: 30}}, nil
		},
	}
	clock := mocks.NewClock()

	outcome, err := newTestProbe(source, clock).WaitUntilReady(context.Background(), 12.5, 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeReady {
		t.Errorf("outcome = %s, want ready", outcome)
	}
	if len(clock.Slept) != 0 {
		t.Errorf("expected no polling sleeps for an already covered target, got %d", len(clock.Slept))
	}
}

func TestWaitUntilReady_CoveredAfterGrowth(t *testing.T) {
	end := 1.0
	source := &mocks.VideoSource{
		BufferedFunc: func() ([]ports.TimeRange, error) {
			return []ports.TimeRange{{Start: 0, End: end}}, nil
		},
	}
	clock := mocks.NewClock()
	clock.OnSleep = func(d time.Duration) {
		// Buffer grows while the probe waits.
		end += 0.75
	}

	outcome, err := newTestProbe(source, clock).WaitUntilReady(context.Background(), 1.5, 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeReady {
		t.Errorf("outcome = %s, want ready", outcome)
	}
	if len(clock.Slept) == 0 {
		t.Error("expected at least one polling sleep before coverage")
	}
}

func TestWaitUntilReady_NetworkStalled(t *testing.T) {
	source := &mocks.VideoSource{
		BufferedFunc: func() ([]ports.TimeRange, error) {
			return nil, nil
		},
		ReadyStateFunc: func() (ports.ReadyState, error) {
			return ports.ReadyStateMetadata, nil
		},
	}
	clock := mocks.NewClock()

	outcome, err := newTestProbe(source, clock).WaitUntilReady(context.Background(), 5, 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeNetworkStalled {
		t.Errorf("outcome = %s, want network-stalled", outcome)
	}
}

func TestWaitUntilReady_BufferNotProgressing(t *testing.T) {
	source := &mocks.VideoSource{
		BufferedFunc: func() ([]ports.TimeRange, error) {
			// Frozen short of the target.
			return []ports.TimeRange{{Start: 0, End: 2}}, nil
		},
	}
	clock := mocks.NewClock()

	outcome, err := newTestProbe(source, clock).WaitUntilReady(context.Background(), 5, 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeBufferNotProgressing {
		t.Errorf("outcome = %s, want buffer-not-progressing", outcome)
	}
}

func TestWaitUntilReady_TimedOut(t *testing.T) {
	end := 0.0
	source := &mocks.VideoSource{
		BufferedFunc: func() ([]ports.TimeRange, error) {
			// Keeps growing but never reaches the target, so neither
			// stall detector fires before the deadline.
			end += 0.01
			return []ports.TimeRange{{Start: 0, End: end}}, nil
		},
	}
	clock := mocks.NewClock()

	outcome, err := newTestProbe(source, clock).WaitUntilReady(context.Background(), 100, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeTimedOut {
		t.Errorf("outcome = %s, want timed-out", outcome)
	}
}

func TestWaitUntilReady_AdaptiveCadence(t *testing.T) {
	source := &mocks.VideoSource{
		BufferedFunc: func() ([]ports.TimeRange, error) {
			return nil, nil
		},
		ReadyStateFunc: func() (ports.ReadyState, error) {
			return ports.ReadyStateNothing, nil
		},
	}
	clock := mocks.NewClock()
	policy := DefaultPolicy()

	outcome, err := New(source, clock, logger.NewNoop(), policy).WaitUntilReady(context.Background(), 5, 3*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeNetworkStalled {
		t.Fatalf("outcome = %s, want network-stalled", outcome)
	}
	for i, d := range clock.Slept {
		if d != policy.IdlePollInterval {
			t.Errorf("sleep %d = %v, want idle interval %v while completely unready", i, d, policy.IdlePollInterval)
		}
	}
}

func TestWaitUntilReady_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	source := &mocks.VideoSource{
		BufferedFunc: func() ([]ports.TimeRange, error) {
			calls++
			if calls == 2 {
				cancel()
			}
			return nil, nil
		},
	}
	clock := mocks.NewClock()

	_, err := newTestProbe(source, clock).WaitUntilReady(ctx, 5, 3*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestWaitUntilReady_SourceError(t *testing.T) {
	sourceErr := fmt.Errorf("connection reset")
	source := &mocks.VideoSource{
		BufferedFunc: func() ([]ports.TimeRange, error) {
			return nil, sourceErr
		},
	}
	clock := mocks.NewClock()

	_, err := newTestProbe(source, clock).WaitUntilReady(context.Background(), 5, 3*time.Second)
	if !errors.Is(err, sourceErr) {
		t.Errorf("err = %v, want wrapped source error", err)
	}
}

func TestBufferedEdge(t *testing.T) {
	ranges := []ports.TimeRange{
		{Start: 0, End: 3},
		{Start: 8, End: 12},
		{Start: 4, End: 6},
	}

	if got := bufferedEdge(ranges, 7); got != 6 {
		t.Errorf("bufferedEdge(7) = %v, want 6", got)
	}
	if got := bufferedEdge(nil, 7); got != -1 {
		t.Errorf("bufferedEdge with no ranges = %v, want -1", got)
	}
}
