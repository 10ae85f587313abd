// Package capture implements the frame extraction stage.
package capture

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/user/framegrab/pkg/budget"
	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/probe"
)

// ReadinessWaiter waits until the source genuinely reaches a target instant.
// Implemented by probe.Probe.
type ReadinessWaiter interface {
	WaitUntilReady(ctx context.Context, target float64, maxWait time.Duration) (probe.Outcome, error)
}

// FrameSampler reads back the source's current content as a pixel buffer.
// Implemented by sampler.Sampler.
type FrameSampler interface {
	Capture(source ports.VideoSource, width, height int) (*image.RGBA, error)
}

// Options configures the capture stage.
type Options struct {
	// MinProbeWindow is the smallest allowance that counts as a genuine
	// readiness wait. An instant with less still gets its immediate
	// coverage check, so an already-buffered target captures normally,
	// but a timeout inside such a window is reported as budget-exhausted
	// rather than a source timeout.
	MinProbeWindow time.Duration
}

// DefaultOptions returns Options matching the default probe cadence.
func DefaultOptions() Options {
	return Options{
		MinProbeWindow: probe.DefaultPolicy().ActivePollInterval,
	}
}

// Stage extracts a sequence of frames from a video source.
//
// The loop is strictly sequential: the source is a single shared mutable
// resource, so positioning, waiting, and sampling never overlap across
// instants. Frames are never dropped or duplicated by policy; identical
// consecutive frames only occur when the source is legitimately static.
type Stage struct {
	source   ports.VideoSource
	waiter   ReadinessWaiter
	sampler  FrameSampler
	clock    ports.Clock
	progress ports.ProgressSink
	sink     ports.DebugSink
	logger   ports.Logger
	opts     Options
}

// New creates a new capture stage.
func New(
	source ports.VideoSource,
	waiter ReadinessWaiter,
	sampler FrameSampler,
	clock ports.Clock,
	progress ports.ProgressSink,
	sink ports.DebugSink,
	logger ports.Logger,
	opts Options,
) *Stage {
	if opts.MinProbeWindow <= 0 {
		opts.MinProbeWindow = DefaultOptions().MinProbeWindow
	}
	return &Stage{
		source:   source,
		waiter:   waiter,
		sampler:  sampler,
		clock:    clock,
		progress: progress,
		sink:     sink,
		logger:   logger.WithComponent("capture"),
		opts:     opts,
	}
}

// Execute runs the extraction. On any failure the whole run aborts and no
// partial frame sequence is returned. The source's original position and
// playback flag are restored on every exit path, including cancellation.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{}

	total := input.Plan.FrameCount()
	if total == 0 {
		return result, fmt.Errorf("empty capture plan")
	}
	width := input.Plan.Frame.Width
	height := input.Plan.Frame.Height

	runID := uuid.NewString()
	s.logger.Debug("Run %s: %d instants at %dx%d", runID, total, width, height)

	// Snapshot the source state, then pause for deterministic sampling.
	originalPosition, err := s.source.Position()
	if err != nil {
		return result, fmt.Errorf("read original position: %w", err)
	}
	wasPaused, err := s.source.Paused()
	if err != nil {
		return result, fmt.Errorf("read playback flag: %w", err)
	}
	if err := s.source.Pause(); err != nil {
		return result, fmt.Errorf("pause source: %w", err)
	}

	// Mandatory cleanup: runs on success, failure, and cancellation.
	defer func() {
		if err := s.source.Seek(originalPosition); err != nil {
			s.logger.Warn("Failed to restore position %.3fs: %s", originalPosition, err)
		}
		if !wasPaused {
			if err := s.source.Play(); err != nil {
				s.logger.Warn("Failed to resume playback: %s", err)
			}
		}
	}()

	start := s.clock.Now()
	run := budget.New(input.TotalBudget, input.PerInstantCap)
	frames := make([]pipeline.CapturedFrame, 0, total)

	for i, target := range input.Plan.Instants {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		allowance := run.NextAllowance()
		if run.Exhausted() {
			s.logger.Debug("Run %s: budget exhausted before instant %d", runID, i)
			return result, &RunError{Reason: ReasonBudgetExhausted, Index: i, Captured: len(frames), Instant: target}
		}

		if err := s.source.Seek(target); err != nil {
			return result, fmt.Errorf("seek to %.3fs: %w", target, err)
		}

		waitStart := s.clock.Now()
		outcome, err := s.waiter.WaitUntilReady(ctx, target, allowance)
		run.Charge(s.clock.Now().Sub(waitStart))
		if err != nil {
			return result, err
		}
		if outcome != probe.OutcomeReady {
			reason := reasonFromOutcome(outcome)
			// A timeout inside a window too small for a single poll means
			// the budget ran out, not that the source was slow.
			if reason == ReasonTimedOut && allowance < s.opts.MinProbeWindow {
				reason = ReasonBudgetExhausted
			}
			s.logger.Debug("Run %s: instant %d (%.3fs) %s", runID, i, target, outcome)
			return result, &RunError{Reason: reason, Index: i, Captured: len(frames), Instant: target}
		}

		img, err := s.sampler.Capture(s.source, width, height)
		if err != nil {
			return result, fmt.Errorf("sample instant %d (%.3fs): %w", i, target, err)
		}
		actual, err := s.source.Position()
		if err != nil {
			return result, fmt.Errorf("read position after sampling: %w", err)
		}

		frames = append(frames, pipeline.CapturedFrame{
			Image:         img,
			SequenceIndex: i,
			TargetSeconds: target,
			ActualSeconds: actual,
		})

		if s.sink.Enabled() {
			if err := s.sink.SaveFrame(i, img); err != nil {
				s.logger.Warn("Failed to save debug frame %d: %s", i, err)
			}
		}

		s.progress.Publish(ports.ProgressUpdate{
			Percent: float64(i+1) / float64(total) * 100,
			Message: fmt.Sprintf("Captured frame %d of %d", i+1, total),
			Stage:   "extracting",
		})
	}

	result.Frames = frames
	result.ProcessingTime = s.clock.Now().Sub(start)
	result.BudgetConsumed = run.Consumed()
	s.logger.Debug("Run %s: captured %d frames in %v", runID, len(frames), result.ProcessingTime)
	return result, nil
}
