// Package plan implements the capture planning stage.
package plan

import (
	"context"
	"fmt"
	"math"

	"github.com/user/framegrab/pkg/pipeline"
)

// ValidationError reports a bad capture request. Validation fails fast,
// before any interaction with the video source, and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid capture request: %s: %s", e.Field, e.Reason)
}

// Stage computes the capture plan for a request.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new plan stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute computes the plan based on the input parameters.
func (s *Stage) Execute(ctx context.Context, input pipeline.PlanInput) (pipeline.PlanResult, error) {
	return ComputePlan(input)
}

// ComputePlan derives the ordered target instants and output dimensions.
// This is exposed as a standalone function for testing and reuse.
//
// The frame count is ceil(duration * frameRate) with no artificial upper
// cap; the instants are evenly spaced and the last one is clamped to the
// end of the window, never past it.
func ComputePlan(input pipeline.PlanInput) (pipeline.PlanResult, error) {
	if err := validate(input); err != nil {
		return pipeline.PlanResult{}, err
	}

	duration := input.EndSeconds - input.StartSeconds
	frameCount := int(math.Ceil(duration * input.FrameRate))
	if frameCount <= 0 {
		// Rounding to zero frames is an error, not a silent no-op.
		return pipeline.PlanResult{}, &ValidationError{Field: "frameRate", Reason: "window rounds to zero frames"}
	}
	interval := duration / float64(frameCount)

	instants := make([]float64, frameCount)
	for i := 0; i < frameCount; i++ {
		t := input.StartSeconds + float64(i)*interval
		if t > input.EndSeconds {
			t = input.EndSeconds
		}
		instants[i] = t
	}

	return pipeline.PlanResult{
		Instants:        instants,
		IntervalSeconds: interval,
		Frame:           computeDimensions(input),
	}, nil
}

// computeDimensions locks the output to the target height and scales the
// width by the source's native aspect ratio, rounding both to the nearest
// even integer as the downstream encoder requires. This is the single
// scaling pass: the quality tier selected the target height upstream and
// nothing rescales after this.
func computeDimensions(input pipeline.PlanInput) pipeline.Dimension {
	aspect := float64(input.NativeWidth) / float64(input.NativeHeight)
	height := roundEven(float64(input.TargetHeight))
	width := roundEven(aspect * float64(height))
	if width < 2 {
		width = 2
	}
	return pipeline.Dimension{Width: width, Height: height}
}

// roundEven rounds to the nearest even integer.
func roundEven(v float64) int {
	return int(math.Round(v/2)) * 2
}

func validate(input pipeline.PlanInput) error {
	if input.EndSeconds <= input.StartSeconds {
		return &ValidationError{Field: "endSeconds", Reason: "must be later than startSeconds"}
	}
	if input.StartSeconds < 0 {
		return &ValidationError{Field: "startSeconds", Reason: "must not be negative"}
	}
	if input.FrameRate <= 0 {
		return &ValidationError{Field: "frameRate", Reason: "must be positive"}
	}
	if input.TargetHeight <= 0 {
		return &ValidationError{Field: "targetHeight", Reason: "must be positive"}
	}
	if input.NativeHeight <= 0 || input.NativeWidth <= 0 {
		// A zero native size means the source has not loaded its
		// metadata. That is a caller precondition, not something the
		// planner waits out.
		return &ValidationError{Field: "nativeSize", Reason: "source dimensions not available"}
	}
	return nil
}
