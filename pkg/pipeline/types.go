package pipeline

import (
	"image"
	"time"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// CapturedFrame is a single extracted frame. The pixel buffer is the RGBA
// Pix slice of Image (width x height x 4 samples). Frames are owned by the
// run that produced them until handed to the caller and are immutable after
// creation.
type CapturedFrame struct {
	Image         *image.RGBA
	SequenceIndex int
	TargetSeconds float64 // The instant the frame was scheduled for
	ActualSeconds float64 // The source position at the moment of sampling
}

// =============================================================================
// Plan Stage Types
// =============================================================================

// PlanInput contains parameters for capture planning.
type PlanInput struct {
	StartSeconds float64 // Capture window start on the source timeline
	EndSeconds   float64 // Capture window end, must be later than start
	FrameRate    float64 // Frames per second of source time, must be positive

	// TargetHeight is the output frame height. The quality tier selects it
	// before planning; the planner applies exactly one scaling pass and
	// never rescales.
	TargetHeight int

	// NativeWidth and NativeHeight are the source's intrinsic dimensions.
	// A zero native height means metadata is not loaded yet, which is a
	// precondition violation rather than something the planner retries.
	NativeWidth  int
	NativeHeight int
}

// PlanResult contains the computed capture plan.
type PlanResult struct {
	// Instants are the ordered target times to capture, in seconds.
	// The last instant is clamped to EndSeconds, never past it.
	Instants []float64

	// IntervalSeconds is the spacing between instants.
	IntervalSeconds float64

	// Frame holds the output dimensions. Both are even integers; the
	// height equals the requested target height.
	Frame Dimension
}

// FrameCount returns the number of planned instants.
func (r PlanResult) FrameCount() int {
	return len(r.Instants)
}

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput contains parameters for the extraction run.
type CaptureInput struct {
	Plan PlanResult

	// TotalBudget is the wall-clock allowance for the whole run.
	TotalBudget time.Duration

	// PerInstantCap bounds how long a single instant may wait for
	// readiness, so one instant cannot starve the rest of the run.
	PerInstantCap time.Duration
}

// CaptureResult contains the extraction output.
type CaptureResult struct {
	Frames         []CapturedFrame
	ProcessingTime time.Duration
	BudgetConsumed time.Duration
}

// =============================================================================
// Assemble Stage Types
// =============================================================================

// AssembleInput contains parameters for animated-image assembly.
type AssembleInput struct {
	Frames    []CapturedFrame
	FrameRate float64 // Playback rate of the assembled animation
	LoopCount int     // 0 = loop forever
	Quality   int     // Encoder-specific quality knob
}

// AssembleResult contains the assembled animation.
type AssembleResult struct {
	Data       []byte
	DurationMs int
	FileSize   int64
}
