// Package summarizer provides summary generation for extraction results.
package summarizer

import "time"

// Summary contains all data collected during an extraction run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source information
	Source SourceInfo

	// Capture window settings
	Window WindowInfo

	// Capture results
	Capture CaptureInfo

	// Animation output details
	Animation AnimationInfo
}

// SourceInfo describes the video the frames were extracted from.
type SourceInfo struct {
	Path            string
	DurationSeconds float64
	NativeWidth     int
	NativeHeight    int
}

// WindowInfo describes the capture window and sampling rate.
type WindowInfo struct {
	StartSeconds float64
	EndSeconds   float64
	FrameRate    float64
}

// CaptureInfo contains the extraction measurements.
type CaptureInfo struct {
	FrameCount       int
	ActualFrameRate  float64
	IntervalSeconds  float64
	ProcessingTimeMs int64
	BudgetConsumedMs int64
}

// AnimationInfo contains information about the output animation.
type AnimationInfo struct {
	Width      int
	Height     int
	DurationMs int
	FileSize   int64
	LoopCount  int
	OutputPath string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets source information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithWindow sets the capture window.
func (b *Builder) WithWindow(start, end, rate float64) *Builder {
	b.summary.Window = WindowInfo{
		StartSeconds: start,
		EndSeconds:   end,
		FrameRate:    rate,
	}
	return b
}

// WithCapture sets the extraction measurements.
func (b *Builder) WithCapture(capture CaptureInfo) *Builder {
	b.summary.Capture = capture
	return b
}

// WithAnimation sets animation output information.
func (b *Builder) WithAnimation(animation AnimationInfo) *Builder {
	b.summary.Animation = animation
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
