// Package sampler turns a positioned video source into a fixed-size pixel buffer.
package sampler

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/user/framegrab/pkg/ports"
)

// SamplingError reports a drawable-surface or readback failure. Sampling
// failures are fatal to the run; retrying the same draw without fixing
// readiness first would not produce a different result.
type SamplingError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *SamplingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sampling failed: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sampling failed: %s", e.Op)
}

// Unwrap returns the underlying cause, if any.
func (e *SamplingError) Unwrap() error {
	return e.Err
}

// Sampler draws the current visual content of a video source onto a fresh
// canvas and reads back raw RGBA samples.
//
// The sampler performs no comparison against prior frames. A source that
// genuinely does not change between instants yields identical buffers, and
// that is the expected outcome for static content, not a condition this
// component detects or reports.
type Sampler struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// New creates a Sampler using the given renderer.
func New(renderer ports.Renderer, logger ports.Logger) *Sampler {
	return &Sampler{
		renderer: renderer,
		logger:   logger.WithComponent("sampler"),
	}
}

// Capture reads the source's current frame scaled to (width, height).
// The returned image's Pix slice is the width x height x 4 pixel buffer.
// It fails loudly rather than substituting a blank buffer.
func (s *Sampler) Capture(source ports.VideoSource, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, &SamplingError{Op: fmt.Sprintf("invalid dimensions %dx%d", width, height)}
	}

	frame, err := source.Frame()
	if err != nil {
		return nil, &SamplingError{Op: "read source frame", Err: err}
	}
	if frame == nil {
		return nil, &SamplingError{Op: "read source frame: no image"}
	}

	canvas := s.renderer.CreateCanvas(width, height, color.Black)
	if canvas == nil {
		return nil, &SamplingError{Op: fmt.Sprintf("create %dx%d canvas", width, height)}
	}
	canvas.DrawImageScaled(frame, 0, 0, width, height)

	out := canvas.ToImage()
	if out == nil {
		return nil, &SamplingError{Op: "read back canvas"}
	}

	rgba := toRGBA(out, width, height)
	if len(rgba.Pix) != width*height*4 {
		return nil, &SamplingError{Op: fmt.Sprintf("pixel buffer is %d bytes, want %d", len(rgba.Pix), width*height*4)}
	}

	s.logger.Debug("Sampled %dx%d frame", width, height)
	return rgba, nil
}

// toRGBA normalizes the canvas readback to a tightly packed RGBA image of
// the requested size.
func toRGBA(img image.Image, width, height int) *image.RGBA {
	bounds := image.Rect(0, 0, width, height)
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds() == bounds && rgba.Stride == 4*width {
		return rgba
	}
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, img.Bounds().Min, draw.Src)
	return dst
}
