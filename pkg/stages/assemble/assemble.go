// Package assemble implements the animated-image assembly stage.
package assemble

import (
	"context"
	"fmt"

	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
)

// Stage hands captured frames to the downstream animation encoder.
// The frame sequence is consumed verbatim: no frame is dropped, reordered,
// or deduplicated here.
type Stage struct {
	encoder ports.AnimationEncoder
}

// NewStage creates a new assemble stage.
func NewStage(encoder ports.AnimationEncoder) *Stage {
	return &Stage{
		encoder: encoder,
	}
}

// Execute encodes all frames into an animated image.
func (s *Stage) Execute(ctx context.Context, input pipeline.AssembleInput) (pipeline.AssembleResult, error) {
	result := pipeline.AssembleResult{}

	if len(input.Frames) == 0 {
		return result, fmt.Errorf("no frames to assemble")
	}
	if input.FrameRate <= 0 {
		return result, fmt.Errorf("frame rate must be positive")
	}

	// Dimensions come from the first frame; the capture plan guarantees
	// every frame shares them.
	bounds := input.Frames[0].Image.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	opts := ports.EncoderOptions{
		LoopCount: input.LoopCount,
		Quality:   input.Quality,
	}
	if err := s.encoder.Begin(width, height, input.FrameRate, opts); err != nil {
		return result, fmt.Errorf("begin assembly: %w", err)
	}

	frameDurationMs := 1000 / input.FrameRate
	for i, frame := range input.Frames {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		timestampMs := int(float64(i) * frameDurationMs)
		if err := s.encoder.EncodeFrame(frame.Image, timestampMs); err != nil {
			return result, fmt.Errorf("encode frame %d: %w", frame.SequenceIndex, err)
		}
	}

	data, err := s.encoder.End()
	if err != nil {
		return result, fmt.Errorf("end assembly: %w", err)
	}

	result.Data = data
	result.DurationMs = int(float64(len(input.Frames)) * frameDurationMs)
	result.FileSize = int64(len(data))
	return result, nil
}
