package ports

import (
	"image"
)

// AnimationEncoder abstracts the downstream image-sequence encoder that turns
// captured frames into an animated image. The capture engine hands frames over
// in order and makes no assumptions about the encoder's internals.
type AnimationEncoder interface {
	// Begin initializes the encoder with the frame dimensions and frame rate.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame appends a single frame at the specified timestamp.
	EncodeFrame(img image.Image, timestampMs int) error

	// End finalizes encoding and returns the animated image data.
	End() ([]byte, error)
}

// EncoderOptions configures animation encoding parameters.
type EncoderOptions struct {
	LoopCount int // Number of animation loops (0 = infinite)
	Quality   int // Encoder-specific quality knob
}
