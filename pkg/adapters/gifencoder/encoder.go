// Package gifencoder provides an animation encoder that assembles captured
// frames into an animated GIF.
package gifencoder

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"

	"github.com/user/framegrab/pkg/ports"
)

// Encoder implements ports.AnimationEncoder producing animated GIF output.
//
// Frames are quantized to the Plan 9 palette with Floyd-Steinberg dithering.
// GIF has no quality knob, so EncoderOptions.Quality is ignored.
type Encoder struct {
	width    int
	height   int
	delay    int
	opts     ports.EncoderOptions
	anim     *gif.GIF
	began    bool
	finished bool
}

// New creates a new Encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin initializes the encoder for a new animation.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	if e.began && !e.finished {
		return fmt.Errorf("encoder already active")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate %v", fps)
	}

	// GIF delays are in hundredths of a second
	delay := int(math.Round(100 / fps))
	if delay < 1 {
		delay = 1
	}

	e.width = width
	e.height = height
	e.delay = delay
	e.opts = opts
	e.anim = &gif.GIF{LoopCount: opts.LoopCount}
	e.began = true
	e.finished = false
	return nil
}

// EncodeFrame appends a frame to the animation. The timestamp is informational
// for GIF output; frames play back at the uniform rate given to Begin.
func (e *Encoder) EncodeFrame(img image.Image, timestampMs int) error {
	if !e.began || e.finished {
		return fmt.Errorf("encoder not active")
	}

	bounds := img.Bounds()
	if bounds.Dx() != e.width || bounds.Dy() != e.height {
		return fmt.Errorf("frame size %dx%d does not match animation size %dx%d",
			bounds.Dx(), bounds.Dy(), e.width, e.height)
	}

	paletted := image.NewPaletted(image.Rect(0, 0, e.width, e.height), palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), img, bounds.Min)

	e.anim.Image = append(e.anim.Image, paletted)
	e.anim.Delay = append(e.anim.Delay, e.delay)
	return nil
}

// End finalizes the animation and returns the encoded GIF bytes.
func (e *Encoder) End() ([]byte, error) {
	if !e.began || e.finished {
		return nil, fmt.Errorf("encoder not active")
	}
	if len(e.anim.Image) == 0 {
		return nil, fmt.Errorf("no frames encoded")
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, e.anim); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}

	e.finished = true
	e.anim = nil
	return buf.Bytes(), nil
}

// Ensure Encoder implements ports.AnimationEncoder
var _ ports.AnimationEncoder = (*Encoder)(nil)
