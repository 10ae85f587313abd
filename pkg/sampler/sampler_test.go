package sampler

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/mocks"
	"github.com/user/framegrab/pkg/ports"
)

func TestCapture(t *testing.T) {
	// Solid red source frame at native size.
	native := image.NewRGBA(image.Rect(0, 0, 640, 360))
	for i := 0; i < len(native.Pix); i += 4 {
		native.Pix[i] = 255
		native.Pix[i+3] = 255
	}
	source := &mocks.VideoSource{
		FrameFunc: func() (image.Image, error) {
			return native, nil
		},
	}

	s := New(&mocks.Renderer{}, logger.NewNoop())
	got, err := s.Capture(source, 256, 144)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Pix) != 256*144*4 {
		t.Errorf("pixel buffer = %d bytes, want %d", len(got.Pix), 256*144*4)
	}
	r, _, _, a := got.At(128, 72).RGBA()
	if r>>8 != 255 || a>>8 != 255 {
		t.Errorf("center pixel = %v, want opaque red", got.At(128, 72))
	}
}

func TestCapture_SourceFrameError(t *testing.T) {
	frameErr := fmt.Errorf("decoder gone")
	source := &mocks.VideoSource{
		FrameFunc: func() (image.Image, error) {
			return nil, frameErr
		},
	}

	s := New(&mocks.Renderer{}, logger.NewNoop())
	_, err := s.Capture(source, 256, 144)

	var samplingErr *SamplingError
	if !errors.As(err, &samplingErr) {
		t.Fatalf("err = %v, want *SamplingError", err)
	}
	if !errors.Is(err, frameErr) {
		t.Errorf("err = %v, want wrapped frame error", err)
	}
}

func TestCapture_CanvasCreationFails(t *testing.T) {
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(width, height int, bg color.Color) ports.Canvas {
			return nil
		},
	}

	s := New(renderer, logger.NewNoop())
	_, err := s.Capture(&mocks.VideoSource{}, 256, 144)

	var samplingErr *SamplingError
	if !errors.As(err, &samplingErr) {
		t.Fatalf("err = %v, want *SamplingError", err)
	}
}

func TestCapture_InvalidDimensions(t *testing.T) {
	s := New(&mocks.Renderer{}, logger.NewNoop())
	if _, err := s.Capture(&mocks.VideoSource{}, 0, 144); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := s.Capture(&mocks.VideoSource{}, 256, -1); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestCapture_IdenticalContentIsNotAnError(t *testing.T) {
	source := &mocks.VideoSource{}
	s := New(&mocks.Renderer{}, logger.NewNoop())

	first, err := s.Capture(source, 64, 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Capture(source, 64, 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Pix) != len(second.Pix) {
		t.Fatal("buffers should be the same size")
	}
	// Identical pixel content across captures is a legitimate result.
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatal("expected identical buffers from a static source")
		}
	}
}
