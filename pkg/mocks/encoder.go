package mocks

import (
	"image"

	"github.com/user/framegrab/pkg/ports"
)

// AnimationEncoder is a mock implementation of ports.AnimationEncoder.
type AnimationEncoder struct {
	BeginFunc       func(width, height int, fps float64, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image, timestampMs int) error
	EndFunc         func() ([]byte, error)

	BeginCalls  int
	FrameCount  int
	Timestamps  []int
	EndedResult []byte
}

func (m *AnimationEncoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	m.BeginCalls++
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, fps, opts)
	}
	return nil
}

func (m *AnimationEncoder) EncodeFrame(img image.Image, timestampMs int) error {
	m.FrameCount++
	m.Timestamps = append(m.Timestamps, timestampMs)
	if m.EncodeFrameFunc != nil {
		return m.EncodeFrameFunc(img, timestampMs)
	}
	return nil
}

func (m *AnimationEncoder) End() ([]byte, error) {
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	if m.EndedResult != nil {
		return m.EndedResult, nil
	}
	return []byte("animation"), nil
}

var _ ports.AnimationEncoder = (*AnimationEncoder)(nil)
