// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"image"

	"github.com/user/framegrab/pkg/ports"
)

// VideoSource is a mock implementation of ports.VideoSource.
//
// By default it behaves as a fully buffered, paused 60-second source at
// 640x360 whose every position is immediately ready. Individual behaviors
// are overridden through the Func fields.
type VideoSource struct {
	OpenFunc       func(ctx context.Context) error
	DurationFunc   func() (float64, error)
	PositionFunc   func() (float64, error)
	SeekFunc       func(seconds float64) error
	NativeSizeFunc func() (int, int, error)
	ReadyStateFunc func() (ports.ReadyState, error)
	BufferedFunc   func() ([]ports.TimeRange, error)
	PausedFunc     func() (bool, error)
	PauseFunc      func() error
	PlayFunc       func() error
	FrameFunc      func() (image.Image, error)
	CloseFunc      func() error

	// State tracked by the default implementations, handy for verifying
	// restoration behavior.
	CurrentPosition float64
	Playing         bool
	SeekLog         []float64
	PauseCalls      int
	PlayCalls       int
}

func (m *VideoSource) Open(ctx context.Context) error {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx)
	}
	return nil
}

func (m *VideoSource) Duration() (float64, error) {
	if m.DurationFunc != nil {
		return m.DurationFunc()
	}
	return 60, nil
}

func (m *VideoSource) Position() (float64, error) {
	if m.PositionFunc != nil {
		return m.PositionFunc()
	}
	return m.CurrentPosition, nil
}

func (m *VideoSource) Seek(seconds float64) error {
	m.SeekLog = append(m.SeekLog, seconds)
	if m.SeekFunc != nil {
		return m.SeekFunc(seconds)
	}
	m.CurrentPosition = seconds
	return nil
}

func (m *VideoSource) NativeSize() (int, int, error) {
	if m.NativeSizeFunc != nil {
		return m.NativeSizeFunc()
	}
	return 640, 360, nil
}

func (m *VideoSource) ReadyState() (ports.ReadyState, error) {
	if m.ReadyStateFunc != nil {
		return m.ReadyStateFunc()
	}
	return ports.ReadyStateEnoughData, nil
}

func (m *VideoSource) Buffered() ([]ports.TimeRange, error) {
	if m.BufferedFunc != nil {
		return m.BufferedFunc()
	}
	return []ports.TimeRange{{Start: 0, End: 60}}, nil
}

func (m *VideoSource) Paused() (bool, error) {
	if m.PausedFunc != nil {
		return m.PausedFunc()
	}
	return !m.Playing, nil
}

func (m *VideoSource) Pause() error {
	m.PauseCalls++
	if m.PauseFunc != nil {
		return m.PauseFunc()
	}
	m.Playing = false
	return nil
}

func (m *VideoSource) Play() error {
	m.PlayCalls++
	if m.PlayFunc != nil {
		return m.PlayFunc()
	}
	m.Playing = true
	return nil
}

func (m *VideoSource) Frame() (image.Image, error) {
	if m.FrameFunc != nil {
		return m.FrameFunc()
	}
	return image.NewRGBA(image.Rect(0, 0, 640, 360)), nil
}

func (m *VideoSource) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure VideoSource implements ports.VideoSource
var _ ports.VideoSource = (*VideoSource)(nil)
