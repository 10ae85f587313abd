// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"image"
)

// ReadyState describes how much decoded data a video source holds for its
// current position. The levels mirror the HTMLMediaElement readyState model.
type ReadyState int

const (
	// ReadyStateNothing means no information about the media is available.
	ReadyStateNothing ReadyState = iota
	// ReadyStateMetadata means duration and dimensions are known.
	ReadyStateMetadata
	// ReadyStateCurrentData means the frame at the current position is decoded.
	ReadyStateCurrentData
	// ReadyStateFutureData means at least the next frame is also decoded.
	ReadyStateFutureData
	// ReadyStateEnoughData means playback can proceed without stalling.
	ReadyStateEnoughData
)

// String returns the string representation of the ready state.
func (s ReadyState) String() string {
	switch s {
	case ReadyStateNothing:
		return "nothing"
	case ReadyStateMetadata:
		return "metadata"
	case ReadyStateCurrentData:
		return "current-data"
	case ReadyStateFutureData:
		return "future-data"
	case ReadyStateEnoughData:
		return "enough-data"
	default:
		return "unknown"
	}
}

// TimeRange is a contiguous interval of the timeline, in seconds, for which
// decoded or downloaded data is known to exist.
type TimeRange struct {
	Start float64
	End   float64
}

// Contains reports whether the range covers the given position.
func (r TimeRange) Contains(position float64) bool {
	return position >= r.Start && position <= r.End
}

// VideoSource abstracts a decodable, seekable media timeline.
//
// Positioning a source is inherently asynchronous: after Seek the source may
// need to fetch and decode data before the requested position is actually
// available. Callers observe that through ReadyState and Buffered rather than
// through Seek itself.
type VideoSource interface {
	// Open prepares the source for use.
	Open(ctx context.Context) error

	// Duration returns the total length of the timeline in seconds.
	Duration() (float64, error)

	// Position returns the current playback position in seconds.
	Position() (float64, error)

	// Seek requests repositioning to the given time in seconds.
	// The data at that position may not be available yet when Seek returns.
	Seek(seconds float64) error

	// NativeSize returns the intrinsic pixel dimensions of the video.
	// A zero height means the source has not loaded its metadata yet.
	NativeSize() (width, height int, err error)

	// ReadyState returns the current decode-readiness level.
	ReadyState() (ReadyState, error)

	// Buffered returns the time ranges for which data is available.
	Buffered() ([]TimeRange, error)

	// Paused reports whether playback is currently paused.
	Paused() (bool, error)

	// Pause suspends playback so the position stays fixed while sampling.
	Pause() error

	// Play resumes playback.
	Play() error

	// Frame returns the decoded image at the current position.
	Frame() (image.Image, error)

	// Close releases the source.
	Close() error
}
