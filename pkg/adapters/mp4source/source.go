// Package mp4source provides a video source implementation for local MP4
// files. Metadata is read with mp4ff and frames are decoded through an
// ffmpeg subprocess.
package mp4source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"sync"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framegrab/pkg/ports"
)

// Options configures the MP4 source.
type Options struct {
	// FFmpegPath overrides the ffmpeg binary location.
	FFmpegPath string
}

// Source implements ports.VideoSource over a local MP4 file.
//
// A local file has no network to wait for, so the source reports
// ReadyStateEnoughData and a single buffered range spanning the whole
// timeline as soon as it is open. The playback position is bookkeeping
// only; Frame decodes the picture at that position on demand.
type Source struct {
	path string
	opts Options

	mu         sync.Mutex
	opened     bool
	ffmpegPath string
	duration   float64
	width      int
	height     int
	position   float64
	paused     bool
}

// New creates a Source for the MP4 file at the given path.
func New(path string, opts Options) *Source {
	return &Source{path: path, opts: opts}
}

// Open parses the file's metadata and locates ffmpeg.
func (s *Source) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return fmt.Errorf("decode mp4: %w", err)
	}

	duration, width, height, err := probeMetadata(mp4File)
	if err != nil {
		return err
	}

	ffmpegPath, err := findFFmpeg(s.opts.FFmpegPath)
	if err != nil {
		return err
	}

	s.duration = duration
	s.width = width
	s.height = height
	s.ffmpegPath = ffmpegPath
	s.position = 0
	s.paused = true
	s.opened = true
	return nil
}

// Duration returns the timeline length in seconds.
func (s *Source) Duration() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return 0, fmt.Errorf("mp4 source not open")
	}
	return s.duration, nil
}

// Position returns the current position.
func (s *Source) Position() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return 0, fmt.Errorf("mp4 source not open")
	}
	return s.position, nil
}

// Seek moves the position, clamped to the timeline.
func (s *Source) Seek(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return fmt.Errorf("mp4 source not open")
	}
	if seconds < 0 {
		seconds = 0
	}
	if seconds > s.duration {
		seconds = s.duration
	}
	s.position = seconds
	return nil
}

// NativeSize returns the intrinsic video dimensions.
func (s *Source) NativeSize() (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return 0, 0, fmt.Errorf("mp4 source not open")
	}
	return s.width, s.height, nil
}

// ReadyState reports enough-data once the file is open. A local file never
// stalls on the network.
func (s *Source) ReadyState() (ports.ReadyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return ports.ReadyStateNothing, nil
	}
	return ports.ReadyStateEnoughData, nil
}

// Buffered returns a single range covering the whole timeline.
func (s *Source) Buffered() ([]ports.TimeRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return nil, nil
	}
	return []ports.TimeRange{{Start: 0, End: s.duration}}, nil
}

// Paused reports whether playback is paused.
func (s *Source) Paused() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return false, fmt.Errorf("mp4 source not open")
	}
	return s.paused, nil
}

// Pause suspends playback.
func (s *Source) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return fmt.Errorf("mp4 source not open")
	}
	s.paused = true
	return nil
}

// Play resumes playback.
func (s *Source) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return fmt.Errorf("mp4 source not open")
	}
	s.paused = false
	return nil
}

// Frame decodes the picture at the current position using ffmpeg.
func (s *Source) Frame() (image.Image, error) {
	s.mu.Lock()
	if !s.opened {
		s.mu.Unlock()
		return nil, fmt.Errorf("mp4 source not open")
	}
	ffmpegPath := s.ffmpegPath
	position := s.position
	path := s.path
	s.mu.Unlock()

	outputFile, err := os.CreateTemp("", "mp4frame_*.png")
	if err != nil {
		return nil, fmt.Errorf("create output temp file: %w", err)
	}
	outputPath := outputFile.Name()
	outputFile.Close()
	defer os.Remove(outputPath)

	var stderr bytes.Buffer
	cmd := exec.Command(ffmpegPath,
		"-y",
		"-ss", fmt.Sprintf("%.6f", position),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2",
		outputPath,
	)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w\nstderr: %s", err, stderr.String())
	}

	imgFile, err := os.Open(outputPath)
	if err != nil {
		return nil, fmt.Errorf("open decoded image: %w", err)
	}
	defer imgFile.Close()

	img, err := png.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	return img, nil
}

// Close releases the source.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = false
	return nil
}

// probeMetadata extracts duration and video dimensions from a parsed MP4.
func probeMetadata(mp4File *mp4.File) (duration float64, width, height int, err error) {
	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return 0, 0, 0, fmt.Errorf("no moov box found")
	}

	if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		duration = float64(moov.Mvhd.Duration) / float64(moov.Mvhd.Timescale)
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Tkhd != nil {
			// Tkhd dimensions are 16.16 fixed point
			width = int(trak.Tkhd.Width >> 16)
			height = int(trak.Tkhd.Height >> 16)
		}
		// Prefer the track's own timescale for duration when available
		if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 && trak.Mdia.Mdhd.Duration > 0 {
			duration = float64(trak.Mdia.Mdhd.Duration) / float64(trak.Mdia.Mdhd.Timescale)
		}
		break
	}

	if width == 0 || height == 0 {
		return 0, 0, 0, fmt.Errorf("no video track found")
	}
	return duration, width, height, nil
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)
