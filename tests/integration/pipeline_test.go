// Package integration contains integration tests for the framegrab pipeline.
package integration

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/user/framegrab/pkg/adapters/ggrenderer"
	"github.com/user/framegrab/pkg/adapters/gifencoder"
	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/mocks"
	"github.com/user/framegrab/pkg/orchestrator"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/probe"
	"github.com/user/framegrab/pkg/sampler"
	"github.com/user/framegrab/pkg/stages/assemble"
	"github.com/user/framegrab/pkg/stages/capture"
	"github.com/user/framegrab/pkg/stages/plan"
)

// positionedSource returns a mock source whose frame content depends on the
// current position, so extracted frames are distinguishable.
func positionedSource() *mocks.VideoSource {
	source := &mocks.VideoSource{}
	source.FrameFunc = func() (image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, 640, 360))
		level := uint8(source.CurrentPosition * 4)
		c := color.RGBA{level, level, level, 255}
		for y := 0; y < 360; y++ {
			for x := 0; x < 640; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		return img, nil
	}
	return source
}

func newOrchestrator(source *mocks.VideoSource, fs *mocks.FileSystem, sink *mocks.DebugSink) *orchestrator.Orchestrator {
	log := logger.NewNoop()
	clock := mocks.NewClock()
	renderer := ggrenderer.New()

	waiter := probe.New(source, clock, log, probe.DefaultPolicy())
	frameSampler := sampler.New(renderer, log)

	planStage := plan.NewStage()
	captureStage := capture.New(source, waiter, frameSampler, clock, ports.NoopProgress{}, sink, log, capture.DefaultOptions())
	assembleStage := assemble.NewStage(gifencoder.New())

	return orchestrator.New(source, planStage, captureStage, assembleStage, fs, sink, log)
}

// TestExtractionPipeline runs plan → capture → assemble end to end against a
// fully buffered source and verifies the output animation.
func TestExtractionPipeline(t *testing.T) {
	source := positionedSource()
	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink(false)
	orch := newOrchestrator(source, fs, sink)

	cfg := orchestrator.DefaultConfig()
	cfg.OutputPath = "out.gif"
	cfg.EndSeconds = 10
	cfg.FrameRate = 0.5
	cfg.TargetHeight = 90

	result, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// ceil(10s x 0.5fps) = 5 frames
	if result.FrameCount != 5 {
		t.Errorf("frame count = %d, want 5", result.FrameCount)
	}
	if result.ActualFrameRate != 0.5 {
		t.Errorf("actual frame rate = %v, want 0.5", result.ActualFrameRate)
	}
	if result.Width != 160 || result.Height != 90 {
		t.Errorf("dimensions = %dx%d, want 160x90", result.Width, result.Height)
	}

	data, ok := fs.GetFile("out.gif")
	if !ok {
		t.Fatal("output file not written")
	}
	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded.Image) != 5 {
		t.Errorf("decoded frame count = %d, want 5", len(decoded.Image))
	}
	bounds := decoded.Image[0].Bounds()
	if bounds.Dx() != 160 || bounds.Dy() != 90 {
		t.Errorf("decoded size = %dx%d, want 160x90", bounds.Dx(), bounds.Dy())
	}

	// Source must end up back at its original position
	if source.CurrentPosition != 0 {
		t.Errorf("source position = %v, want restored to 0", source.CurrentPosition)
	}
	if source.Playing {
		t.Error("paused source must stay paused after the run")
	}
}

// TestExtractionPipeline_PartialBufferFails verifies that a source whose
// buffer stops short of later instants aborts the whole run with no output.
func TestExtractionPipeline_PartialBufferFails(t *testing.T) {
	source := positionedSource()
	source.BufferedFunc = func() ([]ports.TimeRange, error) {
		return []ports.TimeRange{{Start: 0, End: 2}}, nil
	}

	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink(false)
	orch := newOrchestrator(source, fs, sink)

	cfg := orchestrator.DefaultConfig()
	cfg.OutputPath = "out.gif"
	cfg.EndSeconds = 10
	cfg.FrameRate = 0.5
	cfg.TargetHeight = 90

	_, err := orch.Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected run to fail")
	}

	var runErr *capture.RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if runErr.Reason != capture.ReasonBufferNotProgressing {
		t.Errorf("reason = %v, want buffer-not-progressing", runErr.Reason)
	}
	// Instants 0s and 2s are buffered; the 4s instant stalls
	if runErr.Captured != 2 {
		t.Errorf("captured = %d, want 2", runErr.Captured)
	}

	if _, ok := fs.GetFile("out.gif"); ok {
		t.Error("no output should be written on failure")
	}
	if source.CurrentPosition != 0 {
		t.Errorf("source position = %v, want restored to 0", source.CurrentPosition)
	}
}

// TestExtractionPipeline_DebugSink verifies plan and run reports plus frame
// dumps are produced when the sink is enabled.
func TestExtractionPipeline_DebugSink(t *testing.T) {
	source := positionedSource()
	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink(true)
	orch := newOrchestrator(source, fs, sink)

	cfg := orchestrator.DefaultConfig()
	cfg.OutputPath = "out.gif"
	cfg.EndSeconds = 4
	cfg.FrameRate = 0.5
	cfg.TargetHeight = 90

	if _, err := orch.Run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sink.PlanJSON) == 0 {
		t.Error("expected plan JSON")
	}
	if len(sink.RunJSON) == 0 {
		t.Error("expected run JSON")
	}
	if len(sink.Frames) != 2 {
		t.Errorf("saved frames = %d, want 2", len(sink.Frames))
	}
}
