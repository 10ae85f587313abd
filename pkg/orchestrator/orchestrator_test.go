package orchestrator

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/mocks"
	"github.com/user/framegrab/pkg/pipeline"
)

// mockPlanStage is a mock for the plan stage.
type mockPlanStage struct {
	result pipeline.PlanResult
	input  pipeline.PlanInput
	err    error
}

func (m *mockPlanStage) Execute(ctx context.Context, input pipeline.PlanInput) (pipeline.PlanResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.PlanResult{}, m.err
	}
	return m.result, nil
}

// mockCaptureStage is a mock for the capture stage.
type mockCaptureStage struct {
	result pipeline.CaptureResult
	err    error
}

func (m *mockCaptureStage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	if m.err != nil {
		return pipeline.CaptureResult{}, m.err
	}
	return m.result, nil
}

// mockAssembleStage is a mock for the assemble stage.
type mockAssembleStage struct {
	result pipeline.AssembleResult
	err    error
}

func (m *mockAssembleStage) Execute(ctx context.Context, input pipeline.AssembleInput) (pipeline.AssembleResult, error) {
	if m.err != nil {
		return pipeline.AssembleResult{}, m.err
	}
	return m.result, nil
}

func testStages() (*mockPlanStage, *mockCaptureStage, *mockAssembleStage) {
	planStage := &mockPlanStage{
		result: pipeline.PlanResult{
			Instants:        []float64{0, 2, 4, 6, 8},
			IntervalSeconds: 2,
			Frame:           pipeline.Dimension{Width: 426, Height: 240},
		},
	}

	frames := make([]pipeline.CapturedFrame, 5)
	for i := range frames {
		frames[i] = pipeline.CapturedFrame{
			Image:         image.NewRGBA(image.Rect(0, 0, 426, 240)),
			SequenceIndex: i,
			TargetSeconds: float64(i * 2),
			ActualSeconds: float64(i * 2),
		}
	}
	captureStage := &mockCaptureStage{
		result: pipeline.CaptureResult{
			Frames:         frames,
			ProcessingTime: 1500 * time.Millisecond,
			BudgetConsumed: 800 * time.Millisecond,
		},
	}

	assembleStage := &mockAssembleStage{
		result: pipeline.AssembleResult{
			Data:       []byte{0x47, 0x49, 0x46, 0x38}, // GIF bytes
			DurationMs: 10000,
			FileSize:   4,
		},
	}

	return planStage, captureStage, assembleStage
}

func TestOrchestrator_Run(t *testing.T) {
	planStage, captureStage, assembleStage := testStages()
	source := &mocks.VideoSource{}
	mockFS := mocks.NewFileSystem()
	mockSink := mocks.NewDebugSink(false)

	orch := New(source, planStage, captureStage, assembleStage, mockFS, mockSink, logger.NewNoop())

	config := DefaultConfig()
	config.OutputPath = "output.gif"
	config.EndSeconds = 10
	config.FrameRate = 0.5

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := mockFS.GetFile("output.gif")
	if !ok {
		t.Fatal("expected output file to be written")
	}
	if len(data) == 0 {
		t.Error("expected file to have content")
	}

	if result.FrameCount != 5 {
		t.Errorf("frame count = %d, want 5", result.FrameCount)
	}
	// 5 frames over a 10s window
	if result.ActualFrameRate != 0.5 {
		t.Errorf("actual frame rate = %v, want 0.5", result.ActualFrameRate)
	}
	if result.NativeWidth != 640 || result.NativeHeight != 360 {
		t.Errorf("native size = %dx%d, want 640x360", result.NativeWidth, result.NativeHeight)
	}
	if result.Width != 426 || result.Height != 240 {
		t.Errorf("dimensions = %dx%d, want 426x240", result.Width, result.Height)
	}
	if result.FileSize != 4 {
		t.Errorf("file size = %d, want 4", result.FileSize)
	}
	if result.BudgetConsumedMs != 800 {
		t.Errorf("budget consumed = %d ms, want 800", result.BudgetConsumedMs)
	}
}

func TestOrchestrator_Run_DefaultsWindowToDuration(t *testing.T) {
	planStage, captureStage, assembleStage := testStages()
	source := &mocks.VideoSource{} // 60s duration
	mockFS := mocks.NewFileSystem()

	orch := New(source, planStage, captureStage, assembleStage, mockFS, mocks.NewDebugSink(false), logger.NewNoop())

	config := DefaultConfig()
	config.OutputPath = "output.gif"
	// EndSeconds left at zero

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if planStage.input.EndSeconds != 60 {
		t.Errorf("plan end = %v, want source duration 60", planStage.input.EndSeconds)
	}
}

func TestOrchestrator_Run_CaptureFailureWritesNothing(t *testing.T) {
	planStage, captureStage, assembleStage := testStages()
	captureStage.err = errors.New("network stalled")

	mockFS := mocks.NewFileSystem()
	orch := New(&mocks.VideoSource{}, planStage, captureStage, assembleStage, mockFS, mocks.NewDebugSink(false), logger.NewNoop())

	config := DefaultConfig()
	config.OutputPath = "output.gif"

	if _, err := orch.Run(context.Background(), config); err == nil {
		t.Fatal("expected error from capture stage")
	}

	if _, ok := mockFS.GetFile("output.gif"); ok {
		t.Error("no output should be written when capture fails")
	}
}

func TestOrchestrator_Run_WithDebugSink(t *testing.T) {
	planStage, captureStage, assembleStage := testStages()
	mockSink := mocks.NewDebugSink(true)

	orch := New(&mocks.VideoSource{}, planStage, captureStage, assembleStage, mocks.NewFileSystem(), mockSink, logger.NewNoop())

	config := DefaultConfig()
	config.OutputPath = "output.gif"

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mockSink.PlanJSON) == 0 {
		t.Error("expected plan JSON to be saved")
	}
	if len(mockSink.RunJSON) == 0 {
		t.Error("expected run JSON to be saved")
	}
}
