// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"

	"github.com/user/framegrab/pkg/pipeline"
	"github.com/user/framegrab/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Output
	OutputPath string

	// Capture window. A zero EndSeconds means the whole source duration.
	StartSeconds float64
	EndSeconds   float64
	FrameRate    float64

	// Output frame height; the width follows the source aspect ratio.
	TargetHeight int

	// Animation
	LoopCount int
	Quality   int

	// Time budget
	TotalBudgetMs   int
	PerInstantCapMs int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FrameRate:    1.0,
		TargetHeight: 240,

		LoopCount: 0,
		Quality:   80,

		TotalBudgetMs:   120000,
		PerInstantCapMs: 3000,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	source        ports.VideoSource
	planStage     pipeline.Stage[pipeline.PlanInput, pipeline.PlanResult]
	captureStage  pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	assembleStage pipeline.Stage[pipeline.AssembleInput, pipeline.AssembleResult]
	fs            ports.FileSystem
	sink          ports.DebugSink
	logger        ports.Logger
}

// New creates a new Orchestrator.
func New(
	source ports.VideoSource,
	planStage pipeline.Stage[pipeline.PlanInput, pipeline.PlanResult],
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	assembleStage pipeline.Stage[pipeline.AssembleInput, pipeline.AssembleResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		source:        source,
		planStage:     planStage,
		captureStage:  captureStage,
		assembleStage: assembleStage,
		fs:            fs,
		sink:          sink,
		logger:        logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info(l10n.T("Starting extraction"))

	// 1. Source metadata
	duration, err := o.source.Duration()
	if err != nil {
		return RunResult{}, fmt.Errorf("read duration: %w", err)
	}
	nativeWidth, nativeHeight, err := o.source.NativeSize()
	if err != nil {
		return RunResult{}, fmt.Errorf("read native size: %w", err)
	}

	end := config.EndSeconds
	if end <= 0 || end > duration {
		end = duration
	}

	// 2. Plan
	planInput := pipeline.PlanInput{
		StartSeconds: config.StartSeconds,
		EndSeconds:   end,
		FrameRate:    config.FrameRate,
		TargetHeight: config.TargetHeight,
		NativeWidth:  nativeWidth,
		NativeHeight: nativeHeight,
	}
	plan, err := o.planStage.Execute(ctx, planInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to plan capture: %s", err))
		return RunResult{}, fmt.Errorf("plan stage: %w", err)
	}
	o.logger.Info(l10n.F("Planned %d frames of %dx%d", plan.FrameCount(), plan.Frame.Width, plan.Frame.Height))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(plan, "", "  "); err == nil {
			o.sink.SavePlanJSON(data)
		}
	}

	// 3. Capture
	o.logger.Info(l10n.F("Extracting %d frames", plan.FrameCount()))
	captureInput := pipeline.CaptureInput{
		Plan:          plan,
		TotalBudget:   time.Duration(config.TotalBudgetMs) * time.Millisecond,
		PerInstantCap: time.Duration(config.PerInstantCapMs) * time.Millisecond,
	}
	captured, err := o.captureStage.Execute(ctx, captureInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to extract frames: %s", err))
		return RunResult{}, fmt.Errorf("capture stage: %w", err)
	}
	o.logger.Info(l10n.F("Extraction completed in %d ms", captured.ProcessingTime.Milliseconds()))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(buildRunReport(plan, captured), "", "  "); err == nil {
			o.sink.SaveRunJSON(data)
		}
	}

	// 4. Assemble
	o.logger.Info(l10n.F("Assembling %d frames", len(captured.Frames)))
	assembleInput := pipeline.AssembleInput{
		Frames:    captured.Frames,
		FrameRate: config.FrameRate,
		LoopCount: config.LoopCount,
		Quality:   config.Quality,
	}
	assembled, err := o.assembleStage.Execute(ctx, assembleInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to assemble animation: %s", err))
		return RunResult{}, fmt.Errorf("assemble stage: %w", err)
	}
	o.logger.Info(l10n.F("Animation assembled: %d bytes", len(assembled.Data)))

	// 5. Write output file
	if err := o.fs.WriteFile(config.OutputPath, assembled.Data); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}
	o.logger.Info(l10n.F("Output saved to %s", config.OutputPath))

	return RunResult{
		SourceDuration:      duration,
		NativeWidth:         nativeWidth,
		NativeHeight:        nativeHeight,
		WindowStart:         config.StartSeconds,
		WindowEnd:           end,
		FrameCount:          len(captured.Frames),
		ActualFrameRate:     float64(len(captured.Frames)) / (end - config.StartSeconds),
		IntervalSeconds:     plan.IntervalSeconds,
		Width:               plan.Frame.Width,
		Height:              plan.Frame.Height,
		ProcessingTimeMs:    captured.ProcessingTime.Milliseconds(),
		BudgetConsumedMs:    captured.BudgetConsumed.Milliseconds(),
		AnimationDurationMs: assembled.DurationMs,
		FileSize:            assembled.FileSize,
		OutputPath:          config.OutputPath,
	}, nil
}

// runReport is the debug sink's serialized view of an extraction run.
type runReport struct {
	IntervalSeconds float64       `json:"intervalSeconds"`
	ProcessingMs    int64         `json:"processingMs"`
	BudgetMs        int64         `json:"budgetConsumedMs"`
	Frames          []frameReport `json:"frames"`
}

type frameReport struct {
	Index         int     `json:"index"`
	TargetSeconds float64 `json:"targetSeconds"`
	ActualSeconds float64 `json:"actualSeconds"`
}

func buildRunReport(plan pipeline.PlanResult, captured pipeline.CaptureResult) runReport {
	report := runReport{
		IntervalSeconds: plan.IntervalSeconds,
		ProcessingMs:    captured.ProcessingTime.Milliseconds(),
		BudgetMs:        captured.BudgetConsumed.Milliseconds(),
		Frames:          make([]frameReport, 0, len(captured.Frames)),
	}
	for _, f := range captured.Frames {
		report.Frames = append(report.Frames, frameReport{
			Index:         f.SequenceIndex,
			TargetSeconds: f.TargetSeconds,
			ActualSeconds: f.ActualSeconds,
		})
	}
	return report
}

// RunResult contains the results of an extraction run for summary generation.
type RunResult struct {
	// Source and window
	SourceDuration float64
	NativeWidth    int
	NativeHeight   int
	WindowStart    float64
	WindowEnd      float64

	// Capture. ActualFrameRate is the delivered rate over the capture
	// window, FrameCount divided by the window length in seconds.
	FrameCount       int
	ActualFrameRate  float64
	IntervalSeconds  float64
	Width            int
	Height           int
	ProcessingTimeMs int64
	BudgetConsumedMs int64

	// Output
	AnimationDurationMs int
	FileSize            int64
	OutputPath          string
}
