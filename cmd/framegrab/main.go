// Package main provides the CLI entry point for framegrab.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framegrab/pkg/adapters/chromevideo"
	"github.com/user/framegrab/pkg/adapters/filesink"
	"github.com/user/framegrab/pkg/adapters/gifencoder"
	"github.com/user/framegrab/pkg/adapters/ggrenderer"
	"github.com/user/framegrab/pkg/adapters/logger"
	"github.com/user/framegrab/pkg/adapters/mp4source"
	"github.com/user/framegrab/pkg/adapters/nullsink"
	"github.com/user/framegrab/pkg/adapters/osfilesystem"
	"github.com/user/framegrab/pkg/adapters/systemclock"
	"github.com/user/framegrab/pkg/config"
	"github.com/user/framegrab/pkg/orchestrator"
	"github.com/user/framegrab/pkg/ports"
	"github.com/user/framegrab/pkg/probe"
	"github.com/user/framegrab/pkg/sampler"
	"github.com/user/framegrab/pkg/stages/assemble"
	"github.com/user/framegrab/pkg/stages/capture"
	"github.com/user/framegrab/pkg/stages/plan"
	"github.com/user/framegrab/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:  "framegrab",
		Usage: l10n.T("Extract uniformly spaced frames from a video into an animated preview"),
		Commands: []*cli.Command{
			extractCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     l10n.T("Extract frames from a video URL or MP4 file"),
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output GIF file path")},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("Configuration YAML file")},
			&cli.Float64Flag{Name: "start", Usage: l10n.T("Capture window start in seconds")},
			&cli.Float64Flag{Name: "end", Usage: l10n.T("Capture window end in seconds (default: source duration)")},
			&cli.Float64Flag{Name: "rate", Aliases: []string{"r"}, Usage: l10n.T("Frames per second of source time")},
			&cli.StringFlag{Name: "quality-tier", Aliases: []string{"q"}, Usage: l10n.T("Quality tier (low, medium, high)")},
			&cli.IntFlag{Name: "height", Usage: l10n.T("Output frame height (overrides quality tier)")},
			&cli.IntFlag{Name: "loop", Usage: l10n.T("Animation loop count (0 = forever)")},
			&cli.IntFlag{Name: "budget-ms", Usage: l10n.T("Total wall-clock budget in milliseconds")},
			&cli.IntFlag{Name: "instant-cap-ms", Usage: l10n.T("Per-instant readiness wait cap in milliseconds")},
			&cli.StringFlag{Name: "summary", Usage: l10n.T("Output execution summary to file (Markdown format)")},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},
			&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable")},
			&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run browser in non-headless mode")},
			&cli.StringFlag{Name: "ffmpeg-path", Usage: l10n.T("Path to ffmpeg executable")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runExtract,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("framegrab version %s", version))
			return nil
		},
	}
}

func runExtract(c *cli.Context) error {
	input := c.Args().First()
	if input == "" {
		return errors.New(l10n.T("input argument is required"))
	}

	cfg, err := buildConfig(c, input)
	if err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	clock := systemclock.New()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	source := newSource(cfg)
	log.Info(l10n.F("Opening %s", cfg.Input))
	if err := source.Open(ctx); err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	// Stages
	waiter := probe.New(source, clock, log, cfg.ToProbePolicy())
	frameSampler := sampler.New(renderer, log)
	planStage := plan.NewStage()
	captureStage := capture.New(source, waiter, frameSampler, clock, ports.NoopProgress{}, sink, log, capture.DefaultOptions())
	assembleStage := assemble.NewStage(gifencoder.New())

	orch := orchestrator.New(source, planStage, captureStage, assembleStage, fs, sink, log)

	orchConfig, err := cfg.ToOrchestratorConfig()
	if err != nil {
		return err
	}

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	if summaryPath := c.String("summary"); summaryPath != "" {
		if err := writeSummary(summaryPath, cfg, result, fs); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", summaryPath))
		}
	}

	return nil
}

// buildConfig loads the config file if given and applies CLI overrides.
func buildConfig(c *cli.Context, input string) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Input = input
	cfg.OutputPath = c.String("output")

	if c.IsSet("start") {
		cfg.StartSeconds = c.Float64("start")
	}
	if c.IsSet("end") {
		cfg.EndSeconds = c.Float64("end")
	}
	if c.IsSet("rate") {
		cfg.FrameRate = c.Float64("rate")
	}
	if c.IsSet("quality-tier") {
		cfg.QualityTier = c.String("quality-tier")
	}
	if c.IsSet("height") {
		cfg.TargetHeight = c.Int("height")
	}
	if c.IsSet("loop") {
		cfg.LoopCount = c.Int("loop")
	}
	if c.IsSet("budget-ms") {
		cfg.TotalBudgetMs = c.Int("budget-ms")
	}
	if c.IsSet("instant-cap-ms") {
		cfg.PerInstantCapMs = c.Int("instant-cap-ms")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("chrome-path") {
		cfg.Source.ChromePath = c.String("chrome-path")
	}
	if c.Bool("no-headless") {
		cfg.Source.Headless = false
	}
	if c.IsSet("ffmpeg-path") {
		cfg.Source.FFmpegPath = c.String("ffmpeg-path")
	}

	return cfg, nil
}

// newSource selects the source adapter: URLs are played through a headless
// browser, anything else is treated as a local MP4 file.
func newSource(cfg config.Config) ports.VideoSource {
	if strings.HasPrefix(cfg.Input, "http://") || strings.HasPrefix(cfg.Input, "https://") {
		opts := chromevideo.DefaultOptions()
		opts.ChromePath = cfg.Source.ChromePath
		opts.Headless = cfg.Source.Headless
		return chromevideo.New(cfg.Input, opts)
	}
	return mp4source.New(cfg.Input, mp4source.Options{FFmpegPath: cfg.Source.FFmpegPath})
}

func writeSummary(path string, cfg config.Config, result orchestrator.RunResult, fs ports.FileSystem) error {
	summary := summarizer.NewBuilder().
		WithSource(summarizer.SourceInfo{
			Path:            cfg.Input,
			DurationSeconds: result.SourceDuration,
			NativeWidth:     result.NativeWidth,
			NativeHeight:    result.NativeHeight,
		}).
		WithWindow(result.WindowStart, result.WindowEnd, cfg.FrameRate).
		WithCapture(summarizer.CaptureInfo{
			FrameCount:       result.FrameCount,
			ActualFrameRate:  result.ActualFrameRate,
			IntervalSeconds:  result.IntervalSeconds,
			ProcessingTimeMs: result.ProcessingTimeMs,
			BudgetConsumedMs: result.BudgetConsumedMs,
		}).
		WithAnimation(summarizer.AnimationInfo{
			Width:      result.Width,
			Height:     result.Height,
			DurationMs: result.AnimationDurationMs,
			FileSize:   result.FileSize,
			LoopCount:  cfg.LoopCount,
			OutputPath: result.OutputPath,
		}).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fs).Write(path, summary)
}
