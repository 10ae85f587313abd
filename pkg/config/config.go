// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/framegrab/pkg/orchestrator"
	"github.com/user/framegrab/pkg/probe"
)

// Config represents the full configuration for framegrab.
type Config struct {
	// Input/Output
	Input      string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Capture window
	StartSeconds float64 `yaml:"start_seconds"`
	EndSeconds   float64 `yaml:"end_seconds"`
	FrameRate    float64 `yaml:"frame_rate"`

	// Output sizing. QualityTier selects a preset height; TargetHeight
	// overrides the tier when set.
	QualityTier  string `yaml:"quality_tier"`
	TargetHeight int    `yaml:"target_height"`

	// Animation
	LoopCount int `yaml:"loop_count"`
	Quality   int `yaml:"quality"`

	// Time budget
	TotalBudgetMs   int `yaml:"total_budget_ms"`
	PerInstantCapMs int `yaml:"per_instant_cap_ms"`

	// Readiness polling
	Probe ProbeConfig `yaml:"probe"`

	// Source
	Source SourceConfig `yaml:"source"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ProbeConfig tunes the readiness polling cadence and stall detection.
type ProbeConfig struct {
	IdlePollMs        int `yaml:"idle_poll_ms"`
	ActivePollMs      int `yaml:"active_poll_ms"`
	ReadyStateStallMs int `yaml:"ready_state_stall_ms"`
	BufferStallMs     int `yaml:"buffer_stall_ms"`
}

// SourceConfig configures how the video source is opened.
type SourceConfig struct {
	ChromePath string `yaml:"chrome_path"`
	Headless   bool   `yaml:"headless"`
	FFmpegPath string `yaml:"ffmpeg_path"`
}

// Quality tier preset heights.
const (
	TierLow    = "low"
	TierMedium = "medium"
	TierHigh   = "high"
)

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		FrameRate:   1.0,
		QualityTier: TierMedium,

		LoopCount: 0,
		Quality:   80,

		TotalBudgetMs:   120000,
		PerInstantCapMs: 3000,

		Probe: ProbeConfig{
			IdlePollMs:        250,
			ActivePollMs:      50,
			ReadyStateStallMs: 1000,
			BufferStallMs:     500,
		},

		Source: SourceConfig{
			Headless: true,
		},

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ResolvedHeight returns the output frame height, preferring an explicit
// TargetHeight over the quality tier preset.
func (c Config) ResolvedHeight() (int, error) {
	if c.TargetHeight > 0 {
		return c.TargetHeight, nil
	}
	switch c.QualityTier {
	case TierLow:
		return 144, nil
	case TierMedium, "":
		return 240, nil
	case TierHigh:
		return 360, nil
	default:
		return 0, fmt.Errorf("unknown quality tier %q", c.QualityTier)
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	height, err := c.ResolvedHeight()
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		OutputPath: c.OutputPath,

		StartSeconds: c.StartSeconds,
		EndSeconds:   c.EndSeconds,
		FrameRate:    c.FrameRate,

		TargetHeight: height,

		LoopCount: c.LoopCount,
		Quality:   c.Quality,

		TotalBudgetMs:   c.TotalBudgetMs,
		PerInstantCapMs: c.PerInstantCapMs,
	}, nil
}

// ToProbePolicy converts the probe section to a probe.Policy. Zero fields
// fall back to the policy defaults.
func (c Config) ToProbePolicy() probe.Policy {
	policy := probe.DefaultPolicy()
	if c.Probe.IdlePollMs > 0 {
		policy.IdlePollInterval = time.Duration(c.Probe.IdlePollMs) * time.Millisecond
	}
	if c.Probe.ActivePollMs > 0 {
		policy.ActivePollInterval = time.Duration(c.Probe.ActivePollMs) * time.Millisecond
	}
	if c.Probe.ReadyStateStallMs > 0 {
		policy.ReadyStateStallWindow = time.Duration(c.Probe.ReadyStateStallMs) * time.Millisecond
	}
	if c.Probe.BufferStallMs > 0 {
		policy.BufferStallWindow = time.Duration(c.Probe.BufferStallMs) * time.Millisecond
	}
	return policy
}
