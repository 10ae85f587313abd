package summarizer

import (
	"strings"
	"testing"
	"time"
)

func testSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
		Source: SourceInfo{
			Path:            "https://example.com/video.mp4",
			DurationSeconds: 90,
			NativeWidth:     1280,
			NativeHeight:    720,
		},
		Window: WindowInfo{
			StartSeconds: 0,
			EndSeconds:   90,
			FrameRate:    0.5,
		},
		Capture: CaptureInfo{
			FrameCount:       45,
			ActualFrameRate:  0.5,
			IntervalSeconds:  2,
			ProcessingTimeMs: 12000,
			BudgetConsumedMs: 8000,
		},
		Animation: AnimationInfo{
			Width:      426,
			Height:     240,
			DurationMs: 90000,
			FileSize:   1024 * 1024,
			LoopCount:  0,
			OutputPath: "out.gif",
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(testSummary())

	checks := []string{
		"# Extraction Summary",
		"https://example.com/video.mp4",
		"1280x720",          // Native size
		"0.50 fps",          // Frame rate
		"Actual Frame Rate", // Delivered rate line
		"45",                // Frame count
		"426x240",           // Output size
		"1.00 MB",           // File size
		"forever",           // Loop count 0
		"out.gif",           // Output path
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_FiniteLoop(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := testSummary()
	summary.Animation.LoopCount = 3

	result := formatter.Format(summary)

	if strings.Contains(result, "forever") {
		t.Error("finite loop count should not render as 'forever'")
	}
	if !strings.Contains(result, "Loop: 3") {
		t.Error("expected loop count 3 in output")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Extraction Summary": "抽出サマリー",
			"Frame Rate":         "フレームレート",
			"forever":            "無限",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))

	result := formatter.Format(testSummary())

	if !strings.Contains(result, "抽出サマリー") {
		t.Error("expected translated 'Extraction Summary'")
	}
	if !strings.Contains(result, "フレームレート") {
		t.Error("expected translated 'Frame Rate'")
	}
	if !strings.Contains(result, "無限") {
		t.Error("expected translated 'forever'")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))

	result := formatter.Format(testSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
