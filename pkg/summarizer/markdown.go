package summarizer

import (
	"fmt"
	"strings"
)

// Translator translates display strings, matching the l10n.T signature.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the translation function for display strings.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion includes the tool version in the output footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts a Summary to Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Extraction Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Path"), summary.Source.Path)
	fmt.Fprintf(&b, "- %s: %.1f s\n", t("Duration"), summary.Source.DurationSeconds)
	fmt.Fprintf(&b, "- %s: %dx%d\n\n", t("Native Size"), summary.Source.NativeWidth, summary.Source.NativeHeight)

	fmt.Fprintf(&b, "## %s\n\n", t("Capture Window"))
	fmt.Fprintf(&b, "- %s: %.1f s - %.1f s\n", t("Window"), summary.Window.StartSeconds, summary.Window.EndSeconds)
	fmt.Fprintf(&b, "- %s: %.2f fps\n\n", t("Frame Rate"), summary.Window.FrameRate)

	fmt.Fprintf(&b, "## %s\n\n", t("Capture"))
	fmt.Fprintf(&b, "- %s: %d\n", t("Frames"), summary.Capture.FrameCount)
	fmt.Fprintf(&b, "- %s: %.2f fps\n", t("Actual Frame Rate"), summary.Capture.ActualFrameRate)
	fmt.Fprintf(&b, "- %s: %.2f s\n", t("Interval"), summary.Capture.IntervalSeconds)
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Processing Time"), summary.Capture.ProcessingTimeMs)
	fmt.Fprintf(&b, "- %s: %d ms\n\n", t("Budget Consumed"), summary.Capture.BudgetConsumedMs)

	fmt.Fprintf(&b, "## %s\n\n", t("Animation"))
	fmt.Fprintf(&b, "- %s: %dx%d\n", t("Size"), summary.Animation.Width, summary.Animation.Height)
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Playback Duration"), summary.Animation.DurationMs)
	fmt.Fprintf(&b, "- %s: %s\n", t("File Size"), formatBytes(summary.Animation.FileSize))
	if summary.Animation.LoopCount == 0 {
		fmt.Fprintf(&b, "- %s: %s\n", t("Loop"), t("forever"))
	} else {
		fmt.Fprintf(&b, "- %s: %d\n", t("Loop"), summary.Animation.LoopCount)
	}
	if summary.Animation.OutputPath != "" {
		fmt.Fprintf(&b, "- %s: %s\n", t("Output"), summary.Animation.OutputPath)
	}

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n%s %s\n", t("Generated by framegrab"), f.version)
	}

	return b.String()
}

// formatBytes formats a byte count in human readable units.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMG"[exp])
}
