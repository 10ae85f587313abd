package ports

// ProgressUpdate is a single progress notification pushed by the capture
// engine after each successfully captured frame.
type ProgressUpdate struct {
	Percent float64 // Completion percentage (0-100)
	Message string  // Human-readable status line
	Stage   string  // Processing stage identifier, e.g. "extracting"
}

// ProgressSink consumes progress updates. Implementations must not block;
// updates are fire-and-forget and are never buffered or retried by the engine.
type ProgressSink interface {
	Publish(update ProgressUpdate)
}

// ProgressFunc adapts a plain function to the ProgressSink interface.
type ProgressFunc func(update ProgressUpdate)

// Publish implements ProgressSink.
func (f ProgressFunc) Publish(update ProgressUpdate) {
	f(update)
}

// NoopProgress is a ProgressSink that discards all updates.
type NoopProgress struct{}

// Publish does nothing.
func (NoopProgress) Publish(update ProgressUpdate) {}
