package chromevideo

import (
	"testing"
)

func TestSource_MethodsBeforeOpen(t *testing.T) {
	s := New("https://example.com/video.mp4", DefaultOptions())

	if _, err := s.Duration(); err == nil {
		t.Error("Duration before Open should fail")
	}
	if err := s.Seek(5.0); err == nil {
		t.Error("Seek before Open should fail")
	}
	if _, err := s.Frame(); err == nil {
		t.Error("Frame before Open should fail")
	}
}

func TestSource_CloseWithoutOpen(t *testing.T) {
	s := New("https://example.com/video.mp4", DefaultOptions())
	if err := s.Close(); err != nil {
		t.Errorf("Close without Open should be a no-op, got %v", err)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.Headless {
		t.Error("default options should be headless")
	}
	if opts.WindowWidth <= 0 || opts.WindowHeight <= 0 {
		t.Error("default options should set a window size")
	}
}
