// Package chromevideo provides a video source implementation backed by an
// HTML5 video element running in headless Chrome via chromedp.
package chromevideo

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/user/framegrab/pkg/ports"
)

const videoElement = `document.getElementById('fg-video')`

// Options configures the headless browser hosting the video element.
type Options struct {
	// ChromePath overrides the Chrome executable location.
	ChromePath string
	// Headless runs Chrome without a visible window.
	Headless bool
	// WindowWidth and WindowHeight set the browser window size.
	WindowWidth  int
	WindowHeight int
}

// DefaultOptions returns the recommended browser options.
func DefaultOptions() Options {
	return Options{
		Headless:     true,
		WindowWidth:  1280,
		WindowHeight: 720,
	}
}

// Source implements ports.VideoSource by driving an HTML5 video element
// through the Chrome DevTools Protocol. The element's readyState and
// buffered ranges are reported as-is, so readiness polling observes the
// browser's real decode and network state.
type Source struct {
	url  string
	opts Options

	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// New creates a Source for the video at the given URL.
func New(url string, opts Options) *Source {
	return &Source{url: url, opts: opts}
}

// Open launches the browser and mounts a muted video element for the URL.
func (s *Source) Open(ctx context.Context) error {
	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("autoplay-policy", "no-user-gesture-required"),
	}

	if s.opts.Headless {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	chromePath := ResolveChromePath(s.opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chrome not found: please install Chrome/Chromium, set CHROME_PATH environment variable, or use --chrome-path option")
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	if s.opts.WindowWidth > 0 && s.opts.WindowHeight > 0 {
		chromedpOpts = append(chromedpOpts,
			chromedp.WindowSize(s.opts.WindowWidth, s.opts.WindowHeight),
			chromedp.Flag("window-size", fmt.Sprintf("%d,%d", s.opts.WindowWidth, s.opts.WindowHeight)))
	}

	chromedpOpts = append(chromedpOpts,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-zygote", true),
	)

	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	s.ctx, s.cancel = chromedp.NewContext(s.allocCtx)

	mountScript := fmt.Sprintf(`(function() {
		const v = document.createElement('video');
		v.id = 'fg-video';
		v.muted = true;
		v.preload = 'auto';
		v.crossOrigin = 'anonymous';
		v.src = %q;
		document.body.appendChild(v);
		v.load();
		return true;
	})()`, s.url)

	if err := chromedp.Run(s.ctx,
		chromedp.Navigate("about:blank"),
		chromedp.Evaluate(mountScript, nil),
	); err != nil {
		s.teardown()
		return fmt.Errorf("mount video element: %w", err)
	}

	return nil
}

// Duration returns the media duration in seconds, or 0 while metadata is
// still loading.
func (s *Source) Duration() (float64, error) {
	var d float64
	err := s.eval(`(function() {
		const d = `+videoElement+`.duration;
		return Number.isFinite(d) ? d : 0;
	})()`, &d)
	return d, err
}

// Position returns the element's current playback position.
func (s *Source) Position() (float64, error) {
	var p float64
	err := s.eval(videoElement+`.currentTime`, &p)
	return p, err
}

// Seek requests repositioning. The browser fetches and decodes the target
// asynchronously, so readiness must be observed through ReadyState and
// Buffered afterwards.
func (s *Source) Seek(seconds float64) error {
	return s.eval(fmt.Sprintf(`void (%s.currentTime = %g)`, videoElement, seconds), nil)
}

// NativeSize returns the intrinsic video dimensions. Both are 0 until the
// element reaches the metadata ready state.
func (s *Source) NativeSize() (int, int, error) {
	var size struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	err := s.eval(`(function() {
		const v = `+videoElement+`;
		return {width: v.videoWidth, height: v.videoHeight};
	})()`, &size)
	if err != nil {
		return 0, 0, err
	}
	return size.Width, size.Height, nil
}

// ReadyState returns the element's readyState level.
func (s *Source) ReadyState() (ports.ReadyState, error) {
	var n int
	if err := s.eval(videoElement+`.readyState`, &n); err != nil {
		return ports.ReadyStateNothing, err
	}
	return ports.ReadyState(n), nil
}

// Buffered returns the element's buffered time ranges.
func (s *Source) Buffered() ([]ports.TimeRange, error) {
	var raw []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}
	err := s.eval(`(function() {
		const b = `+videoElement+`.buffered;
		const out = [];
		for (let i = 0; i < b.length; i++) {
			out.push({start: b.start(i), end: b.end(i)});
		}
		return out;
	})()`, &raw)
	if err != nil {
		return nil, err
	}

	ranges := make([]ports.TimeRange, len(raw))
	for i, r := range raw {
		ranges[i] = ports.TimeRange{Start: r.Start, End: r.End}
	}
	return ranges, nil
}

// Paused reports whether the element is paused.
func (s *Source) Paused() (bool, error) {
	var paused bool
	err := s.eval(videoElement+`.paused`, &paused)
	return paused, err
}

// Pause suspends playback.
func (s *Source) Pause() error {
	return s.eval(videoElement+`.pause()`, nil)
}

// Play resumes playback. The play() promise is awaited so that autoplay
// rejections surface as errors instead of failing silently.
func (s *Source) Play() error {
	if s.ctx == nil {
		return fmt.Errorf("video source not open")
	}
	return chromedp.Run(s.ctx, chromedp.Evaluate(videoElement+`.play()`, nil,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}))
}

// Frame renders the element's current picture into an in-page canvas and
// returns it decoded as an image.
func (s *Source) Frame() (image.Image, error) {
	var encoded string
	err := s.eval(`(function() {
		const v = `+videoElement+`;
		const c = document.createElement('canvas');
		c.width = v.videoWidth;
		c.height = v.videoHeight;
		c.getContext('2d').drawImage(v, 0, 0);
		return c.toDataURL('image/png').split(',')[1];
	})()`, &encoded)
	if err != nil {
		return nil, fmt.Errorf("capture frame: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode frame data: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode frame png: %w", err)
	}
	return img, nil
}

// Close shuts down the browser.
func (s *Source) Close() error {
	s.teardown()
	return nil
}

func (s *Source) eval(expr string, out interface{}) error {
	if s.ctx == nil {
		return fmt.Errorf("video source not open")
	}
	return chromedp.Run(s.ctx, chromedp.Evaluate(expr, out))
}

func (s *Source) teardown() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.ctx = nil
	}

	// Give Chrome a moment to shut down gracefully, then force kill
	time.Sleep(100 * time.Millisecond)

	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
		s.allocCtx = nil
	}
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)
