// Package browser drives a headless Chromium for slide capture.
//
// Two engines implement the same small surface: rod (default) and chromedp.
// A Browser is launched lazily on the first NewSurface call and hands out
// isolated Surfaces, one per document.
package browser

import (
	"context"
	"fmt"
	"time"
)

// Engine names accepted by New.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// DefaultIdleWindow is how long the network must stay quiet before a
// navigation counts as settled.
const DefaultIdleWindow = 500 * time.Millisecond

// Viewport sizes a surface in CSS pixels; Scale is the device pixel ratio.
type Viewport struct {
	Width  int
	Height int
	Scale  float64
}

// Clip is a capture rectangle in CSS pixels.
type Clip struct {
	X, Y, Width, Height float64
}

// Format is a raster encoding produced by Capture.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// CaptureOptions tunes a single screenshot.
type CaptureOptions struct {
	Format           Format
	Quality          int // jpeg only, 1-100
	OptimizeForSpeed bool
}

// Surface is one isolated page. It is not safe for concurrent use.
type Surface interface {
	// Navigate loads url and returns once the load event fired and the
	// network has been idle for the configured window.
	Navigate(ctx context.Context, url string) error
	// EvalInt calls the JavaScript function expression js with args encoded
	// as JSON, awaits a returned promise, and returns the numeric result.
	EvalInt(ctx context.Context, js string, args ...any) (int, error)
	// Capture rasterizes clip at the surface's device scale.
	Capture(ctx context.Context, clip Clip, opts CaptureOptions) ([]byte, error)
	Close() error
}

// Browser hands out surfaces backed by a single browser process.
// Close releases the process; a later NewSurface launches a fresh one.
type Browser interface {
	NewSurface(ctx context.Context, vp Viewport) (Surface, error)
	Close() error
}

// LaunchOptions configures the browser process.
type LaunchOptions struct {
	Bin        string        // empty: engine default lookup
	NoSandbox  bool          // required in most containers
	IdleWindow time.Duration // zero: DefaultIdleWindow
}

// New returns an unlaunched Browser for engine.
func New(engine string, opts LaunchOptions) (Browser, error) {
	if opts.IdleWindow <= 0 {
		opts.IdleWindow = DefaultIdleWindow
	}
	switch engine {
	case "", EngineRod:
		return newRodBrowser(opts), nil
	case EngineChromedp:
		return newChromedpBrowser(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: rod, chromedp)", ErrUnknownEngine, engine)
	}
}
