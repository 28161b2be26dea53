package deck2pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-deck2pdf/internal/browser"
)

// Option configures a Converter.
type Option func(*Converter)

// settings holds every option after defaults are applied.
type settings struct {
	engine           string
	scale            float64
	settleDelay      time.Duration
	timeout          time.Duration
	selector         string
	hide             []string
	format           ImageFormat
	quality          int
	fontWait         bool
	optimizeForSpeed bool
	verify           bool
	exportCSS        string
	assetPath        string
	browserBin       string
	noSandbox        bool
	idleWindow       time.Duration
}

func defaultSettings() settings {
	return settings{
		engine:      browser.EngineRod,
		scale:       DefaultScale,
		settleDelay: DefaultSettleDelay,
		timeout:     DefaultTimeout,
		selector:    DefaultSelector,
		hide:        append([]string(nil), DefaultHiddenSelectors...),
		format:      ImageFormatPNG,
		quality:     DefaultJPEGQuality,
		fontWait:    true,
		idleWindow:  browser.DefaultIdleWindow,
	}
}

func (s *settings) validate() error {
	switch s.engine {
	case browser.EngineRod, browser.EngineChromedp:
	default:
		return fmt.Errorf("%w: %q (must be rod or chromedp)", ErrInvalidEngine, s.engine)
	}
	if s.scale < MinScale || s.scale > MaxScale {
		return fmt.Errorf("%w: %.2f (must be between %.0f and %.0f)", ErrInvalidScale, s.scale, MinScale, MaxScale)
	}
	if s.settleDelay < 0 || s.settleDelay > MaxSettleDelay {
		return fmt.Errorf("%w: %s (must be between 0 and %s)", ErrInvalidSettleDelay, s.settleDelay, MaxSettleDelay)
	}
	if s.timeout <= 0 {
		return fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, s.timeout)
	}
	if err := validateSelector(s.selector); err != nil {
		return err
	}
	for _, h := range s.hide {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("%w: empty hidden selector", ErrInvalidSelector)
		}
	}
	if s.format != ImageFormatPNG && s.format != ImageFormatJPEG {
		return fmt.Errorf("%w: %q (must be png or jpeg)", ErrInvalidImageFormat, s.format)
	}
	if s.format == ImageFormatJPEG && (s.quality < 1 || s.quality > 100) {
		return fmt.Errorf("%w: %d (must be between 1 and 100)", ErrInvalidQuality, s.quality)
	}
	return nil
}

// validateSelector rejects selectors the export stylesheet cannot embed:
// empty ones, selector lists and anything holding braces.
func validateSelector(sel string) error {
	if strings.TrimSpace(sel) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSelector)
	}
	if strings.ContainsAny(sel, ",{}") {
		return fmt.Errorf("%w: %q (use a single selector without ',' or braces)", ErrInvalidSelector, sel)
	}
	return nil
}

// WithEngine selects the browser driver: "rod" (default) or "chromedp".
func WithEngine(engine string) Option {
	return func(c *Converter) { c.s.engine = engine }
}

// WithScale sets the device pixel ratio used for capture (1 to 4).
// Page geometry is unaffected; only raster sharpness changes.
func WithScale(scale float64) Option {
	return func(c *Converter) { c.s.scale = scale }
}

// WithSettleDelay sets the pause between isolating a slide and capturing it.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Converter) { c.s.settleDelay = d }
}

// WithTimeout bounds the conversion of a single document.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) { c.s.timeout = d }
}

// WithSelector sets the CSS selector matching slide elements.
func WithSelector(sel string) Option {
	return func(c *Converter) { c.s.selector = sel }
}

// WithHiddenSelectors replaces the selectors hidden during capture.
func WithHiddenSelectors(sel ...string) Option {
	return func(c *Converter) { c.s.hide = append([]string(nil), sel...) }
}

// WithImageFormat sets the capture encoding. JPEG produces smaller PDFs.
func WithImageFormat(f ImageFormat) Option {
	return func(c *Converter) { c.s.format = f }
}

// WithJPEGQuality sets the JPEG quality (1 to 100).
func WithJPEGQuality(q int) Option {
	return func(c *Converter) { c.s.quality = q }
}

// WithFontWait toggles waiting for document.fonts.ready before capture.
func WithFontWait(wait bool) Option {
	return func(c *Converter) { c.s.fontWait = wait }
}

// WithOptimizeForSpeed trades encoder effort for capture speed.
func WithOptimizeForSpeed(fast bool) Option {
	return func(c *Converter) { c.s.optimizeForSpeed = fast }
}

// WithVerify re-reads every assembled PDF and checks its page count and size.
func WithVerify(verify bool) Option {
	return func(c *Converter) { c.s.verify = verify }
}

// WithExportCSS replaces the built-in export stylesheet.
// The placeholders {{slide}}, {{width}} and {{height}} are expanded.
func WithExportCSS(css string) Option {
	return func(c *Converter) { c.s.exportCSS = css }
}

// WithAssetPath sets a directory overriding embedded export assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) { c.s.assetPath = path }
}

// WithBrowserBin sets the Chromium binary to launch.
func WithBrowserBin(path string) Option {
	return func(c *Converter) { c.s.browserBin = path }
}

// WithNoSandbox disables the Chromium sandbox (needed in most containers).
func WithNoSandbox(noSandbox bool) Option {
	return func(c *Converter) { c.s.noSandbox = noSandbox }
}

// WithIdleWindow sets how long the network must stay quiet after load.
func WithIdleWindow(d time.Duration) Option {
	return func(c *Converter) { c.s.idleWindow = d }
}

// WithBrowser injects a browser in place of launching one; the converter
// takes ownership and closes it.
func WithBrowser(b browser.Browser) Option {
	return func(c *Converter) { c.browser = b }
}
