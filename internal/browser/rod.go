package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-deck2pdf/internal/logging"
	"github.com/alnah/go-deck2pdf/internal/process"
)

// rodBrowser launches Chromium through rod's launcher. Rod downloads a
// Chromium build on first run when no binary is found.
type rodBrowser struct {
	opts LaunchOptions

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodBrowser(opts LaunchOptions) *rodBrowser {
	return &rodBrowser{opts: opts}
}

// ensureBrowser lazily launches and connects. Callers hold b.mu.
func (b *rodBrowser) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New().Headless(true).Set("hide-scrollbars")
	if b.opts.Bin != "" {
		l = l.Bin(b.opts.Bin)
	}
	if b.opts.NoSandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	br := rod.New().ControlURL(u)
	if err := br.Connect(); err != nil {
		process.TerminateTree(l.PID())
		l.Kill()
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	logging.Debug("browser launched", "engine", EngineRod, "pid", l.PID())
	b.launcher = l
	b.browser = br
	return nil
}

func (b *rodBrowser) NewSurface(ctx context.Context, vp Viewport) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: vp.Scale,
	})
	if err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("setting viewport: %w", err)
	}

	// Detach from ctx: each call rebinds its own context.
	return &rodSurface{page: page.Context(context.Background()), idle: b.opts.IdleWindow}, nil
}

// Close shuts the browser down and reaps the whole process tree.
func (b *rodBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}

	err := b.browser.Close()
	if b.launcher != nil {
		process.TerminateTree(b.launcher.PID())
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
	b.browser = nil
	b.launcher = nil
	return err
}

// idleExcludedTypes are long-lived streams that never finish. Images, fonts
// and media still count toward network idle.
var idleExcludedTypes = []proto.NetworkResourceType{
	proto.NetworkResourceTypeWebSocket,
	proto.NetworkResourceTypeEventSource,
}

type rodSurface struct {
	page   *rod.Page
	idle   time.Duration
	closed bool
}

func (s *rodSurface) Navigate(ctx context.Context, url string) error {
	if s.closed {
		return ErrClosed
	}
	p := s.page.Context(ctx)

	waitIdle := p.WaitRequestIdle(s.idle, nil, nil, idleExcludedTypes)
	if err := p.Navigate(url); err != nil {
		return err
	}
	if err := p.WaitLoad(); err != nil {
		return err
	}
	waitIdle()
	return ctx.Err()
}

func (s *rodSurface) EvalInt(ctx context.Context, js string, args ...any) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	res, err := s.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (s *rodSurface) Capture(ctx context.Context, clip Clip, opts CaptureOptions) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}

	req := &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      clip.X,
			Y:      clip.Y,
			Width:  clip.Width,
			Height: clip.Height,
			Scale:  1,
		},
		FromSurface:      true,
		OptimizeForSpeed: opts.OptimizeForSpeed,
	}
	if opts.Format == FormatJPEG {
		q := opts.Quality
		req.Format = proto.PageCaptureScreenshotFormatJpeg
		req.Quality = &q
	}

	return s.page.Context(ctx).Screenshot(false, req)
}

func (s *rodSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.page.Close()
}

// Compile-time interface checks.
var (
	_ Browser = (*rodBrowser)(nil)
	_ Surface = (*rodSurface)(nil)
)
