package browser

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/alnah/go-deck2pdf/internal/logging"
)

// chromedpBrowser runs Chromium through a chromedp exec allocator. Each
// surface is a tab context; cancelling it closes the tab.
type chromedpBrowser struct {
	opts LaunchOptions

	mu            sync.Mutex
	profileDir    string
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func newChromedpBrowser(opts LaunchOptions) *chromedpBrowser {
	if opts.Bin == "" {
		opts.Bin = os.Getenv("CHROME_BIN")
	}
	return &chromedpBrowser{opts: opts}
}

func (b *chromedpBrowser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(b.profileDir),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("force-color-profile", "srgb"),
	)
	if b.opts.Bin != "" {
		opts = append(opts, chromedp.ExecPath(b.opts.Bin))
	}
	if b.opts.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// ensureBrowser starts the allocator and the first tab. Callers hold b.mu.
func (b *chromedpBrowser) ensureBrowser() error {
	if b.browserCtx != nil {
		return nil
	}

	dir, err := os.MkdirTemp("", "deck2pdf-chrome-*")
	if err != nil {
		return fmt.Errorf("%w: creating profile dir: %v", ErrLaunch, err)
	}
	b.profileDir = dir

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), b.allocatorOptions()...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		_ = os.RemoveAll(dir)
		b.profileDir = ""
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	logging.Debug("browser launched", "engine", EngineChromedp, "profile", dir)
	b.allocCancel = allocCancel
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel
	return nil
}

func (b *chromedpBrowser) NewSurface(ctx context.Context, vp Viewport) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(b.browserCtx)
	s := &chromedpSurface{ctx: tabCtx, cancel: cancel, idle: b.opts.IdleWindow}

	err := s.run(ctx,
		chromedp.EmulateViewport(int64(vp.Width), int64(vp.Height), chromedp.EmulateScale(vp.Scale)),
		page.SetLifecycleEventsEnabled(true),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	return s, nil
}

func (b *chromedpBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browserCtx == nil {
		return nil
	}

	// Cancelling the first tab context shuts the browser down gracefully.
	b.browserCancel()
	b.allocCancel()
	err := os.RemoveAll(b.profileDir)

	b.browserCtx = nil
	b.browserCancel = nil
	b.allocCancel = nil
	b.profileDir = ""
	return err
}

type chromedpSurface struct {
	ctx    context.Context
	cancel context.CancelFunc
	idle   time.Duration
	closed bool
}

// run executes actions on the tab while honoring the caller's ctx.
func (s *chromedpSurface) run(ctx context.Context, actions ...chromedp.Action) error {
	if s.closed {
		return ErrClosed
	}
	runCtx, stop := context.WithCancel(s.ctx)
	defer stop()
	unhook := context.AfterFunc(ctx, stop)
	defer unhook()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (s *chromedpSurface) Navigate(ctx context.Context, url string) error {
	if s.closed {
		return ErrClosed
	}

	idle := make(chan cdp.LoaderID, 16)
	listenCtx, stopListening := context.WithCancel(s.ctx)
	defer stopListening()
	chromedp.ListenTarget(listenCtx, func(ev any) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
			select {
			case idle <- e.LoaderID:
			default:
			}
		}
	})

	var loaderID cdp.LoaderID
	err := s.run(ctx,
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			loaderID = tree.Frame.LoaderID
			return nil
		}),
	)
	if err != nil {
		return err
	}

	// Chromium reports networkIdle after 500ms without traffic; allow a
	// generous multiple of the idle window before giving up on the event.
	deadline := time.NewTimer(10 * s.idle)
	defer deadline.Stop()
	for {
		select {
		case id := <-idle:
			if id == loaderID {
				return nil
			}
		case <-deadline.C:
			logging.Debug("network idle not reported; continuing", "url", url)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *chromedpSurface) EvalInt(ctx context.Context, js string, args ...any) (int, error) {
	expr, err := buildCall(js, args...)
	if err != nil {
		return 0, err
	}

	var n int
	err = s.run(ctx, chromedp.Evaluate(expr, &n, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	}))
	return n, err
}

func (s *chromedpSurface) Capture(ctx context.Context, clip Clip, opts CaptureOptions) ([]byte, error) {
	var buf []byte
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		params := page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithClip(&page.Viewport{
				X:      clip.X,
				Y:      clip.Y,
				Width:  clip.Width,
				Height: clip.Height,
				Scale:  1,
			}).
			WithFromSurface(true).
			WithOptimizeForSpeed(opts.OptimizeForSpeed)
		if opts.Format == FormatJPEG {
			params = params.WithFormat(page.CaptureScreenshotFormatJpeg).WithQuality(int64(opts.Quality))
		}

		var err error
		buf, err = params.Do(ctx)
		return err
	}))
	return buf, err
}

func (s *chromedpSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	return nil
}

// Compile-time interface checks.
var (
	_ Browser = (*chromedpBrowser)(nil)
	_ Surface = (*chromedpSurface)(nil)
)
