package deck2pdf

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-deck2pdf/internal/assets"
	"github.com/alnah/go-deck2pdf/internal/browser"
	"github.com/alnah/go-deck2pdf/internal/fileutil"
	"github.com/alnah/go-deck2pdf/internal/logging"
)

// exportStyleID marks the injected stylesheet so it is added once.
const exportStyleID = "pdf-export-style"

// renderer turns one document into an ordered list of slide images.
type renderer struct {
	browser browser.Browser
	kit     *assets.ExportKit
	css     string // stylesheet with placeholders expanded
	s       settings
	sleep   func(ctx context.Context, d time.Duration) error
}

func newRenderer(b browser.Browser, kit *assets.ExportKit, s settings) *renderer {
	return &renderer{
		browser: b,
		kit:     kit,
		css:     kit.RenderStylesheet(s.exportCSS, s.selector, CanvasWidth, CanvasHeight),
		s:       s,
		sleep:   sleepContext,
	}
}

// render opens doc on a fresh surface, counts its slides, and captures each
// one alone on the canvas. The surface is closed on every path.
func (r *renderer) render(ctx context.Context, doc Document, progress *Progress) (images []Image, err error) {
	if !fileutil.FileExists(doc.SourcePath) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, doc.SourcePath)
	}
	abs, err := filepath.Abs(doc.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	surface, err := r.browser.NewSurface(ctx, browser.Viewport{
		Width:  CanvasWidth,
		Height: CanvasHeight,
		Scale:  r.s.scale,
	})
	if err != nil {
		if errors.Is(err, browser.ErrLaunch) {
			return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrSurface, err)
	}
	defer func() {
		if cerr := surface.Close(); cerr != nil {
			logging.Debug("closing surface", "doc", doc.Name, "error", cerr.Error())
		}
	}()

	if err := surface.Navigate(ctx, fileURL(abs)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPageLoad, doc.SourcePath, err)
	}

	count, err := surface.EvalInt(ctx, r.kit.Count, r.s.selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSlideCount, err)
	}
	logging.Info("slides found", "doc", doc.Name, "count", count)
	progress.slidesFound(count)

	if _, err := surface.EvalInt(ctx, r.kit.Prepare, exportStyleID, r.css); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportSetup, err)
	}
	if r.s.fontWait {
		if _, err := surface.EvalInt(ctx, r.kit.Fonts); err != nil {
			return nil, fmt.Errorf("%w: waiting for fonts: %w", ErrExportSetup, err)
		}
	}

	clip := browser.Clip{Width: CanvasWidth, Height: CanvasHeight}
	capture := browser.CaptureOptions{
		Format:           browser.Format(r.s.format),
		Quality:          r.s.quality,
		OptimizeForSpeed: r.s.optimizeForSpeed,
	}

	images = make([]Image, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		visible, err := surface.EvalInt(ctx, r.kit.Isolate, r.s.selector, i, CanvasWidth, CanvasHeight, r.s.hide)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d: %w", ErrSlideIsolation, i+1, err)
		}
		if visible != 1 {
			return nil, fmt.Errorf("%w: slide %d: %d slides visible, want 1", ErrSlideIsolation, i+1, visible)
		}

		if err := r.sleep(ctx, r.s.settleDelay); err != nil {
			return nil, err
		}

		data, err := surface.Capture(ctx, clip, capture)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d: %w", ErrCapture, i+1, err)
		}
		images = append(images, Image{Index: i, Data: data, Format: r.s.format})

		logging.Debug("slide captured", "doc", doc.Name, "slide", i+1, "bytes", len(data))
		progress.slideRendered(i+1, count)
	}

	return images, nil
}

// fileURL builds a file:// URL, escaping spaces and other reserved bytes.
func fileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive paths
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
