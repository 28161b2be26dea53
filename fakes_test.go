package deck2pdf

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alnah/go-deck2pdf/internal/assets"
	"github.com/alnah/go-deck2pdf/internal/browser"
)

// fakeBrowser hands out fakeSurfaces simulating a deck of n slides.
type fakeBrowser struct {
	mu        sync.Mutex
	kit       *assets.ExportKit
	slides    int
	launchErr error
	viewports []browser.Viewport
	surfaces  []*fakeSurface
	closes    int

	// applied to each new surface
	extraVisible int
	captureErrAt int // 1-based slide, 0 = never
	captureErr   error
	navigateErr  error
}

func newFakeBrowser(t *testing.T, slides int) *fakeBrowser {
	t.Helper()
	kit, err := assets.LoadExportKit(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("loading export kit: %v", err)
	}
	return &fakeBrowser{kit: kit, slides: slides}
}

func (b *fakeBrowser) NewSurface(ctx context.Context, vp browser.Viewport) (browser.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.launchErr != nil {
		return nil, b.launchErr
	}
	b.viewports = append(b.viewports, vp)
	s := &fakeSurface{
		kit:          b.kit,
		slides:       b.slides,
		active:       -1,
		extraVisible: b.extraVisible,
		captureErrAt: b.captureErrAt,
		captureErr:   b.captureErr,
		navigateErr:  b.navigateErr,
	}
	b.surfaces = append(b.surfaces, s)
	return s, nil
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closes++
	return nil
}

// fakeSurface dispatches EvalInt on which export script it receives.
type fakeSurface struct {
	kit          *assets.ExportKit
	slides       int
	active       int
	extraVisible int
	captureErrAt int
	captureErr   error
	navigateErr  error

	url         string
	calls       []string
	isolateArgs [][]any
	prepareArgs []any
	styles      int // export stylesheets present in the page
	captures    []browser.CaptureOptions
	closed      bool
}

func (s *fakeSurface) Navigate(_ context.Context, url string) error {
	s.calls = append(s.calls, "navigate")
	s.url = url
	return s.navigateErr
}

func (s *fakeSurface) EvalInt(_ context.Context, js string, args ...any) (int, error) {
	switch js {
	case s.kit.Count:
		s.calls = append(s.calls, "count")
		return s.slides, nil
	case s.kit.Prepare:
		s.calls = append(s.calls, "prepare")
		s.prepareArgs = args
		if s.styles > 0 {
			return 0, nil
		}
		s.styles++
		return 1, nil
	case s.kit.Fonts:
		s.calls = append(s.calls, "fonts")
		return 1, nil
	case s.kit.Isolate:
		s.calls = append(s.calls, "isolate")
		s.isolateArgs = append(s.isolateArgs, args)
		s.active = args[1].(int)
		return 1 + s.extraVisible, nil
	}
	return 0, errors.New("unexpected script")
}

func (s *fakeSurface) Capture(_ context.Context, clip browser.Clip, opts browser.CaptureOptions) ([]byte, error) {
	s.calls = append(s.calls, "capture")
	s.captures = append(s.captures, opts)
	if s.captureErrAt == s.active+1 && s.captureErr != nil {
		return nil, s.captureErr
	}
	if opts.Format == browser.FormatJPEG {
		return testJPEG(s.active), nil
	}
	return testPNG(s.active), nil
}

func (s *fakeSurface) Close() error {
	s.closed = true
	return nil
}

// testPNG returns a small PNG tinted by index so pages differ.
func testPNG(index int) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, testImage(index))
	return buf.Bytes()
}

func testJPEG(index int) []byte {
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, testImage(index), &jpeg.Options{Quality: 80})
	return buf.Bytes()
}

func testImage(index int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 18))
	c := color.RGBA{R: uint8(40 * index), G: 120, B: 200, A: 255}
	for y := 0; y < 18; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writeDeck creates <dir>/<name>.html and returns its Document.
func writeDeck(t *testing.T, inputDir, outputDir, name string) Document {
	t.Helper()
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(inputDir, name+".html")
	if err := os.WriteFile(path, []byte("<html><body></body></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewDocument(name, inputDir, outputDir, ".html")
}
