package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-deck2pdf"
	"github.com/alnah/go-deck2pdf/internal/browser"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake converter and environment
// ---------------------------------------------------------------------------

// fakeConverter produces real PDFs of a fixed slide count per document,
// or the configured error.
type fakeConverter struct {
	mu     sync.Mutex
	slides map[string]int
	errs   map[string]error
	opts   int
	calls  []string
	closed bool
}

func (f *fakeConverter) Convert(_ context.Context, doc deck2pdf.Document, progress *deck2pdf.Progress) (*deck2pdf.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, doc.Name)
	f.mu.Unlock()

	if err := f.errs[doc.Name]; err != nil {
		return nil, err
	}
	n := f.slides[doc.Name]
	if n == 0 {
		n = 1
	}
	if progress != nil && progress.SlidesFound != nil {
		progress.SlidesFound(n)
	}
	images := make([]deck2pdf.Image, 0, n)
	for i := 0; i < n; i++ {
		images = append(images, deck2pdf.Image{Index: i, Data: pngBytes(), Format: deck2pdf.ImageFormatPNG})
		if progress != nil && progress.SlideRendered != nil {
			progress.SlideRendered(i+1, n)
		}
	}
	pdf, err := deck2pdf.AssemblePDF(images)
	if err != nil {
		return nil, err
	}
	return &deck2pdf.Result{Document: doc, PDF: pdf, Slides: n}, nil
}

func (f *fakeConverter) Close() error {
	f.closed = true
	return nil
}

// nopBrowser stands in for Chrome while the real converter validates options.
type nopBrowser struct{}

func (nopBrowser) NewSurface(context.Context, browser.Viewport) (browser.Surface, error) {
	return nil, browser.ErrClosed
}

func (nopBrowser) Close() error { return nil }

func pngBytes() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 9)))
	return buf.Bytes()
}

// testEnv returns an Environment whose converter is fake, with captured output.
func testEnv(fake *fakeConverter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		NewConverter: func(opts ...deck2pdf.Option) (Converter, error) {
			// Run the options through the real validator.
			conv, err := deck2pdf.NewConverter(append(opts, deck2pdf.WithBrowser(nopBrowser{}))...)
			if err != nil {
				return nil, err
			}
			_ = conv.Close()
			fake.opts = len(opts)
			return fake, nil
		},
	}
	return env, stdout, stderr
}

// setupDecks creates <root>/html/<name>.html for each name.
func setupDecks(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "html")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name+".html"), []byte("<html></html>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// clearDeckEnv unsets every variable the CLI reads so the host environment
// cannot leak into a test.
func clearDeckEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DECK2PDF_CONFIG", "DECK2PDF_INPUT_DIR", "DECK2PDF_OUTPUT_DIR",
		"DECK2PDF_SCALE", "DECK2PDF_TIMEOUT", "DECK2PDF_ENGINE",
		"ROD_BROWSER_BIN", "ROD_NO_SANDBOX", "CHROME_BIN",
	} {
		t.Setenv(name, "")
	}
}
