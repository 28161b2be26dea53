//go:build integration

package deck2pdf

// Notes:
// - Requires Chrome/Chromium. Honors ROD_BROWSER_BIN and ROD_NO_SANDBOX.
// - One Converter per engine is shared by its subtests, as in a batch run.

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/alnah/go-deck2pdf/internal/assets"
	"github.com/alnah/go-deck2pdf/internal/browser"
)

// testTimeout is the standard timeout for integration test operations.
const testTimeout = 60 * time.Second

const integrationDeck = `<!doctype html>
<html><head><style>
body { margin: 0; font-family: sans-serif }
.slide-container { width: 1280px; height: 720px; display: flex; align-items: center; justify-content: center }
.nav-controls { position: fixed; bottom: 0 }
</style></head>
<body>
<div class="slide-container" style="background:#c00">one</div>
<div class="slide-container" style="background:#0c0">two</div>
<div class="slide-container" style="background:#00c">three</div>
<div class="nav-controls">prev | next</div>
</body></html>`

const nestedDeck = `<!doctype html>
<html><body>
<div class="slide-container">outer<div class="slide-container">inner</div></div>
</body></html>`

func integrationOptions(engine string) []Option {
	return []Option{
		WithEngine(engine),
		WithScale(1),
		WithVerify(true),
		WithTimeout(testTimeout),
		WithBrowserBin(os.Getenv("ROD_BROWSER_BIN")),
		WithNoSandbox(os.Getenv("ROD_NO_SANDBOX") == "1"),
	}
}

func TestIntegration_ConvertDeck(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "html")
	if err := os.MkdirAll(inputDir, 0o750); err != nil {
		t.Fatal(err)
	}
	for name, html := range map[string]string{"deck": integrationDeck, "nested": nestedDeck} {
		if err := os.WriteFile(filepath.Join(inputDir, name+".html"), []byte(html), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for _, engine := range []string{"rod", "chromedp"} {
		t.Run(engine, func(t *testing.T) {
			conv, err := NewConverter(integrationOptions(engine)...)
			if err != nil {
				t.Fatal(err)
			}
			defer conv.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 2*testTimeout)
			defer cancel()

			t.Run("three slides", func(t *testing.T) {
				doc := NewDocument("deck", inputDir, filepath.Join(dir, engine), ".html")
				var rendered []int
				progress := &Progress{SlideRendered: func(done, _ int) { rendered = append(rendered, done) }}

				res, err := conv.ConvertFile(ctx, doc, progress)
				if err != nil {
					t.Fatalf("ConvertFile() error = %v", err)
				}
				if res.Slides != 3 || len(rendered) != 3 {
					t.Errorf("slides = %d, progress = %v; want 3", res.Slides, rendered)
				}
				info, err := InspectFile(doc.OutputPath)
				if err != nil {
					t.Fatal(err)
				}
				if info.Pages != 3 || !info.MatchesCanvas() {
					t.Errorf("PDF = %+v, want 3 pages of 1280x720", info)
				}
			})

			t.Run("repeat conversion is stable", func(t *testing.T) {
				doc := NewDocument("deck", inputDir, filepath.Join(dir, engine), ".html")
				var infos []*PDFInfo
				for range 2 {
					res, err := conv.Convert(ctx, doc, nil)
					if err != nil {
						t.Fatalf("Convert() error = %v", err)
					}
					info, err := Inspect(res.PDF)
					if err != nil {
						t.Fatal(err)
					}
					infos = append(infos, info)
				}
				if !reflect.DeepEqual(infos[0], infos[1]) {
					t.Errorf("repeat conversion differs: %+v vs %+v", infos[0], infos[1])
				}
			})

			t.Run("nested slides fail isolation", func(t *testing.T) {
				doc := NewDocument("nested", inputDir, filepath.Join(dir, engine), ".html")
				if _, err := conv.Convert(ctx, doc, nil); !errors.Is(err, ErrSlideIsolation) {
					t.Errorf("Convert() error = %v, want ErrSlideIsolation", err)
				}
			})

			t.Run("missing document", func(t *testing.T) {
				doc := NewDocument("ghost", inputDir, filepath.Join(dir, engine), ".html")
				if _, err := conv.Convert(ctx, doc, nil); !errors.Is(err, ErrDocumentNotFound) {
					t.Errorf("Convert() error = %v, want ErrDocumentNotFound", err)
				}
			})
		})
	}
}

// activeSlide returns 1 when the slide at index is the only one marked active.
const activeSlide = `(selector, index) => {
  const active = document.querySelectorAll(selector + '.active');
  return active.length === 1 && document.querySelectorAll(selector)[index] === active[0] ? 1 : 0;
}`

// dominantChannel names the strongest RGB channel at the centre of a capture.
func dominantChannel(t *testing.T, data []byte) string {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}
	b := img.Bounds()
	r, g, bl, _ := img.At(b.Dx()/2, b.Dy()/2).RGBA()
	switch {
	case r > g && r > bl:
		return "red"
	case g > r && g > bl:
		return "green"
	case bl > r && bl > g:
		return "blue"
	}
	return "none"
}

func TestIntegration_SlidesInPage(t *testing.T) {
	dir := t.TempDir()
	doc := NewDocument("deck", dir, dir, ".html")
	if err := os.WriteFile(doc.SourcePath, []byte(integrationDeck), 0o644); err != nil {
		t.Fatal(err)
	}
	kit, err := assets.LoadExportKit(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatal(err)
	}

	for _, engine := range []string{browser.EngineRod, browser.EngineChromedp} {
		t.Run(engine, func(t *testing.T) {
			b, err := browser.New(engine, browser.LaunchOptions{
				Bin:       os.Getenv("ROD_BROWSER_BIN"),
				NoSandbox: os.Getenv("ROD_NO_SANDBOX") == "1",
			})
			if err != nil {
				t.Fatal(err)
			}
			defer b.Close()

			s := defaultSettings()
			s.scale = 1
			r := newRenderer(b, kit, s)

			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			t.Run("pages follow slide order", func(t *testing.T) {
				images, err := r.render(ctx, doc, nil)
				if err != nil {
					t.Fatalf("render() error = %v", err)
				}
				want := []string{"red", "green", "blue"}
				if len(images) != len(want) {
					t.Fatalf("got %d images, want %d", len(images), len(want))
				}
				for i, img := range images {
					if got := dominantChannel(t, img.Data); got != want[i] {
						t.Errorf("page %d is %s, want %s", i, got, want[i])
					}
				}
			})

			surface, err := b.NewSurface(ctx, browser.Viewport{Width: CanvasWidth, Height: CanvasHeight, Scale: 1})
			if err != nil {
				t.Fatalf("NewSurface: %v", err)
			}
			defer surface.Close()
			abs, err := filepath.Abs(doc.SourcePath)
			if err != nil {
				t.Fatal(err)
			}
			if err := surface.Navigate(ctx, fileURL(abs)); err != nil {
				t.Fatalf("Navigate: %v", err)
			}

			t.Run("stylesheet injected once", func(t *testing.T) {
				for i, want := range []int{1, 0} {
					added, err := surface.EvalInt(ctx, kit.Prepare, exportStyleID, r.css)
					if err != nil {
						t.Fatal(err)
					}
					if added != want {
						t.Errorf("prepare call %d added %d, want %d", i+1, added, want)
					}
				}
				n, err := surface.EvalInt(ctx, "(id) => document.querySelectorAll('#' + id).length", exportStyleID)
				if err != nil {
					t.Fatal(err)
				}
				if n != 1 {
					t.Errorf("%d #%s elements, want 1", n, exportStyleID)
				}
			})

			t.Run("one active slide after isolation", func(t *testing.T) {
				for i := range 3 {
					visible, err := surface.EvalInt(ctx, kit.Isolate, s.selector, i, CanvasWidth, CanvasHeight, s.hide)
					if err != nil {
						t.Fatal(err)
					}
					if visible != 1 {
						t.Errorf("slide %d: %d visible, want 1", i, visible)
					}
					only, err := surface.EvalInt(ctx, activeSlide, s.selector, i)
					if err != nil {
						t.Fatal(err)
					}
					if only != 1 {
						t.Errorf("slide %d is not the only active slide", i)
					}
				}
			})
		})
	}
}
