package deck2pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "defaults", opts: nil},
		{name: "chromedp engine", opts: []Option{WithEngine("chromedp")}},
		{name: "unknown engine", opts: []Option{WithEngine("webkit")}, wantErr: ErrInvalidEngine},
		{name: "scale below range", opts: []Option{WithScale(0.5)}, wantErr: ErrInvalidScale},
		{name: "scale above range", opts: []Option{WithScale(4.5)}, wantErr: ErrInvalidScale},
		{name: "scale at bounds", opts: []Option{WithScale(1), WithScale(4)}},
		{name: "negative settle", opts: []Option{WithSettleDelay(-time.Millisecond)}, wantErr: ErrInvalidSettleDelay},
		{name: "settle too long", opts: []Option{WithSettleDelay(time.Minute)}, wantErr: ErrInvalidSettleDelay},
		{name: "zero timeout", opts: []Option{WithTimeout(0)}, wantErr: ErrInvalidTimeout},
		{name: "empty selector", opts: []Option{WithSelector("  ")}, wantErr: ErrInvalidSelector},
		{name: "selector list", opts: []Option{WithSelector(".a, .b")}, wantErr: ErrInvalidSelector},
		{name: "empty hidden selector", opts: []Option{WithHiddenSelectors(".nav", "")}, wantErr: ErrInvalidSelector},
		{name: "no hidden selectors", opts: []Option{WithHiddenSelectors()}},
		{name: "unknown format", opts: []Option{WithImageFormat("webp")}, wantErr: ErrInvalidImageFormat},
		{name: "jpeg bad quality", opts: []Option{WithImageFormat(ImageFormatJPEG), WithJPEGQuality(0)}, wantErr: ErrInvalidQuality},
		{name: "png ignores quality", opts: []Option{WithJPEGQuality(0)}},
		{name: "missing asset path", opts: []Option{WithAssetPath("/nonexistent/deck2pdf")}, wantErr: ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() unexpected error: %v", err)
			}
			if err := conv.Close(); err != nil {
				t.Errorf("Close() on unused converter = %v", err)
			}
		})
	}
}

func TestNewConverter_CustomAssets(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "styles", "export.css"), []byte("{{slide}} { outline: 0 }"), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	doc := writeDeck(t, dir, dir, "deck")
	fb := newFakeBrowser(t, 1)

	conv, err := NewConverter(WithAssetPath(base), WithSelector(".s"), WithBrowser(fb))
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()

	if _, err := conv.Convert(context.Background(), doc, nil); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got := fb.surfaces[0].prepareArgs[1]; got != ".s { outline: 0 }" {
		t.Errorf("injected stylesheet = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Render, assemble, verify
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDeck(t, filepath.Join(dir, "html"), filepath.Join(dir, "pdf"), "intro")
	fb := newFakeBrowser(t, 3)

	conv, err := NewConverter(WithBrowser(fb), WithSettleDelay(0), WithVerify(true))
	if err != nil {
		t.Fatal(err)
	}

	res, err := conv.Convert(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Slides != 3 {
		t.Errorf("Slides = %d, want 3", res.Slides)
	}
	if res.Document != doc {
		t.Errorf("Document = %+v, want %+v", res.Document, doc)
	}

	info, err := Inspect(res.PDF)
	if err != nil {
		t.Fatal(err)
	}
	if info.Pages != 3 || !info.MatchesCanvas() {
		t.Errorf("PDF info = %+v, want 3 canvas pages", info)
	}

	if _, err := os.Stat(doc.OutputPath); !os.IsNotExist(err) {
		t.Error("Convert() wrote output; only ConvertFile should")
	}

	if err := conv.Close(); err != nil {
		t.Fatal(err)
	}
	if err := conv.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if fb.closes != 1 {
		t.Errorf("browser closed %d times, want 1", fb.closes)
	}
}

func TestConvertFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDeck(t, filepath.Join(dir, "html"), filepath.Join(dir, "pdf"), "intro")
	fb := newFakeBrowser(t, 2)

	conv, err := NewConverter(WithBrowser(fb), WithSettleDelay(0))
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()

	if _, err := conv.ConvertFile(context.Background(), doc, nil); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	info, err := InspectFile(doc.OutputPath)
	if err != nil {
		t.Fatalf("InspectFile() error = %v", err)
	}
	if info.Pages != 2 {
		t.Errorf("pages = %d, want 2", info.Pages)
	}
}

func TestConvert_ZeroSlides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDeck(t, dir, dir, "empty")
	fb := newFakeBrowser(t, 0)

	conv, err := NewConverter(WithBrowser(fb), WithVerify(true))
	if err != nil {
		t.Fatal(err)
	}
	defer conv.Close()

	res, err := conv.Convert(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Slides != 0 || len(res.PDF) == 0 {
		t.Errorf("result = %d slides, %d bytes; want 0 slides and a PDF", res.Slides, len(res.PDF))
	}
}

func TestConvert_SessionLostClosesBrowser(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDeck(t, dir, dir, "deck")
	fb := newFakeBrowser(t, 2)
	fb.captureErrAt = 1
	fb.captureErr = errors.New("websocket: close 1006 (abnormal closure)")

	conv, err := NewConverter(WithBrowser(fb), WithSettleDelay(0))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := conv.Convert(context.Background(), doc, nil); !errors.Is(err, ErrCapture) {
		t.Fatalf("Convert() error = %v, want ErrCapture", err)
	}
	if fb.closes != 1 {
		t.Errorf("browser closes = %d, want 1 (reset after lost session)", fb.closes)
	}
}

func TestConvert_PageErrorKeepsBrowser(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fb := newFakeBrowser(t, 2)

	conv, err := NewConverter(WithBrowser(fb))
	if err != nil {
		t.Fatal(err)
	}

	_, err = conv.Convert(context.Background(), NewDocument("ghost", dir, dir, ".html"), nil)
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("Convert() error = %v, want ErrDocumentNotFound", err)
	}
	if fb.closes != 0 {
		t.Errorf("browser closes = %d, want 0", fb.closes)
	}
}
