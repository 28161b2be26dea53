package deck2pdf

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageSize is a page's media box in points.
type PageSize struct {
	Width  float64
	Height float64
}

// PDFInfo summarizes an assembled document.
type PDFInfo struct {
	Pages     int
	PageSizes []PageSize
}

// MatchesCanvas reports whether the page is canvas-sized, within half a point.
func (p PageSize) MatchesCanvas() bool {
	return math.Abs(p.Width-CanvasWidth) <= 0.5 && math.Abs(p.Height-CanvasHeight) <= 0.5
}

// MatchesCanvas reports whether every page is canvas-sized.
func (i *PDFInfo) MatchesCanvas() bool {
	for _, p := range i.PageSizes {
		if !p.MatchesCanvas() {
			return false
		}
	}
	return true
}

var disableConfigDir sync.Once

// Inspect reads page count and page sizes from a PDF.
func Inspect(pdf []byte) (*PDFInfo, error) {
	// pdfcpu otherwise writes a config directory under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	dims, err := api.PageDims(bytes.NewReader(pdf), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspect, err)
	}

	info := &PDFInfo{Pages: len(dims), PageSizes: make([]PageSize, 0, len(dims))}
	for _, d := range dims {
		info.PageSizes = append(info.PageSizes, PageSize{Width: d.Width, Height: d.Height})
	}
	return info, nil
}

// InspectFile is Inspect for a PDF on disk.
func InspectFile(path string) (*PDFInfo, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspect, err)
	}
	return Inspect(data)
}

// verifyPDF checks an assembled PDF against the slide count it came from.
func verifyPDF(pdf []byte, slides int) error {
	info, err := Inspect(pdf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerify, err)
	}
	if info.Pages != slides {
		return fmt.Errorf("%w: %d pages, want %d", ErrVerify, info.Pages, slides)
	}
	if !info.MatchesCanvas() {
		return fmt.Errorf("%w: page size differs from %dx%d", ErrVerify, CanvasWidth, CanvasHeight)
	}
	return nil
}
