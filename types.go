package deck2pdf

import (
	"path/filepath"
	"strings"
	"time"
)

// Canvas is the fixed slide size in CSS pixels. Every captured image and
// every PDF page uses it, whatever the device scale.
const (
	CanvasWidth  = 1280
	CanvasHeight = 720
)

// Defaults.
const (
	DefaultScale       = 3.0
	DefaultSettleDelay = 100 * time.Millisecond
	DefaultTimeout     = 2 * time.Minute
	DefaultSelector    = ".slide-container"
	DefaultExtension   = ".html"
	DefaultJPEGQuality = 90
	DefaultInputDir    = "html"
	DefaultOutputDir   = "pdf"
)

// Bounds enforced by option validation.
const (
	MinScale       = 1.0
	MaxScale       = 4.0
	MaxSettleDelay = 10 * time.Second
)

// DefaultHiddenSelectors name presentation chrome hidden during capture.
var DefaultHiddenSelectors = []string{".nav-controls", "#footer-template"}

// ImageFormat is the raster encoding used for captured slides.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "png"
	ImageFormatJPEG ImageFormat = "jpeg"
)

// ParseImageFormat accepts png, jpeg and jpg in any case.
func ParseImageFormat(s string) (ImageFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return ImageFormatPNG, true
	case "jpeg", "jpg":
		return ImageFormatJPEG, true
	}
	return "", false
}

// Document is one slide deck: its bare name and where it is read from and
// written to.
type Document struct {
	Name       string // bare name, no directory or extension
	SourcePath string // <input dir>/<name><ext>
	OutputPath string // <output dir>/<name>.pdf
}

// NewDocument derives both paths from a bare name.
func NewDocument(name, inputDir, outputDir, ext string) Document {
	return Document{
		Name:       name,
		SourcePath: filepath.Join(inputDir, name+normalizeExt(ext)),
		OutputPath: filepath.Join(outputDir, name+".pdf"),
	}
}

// Image is one captured slide, in deck order.
type Image struct {
	Index  int
	Data   []byte
	Format ImageFormat
}

// Result is a converted document.
type Result struct {
	Document Document
	PDF      []byte
	Slides   int
	Duration time.Duration
}

// Progress receives events while a document renders. Nil hooks are skipped.
type Progress struct {
	SlidesFound   func(n int)
	SlideRendered func(done, total int)
}

func (p *Progress) slidesFound(n int) {
	if p != nil && p.SlidesFound != nil {
		p.SlidesFound(n)
	}
}

func (p *Progress) slideRendered(done, total int) {
	if p != nil && p.SlideRendered != nil {
		p.SlideRendered(done, total)
	}
}

func normalizeExt(ext string) string {
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
