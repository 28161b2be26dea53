package deck2pdf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alnah/go-deck2pdf/internal/assets"
	"github.com/alnah/go-deck2pdf/internal/browser"
	"github.com/alnah/go-deck2pdf/internal/logging"
)

// Converter renders slide decks to PDF. It owns one browser process,
// launched on the first conversion and reused for every document until
// Close. A Converter is not safe for concurrent Convert calls.
type Converter struct {
	s        settings
	browser  browser.Browser
	renderer *renderer

	closeOnce sync.Once
	closeErr  error
}

// NewConverter validates options and loads export assets. The browser is
// not started until the first Convert.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{s: defaultSettings()}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.s.validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(c.s.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	kit, err := assets.LoadExportKit(resolver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	if c.browser == nil {
		b, err := browser.New(c.s.engine, browser.LaunchOptions{
			Bin:        c.s.browserBin,
			NoSandbox:  c.s.noSandbox,
			IdleWindow: c.s.idleWindow,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEngine, err)
		}
		c.browser = b
	}

	c.renderer = newRenderer(c.browser, kit, c.s)
	logging.Debug("converter ready", "engine", c.s.engine, "scale", c.s.scale, "assets", kit.String())
	return c, nil
}

// Convert renders doc and assembles its PDF. Nothing is written to disk;
// see WritePDF. The per-document timeout applies on top of ctx.
func (c *Converter) Convert(ctx context.Context, doc Document, progress *Progress) (*Result, error) {
	start := time.Now()

	docCtx, cancel := context.WithTimeout(ctx, c.s.timeout)
	defer cancel()

	images, err := c.renderer.render(docCtx, doc, progress)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, context.DeadlineExceeded) && browser.IsSessionInterrupted(err) {
			logging.Warn("browser session lost; relaunching for next document", "doc", doc.Name, "error", err.Error())
			_ = c.browser.Close()
		}
		return nil, err
	}

	pdf, err := AssemblePDF(images)
	if err != nil {
		return nil, err
	}

	if c.s.verify && len(images) > 0 {
		if err := verifyPDF(pdf, len(images)); err != nil {
			return nil, err
		}
	}

	return &Result{
		Document: doc,
		PDF:      pdf,
		Slides:   len(images),
		Duration: time.Since(start),
	}, nil
}

// ConvertFile converts doc and writes the PDF to doc.OutputPath.
func (c *Converter) ConvertFile(ctx context.Context, doc Document, progress *Progress) (*Result, error) {
	res, err := c.Convert(ctx, doc, progress)
	if err != nil {
		return nil, err
	}
	if err := WritePDF(doc.OutputPath, res.PDF); err != nil {
		return nil, err
	}
	return res, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (c *Converter) Close() error {
	c.closeOnce.Do(func() {
		if c.browser != nil {
			c.closeErr = c.browser.Close()
		}
	})
	return c.closeErr
}
