package main

import (
	"fmt"
	"os"

	"github.com/alnah/go-deck2pdf"
	"github.com/alnah/go-deck2pdf/internal/config"
)

// converterOptions translates a validated config into converter options.
// Range checks beyond what config.Validate covers happen in NewConverter.
func converterOptions(cfg *config.Config) ([]deck2pdf.Option, error) {
	r := cfg.Render

	settle, err := r.SettleDuration()
	if err != nil {
		return nil, err
	}
	timeout, err := r.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	format, ok := deck2pdf.ParseImageFormat(r.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", deck2pdf.ErrInvalidImageFormat, r.Format)
	}

	opts := []deck2pdf.Option{
		deck2pdf.WithSettleDelay(settle),
		deck2pdf.WithImageFormat(format),
		deck2pdf.WithFontWait(!r.SkipFontWait),
		deck2pdf.WithVerify(r.Verify),
		deck2pdf.WithHiddenSelectors(r.Hide...),
		deck2pdf.WithNoSandbox(cfg.Browser.NoSandbox),
	}
	if r.Engine != "" {
		opts = append(opts, deck2pdf.WithEngine(r.Engine))
	}
	if r.Scale != 0 {
		opts = append(opts, deck2pdf.WithScale(r.Scale))
	}
	if timeout > 0 {
		opts = append(opts, deck2pdf.WithTimeout(timeout))
	}
	if r.Selector != "" {
		opts = append(opts, deck2pdf.WithSelector(r.Selector))
	}
	if r.Quality != 0 {
		opts = append(opts, deck2pdf.WithJPEGQuality(r.Quality))
	}
	if cfg.Browser.Bin != "" {
		opts = append(opts, deck2pdf.WithBrowserBin(cfg.Browser.Bin))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, deck2pdf.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Assets.ExportCSS != "" {
		css, err := os.ReadFile(cfg.Assets.ExportCSS) // #nosec G304 -- user-provided stylesheet
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadCSS, err)
		}
		opts = append(opts, deck2pdf.WithExportCSS(string(css)))
	}

	return opts, nil
}

// logLevel picks the diagnostic level: --verbose wins, then --quiet, then
// the configured level.
func logLevel(f *convertFlags, cfg *config.Config) string {
	switch {
	case f.verbose:
		return "debug"
	case f.quiet:
		return "error"
	case cfg.Log.Level != "":
		return cfg.Log.Level
	}
	return "warn"
}
