package main

import (
	"errors"
	"os"

	"github.com/alnah/go-deck2pdf"
	"github.com/alnah/go-deck2pdf/internal/config"
)

// Exit codes for the deck2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every document converted
	ExitGeneral = 1 // Some documents failed, or an unexpected error
	ExitUsage   = 2 // Invalid flags, config, or no documents
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser could not start
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, deck2pdf.ErrBrowserConnect) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, deck2pdf.ErrNoDocuments) ||
		errors.Is(err, deck2pdf.ErrInvalidScale) ||
		errors.Is(err, deck2pdf.ErrInvalidSettleDelay) ||
		errors.Is(err, deck2pdf.ErrInvalidTimeout) ||
		errors.Is(err, deck2pdf.ErrInvalidImageFormat) ||
		errors.Is(err, deck2pdf.ErrInvalidQuality) ||
		errors.Is(err, deck2pdf.ErrInvalidEngine) ||
		errors.Is(err, deck2pdf.ErrInvalidSelector) ||
		errors.Is(err, deck2pdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, deck2pdf.ErrWritePDF) ||
		errors.Is(err, deck2pdf.ErrInspect) {
		return ExitIO
	}

	return ExitGeneral
}
