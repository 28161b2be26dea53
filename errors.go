package deck2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Resolution errors.
	ErrNoDocuments      = errors.New("no documents found")
	ErrDocumentNotFound = errors.New("document not found")

	// Rendering errors.
	ErrBrowserConnect = errors.New("failed to start browser")
	ErrSurface        = errors.New("failed to open rendering surface")
	ErrPageLoad       = errors.New("failed to load document")
	ErrSlideCount     = errors.New("failed to count slides")
	ErrExportSetup    = errors.New("failed to prepare document for export")
	ErrSlideIsolation = errors.New("slide isolation failed")
	ErrCapture        = errors.New("slide capture failed")

	// Output errors.
	ErrAssemble = errors.New("PDF assembly failed")
	ErrWritePDF = errors.New("failed to write PDF")
	ErrVerify   = errors.New("PDF verification failed")
	ErrInspect  = errors.New("failed to read PDF")

	// Option validation errors.
	ErrInvalidScale       = errors.New("invalid scale")
	ErrInvalidSettleDelay = errors.New("invalid settle delay")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrInvalidQuality     = errors.New("invalid JPEG quality")
	ErrInvalidEngine      = errors.New("invalid browser engine")
	ErrInvalidSelector    = errors.New("invalid slide selector")
	ErrInvalidAssetPath   = errors.New("invalid asset path")
)
