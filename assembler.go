package deck2pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-deck2pdf/internal/fileutil"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// canvasSize is the PDF page size. Units are points, one per CSS pixel,
// so a page is exactly 1280x720 whatever the capture scale.
var canvasSize = fpdf.SizeType{Wd: CanvasWidth, Ht: CanvasHeight}

// AssemblePDF builds a PDF with one canvas-sized page per image, in order.
// Each image is stretched to fill its page. An empty slice yields a valid
// PDF with zero pages.
func AssemblePDF(images []Image) ([]byte, error) {
	if len(images) == 0 {
		return emptyPDF(), nil
	}

	// "P" keeps Wd as the page width; "L" would swap the axes.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           canvasSize,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("go-deck2pdf", true)

	for i, img := range images {
		opts := fpdf.ImageOptions{ImageType: fpdfImageType(img.Format)}
		name := fmt.Sprintf("slide-%04d", i)

		pdf.AddPageFormat("P", canvasSize)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
		pdf.ImageOptions(name, 0, 0, CanvasWidth, CanvasHeight, false, opts, 0, "")

		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("%w: slide %d: %v", ErrAssemble, i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssemble, err)
	}
	return buf.Bytes(), nil
}

// WritePDF writes data to path, creating parent directories and replacing
// any existing file atomically.
func WritePDF(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, filePermissions, dirPermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWritePDF, path, err)
	}
	return nil
}

// EnsureOutputDir creates dir if it does not exist.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrWritePDF, dir, err)
	}
	return nil
}

func fpdfImageType(f ImageFormat) string {
	if f == ImageFormatJPEG {
		return "JPG"
	}
	return "PNG"
}

// emptyPDF renders a minimal document whose page tree has no kids.
// fpdf always emits at least one page, so this is written by hand.
func emptyPDF() []byte {
	var b bytes.Buffer
	offsets := make([]int, 0, 2)

	b.WriteString("%PDF-1.4\n")
	offsets = append(offsets, b.Len())
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	offsets = append(offsets, b.Len())
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n")

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return b.Bytes()
}
