package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alnah/go-deck2pdf"
	"github.com/alnah/go-deck2pdf/internal/hints"
	"github.com/alnah/go-deck2pdf/internal/logging"
)

const rule = "═══════════════════════════════════════════"

// consoleReporter prints batch progress for humans. Progress goes to out,
// per-document failures to errOut. quiet keeps only the failures.
type consoleReporter struct {
	out      io.Writer
	errOut   io.Writer
	quiet    bool
	selector string

	midLine bool // a progress line awaits its newline
}

func newConsoleReporter(out, errOut io.Writer, quiet bool, selector string) *consoleReporter {
	if quiet {
		out = io.Discard
	}
	return &consoleReporter{out: out, errOut: errOut, quiet: quiet, selector: selector}
}

// Begin prints the banner.
func (r *consoleReporter) Begin(total int) {
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, "  HTML to PDF Converter")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Files to convert: %d\n", total)
}

func (r *consoleReporter) DocumentStarted(doc deck2pdf.Document, index, total int) {
	fmt.Fprintf(r.out, "\n📄 Converting: %s\n", filepath.Base(doc.SourcePath))
	logging.Info("converting", "doc", doc.Name, "index", index, "total", total)
}

func (r *consoleReporter) SlidesFound(_ deck2pdf.Document, n int) {
	fmt.Fprintf(r.out, "   Found %d slides\n", n)
}

func (r *consoleReporter) SlideRendered(_ deck2pdf.Document, done, total int) {
	fmt.Fprintf(r.out, "\r   Rendering slide %d/%d...", done, total)
	r.midLine = done < total
	if !r.midLine {
		fmt.Fprintln(r.out)
	}
}

func (r *consoleReporter) DocumentFinished(res deck2pdf.DocumentResult) {
	if r.midLine {
		fmt.Fprintln(r.out)
		r.midLine = false
	}
	if res.Err != nil {
		fmt.Fprintf(r.errOut, "   ✗ Failed: %s: %v%s\n", res.Document.Name, res.Err, r.hint(res.Err))
		logging.Error("document failed", "doc", res.Document.Name, "error", res.Err.Error())
		return
	}
	fmt.Fprintf(r.out, "   ✓ Generated: %s (%d pages in %.2fs)\n",
		filepath.ToSlash(res.Document.OutputPath), res.Slides, res.Duration.Seconds())
	logging.Info("document converted", "doc", res.Document.Name, "pages", res.Slides, "duration", res.Duration.String())
}

// End prints the summary. It is printed even when the batch was aborted.
func (r *consoleReporter) End(s deck2pdf.BatchSummary) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	mark := "✓"
	if s.Succeeded < s.Total {
		mark = "✗"
	}
	fmt.Fprintf(r.out, "%s Complete: %d/%d files converted in %.2fs\n", mark, s.Succeeded, s.Total, s.Duration.Seconds())
	if failed := failedNames(s); len(failed) > 0 {
		fmt.Fprintf(r.out, "  Failed: %s\n", strings.Join(failed, ", "))
	}
	fmt.Fprintln(r.out, rule)
}

func (r *consoleReporter) hint(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, deck2pdf.ErrSlideIsolation):
		return hints.ForSlideIsolation(r.selector)
	}
	return ""
}

func failedNames(s deck2pdf.BatchSummary) []string {
	var names []string
	for _, res := range s.Results {
		if res.Err != nil {
			names = append(names, res.Document.Name)
		}
	}
	return names
}

// Compile-time interface check.
var _ deck2pdf.Reporter = (*consoleReporter)(nil)
