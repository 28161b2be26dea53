// Package deck2pdf converts HTML slide decks to PDF using headless Chrome.
//
// A deck is an HTML document holding a sequence of slide elements (by
// default those matching ".slide-container"). Each slide is shown alone on
// a fixed 1280x720 canvas, screenshotted at a configurable device scale,
// and placed on its own 1280x720 PDF page. Text is rasterized; the output
// favors fidelity over searchability.
//
// # Quick Start
//
//	conv, err := deck2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	doc := deck2pdf.NewDocument("intro", "html", "pdf", ".html")
//	result, err := conv.ConvertFile(ctx, doc, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d pages\n", result.Slides)
//
// # Pipeline
//
//  1. Resolution: ResolveDocuments maps "--all" or a name to documents.
//  2. Rendering: the deck loads in a fresh browser page; the export
//     stylesheet freezes animations; each slide is isolated and captured.
//  3. Assembly: AssemblePDF places one image per page, stretched to fill.
//  4. Batch: RunBatch repeats this per document and keeps going when one
//     document fails.
//
// # Configuration
//
//	conv, err := deck2pdf.NewConverter(
//	    deck2pdf.WithScale(2),
//	    deck2pdf.WithSettleDelay(250*time.Millisecond),
//	    deck2pdf.WithSelector(".slide"),
//	    deck2pdf.WithEngine("chromedp"),
//	)
//
// # Browser
//
// The rod engine downloads Chromium on first use when none is installed.
// Set ROD_BROWSER_BIN (rod) or CHROME_BIN (chromedp) to use an existing
// binary, and WithNoSandbox in containers.
package deck2pdf
