package deck2pdf

import (
	"context"
	"errors"
	"time"
)

// DocumentConverter is what RunBatch drives. *Converter implements it.
type DocumentConverter interface {
	Convert(ctx context.Context, doc Document, progress *Progress) (*Result, error)
}

// Reporter observes a batch. Calls happen on the batch goroutine, in order.
type Reporter interface {
	DocumentStarted(doc Document, index, total int)
	SlidesFound(doc Document, n int)
	SlideRendered(doc Document, done, total int)
	DocumentFinished(res DocumentResult)
}

// DocumentResult is the outcome of one document in a batch.
type DocumentResult struct {
	Document Document
	Slides   int
	Duration time.Duration
	Err      error
}

// BatchSummary is the outcome of a batch.
type BatchSummary struct {
	Results   []DocumentResult
	Succeeded int
	Total     int
	Duration  time.Duration
	// Aborted is set when the batch stopped before its last document,
	// because the browser could not start or ctx was cancelled. Documents
	// not attempted are still listed in Results, failed with that error.
	Aborted error
}

// Failed returns the number of documents that did not convert.
func (s BatchSummary) Failed() int {
	return len(s.Results) - s.Succeeded
}

// RunBatch converts docs one after another and writes each PDF. A failing
// document is recorded and the batch moves on; only a browser that cannot
// start or a cancelled ctx stops it early.
func RunBatch(ctx context.Context, conv DocumentConverter, docs []Document, rep Reporter) BatchSummary {
	if rep == nil {
		rep = nopReporter{}
	}

	start := time.Now()
	summary := BatchSummary{Total: len(docs), Results: make([]DocumentResult, 0, len(docs))}

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			summary.Aborted = err
			failRemaining(&summary, docs[i:], err)
			break
		}

		rep.DocumentStarted(doc, i+1, len(docs))
		res := convertOne(ctx, conv, doc, rep)
		summary.Results = append(summary.Results, res)
		if res.Err == nil {
			summary.Succeeded++
		}
		rep.DocumentFinished(res)

		if errors.Is(res.Err, ErrBrowserConnect) {
			summary.Aborted = res.Err
			failRemaining(&summary, docs[i+1:], res.Err)
			break
		}
	}

	summary.Duration = time.Since(start)
	return summary
}

func convertOne(ctx context.Context, conv DocumentConverter, doc Document, rep Reporter) DocumentResult {
	start := time.Now()
	progress := &Progress{
		SlidesFound:   func(n int) { rep.SlidesFound(doc, n) },
		SlideRendered: func(done, total int) { rep.SlideRendered(doc, done, total) },
	}

	res, err := conv.Convert(ctx, doc, progress)
	if err == nil {
		err = WritePDF(doc.OutputPath, res.PDF)
	}

	out := DocumentResult{Document: doc, Duration: time.Since(start), Err: err}
	if err == nil {
		out.Slides = res.Slides
	}
	return out
}

// failRemaining records docs as failed with err without attempting them.
func failRemaining(summary *BatchSummary, docs []Document, err error) {
	for _, doc := range docs {
		summary.Results = append(summary.Results, DocumentResult{Document: doc, Err: err})
	}
}

type nopReporter struct{}

func (nopReporter) DocumentStarted(Document, int, int) {}
func (nopReporter) SlidesFound(Document, int)          {}
func (nopReporter) SlideRendered(Document, int, int)   {}
func (nopReporter) DocumentFinished(DocumentResult)    {}

// Compile-time interface checks.
var (
	_ DocumentConverter = (*Converter)(nil)
	_ Reporter          = nopReporter{}
)
