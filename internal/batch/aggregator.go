// Package batch fans the per-file pipeline out over every uploaded
// transcript and merges the results into one row sequence for export.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/quotedeck/quotedeck/internal/pipeline"
	"github.com/quotedeck/quotedeck/internal/stage"
)

// Document is one uploaded transcript already read into lines.
type Document struct {
	Name  string
	Lines []string
}

// MergedRow is the flattened export unit, one spreadsheet row.
type MergedRow struct {
	FileName  string
	Timestamp string
	Topic     stage.Topic
	Quote     string
}

// ErrEmptyBatch is returned when no file produced any row. It is the
// only batch outcome that surfaces to the caller as a failure; there is
// nothing to export.
var ErrEmptyBatch = errors.New("no quotes were produced by any file in the batch")

// Aggregator runs one pipeline instance per file, bounded by a
// concurrency limit, and concatenates the results.
type Aggregator struct {
	pipeline *pipeline.Pipeline
	limit    int
	logger   *slog.Logger
}

func NewAggregator(p *pipeline.Pipeline, maxConcurrent int, logger *slog.Logger) *Aggregator {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Aggregator{pipeline: p, limit: maxConcurrent, logger: logger}
}

// Run processes every document and returns the merged rows plus all
// per-file diagnostics. Files run concurrently; results are slotted by
// submission index and flattened only after the join barrier, so row
// order is grouped by file in submission order and follows document
// order within a file. A subset of files failing never drops the rest.
func (a *Aggregator) Run(ctx context.Context, docs []Document) ([]MergedRow, []pipeline.Diagnostic, error) {
	results := make([]pipeline.Result, len(docs))
	diagnostics := make([][]pipeline.Diagnostic, len(docs))

	sem := newSemaphore(a.limit)
	var wg sync.WaitGroup

	for i, doc := range docs {
		wg.Add(1)
		go func(idx int, doc Document) {
			defer wg.Done()
			if err := sem.acquire(ctx); err != nil {
				diagnostics[idx] = []pipeline.Diagnostic{{
					File:   doc.Name,
					Kind:   pipeline.DiagTranscriptFailed,
					Detail: "batch cancelled: " + err.Error(),
				}}
				results[idx] = pipeline.Result{FileName: doc.Name}
				return
			}
			defer sem.release()

			res, diags := a.pipeline.Process(ctx, doc.Name, doc.Lines)
			results[idx] = res
			diagnostics[idx] = diags
		}(i, doc)
	}
	wg.Wait()

	var rows []MergedRow
	var allDiags []pipeline.Diagnostic
	for i, res := range results {
		allDiags = append(allDiags, diagnostics[i]...)
		for _, q := range res.Quotes {
			rows = append(rows, MergedRow{
				FileName:  res.FileName,
				Timestamp: q.Timestamp,
				Topic:     q.Topic,
				Quote:     q.Text,
			})
		}
	}

	a.logger.Info("batch aggregated",
		"files", len(docs),
		"rows", len(rows),
		"diagnostics", len(allDiags),
	)

	if len(rows) == 0 {
		return nil, allDiags, ErrEmptyBatch
	}
	return rows, allDiags, nil
}
