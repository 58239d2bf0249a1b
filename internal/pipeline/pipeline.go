// Package pipeline orchestrates the per-transcript flow: parse turns,
// correct, extract, categorize. Stage failures degrade to documented
// fallbacks and diagnostics; a transcript never takes the batch down
// with it.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/quotedeck/quotedeck/internal/stage"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

type Pipeline struct {
	parser *transcript.Parser
	stages *stage.Runner
	logger *slog.Logger
}

func New(parser *transcript.Parser, stages *stage.Runner, logger *slog.Logger) *Pipeline {
	return &Pipeline{parser: parser, stages: stages, logger: logger}
}

// Process runs one transcript through all three stages. Sequencing is
// strict: correction settles (success or fallback) before extraction,
// extraction before categorization. The returned diagnostics record
// every degradation; the Result is empty rather than absent on failure.
func (p *Pipeline) Process(ctx context.Context, fileName string, lines []string) (Result, []Diagnostic) {
	res := Result{FileName: fileName}
	var diags []Diagnostic

	utts, interviewerSeen := p.parser.Parse(lines)
	if !interviewerSeen && len(utts) > 0 {
		diags = append(diags, Diagnostic{
			File:   fileName,
			Kind:   DiagNoInterviewerMatch,
			Detail: "interviewer name never matched; whole document treated as interviewee",
		})
	}
	if len(utts) == 0 {
		return res, diags
	}

	// Correction. On count mismatch (after its reminder attempt) or an
	// unreachable model the original text passes through uncorrected.
	corrected, err := p.stages.Correct(ctx, utts)
	correctionFailed := err != nil
	if correctionFailed {
		kind := DiagMalformedResponse
		if errors.Is(err, stage.ErrCountMismatch) {
			kind = DiagCorrectionCountMismatch
		}
		diags = append(diags, Diagnostic{File: fileName, Kind: kind, Detail: err.Error()})
		p.logger.Warn("correction skipped, using original text", "file", fileName, "error", err)
		corrected = utts
	}

	// Extraction.
	extracted, err := p.stages.Extract(ctx, corrected)
	if err != nil {
		diags = append(diags, Diagnostic{File: fileName, Kind: DiagMalformedResponse, Detail: err.Error()})
		if correctionFailed {
			diags = append(diags, Diagnostic{
				File:   fileName,
				Kind:   DiagTranscriptFailed,
				Detail: "correction and extraction both failed beyond recovery",
			})
		} else {
			diags = append(diags, Diagnostic{
				File:   fileName,
				Kind:   DiagTranscriptFailed,
				Detail: "extraction failed beyond recovery; no quotes produced",
			})
		}
		p.logger.Error("transcript yielded no quotes", "file", fileName, "error", err)
		return res, diags
	}

	// Categorization, per quote. Advisory: fallback is Uncategorized.
	for _, eq := range extracted {
		topic, err := p.stages.Categorize(ctx, eq.Text)
		if err != nil {
			diags = append(diags, Diagnostic{File: fileName, Kind: DiagMalformedResponse, Detail: err.Error()})
		}
		res.Quotes = append(res.Quotes, Quote{
			Text:      eq.Text,
			Timestamp: eq.Timestamp,
			Topic:     topic,
			Ordinal:   eq.Ordinal,
		})
	}

	// Quotes follow document order; the stable sort keeps extraction
	// order for quotes drawn from the same utterance.
	sort.SliceStable(res.Quotes, func(i, j int) bool {
		return res.Quotes[i].Ordinal < res.Quotes[j].Ordinal
	})

	return res, diags
}
