package stage

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/quotedeck/quotedeck/internal/transcript"
)

// ExtractedQuote is one quotable statement pulled from a transcript,
// still carrying the timestamp and document position of the utterance it
// was drawn from.
type ExtractedQuote struct {
	Text      string
	Timestamp string
	Ordinal   int
}

var quoteLineRe = regexp.MustCompile(`^(\d+)\s*\|\s*(.+)$`)

// Extract pulls standalone quotes from the corrected utterances in one
// batched call. An utterance may yield zero, one, or many quotes; an
// empty model reply is a valid zero-quote result, not a failure.
func (r *Runner) Extract(ctx context.Context, utts []transcript.Utterance) ([]ExtractedQuote, error) {
	if len(utts) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(extractionPrompt, numberLines(utts))

	var quotes []ExtractedQuote
	parse := func(raw string) error {
		body := stripFences(raw)
		if strings.TrimSpace(body) == "" {
			quotes = nil
			return nil
		}

		var parsed []ExtractedQuote
		for _, line := range splitNonEmptyLines(body) {
			m := quoteLineRe.FindStringSubmatch(line)
			if m == nil {
				return fmt.Errorf("%w: unparseable quote line %q", ErrMalformedResponse, line)
			}
			idx, err := strconv.Atoi(m[1])
			if err != nil || idx < 1 || idx > len(utts) {
				return fmt.Errorf("%w: quote references line %s of %d", ErrMalformedResponse, m[1], len(utts))
			}
			src := utts[idx-1]
			parsed = append(parsed, ExtractedQuote{
				Text:      strings.TrimSpace(m[2]),
				Timestamp: src.Timestamp,
				Ordinal:   src.Ordinal,
			})
		}
		quotes = parsed
		return nil
	}

	if err := r.run(ctx, "extraction", prompt, parse); err != nil {
		return nil, err
	}
	return quotes, nil
}
