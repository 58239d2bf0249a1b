package stage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/quotedeck/quotedeck/internal/transcript"
)

var lineNumberRe = regexp.MustCompile(`^\s*\d+\s*[.):\-]\s*`)

// Correct sends all interviewee utterances of one transcript in a single
// batched call and returns them with corrected text. The result has the
// same count, order, speakers, timestamps, and ordinals as the input.
// A count mismatch triggers one reminder attempt with an explicit count
// instruction; a second mismatch fails with ErrCountMismatch and the
// caller falls back to the uncorrected text.
func (r *Runner) Correct(ctx context.Context, utts []transcript.Utterance) ([]transcript.Utterance, error) {
	if len(utts) == 0 {
		return nil, nil
	}

	numbered := numberLines(utts)

	corrected, err := r.correctOnce(ctx, fmt.Sprintf(correctionPrompt, len(utts), numbered), utts)
	if err == nil {
		return corrected, nil
	}
	if !errors.Is(err, ErrCountMismatch) {
		return nil, err
	}

	r.logger.Warn("correction count mismatch, retrying with count reminder", "lines", len(utts))
	return r.correctOnce(ctx, fmt.Sprintf(correctionRetryPrompt, len(utts), numbered), utts)
}

func (r *Runner) correctOnce(ctx context.Context, prompt string, utts []transcript.Utterance) ([]transcript.Utterance, error) {
	var lines []string
	parse := func(raw string) error {
		parsed := splitNonEmptyLines(stripFences(raw))
		if len(parsed) != len(utts) {
			return fmt.Errorf("%w: got %d lines, want %d", ErrCountMismatch, len(parsed), len(utts))
		}
		lines = parsed
		return nil
	}

	if err := r.run(ctx, "correction", prompt, parse); err != nil {
		return nil, err
	}

	out := make([]transcript.Utterance, len(utts))
	for i, u := range utts {
		u.Text = lineNumberRe.ReplaceAllString(lines[i], "")
		out[i] = u
	}
	return out, nil
}

func numberLines(utts []transcript.Utterance) string {
	var sb strings.Builder
	for i, u := range utts {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, u.Text)
	}
	return sb.String()
}

func splitNonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
