// Package stage implements the three model-backed transformations the
// pipeline runs per transcript: correction, extraction, categorization.
// All three share one shape — build a prompt, make one model call, parse
// a typed result out of free-form text — so the retry policy is written
// once, here.
package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/quotedeck/quotedeck/internal/llm"
)

// ErrMalformedResponse means the model replied but the reply could not
// be parsed into the stage's result shape. Retryable up to the bound.
var ErrMalformedResponse = errors.New("malformed model response")

// ErrCountMismatch means correction returned a different number of lines
// than it was given. It escalates to a reminder prompt instead of a
// plain retry.
var ErrCountMismatch = errors.New("corrected line count mismatch")

// Runner executes stages against one model client with a bounded,
// no-delay retry policy shared by all stages.
type Runner struct {
	llm        llm.Client
	maxRetries uint64
	logger     *slog.Logger
}

func NewRunner(client llm.Client, maxRetries int, logger *slog.Logger) *Runner {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Runner{llm: client, maxRetries: uint64(maxRetries), logger: logger}
}

// run makes one model call and parses it, retrying transient failures
// and malformed replies up to the bound. parse captures its result via
// closure. Any other parse error is permanent and returned as-is.
func (r *Runner) run(ctx context.Context, name, prompt string, parse func(raw string) error) error {
	attempt := 0
	op := func() error {
		attempt++
		raw, err := r.llm.Generate(ctx, prompt)
		if err != nil {
			if llm.IsTransient(err) {
				r.logger.Warn("stage call failed", "stage", name, "attempt", attempt, "error", err)
				return err
			}
			return backoff.Permanent(err)
		}
		if err := parse(raw); err != nil {
			if errors.Is(err, ErrMalformedResponse) {
				r.logger.Warn("stage response unparseable", "stage", name, "attempt", attempt, "error", err)
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	// The external client owns its own timeouts; the stage adds no delay
	// between attempts, only an attempt cap.
	bo := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, r.maxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return fmt.Errorf("%s stage: %w", name, err)
	}
	return nil
}

// stripFences removes a wrapping markdown code fence if the model added
// one around an otherwise well-formed reply.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
