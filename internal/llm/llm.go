package llm

import (
	"context"
	"errors"
)

// Client is the text-generation capability the pipeline depends on.
// Any provider that can turn a prompt into text is interchangeable.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrTransient marks failures worth retrying: network errors, 5xx,
// rate limits, empty responses. Providers wrap these so the stage
// retry policy can tell them apart from permanent errors.
var ErrTransient = errors.New("transient llm failure")

// IsTransient reports whether err is a retryable provider failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
