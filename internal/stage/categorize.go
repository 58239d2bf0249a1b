package stage

import (
	"context"
	"fmt"
	"strings"
)

// Categorize labels one quote with a topic from the closed taxonomy.
// Categorization is advisory: off-taxonomy labels normalize to
// Uncategorized, and when the model stays unreachable past the retry
// bound the quote is returned Uncategorized along with the error so the
// caller can record a diagnostic. It never fails the pipeline.
func (r *Runner) Categorize(ctx context.Context, quoteText string) (Topic, error) {
	var names []string
	for _, t := range Topics {
		names = append(names, string(t))
	}
	prompt := fmt.Sprintf(categorizePrompt, strings.Join(names, "\n"), quoteText)

	topic := TopicUncategorized
	parse := func(raw string) error {
		topic = NormalizeTopic(stripFences(raw))
		return nil
	}

	if err := r.run(ctx, "categorization", prompt, parse); err != nil {
		return TopicUncategorized, err
	}
	return topic, nil
}
