package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/quotedeck/quotedeck/internal/llm"
	"github.com/quotedeck/quotedeck/internal/stage"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// routeStub dispatches on the stage prompt so one deterministic fake
// model can serve a whole pipeline run.
type routeStub struct {
	correct    func(prompt string) (string, error)
	extract    func(prompt string) (string, error)
	categorize func(prompt string) (string, error)
}

func (s *routeStub) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Correct the grammar"):
		return s.correct(prompt)
	case strings.Contains(prompt, "numbered statements"):
		return s.extract(prompt)
	case strings.Contains(prompt, "Classify the interview quote"):
		return s.categorize(prompt)
	}
	return "", fmt.Errorf("unroutable prompt: %.60s", prompt)
}

func echo(text string) func(string) (string, error) {
	return func(string) (string, error) { return text, nil }
}

func newPipeline(t *testing.T, client llm.Client) *Pipeline {
	t.Helper()
	parser, err := transcript.NewParser("Sam", `\b\d{2}:\d{2}:\d{2}\b`)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return New(parser, stage.NewRunner(client, 1, discardLogger()), discardLogger())
}

func TestProcess_EndToEnd(t *testing.T) {
	stub := &routeStub{
		correct:    echo("1. Revenue is up, but hiring is hard."),
		extract:    echo("1|Revenue is up, but hiring is hard."),
		categorize: echo("Challenges"),
	}
	p := newPipeline(t, stub)

	lines := []string{
		"Sam: How's business?",
		"Jo: Revenue is up, but hiring is hard.",
	}

	res, diags := p.Process(context.Background(), "interview.docx", lines)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(res.Quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(res.Quotes))
	}
	q := res.Quotes[0]
	if q.Text != "Revenue is up, but hiring is hard." {
		t.Errorf("unexpected quote text: %q", q.Text)
	}
	if q.Timestamp != "" {
		t.Errorf("expected empty timestamp, got %q", q.Timestamp)
	}
	if q.Topic != stage.TopicChallenges {
		t.Errorf("expected Challenges, got %q", q.Topic)
	}
}

func TestProcess_Idempotent(t *testing.T) {
	newStub := func() *routeStub {
		return &routeStub{
			correct:    echo("1. We sell subscriptions.\n2. Margins are thin."),
			extract:    echo("1|We sell subscriptions.\n2|Margins are thin."),
			categorize: echo("Business Model"),
		}
	}

	lines := []string{
		"Sam: What's the model?",
		"Jo: We sell subscriptions.",
		"Jo: Margins are thin.",
	}

	first, _ := newPipeline(t, newStub()).Process(context.Background(), "a.docx", lines)
	second, _ := newPipeline(t, newStub()).Process(context.Background(), "a.docx", lines)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("pipeline not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestProcess_EmptyDocument(t *testing.T) {
	stub := &routeStub{
		correct:    echo(""),
		extract:    echo(""),
		categorize: echo(""),
	}
	p := newPipeline(t, stub)

	res, diags := p.Process(context.Background(), "empty.docx", nil)
	if len(res.Quotes) != 0 {
		t.Errorf("expected zero quotes, got %+v", res.Quotes)
	}
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %+v", diags)
	}
}

func TestProcess_NoInterviewerMatchWarns(t *testing.T) {
	stub := &routeStub{
		correct:    echo("1. All of it is on the record."),
		extract:    echo("1|All of it is on the record."),
		categorize: echo("Market Outlook"),
	}
	p := newPipeline(t, stub)

	res, diags := p.Process(context.Background(), "solo.docx", []string{
		"Jo: All of it is on the record.",
	})
	if len(res.Quotes) != 1 {
		t.Fatalf("expected the document to proceed, got %+v", res)
	}
	if len(diags) != 1 || diags[0].Kind != DiagNoInterviewerMatch {
		t.Fatalf("expected NoInterviewerMatch warning, got %+v", diags)
	}
}

func TestProcess_CorrectionFallbackPassesOriginalText(t *testing.T) {
	var extractionPrompt string
	stub := &routeStub{
		// Wrong count on both the first and the reminder attempt.
		correct: echo("1. merged everything into one line"),
		extract: func(prompt string) (string, error) {
			extractionPrompt = prompt
			return "1|Hiring is hard.", nil
		},
		categorize: echo("Challenges"),
	}
	p := newPipeline(t, stub)

	res, diags := p.Process(context.Background(), "x.docx", []string{
		"Jo: Hiring is hard.",
		"Jo: Rents went up.",
	})
	if len(res.Quotes) != 1 {
		t.Fatalf("expected pipeline to continue on uncorrected text, got %+v", res)
	}
	if !strings.Contains(extractionPrompt, "Rents went up.") {
		t.Errorf("extraction did not receive the original text:\n%s", extractionPrompt)
	}

	var kinds []DiagnosticKind
	for _, d := range diags {
		kinds = append(kinds, d.Kind)
	}
	if !reflect.DeepEqual(kinds, []DiagnosticKind{DiagCorrectionCountMismatch}) {
		t.Errorf("expected a single CorrectionCountMismatch diagnostic, got %+v", diags)
	}
}

func TestProcess_ExtractionFailureYieldsEmptyResult(t *testing.T) {
	stub := &routeStub{
		correct: echo("1. Hiring is hard."),
		extract: echo("not the format you asked for"),
		categorize: func(string) (string, error) {
			return "", fmt.Errorf("categorization must not run after extraction failed")
		},
	}
	p := newPipeline(t, stub)

	res, diags := p.Process(context.Background(), "bad.docx", []string{"Jo: Hiring is hard."})
	if len(res.Quotes) != 0 {
		t.Fatalf("expected empty result, got %+v", res.Quotes)
	}

	failed := false
	for _, d := range diags {
		if d.Kind == DiagTranscriptFailed {
			failed = true
		}
	}
	if !failed {
		t.Errorf("expected TranscriptFailed diagnostic, got %+v", diags)
	}
}

func TestProcess_CategorizationFallback(t *testing.T) {
	stub := &routeStub{
		correct: echo("1. Hiring is hard."),
		extract: echo("1|Hiring is hard."),
		categorize: func(string) (string, error) {
			return "", fmt.Errorf("model down: %w", llm.ErrTransient)
		},
	}
	p := newPipeline(t, stub)

	res, diags := p.Process(context.Background(), "y.docx", []string{"Jo: Hiring is hard."})
	if len(res.Quotes) != 1 {
		t.Fatalf("expected quote despite categorization failure, got %+v", res)
	}
	if res.Quotes[0].Topic != stage.TopicUncategorized {
		t.Errorf("expected Uncategorized fallback, got %q", res.Quotes[0].Topic)
	}
	if len(diags) == 0 {
		t.Error("expected a diagnostic for the categorization fallback")
	}
}

func TestProcess_QuotesFollowDocumentOrder(t *testing.T) {
	stub := &routeStub{
		correct: echo("1. First thought.\n2. Second thought."),
		// Model returns quotes out of source order.
		extract:    echo("2|Second thought.\n1|First thought.\n1|First again."),
		categorize: echo("Uncategorized"),
	}
	p := newPipeline(t, stub)

	res, _ := p.Process(context.Background(), "ord.docx", []string{
		"Jo: First thought.",
		"Jo: Second thought.",
	})
	if len(res.Quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(res.Quotes))
	}
	if res.Quotes[0].Text != "First thought." || res.Quotes[1].Text != "First again." {
		t.Errorf("quotes not in document order (stable within an utterance): %+v", res.Quotes)
	}
	if res.Quotes[2].Text != "Second thought." {
		t.Errorf("expected later utterance's quote last, got %+v", res.Quotes[2])
	}
}
