package pipeline

import "github.com/quotedeck/quotedeck/internal/stage"

// Quote is one categorized, attributed statement. Immutable once built.
type Quote struct {
	Text      string
	Timestamp string
	Topic     stage.Topic
	Ordinal   int // document position of the source utterance
}

// Result is everything one transcript produced.
type Result struct {
	FileName string
	Quotes   []Quote
}

// DiagnosticKind classifies a recorded, non-fatal failure or warning.
type DiagnosticKind string

const (
	DiagParseFailure            DiagnosticKind = "ParseFailure"
	DiagNoInterviewerMatch      DiagnosticKind = "NoInterviewerMatch"
	DiagCorrectionCountMismatch DiagnosticKind = "CorrectionCountMismatch"
	DiagMalformedResponse       DiagnosticKind = "MalformedResponse"
	DiagTranscriptFailed        DiagnosticKind = "TranscriptFailed"
)

// Diagnostic is attached to the batch result instead of aborting it.
// Per-stage and per-file failures are absorbed into these; only an
// entirely empty batch surfaces as an error to the caller.
type Diagnostic struct {
	File   string
	Kind   DiagnosticKind
	Detail string
}
