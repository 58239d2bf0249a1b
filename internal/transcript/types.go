package transcript

// Utterance is one contiguous speaker turn. Ordinal is the turn's
// position within its transcript, counted across all speakers, so
// document order survives interviewer filtering.
type Utterance struct {
	Speaker   string
	Text      string
	Timestamp string // empty when no timestamp was found near the turn
	Ordinal   int
}
