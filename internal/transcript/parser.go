package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// speakerRe matches a "Name: text" turn opener. Names are short runs of
// word characters so prose containing a colon mid-sentence is not
// mistaken for a speaker change.
var speakerRe = regexp.MustCompile(`^([\p{L}][\p{L}\p{N} .'-]{0,39}):\s*(.*)$`)

// Parser splits raw document lines into speaker-attributed utterances
// and drops the interviewer's turns.
type Parser struct {
	interviewer string
	tsRe        *regexp.Regexp
}

// NewParser builds a parser for one interviewer name. tsPattern is the
// timestamp regexp to look for near each turn; it is configuration, not
// a fixed format.
func NewParser(interviewer, tsPattern string) (*Parser, error) {
	tsRe, err := regexp.Compile(tsPattern)
	if err != nil {
		return nil, fmt.Errorf("compile timestamp pattern: %w", err)
	}
	return &Parser{
		interviewer: normalizeName(interviewer),
		tsRe:        tsRe,
	}, nil
}

// Parse returns interviewee utterances in document order and whether any
// line was attributed to the interviewer. When the interviewer never
// appears the whole document is treated as interviewee text; the caller
// reports that as a warning, not a failure.
func (p *Parser) Parse(lines []string) ([]Utterance, bool) {
	var all []Utterance
	var fromInterviewer []bool

	interviewerSeen := false
	pendingTS := ""
	ordinal := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		ts := p.tsRe.FindString(trimmed)
		work := trimmed
		if ts != "" {
			work = strings.TrimSpace(strings.Replace(work, ts, "", 1))
		}

		// A line carrying only a timestamp labels the turn that follows.
		if work == "" {
			pendingTS = ts
			continue
		}

		if m := speakerRe.FindStringSubmatch(work); m != nil {
			speaker := strings.TrimSpace(m[1])
			if ts == "" {
				ts = pendingTS
			}
			pendingTS = ""
			isInterviewer := normalizeName(speaker) == p.interviewer
			if isInterviewer {
				interviewerSeen = true
			}
			all = append(all, Utterance{
				Speaker:   speaker,
				Text:      strings.TrimSpace(m[2]),
				Timestamp: ts,
				Ordinal:   ordinal,
			})
			fromInterviewer = append(fromInterviewer, isInterviewer)
			ordinal++
			continue
		}

		// Continuation line: joins the previous speaker's turn.
		if len(all) > 0 {
			cur := &all[len(all)-1]
			if cur.Text == "" {
				cur.Text = work
			} else {
				cur.Text += " " + work
			}
			continue
		}

		// Text before any recognizable speaker marker starts an
		// unattributed turn; it is kept as interviewee content.
		if ts == "" {
			ts = pendingTS
		}
		pendingTS = ""
		all = append(all, Utterance{
			Speaker:   "",
			Text:      work,
			Timestamp: ts,
			Ordinal:   ordinal,
		})
		fromInterviewer = append(fromInterviewer, false)
		ordinal++
	}

	var kept []Utterance
	for i, u := range all {
		if fromInterviewer[i] {
			continue
		}
		if strings.TrimSpace(u.Text) == "" {
			continue
		}
		kept = append(kept, u)
	}

	return kept, interviewerSeen
}

// normalizeName lowers the name and strips the punctuation variance a
// transcript introduces (trailing colon, stray whitespace). It never
// fuzzy-matches two distinct names together.
func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimRight(n, ":;,. ")
	return n
}
