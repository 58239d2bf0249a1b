package stage

import "strings"

// Topic is a label from the closed taxonomy. Categorization output is
// always one of these four values, never free text.
type Topic string

const (
	TopicBusinessModel Topic = "Business Model"
	TopicMarketOutlook Topic = "Market Outlook"
	TopicChallenges    Topic = "Challenges"
	TopicUncategorized Topic = "Uncategorized"
)

// Topics lists the assignable labels in presentation order, without the
// catch-all.
var Topics = []Topic{TopicBusinessModel, TopicMarketOutlook, TopicChallenges}

// NormalizeTopic maps a free-form model label onto the closed taxonomy.
// Anything that is not an exact (case-insensitive) member comes back as
// Uncategorized — unknown labels must never break the pipeline.
func NormalizeTopic(label string) Topic {
	cleaned := strings.TrimSpace(label)
	cleaned = strings.Trim(cleaned, "\"'`[].")
	cleaned = strings.TrimSpace(cleaned)

	for _, t := range Topics {
		if strings.EqualFold(cleaned, string(t)) {
			return t
		}
	}
	return TopicUncategorized
}
