package dispatch

import "strings"

// Signals is the normalized evidence for one customer message: keywords and
// entities from the text-analysis collaborator plus the raw message itself.
// A Signals value is never modified after FuseSignals returns it.
type Signals struct {
	keywords   []string
	entities   []string
	rawMessage string
}

// FuseSignals lowercases the extracted keywords and entities and drops blank
// entries. Either list may be nil when analysis was skipped or failed.
func FuseSignals(message string, keywords, entities []string) Signals {
	return Signals{
		keywords:   normalizeTerms(keywords),
		entities:   normalizeTerms(entities),
		rawMessage: message,
	}
}

func (s Signals) Keywords() []string { return append([]string(nil), s.keywords...) }
func (s Signals) Entities() []string { return append([]string(nil), s.entities...) }
func (s Signals) RawMessage() string { return s.rawMessage }

// HasExtracted reports whether analysis produced any keyword or entity.
func (s Signals) HasExtracted() bool {
	return len(s.keywords) > 0 || len(s.entities) > 0
}

// SignalText is what the classifiers read: the extracted terms joined by
// spaces, or the lowercased raw message when nothing was extracted.
func (s Signals) SignalText() string {
	if joined := s.joined(); joined != "" {
		return joined
	}
	return strings.ToLower(s.rawMessage)
}

// CombinedText always carries both the raw message and the extracted terms.
// Place names often do not survive keyword extraction.
func (s Signals) CombinedText() string {
	return strings.TrimSpace(s.rawMessage + " " + s.joined())
}

func (s Signals) joined() string {
	terms := make([]string, 0, len(s.keywords)+len(s.entities))
	terms = append(terms, s.keywords...)
	terms = append(terms, s.entities...)
	return strings.Join(terms, " ")
}

func normalizeTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
