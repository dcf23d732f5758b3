package faq

import "strings"

// Corpus is an immutable, ordered set of FAQ entries.
type Corpus struct {
	entries []FaqEntry
}

// Load validates entries and precomputes their normalized questions.
// Insertion order is preserved and duplicate questions are allowed.
func Load(entries []Entry) (*Corpus, error) {
	if len(entries) == 0 {
		return nil, &LoadError{Index: -1, Reason: "no entries"}
	}
	loaded := make([]FaqEntry, 0, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Question) == "" {
			return nil, &LoadError{Index: i, Reason: "question is empty"}
		}
		normalized := Normalize(e.Question)
		if normalized == "" {
			return nil, &LoadError{Index: i, Reason: "question has no letters or digits"}
		}
		loaded = append(loaded, FaqEntry{
			Question:           e.Question,
			Answer:             e.Answer,
			NormalizedQuestion: normalized,
			runes:              runes(normalized),
		})
	}
	return &Corpus{entries: loaded}, nil
}

// All returns a copy of the entries in insertion order.
func (c *Corpus) All() []FaqEntry {
	if c == nil {
		return nil
	}
	out := make([]FaqEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the number of entries.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
