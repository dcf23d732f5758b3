package faq

import "time"

// Entry is the source form of a corpus item.
type Entry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// FaqEntry is a loaded corpus item with its cached normalized question.
type FaqEntry struct {
	Question           string
	Answer             string
	NormalizedQuestion string

	runes []string
}

// MatchResult is the outcome of a single lookup. Answer and MatchedQuestion
// are either both set or both nil.
type MatchResult struct {
	Answer          *string `json:"answer"`
	Score           float64 `json:"score"`
	MatchedQuestion *string `json:"matchedQuestion"`
}

// Found reports whether the lookup surfaced an answer.
func (r MatchResult) Found() bool {
	return r.Answer != nil && r.MatchedQuestion != nil
}

func noMatch(score float64) MatchResult {
	return MatchResult{Score: score}
}

func matched(entry FaqEntry, score float64) MatchResult {
	answer := entry.Answer
	question := entry.Question
	return MatchResult{Answer: &answer, Score: score, MatchedQuestion: &question}
}

// Request encapsulates a free-text question from a transport.
type Request struct {
	Query string `json:"query"`
}

// Response is returned to transports.
type Response struct {
	Query           string  `json:"query"`
	Answer          string  `json:"answer,omitempty"`
	Confidence      float64 `json:"confidence"`
	MatchedQuestion *string `json:"matchedQuestion"`
	Found           bool    `json:"found"`
}

// Stats summarizes the service since startup.
type Stats struct {
	TotalFAQs       int       `json:"totalFaqs"`
	Queries         int64     `json:"queries"`
	Matches         int64     `json:"matches"`
	Misses          int64     `json:"misses"`
	AvgResponseMs   float64   `json:"avgResponseMs"`
	CorpusSource    string    `json:"corpusSource"`
	CorpusLoadedAt  time.Time `json:"corpusLoadedAt"`
	CorpusSnapshots int64     `json:"corpusSnapshots"`
}
