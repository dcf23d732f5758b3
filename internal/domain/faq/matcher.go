package faq

import (
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// DefaultThreshold is the minimum similarity required to surface an answer.
const DefaultThreshold = 0.3

// Matcher scores queries against a corpus. It holds no mutable state and is
// safe for concurrent use.
type Matcher struct {
	corpus    *Corpus
	threshold float64

	pool        *ants.Pool
	parallelMin int
}

// MatcherOption customizes a Matcher.
type MatcherOption func(*Matcher)

// WithThreshold overrides DefaultThreshold. Scores equal to the threshold match.
func WithThreshold(threshold float64) MatcherOption {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// WithPool scores corpora holding at least minEntries entries in shards on pool.
func WithPool(pool *ants.Pool, minEntries int) MatcherOption {
	return func(m *Matcher) {
		m.pool = pool
		m.parallelMin = minEntries
	}
}

// NewMatcher builds a matcher over corpus.
func NewMatcher(corpus *Corpus, opts ...MatcherOption) *Matcher {
	m := &Matcher{corpus: corpus, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindBestMatch returns the corpus entry closest to query. Blank queries and
// queries without letters or digits yield a zero-confidence miss. Ties go to
// the entry loaded first.
func (m *Matcher) FindBestMatch(query string) (MatchResult, error) {
	if m == nil || m.corpus.Len() == 0 {
		return MatchResult{}, ErrEmptyCorpus
	}
	if strings.TrimSpace(query) == "" {
		return noMatch(0), nil
	}
	normalized := Normalize(query)
	if normalized == "" {
		return noMatch(0), nil
	}

	best := m.scan(normalized)
	if best.score < m.threshold {
		return noMatch(best.score), nil
	}
	return matched(m.corpus.entries[best.index], best.score), nil
}

// AllFAQs lists the corpus in insertion order.
func (m *Matcher) AllFAQs() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, 0, m.corpus.Len())
	for _, e := range m.corpus.All() {
		out = append(out, Entry{Question: e.Question, Answer: e.Answer})
	}
	return out
}

// Len reports the corpus size.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return m.corpus.Len()
}

// Threshold reports the configured confidence threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

type candidate struct {
	index int
	score float64
}

func (m *Matcher) scan(query string) candidate {
	q := runes(query)
	entries := m.corpus.entries
	if m.pool == nil || m.parallelMin <= 0 || len(entries) < m.parallelMin {
		return bestInRange(query, q, entries, 0, len(entries))
	}
	return m.scanSharded(query, q)
}

func (m *Matcher) scanSharded(query string, q []string) candidate {
	entries := m.corpus.entries
	workers := m.pool.Cap()
	if workers < 1 {
		workers = 1
	}
	size := (len(entries) + workers - 1) / workers
	shards := (len(entries) + size - 1) / size
	results := make([]candidate, shards)

	var wg sync.WaitGroup
	for i := 0; i < shards; i++ {
		lo := i * size
		hi := min(lo+size, len(entries))
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = bestInRange(query, q, entries, lo, hi)
		}
		if err := m.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	// shards are merged in order with a strict comparison so ties keep the earliest entry
	best := candidate{index: -1}
	for _, r := range results {
		if r.index < 0 {
			continue
		}
		if best.index < 0 || r.score > best.score {
			best = r
		}
	}
	return best
}

func bestInRange(query string, q []string, entries []FaqEntry, lo, hi int) candidate {
	best := candidate{index: -1}
	for i := lo; i < hi; i++ {
		entry := entries[i]
		if best.index >= 0 && upperBound(len(q), len(entry.runes)) <= best.score {
			continue
		}
		score := pairScore(query, q, entry)
		if best.index < 0 || score > best.score {
			best = candidate{index: i, score: score}
		}
	}
	return best
}

func pairScore(query string, q []string, entry FaqEntry) float64 {
	a, b := q, entry.runes
	if query > entry.NormalizedQuestion {
		a, b = b, a
	}
	return newSequenceMatcher(a, b).Ratio()
}

// upperBound caps the ratio two sequences of the given lengths can reach.
func upperBound(la, lb int) float64 {
	if la+lb == 0 {
		return 1
	}
	return 2.0 * float64(min(la, lb)) / float64(la+lb)
}
