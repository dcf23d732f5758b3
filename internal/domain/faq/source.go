package faq

import "context"

// CorpusSource supplies the raw entries for a corpus snapshot.
type CorpusSource interface {
	Fetch(ctx context.Context) ([]Entry, error)
	Describe() string
}
