package faq

import (
	"errors"
	"fmt"
)

// ErrEmptyCorpus is returned when a query arrives and no corpus entries are available.
var ErrEmptyCorpus = errors.New("faq corpus is empty")

// LoadError reports a corpus that cannot be loaded. Index is the offending
// entry position, or -1 when the problem concerns the corpus as a whole.
type LoadError struct {
	Index  int
	Reason string
}

func (e *LoadError) Error() string {
	if e.Index < 0 {
		return "load corpus: " + e.Reason
	}
	return fmt.Sprintf("load corpus: entry %d: %s", e.Index, e.Reason)
}
