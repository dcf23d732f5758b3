package faq

import (
	"sync/atomic"
	"time"
)

type snapshot struct {
	matcher  *Matcher
	source   string
	loadedAt time.Time
}

// Catalog publishes the matcher for the current corpus snapshot. Installing
// a new matcher replaces the pointer; queries already holding the previous
// matcher finish against it.
type Catalog struct {
	current  atomic.Pointer[snapshot]
	installs atomic.Int64
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Install publishes m as the current snapshot.
func (c *Catalog) Install(m *Matcher, source string, loadedAt time.Time) {
	c.current.Store(&snapshot{matcher: m, source: source, loadedAt: loadedAt})
	c.installs.Add(1)
}

// Matcher returns the current matcher or ErrEmptyCorpus when none is installed.
func (c *Catalog) Matcher() (*Matcher, error) {
	snap := c.current.Load()
	if snap == nil || snap.matcher.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	return snap.matcher, nil
}

func (c *Catalog) describe() (source string, loadedAt time.Time, installs int64) {
	if snap := c.current.Load(); snap != nil {
		source, loadedAt = snap.source, snap.loadedAt
	}
	return source, loadedAt, c.installs.Load()
}
