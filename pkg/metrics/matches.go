package metrics

import (
	"sync/atomic"
	"time"
)

// MatchCounters tracks lookup outcomes. The zero value is ready to use.
type MatchCounters struct {
	queries    atomic.Int64
	matches    atomic.Int64
	misses     atomic.Int64
	totalNanos atomic.Int64
}

// MatchSnapshot is a point-in-time copy of MatchCounters.
type MatchSnapshot struct {
	Queries       int64   `json:"queries"`
	Matches       int64   `json:"matches"`
	Misses        int64   `json:"misses"`
	AvgResponseMs float64 `json:"avgResponseMs"`
}

// Observe records one lookup.
func (c *MatchCounters) Observe(found bool, elapsed time.Duration) {
	c.queries.Add(1)
	if found {
		c.matches.Add(1)
	} else {
		c.misses.Add(1)
	}
	if elapsed > 0 {
		c.totalNanos.Add(int64(elapsed))
	}
}

// Snapshot reads the counters.
func (c *MatchCounters) Snapshot() MatchSnapshot {
	snap := MatchSnapshot{
		Queries: c.queries.Load(),
		Matches: c.matches.Load(),
		Misses:  c.misses.Load(),
	}
	if snap.Queries > 0 {
		avg := time.Duration(c.totalNanos.Load() / snap.Queries)
		snap.AvgResponseMs = float64(avg) / float64(time.Millisecond)
	}
	return snap
}
