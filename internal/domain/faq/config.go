package faq

import "time"

// Config holds runtime knobs for the FAQ matcher. A nil Threshold selects
// DefaultThreshold; zero is a valid threshold.
type Config struct {
	Threshold         *float64
	ParallelThreshold int
	ReloadTimeout     time.Duration
}
