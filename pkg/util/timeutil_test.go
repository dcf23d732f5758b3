package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestamp(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2024, 7, 31, 17, 30, 0, 123_000_000, ist)
	require.Equal(t, "2024-07-31T12:00:00.123Z", Timestamp(ts))
}

func TestNowUTC(t *testing.T) {
	require.Equal(t, time.UTC, NowUTC().Location())
}
