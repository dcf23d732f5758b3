package faq

import (
	"fmt"
	"math"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
)

func collegeCorpus(t *testing.T) *Corpus {
	t.Helper()
	corpus, err := Load([]Entry{
		{Question: "What is the admission deadline?", Answer: "July 31."},
		{Question: "What are the hostel fees?", Answer: "₹50,000/year."},
	})
	require.NoError(t, err)
	return corpus
}

func TestFindBestMatchScenario(t *testing.T) {
	m := NewMatcher(collegeCorpus(t))

	res, err := m.FindBestMatch("when is the admission deadline")
	require.NoError(t, err)
	require.True(t, res.Found())
	require.Equal(t, "What is the admission deadline?", *res.MatchedQuestion)
	require.Equal(t, "July 31.", *res.Answer)
	require.GreaterOrEqual(t, res.Score, 0.3)

	res, err = m.FindBestMatch("tell me a joke")
	require.NoError(t, err)
	require.False(t, res.Found())
	require.Nil(t, res.Answer)
	require.Nil(t, res.MatchedQuestion)
	require.Less(t, res.Score, 0.3)
	require.Greater(t, res.Score, 0.0)
}

func TestFindBestMatchIdentity(t *testing.T) {
	corpus, err := Load([]Entry{
		{Question: "What is the admission deadline?", Answer: "July 31."},
		{Question: "What are the hostel fees?", Answer: "₹50,000/year."},
		{Question: "Is there a placement cell?", Answer: "Yes."},
		{Question: "Where is the library?", Answer: "Block C."},
	})
	require.NoError(t, err)
	m := NewMatcher(corpus)

	for _, e := range corpus.All() {
		res, err := m.FindBestMatch(e.Question)
		require.NoError(t, err)
		require.Equal(t, 1.0, res.Score)
		require.Equal(t, e.Question, *res.MatchedQuestion)
		require.Equal(t, e.Answer, *res.Answer)
	}
}

func TestFindBestMatchBlankQueries(t *testing.T) {
	m := NewMatcher(collegeCorpus(t))
	for _, q := range []string{"", "   ", "\t\n", "?!?", "..."} {
		res, err := m.FindBestMatch(q)
		require.NoError(t, err)
		require.Equal(t, MatchResult{}, res, "query %q", q)
	}
}

func TestFindBestMatchTieBreakPrefersEarliest(t *testing.T) {
	corpus, err := Load([]Entry{
		{Question: "What is the admission deadline?", Answer: "first"},
		{Question: "what is the ADMISSION deadline", Answer: "second"},
	})
	require.NoError(t, err)
	m := NewMatcher(corpus)

	res, err := m.FindBestMatch("What is the admission deadline")
	require.NoError(t, err)
	require.Equal(t, "What is the admission deadline?", *res.MatchedQuestion)
	require.Equal(t, "first", *res.Answer)
}

func TestFindBestMatchThresholdIsInclusive(t *testing.T) {
	corpus := collegeCorpus(t)
	query := "admission deadline"
	score := Similarity(Normalize(query), "what is the admission deadline")

	res, err := NewMatcher(corpus, WithThreshold(score)).FindBestMatch(query)
	require.NoError(t, err)
	require.True(t, res.Found())
	require.Equal(t, score, res.Score)

	res, err = NewMatcher(corpus, WithThreshold(math.Nextafter(score, 2))).FindBestMatch(query)
	require.NoError(t, err)
	require.False(t, res.Found())
	require.Equal(t, score, res.Score)
}

func TestFindBestMatchIsDeterministic(t *testing.T) {
	m := NewMatcher(collegeCorpus(t))
	first, err := m.FindBestMatch("hostel fee per year?")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := m.FindBestMatch("hostel fee per year?")
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestFindBestMatchEmptyCorpus(t *testing.T) {
	_, err := NewMatcher(nil).FindBestMatch("anything")
	require.ErrorIs(t, err, ErrEmptyCorpus)

	var m *Matcher
	_, err = m.FindBestMatch("")
	require.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestAllFAQsPreservesOrder(t *testing.T) {
	entries := []Entry{
		{Question: "Q3?", Answer: "c"},
		{Question: "Q1?", Answer: "a"},
		{Question: "Q2?", Answer: "b"},
	}
	corpus, err := Load(entries)
	require.NoError(t, err)

	require.Equal(t, entries, NewMatcher(corpus).AllFAQs())
}

func TestShardedScanMatchesSequential(t *testing.T) {
	entries := make([]Entry, 0, 240)
	for i := 0; i < 240; i++ {
		entries = append(entries, Entry{
			Question: fmt.Sprintf("What is the schedule for course %d in block %d?", i, i%7),
			Answer:   fmt.Sprintf("answer-%d", i),
		})
	}
	// identical questions far apart so they land in different shards
	entries[15] = Entry{Question: "Where is the chemistry lab?", Answer: "early"}
	entries[200] = Entry{Question: "Where is the chemistry lab?", Answer: "late"}

	corpus, err := Load(entries)
	require.NoError(t, err)

	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer pool.Release()

	sequential := NewMatcher(corpus)
	sharded := NewMatcher(corpus, WithPool(pool, 10))

	queries := []string{
		"where is the chemistry lab",
		"schedule for course 123",
		"block 3 course 45 schedule",
		"library opening hours",
	}
	for _, q := range queries {
		want, err := sequential.FindBestMatch(q)
		require.NoError(t, err)
		got, err := sharded.FindBestMatch(q)
		require.NoError(t, err)
		require.Equal(t, want, got, "query %q", q)
	}

	res, err := sharded.FindBestMatch("Where is the chemistry lab?")
	require.NoError(t, err)
	require.Equal(t, "early", *res.Answer)
}

func TestShardedScanFallsBackWhenPoolReleased(t *testing.T) {
	corpus := collegeCorpus(t)
	pool, err := ants.NewPool(2)
	require.NoError(t, err)
	pool.Release()

	res, err := NewMatcher(corpus, WithPool(pool, 1)).FindBestMatch("hostel fees")
	require.NoError(t, err)
	require.Equal(t, "What are the hostel fees?", *res.MatchedQuestion)
}

func TestUpperBound(t *testing.T) {
	require.Equal(t, 1.0, upperBound(4, 4))
	require.Equal(t, 0.5, upperBound(1, 3))
	require.Equal(t, 1.0, upperBound(0, 0))
}
