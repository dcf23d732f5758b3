package faq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "trims whitespace", in: "  Hello World  ", out: "hello world"},
		{name: "removes punctuation", in: "What's, the distance?", out: "whats the distance"},
		{name: "collapses whitespace", in: "hostel\t\tfees \n per   year", out: "hostel fees per year"},
		{name: "drops symbols", in: "₹50,000/year.", out: "50000year"},
		{name: "punctuation between spaces", in: "fees - hostel", out: "fees hostel"},
		{name: "keeps digits", in: "Semester 2 EXAMS!", out: "semester 2 exams"},
		{name: "only punctuation", in: "?!...", out: ""},
		{name: "empty", in: "", out: ""},
		{name: "non latin letters", in: "  Über Café  ", out: "über café"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.out, Normalize(tc.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"What is the admission deadline?",
		"  multiple   spaces\tand\ttabs ",
		"¿Dónde está la biblioteca?",
		"a-b-c / d_e",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}
