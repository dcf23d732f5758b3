package faq

import "github.com/pmezard/go-difflib/difflib"

// Similarity returns the Ratcliff/Obershelp ratio of two normalized strings,
// computed over runes. Spaces are junk: they never anchor a matching block but
// may extend one. The operands are ordered before matching so the ratio is
// symmetric.
func Similarity(a, b string) float64 {
	if a > b {
		a, b = b, a
	}
	return newSequenceMatcher(runes(a), runes(b)).Ratio()
}

func newSequenceMatcher(a, b []string) *difflib.SequenceMatcher {
	return difflib.NewMatcherWithJunk(a, b, false, isSpace)
}

func isSpace(s string) bool {
	return s == " "
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
