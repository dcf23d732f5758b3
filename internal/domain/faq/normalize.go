package faq

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text before comparison. Letters, digits and
// combining marks are kept lower-cased, punctuation and symbols are dropped,
// and whitespace runs collapse to a single space. Normalize(Normalize(s)) ==
// Normalize(s).
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	var builder strings.Builder
	builder.Grow(len(lowered))
	pendingSpace := false
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			if pendingSpace && builder.Len() > 0 {
				builder.WriteByte(' ')
			}
			pendingSpace = false
			builder.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return builder.String()
}
