package scoring

import (
	"iter"
	"strings"
)

// Tokenize lowercases text and yields every maximal run of a-z, 0-9 and '+'.
// Everything else separates tokens. The returned sequence is lazy and can be
// ranged over any number of times.
func Tokenize(text string) iter.Seq[string] {
	lowered := strings.ToLower(text)
	return func(yield func(string) bool) {
		for piece := range strings.FieldsFuncSeq(lowered, isSeparator) {
			token := strings.TrimSpace(piece)
			if token == "" {
				continue
			}
			if !yield(token) {
				return
			}
		}
	}
}

func isSeparator(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return false
	case r >= '0' && r <= '9':
		return false
	case r == '+':
		return false
	}
	return true
}
