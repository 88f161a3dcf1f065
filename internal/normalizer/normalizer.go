// Package normalizer turns sentences and queries into comparable terms:
// case-folded, punctuation-free, stopword-filtered and reduced to base form.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Punctuation is the fixed set stripped before tokenizing.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalizer is safe for concurrent use; it holds only read-only resources.
type Normalizer struct {
	stopwords map[string]struct{}
	reducer   Reducer
}

// New creates a Normalizer with the English stopword set. A nil reducer keeps tokens unchanged.
func New(reducer Reducer) *Normalizer {
	if reducer == nil {
		reducer = IdentityReducer{}
	}
	return &Normalizer{stopwords: defaultStopwords(), reducer: reducer}
}

// Normalize returns the ordered base-form terms of text.
func (n *Normalizer) Normalize(text string) []string {
	folded := cases.Fold().String(text)
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(Punctuation, r) {
			return -1
		}
		return r
	}, folded)
	words := strings.FieldsFunc(stripped, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.Is(unicode.Mn, r)
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n.IsStopword(w) {
			continue
		}
		out = append(out, n.reducer.Reduce(w))
	}
	return out
}

// IsStopword reports whether a folded token is in the stopword set.
func (n *Normalizer) IsStopword(token string) bool {
	_, ok := n.stopwords[token]
	return ok
}

// Reducer returns the base-form reducer in use.
func (n *Normalizer) Reducer() Reducer { return n.reducer }
