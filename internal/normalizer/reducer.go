package normalizer

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/kljensen/snowball/english"
)

// Reducer maps a lower-cased token to its base form.
type Reducer interface {
	Name() string
	Reduce(token string) string
}

// NewReducer returns the reducer registered under kind: "lemma", "stem" or "none".
func NewReducer(kind string) (Reducer, error) {
	switch kind {
	case "lemma", "":
		return NewLemmaReducer()
	case "stem":
		return StemReducer{}, nil
	case "none":
		return IdentityReducer{}, nil
	default:
		return nil, fmt.Errorf("unknown reducer: %s", kind)
	}
}

// LemmaReducer looks tokens up in the English golem dictionary.
// Unknown words are returned unchanged.
type LemmaReducer struct {
	lem *golem.Lemmatizer
}

func NewLemmaReducer() (*LemmaReducer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &LemmaReducer{lem: lem}, nil
}

func (r *LemmaReducer) Name() string { return "lemma" }

func (r *LemmaReducer) Reduce(token string) string {
	if l := r.lem.Lemma(token); l != "" {
		return l
	}
	return token
}

// StemReducer applies the Snowball English stemmer.
type StemReducer struct{}

func (StemReducer) Name() string { return "stem" }

func (StemReducer) Reduce(token string) string { return english.Stem(token, false) }

// IdentityReducer keeps tokens as they are.
type IdentityReducer struct{}

func (IdentityReducer) Name() string { return "none" }

func (IdentityReducer) Reduce(token string) string { return token }
