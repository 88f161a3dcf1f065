// Package splitter provides sentence-boundary tokenizers for paragraph text.
package splitter

import (
	"fmt"

	"wikibot/internal/domain"
)

// New returns the splitter registered under kind: "punkt" or "regex".
func New(kind string) (domain.Splitter, error) {
	switch kind {
	case "punkt", "":
		return NewPunktSplitter()
	case "regex":
		return NewRegexSplitter(), nil
	default:
		return nil, fmt.Errorf("unknown splitter: %s", kind)
	}
}
