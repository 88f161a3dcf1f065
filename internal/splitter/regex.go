package splitter

import (
	"regexp"
	"strings"
)

// RegexSplitter ends a sentence at '.', '!' or '?'.
// Trailing text with no terminator becomes the last sentence.
type RegexSplitter struct {
	pattern *regexp.Regexp
}

func NewRegexSplitter() *RegexSplitter {
	return &RegexSplitter{pattern: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)}
}

func (s *RegexSplitter) Split(text string) []string {
	var out []string
	end := 0
	for _, loc := range s.pattern.FindAllStringIndex(text, -1) {
		if sent := strings.TrimSpace(text[loc[0]:loc[1]]); sent != "" {
			out = append(out, sent)
		}
		end = loc[1]
	}
	if rest := strings.TrimSpace(text[end:]); rest != "" && strings.Trim(rest, ".!?") != "" {
		out = append(out, rest)
	}
	return out
}
