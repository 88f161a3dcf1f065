package domain

import "context"

// Document is a fetched page: its title and body paragraphs as plain text.
// It is never modified after a successful fetch.
type Document struct {
	Title      string
	URL        string
	Paragraphs []string
}

// Answer is the outcome of a single query against the loaded topic.
// Matched is false when no corpus sentence shares a weighted term with the query.
type Answer struct {
	Matched  bool
	Sentence string
	Position int
	Score    float64
}

// Fetcher resolves a topic name to a Document.
// Failures are reported as *FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, topic string) (Document, error)
}

// Splitter breaks a paragraph into sentences.
type Splitter interface {
	Split(text string) []string
}

// Normalizer turns raw text into an ordered sequence of comparable terms.
type Normalizer interface {
	Normalize(text string) []string
}

// Summarizer produces a brief summary from an ordered list of sentences.
type Summarizer interface {
	Summarize(sentences []string, maxSentences int) string
}
