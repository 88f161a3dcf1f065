package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches any FetchError caused by a transport failure.
	ErrNetwork = errors.New("network error")
	// ErrNotFound matches any FetchError for a page without usable content.
	ErrNotFound = errors.New("page not found")

	ErrNoTopicSet    = errors.New("no topic set")
	ErrNoPriorAnswer = errors.New("no prior answer")
	ErrEmptyTopic    = errors.New("empty topic")
	ErrEmptyQuery    = errors.New("empty query")
)

// FetchErrorKind classifies fetch failures.
type FetchErrorKind int

const (
	FetchNetwork FetchErrorKind = iota
	FetchNotFound
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// FetchError is returned by Fetcher implementations.
type FetchError struct {
	Kind  FetchErrorKind
	Topic string
	URL   string
	Err   error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %q: %s", e.Topic, e.sentinel())
	}
	return fmt.Sprintf("fetch %q: %s: %v", e.Topic, e.sentinel(), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is match a FetchError against ErrNetwork or ErrNotFound.
func (e *FetchError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *FetchError) sentinel() error {
	if e.Kind == FetchNotFound {
		return ErrNotFound
	}
	return ErrNetwork
}

// NetworkError wraps a transport failure.
func NetworkError(topic, url string, err error) *FetchError {
	return &FetchError{Kind: FetchNetwork, Topic: topic, URL: url, Err: err}
}

// NotFoundError wraps a missing or unrecognizable page.
func NotFoundError(topic, url string, err error) *FetchError {
	return &FetchError{Kind: FetchNotFound, Topic: topic, URL: url, Err: err}
}
