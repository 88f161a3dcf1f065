package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchErrorClassification(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	netErr := NetworkError("Go", "https://example.org/wiki/Go", cause)
	assert.ErrorIs(t, netErr, ErrNetwork)
	assert.NotErrorIs(t, netErr, ErrNotFound)
	assert.ErrorIs(t, netErr, cause)

	nf := NotFoundError("Nope", "", nil)
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.NotErrorIs(t, nf, ErrNetwork)
	assert.Contains(t, nf.Error(), "page not found")
}

func TestFetchErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("set topic: %w", NetworkError("Go", "", errors.New("timeout")))

	var fe *FetchError
	assert.True(t, errors.As(wrapped, &fe))
	assert.Equal(t, FetchNetwork, fe.Kind)
	assert.Equal(t, "network", fe.Kind.String())
	assert.ErrorIs(t, wrapped, ErrNetwork)
}
