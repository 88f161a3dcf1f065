package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_SmoothedIDF(t *testing.T) {
	docs := [][]string{
		{"paris", "capital", "france"},
		{"population", "two", "million"},
		{"capital", "france"},
	}
	v := Fit(docs)
	require.Equal(t, 6, v.Dimension())

	// df(capital)=2, N=3
	idf, ok := v.IDF("capital")
	require.True(t, ok)
	assert.InDelta(t, math.Log(4.0/3.0)+1, idf, 1e-12)

	// df(paris)=1
	idf, _ = v.IDF("paris")
	assert.InDelta(t, math.Log(2.0)+1, idf, 1e-12)

	_, ok = v.IDF("london")
	assert.False(t, ok)
}

func TestFit_TermInEveryDocNotZeroed(t *testing.T) {
	v := Fit([][]string{{"a"}, {"a"}})
	idf, _ := v.IDF("a")
	assert.InDelta(t, 1.0, idf, 1e-12)
}

func TestTransform_NormalizedAndCosine(t *testing.T) {
	_, vecs := FitTransform([][]string{
		{"paris", "capital", "france"},
		{"population", "two", "million"},
		{"capital", "france"},
	})
	for i, vec := range vecs {
		assert.InDelta(t, 1.0, vec.Norm(), 1e-9, "doc %d", i)
	}
	assert.Greater(t, vecs[2].Dot(vecs[0]), 0.0)
	assert.Equal(t, 0.0, vecs[2].Dot(vecs[1]))
	assert.InDelta(t, 1.0, vecs[2].Dot(vecs[2]), 1e-9)
}

func TestTransform_TermFrequency(t *testing.T) {
	v := Fit([][]string{{"x", "x", "y"}, {"y"}})
	vec := v.Transform([]string{"x", "x", "y"})

	idfX, _ := v.IDF("x")
	idfY, _ := v.IDF("y")
	wx, wy := 2.0/3.0*idfX, 1.0/3.0*idfY
	norm := math.Sqrt(wx*wx + wy*wy)

	assert.InDelta(t, wx/norm, vec[v.vocabulary["x"]], 1e-12)
	assert.InDelta(t, wy/norm, vec[v.vocabulary["y"]], 1e-12)
}

func TestTransform_EmptyAndUnknown(t *testing.T) {
	v := Fit([][]string{{"a", "b"}})
	assert.Empty(t, v.Transform(nil))
	assert.Empty(t, v.Transform([]string{"zzz"}))
	assert.Equal(t, 0.0, v.Transform(nil).Dot(v.Transform([]string{"a"})))
}

func TestFit_Empty(t *testing.T) {
	v, vecs := FitTransform(nil)
	assert.Equal(t, 0, v.Dimension())
	assert.Empty(t, vecs)
}
