package tfidf

import (
	"math"
	"sort"
)

// Vector is a sparse, L2-normalized TF-IDF vector keyed by vocabulary index.
type Vector map[int]float64

// Dot returns the inner product; for normalized vectors it is the cosine similarity.
func (v Vector) Dot(o Vector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	sum := 0.0
	for i, w := range v {
		sum += w * o[i]
	}
	return sum
}

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Vectorizer builds a vocabulary and IDF table over one collection of
// tokenized documents. A new Vectorizer is fitted for every collection.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// FitTransform fits the vocabulary over docs and returns one vector per doc.
func FitTransform(docs [][]string) (*Vectorizer, []Vector) {
	v := Fit(docs)
	out := make([]Vector, len(docs))
	for i, d := range docs {
		out[i] = v.Transform(d)
	}
	return v, out
}

// Fit computes document frequencies and smoothed IDF values.
func Fit(docs [][]string) *Vectorizer {
	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return v
}

// Dimension returns the vocabulary size.
func (v *Vectorizer) Dimension() int { return len(v.idf) }

// IDF returns the weight of term and whether it is in the vocabulary.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	i, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

// Transform weights tokens as term count over token count times IDF, then
// L2-normalizes. Out-of-vocabulary tokens are ignored.
func (v *Vectorizer) Transform(tokens []string) Vector {
	tf := make(map[int]int)
	total := 0
	for _, tok := range tokens {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	vec := make(Vector, len(tf))
	if total == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * v.idf[idx]
	}
	norm := vec.Norm()
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
