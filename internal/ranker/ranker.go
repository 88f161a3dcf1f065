// Package ranker picks the corpus sentence most similar to a query.
//
// Every call fits a fresh TF-IDF space over the corpus plus the query, so IDF
// values include the query's vocabulary for that call only. Nothing is kept
// between calls.
package ranker

import (
	"wikibot/internal/domain"
	"wikibot/internal/embedding/tfidf"
)

// Result is the best match of a Rank call. Index is -1 when Matched is false.
type Result struct {
	Index   int
	Score   float64
	Matched bool
}

// Ranker is safe for concurrent use if its Normalizer is.
type Ranker struct {
	normalizer domain.Normalizer
}

func New(normalizer domain.Normalizer) *Ranker {
	return &Ranker{normalizer: normalizer}
}

// Rank scores every sentence against query by cosine similarity and returns
// the highest. Ties go to the lowest index; a best score of zero is no match.
func (r *Ranker) Rank(sentences []string, query string) Result {
	scores := r.Scores(sentences, query)
	best := Result{Index: -1}
	for i, s := range scores {
		if s > best.Score {
			best = Result{Index: i, Score: s, Matched: true}
		}
	}
	return best
}

// Scores returns the cosine similarity of query against each sentence.
func (r *Ranker) Scores(sentences []string, query string) []float64 {
	if len(sentences) == 0 {
		return nil
	}
	docs := make([][]string, 0, len(sentences)+1)
	for _, s := range sentences {
		docs = append(docs, r.normalizer.Normalize(s))
	}
	docs = append(docs, r.normalizer.Normalize(query))

	_, vecs := tfidf.FitTransform(docs)
	q := vecs[len(vecs)-1]
	scores := make([]float64, len(sentences))
	for i := range sentences {
		scores[i] = q.Dot(vecs[i])
	}
	return scores
}
