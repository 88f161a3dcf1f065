package summarizer

import (
	"math"
	"sort"
	"strings"

	"wikibot/internal/domain"
)

// FrequencySummarizer ranks sentences by the normalized frequency of their terms.
type FrequencySummarizer struct {
	normalizer domain.Normalizer
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer(normalizer domain.Normalizer) *FrequencySummarizer {
	return &FrequencySummarizer{normalizer: normalizer}
}

// Summarize picks the maxSentences highest scoring sentences and returns
// them joined in their original order.
func (s *FrequencySummarizer) Summarize(sentences []string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	if len(sentences) == 0 {
		return ""
	}
	terms := make([][]string, len(sentences))
	freq := map[string]float64{}
	for i, sent := range sentences {
		terms[i] = s.normalizer.Normalize(sent)
		for _, tok := range terms[i] {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i := range sentences {
		score := 0.0
		for _, tok := range terms[i] {
			score += freq[tok]
		}
		// Normalize by sentence length to avoid bias
		if l := float64(len(terms[i])); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = pair{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}
	// Keep original order among selected
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, len(selected))
	for _, idx := range selected {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " ")
}
