// Package corpus holds the ordered sentences of a document and the paragraph
// each one came from.
package corpus

import "wikibot/internal/domain"

// Index is immutable once built.
type Index struct {
	paragraphs  []string
	sentences   []string
	paragraphOf []int
}

// Build splits every paragraph of doc in order. Paragraphs that yield no
// sentences are kept for lookup but contribute nothing to the corpus.
func Build(doc domain.Document, splitter domain.Splitter) *Index {
	idx := &Index{paragraphs: append([]string(nil), doc.Paragraphs...)}
	for p, text := range idx.paragraphs {
		for _, s := range splitter.Split(text) {
			idx.sentences = append(idx.sentences, s)
			idx.paragraphOf = append(idx.paragraphOf, p)
		}
	}
	return idx
}

// Len returns the number of sentences.
func (x *Index) Len() int { return len(x.sentences) }

// Sentences returns a copy of the corpus in order.
func (x *Index) Sentences() []string { return append([]string(nil), x.sentences...) }

// Sentence returns the sentence at pos.
func (x *Index) Sentence(pos int) (string, bool) {
	if pos < 0 || pos >= len(x.sentences) {
		return "", false
	}
	return x.sentences[pos], true
}

// ParagraphOf returns the paragraph position owning the sentence at pos.
func (x *Index) ParagraphOf(pos int) (int, bool) {
	if pos < 0 || pos >= len(x.paragraphOf) {
		return 0, false
	}
	return x.paragraphOf[pos], true
}

// Paragraph returns the paragraph text at position p.
func (x *Index) Paragraph(p int) (string, bool) {
	if p < 0 || p >= len(x.paragraphs) {
		return "", false
	}
	return x.paragraphs[p], true
}

// ParagraphForSentence is ParagraphOf followed by Paragraph.
func (x *Index) ParagraphForSentence(pos int) (string, bool) {
	p, ok := x.ParagraphOf(pos)
	if !ok {
		return "", false
	}
	return x.Paragraph(p)
}
