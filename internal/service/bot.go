package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"wikibot/internal/corpus"
	"wikibot/internal/domain"
	"wikibot/internal/ranker"
)

// State is the position of a Bot in its topic/answer lifecycle.
type State int

const (
	NoTopic State = iota
	TopicReady
	AnsweredOnce
)

func (s State) String() string {
	switch s {
	case NoTopic:
		return "no_topic"
	case TopicReady:
		return "topic_ready"
	case AnsweredOnce:
		return "answered_once"
	default:
		return "unknown"
	}
}

// topic is replaced as a unit so the document and its index never disagree.
type topic struct {
	doc     domain.Document
	index   *corpus.Index
	summary string
}

// Bot is one interactive session: a loaded topic plus the last answer.
// It is not safe for concurrent use; give every session its own Bot.
type Bot struct {
	fetcher             domain.Fetcher
	splitter            domain.Splitter
	ranker              *ranker.Ranker
	summarizer          domain.Summarizer
	summaryMaxSentences int
	log                 *zap.Logger

	topic      *topic
	lastAnswer int
}

// NewBot wires a session. summarizer may be nil to skip summaries.
func NewBot(fetcher domain.Fetcher, splitter domain.Splitter, rk *ranker.Ranker, summarizer domain.Summarizer, summaryMaxSentences int, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		fetcher:             fetcher,
		splitter:            splitter,
		ranker:              rk,
		summarizer:          summarizer,
		summaryMaxSentences: summaryMaxSentences,
		log:                 log.Named("bot"),
		lastAnswer:          -1,
	}
}

// SetTopic fetches a page and loads it. On failure the current topic and
// last answer are left untouched.
func (b *Bot) SetTopic(ctx context.Context, name string) (domain.Document, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Document{}, domain.ErrEmptyTopic
	}
	doc, err := b.fetcher.Fetch(ctx, name)
	if err != nil {
		b.log.Warn("set topic failed", zap.String("topic", name), zap.Error(err))
		return domain.Document{}, fmt.Errorf("set topic: %w", err)
	}
	b.Load(doc)
	return doc, nil
}

// Load replaces the current topic with doc and clears the last answer.
func (b *Bot) Load(doc domain.Document) {
	t := &topic{doc: doc, index: corpus.Build(doc, b.splitter)}
	if b.summarizer != nil {
		t.summary = b.summarizer.Summarize(t.index.Sentences(), b.summaryMaxSentences)
	}
	b.topic = t
	b.lastAnswer = -1
	b.log.Info("topic loaded",
		zap.String("title", doc.Title),
		zap.Int("paragraphs", len(doc.Paragraphs)),
		zap.Int("sentences", t.index.Len()),
	)
}

// Ask returns the corpus sentence most similar to query. A query with no
// relevant sentence yields Answer{Matched: false} and keeps the previous answer.
func (b *Bot) Ask(query string) (domain.Answer, error) {
	if b.topic == nil {
		return domain.Answer{}, domain.ErrNoTopicSet
	}
	if strings.TrimSpace(query) == "" {
		return domain.Answer{}, domain.ErrEmptyQuery
	}
	res := b.ranker.Rank(b.topic.index.Sentences(), query)
	if !res.Matched {
		b.log.Debug("no match", zap.String("query", query))
		return domain.Answer{Position: -1}, nil
	}
	sentence, _ := b.topic.index.Sentence(res.Index)
	b.lastAnswer = res.Index
	b.log.Debug("answered", zap.String("query", query), zap.Int("position", res.Index), zap.Float64("score", res.Score))
	return domain.Answer{Matched: true, Sentence: sentence, Position: res.Index, Score: res.Score}, nil
}

// MoreInfo returns the paragraph that owns the last answered sentence.
func (b *Bot) MoreInfo() (string, error) {
	if b.topic == nil {
		return "", domain.ErrNoTopicSet
	}
	if b.lastAnswer < 0 {
		return "", domain.ErrNoPriorAnswer
	}
	para, ok := b.topic.index.ParagraphForSentence(b.lastAnswer)
	if !ok {
		return "", domain.ErrNoPriorAnswer
	}
	return para, nil
}

// State reports the lifecycle state.
func (b *Bot) State() State {
	switch {
	case b.topic == nil:
		return NoTopic
	case b.lastAnswer >= 0:
		return AnsweredOnce
	default:
		return TopicReady
	}
}

// Document returns the loaded document, if any.
func (b *Bot) Document() (domain.Document, bool) {
	if b.topic == nil {
		return domain.Document{}, false
	}
	return b.topic.doc, true
}

// Title returns the loaded topic title or "".
func (b *Bot) Title() string {
	if b.topic == nil {
		return ""
	}
	return b.topic.doc.Title
}

// Summary returns the summary computed when the topic was loaded.
func (b *Bot) Summary() string {
	if b.topic == nil {
		return ""
	}
	return b.topic.summary
}

// SentenceCount returns the corpus size of the loaded topic.
func (b *Bot) SentenceCount() int {
	if b.topic == nil {
		return 0
	}
	return b.topic.index.Len()
}

// LastAnswer returns the position and text of the last answered sentence.
func (b *Bot) LastAnswer() (int, string, bool) {
	if b.topic == nil || b.lastAnswer < 0 {
		return -1, "", false
	}
	s, _ := b.topic.index.Sentence(b.lastAnswer)
	return b.lastAnswer, s, true
}
