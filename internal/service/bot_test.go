package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikibot/internal/domain"
	"wikibot/internal/normalizer"
	"wikibot/internal/ranker"
	"wikibot/internal/splitter"
	"wikibot/internal/summarizer"
)

type fakeFetcher struct {
	docs  map[string]domain.Document
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, topic string) (domain.Document, error) {
	f.calls++
	if f.err != nil {
		return domain.Document{}, f.err
	}
	doc, ok := f.docs[topic]
	if !ok {
		return domain.Document{}, domain.NotFoundError(topic, "", nil)
	}
	return doc, nil
}

var parisDoc = domain.Document{
	Title:      "Paris",
	Paragraphs: []string{"Paris is the capital of France. It has a population of over two million."},
}

var goDoc = domain.Document{
	Title: "Go",
	Paragraphs: []string{
		"Go is a programming language designed at Google.",
		"Go has goroutines for concurrency. Channels connect goroutines.",
	},
}

func newBot(t *testing.T, f domain.Fetcher) *Bot {
	t.Helper()
	red, err := normalizer.NewReducer("lemma")
	require.NoError(t, err)
	norm := normalizer.New(red)
	return NewBot(f, splitter.NewRegexSplitter(), ranker.New(norm), summarizer.NewFrequencySummarizer(norm), 2, nil)
}

func TestBot_EndToEnd(t *testing.T) {
	f := &fakeFetcher{docs: map[string]domain.Document{"paris": parisDoc}}
	b := newBot(t, f)
	assert.Equal(t, NoTopic, b.State())

	doc, err := b.SetTopic(context.Background(), "paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", doc.Title)
	assert.Equal(t, TopicReady, b.State())
	assert.Equal(t, 2, b.SentenceCount())
	assert.NotEmpty(t, b.Summary())

	ans, err := b.Ask("What is the capital of France")
	require.NoError(t, err)
	require.True(t, ans.Matched)
	assert.Equal(t, 0, ans.Position)
	assert.Equal(t, "Paris is the capital of France.", ans.Sentence)
	assert.Equal(t, AnsweredOnce, b.State())

	more, err := b.MoreInfo()
	require.NoError(t, err)
	assert.Equal(t, parisDoc.Paragraphs[0], more)
}

func TestBot_NoTopicSet(t *testing.T) {
	b := newBot(t, &fakeFetcher{})

	_, err := b.Ask("anything")
	assert.ErrorIs(t, err, domain.ErrNoTopicSet)
	_, err = b.MoreInfo()
	assert.ErrorIs(t, err, domain.ErrNoTopicSet)
}

func TestBot_NoPriorAnswer(t *testing.T) {
	b := newBot(t, &fakeFetcher{})
	b.Load(parisDoc)

	_, err := b.MoreInfo()
	assert.ErrorIs(t, err, domain.ErrNoPriorAnswer)
}

func TestBot_NoMatchKeepsLastAnswer(t *testing.T) {
	b := newBot(t, &fakeFetcher{})
	b.Load(parisDoc)

	ans, err := b.Ask("population")
	require.NoError(t, err)
	require.True(t, ans.Matched)
	assert.Equal(t, 1, ans.Position)

	ans, err = b.Ask("quantum chromodynamics")
	require.NoError(t, err)
	assert.False(t, ans.Matched)
	assert.Equal(t, -1, ans.Position)

	pos, sentence, ok := b.LastAnswer()
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "It has a population of over two million.", sentence)
	assert.Equal(t, AnsweredOnce, b.State())
}

func TestBot_NoMatchBeforeAnyAnswer(t *testing.T) {
	b := newBot(t, &fakeFetcher{})
	b.Load(parisDoc)

	ans, err := b.Ask("zebra")
	require.NoError(t, err)
	assert.False(t, ans.Matched)
	assert.Equal(t, TopicReady, b.State())
}

func TestBot_EmptyInput(t *testing.T) {
	f := &fakeFetcher{}
	b := newBot(t, f)

	_, err := b.SetTopic(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyTopic)
	assert.Equal(t, 0, f.calls)

	b.Load(parisDoc)
	_, err = b.Ask(" ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestBot_FetchFailureKeepsPreviousTopic(t *testing.T) {
	f := &fakeFetcher{docs: map[string]domain.Document{"paris": parisDoc}}
	b := newBot(t, f)
	_, err := b.SetTopic(context.Background(), "paris")
	require.NoError(t, err)
	_, err = b.Ask("capital")
	require.NoError(t, err)

	f.err = domain.NetworkError("go", "", errors.New("connection refused"))
	_, err = b.SetTopic(context.Background(), "go")
	assert.ErrorIs(t, err, domain.ErrNetwork)

	assert.Equal(t, "Paris", b.Title())
	assert.Equal(t, AnsweredOnce, b.State())
	more, err := b.MoreInfo()
	require.NoError(t, err)
	assert.Equal(t, parisDoc.Paragraphs[0], more)
}

func TestBot_NotFoundKeepsNoTopic(t *testing.T) {
	b := newBot(t, &fakeFetcher{docs: map[string]domain.Document{}})
	_, err := b.SetTopic(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, NoTopic, b.State())
}

func TestBot_NewTopicResetsAnswer(t *testing.T) {
	f := &fakeFetcher{docs: map[string]domain.Document{"paris": parisDoc, "go": goDoc}}
	b := newBot(t, f)
	_, err := b.SetTopic(context.Background(), "paris")
	require.NoError(t, err)
	_, err = b.Ask("capital")
	require.NoError(t, err)

	_, err = b.SetTopic(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, TopicReady, b.State())
	_, err = b.MoreInfo()
	assert.ErrorIs(t, err, domain.ErrNoPriorAnswer)

	ans, err := b.Ask("channels")
	require.NoError(t, err)
	require.True(t, ans.Matched)
	assert.Equal(t, 2, ans.Position)
	more, err := b.MoreInfo()
	require.NoError(t, err)
	assert.Equal(t, goDoc.Paragraphs[1], more)
}

func TestBot_EmptyDocumentHasNoAnswers(t *testing.T) {
	b := newBot(t, &fakeFetcher{})
	b.Load(domain.Document{Title: "Stub"})

	assert.Equal(t, TopicReady, b.State())
	ans, err := b.Ask("anything at all")
	require.NoError(t, err)
	assert.False(t, ans.Matched)
	assert.Equal(t, "", b.Summary())
}

func TestBot_SessionsAreIndependent(t *testing.T) {
	f := &fakeFetcher{docs: map[string]domain.Document{"paris": parisDoc, "go": goDoc}}
	a, b := newBot(t, f), newBot(t, f)

	_, err := a.SetTopic(context.Background(), "paris")
	require.NoError(t, err)
	_, err = b.SetTopic(context.Background(), "go")
	require.NoError(t, err)
	_, err = a.Ask("capital")
	require.NoError(t, err)

	assert.Equal(t, AnsweredOnce, a.State())
	assert.Equal(t, TopicReady, b.State())
	assert.Equal(t, "Go", b.Title())
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{domain.ErrEmptyTopic, "Please enter a topic."},
		{domain.ErrEmptyQuery, "Please enter a question."},
		{domain.ErrNoTopicSet, "Please set a topic first."},
		{domain.ErrNoPriorAnswer, "Please ask a question first!"},
		{domain.NotFoundError("x", "", errors.New("status 404")), "Couldn't fetch the topic. Try a different topic!"},
		{domain.NetworkError("x", "", errors.New("timeout")), "Network error: timeout. Please check your connection and try again."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.err))
	}
	assert.Equal(t, "Topic set to 'Paris'. Let's chat!", TopicSetMessage("Paris"))
}
