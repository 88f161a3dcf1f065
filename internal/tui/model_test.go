package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikibot/internal/domain"
	"wikibot/internal/normalizer"
	"wikibot/internal/ranker"
	"wikibot/internal/service"
	"wikibot/internal/splitter"
	"wikibot/internal/summarizer"
)

type stubFetcher struct {
	doc domain.Document
	err error
}

func (s stubFetcher) Fetch(_ context.Context, _ string) (domain.Document, error) {
	return s.doc, s.err
}

var paris = domain.Document{
	Title:      "Paris",
	Paragraphs: []string{"Paris is the capital of France. It has a population of over two million."},
}

func newModel(f domain.Fetcher) (Model, *service.Bot) {
	norm := normalizer.New(nil)
	bot := service.NewBot(f, splitter.NewRegexSplitter(), ranker.New(norm), summarizer.NewFrequencySummarizer(norm), 2, nil)
	return New(bot, f, 0, ""), bot
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestModel_TopicThenQuery(t *testing.T) {
	m, bot := newModel(stubFetcher{doc: paris})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	m = typeText(t, m, "paris")
	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Equal(t, service.NoTopic, bot.State())

	msg := cmd()
	loaded, ok := msg.(topicLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, "paris", loaded.topic)

	next, _ = m.Update(msg)
	m = next.(Model)
	assert.Equal(t, modeQuery, m.mode)
	assert.Equal(t, service.TopicReady, bot.State())
	assert.Equal(t, "Topic set to 'Paris'. Let's chat!", m.status)

	m = typeText(t, m, "capital of France")
	m, _ = press(t, m, tea.KeyEnter)
	assert.Contains(t, m.content, "Paris is the capital of France.")
	assert.Equal(t, "", m.input.Value())

	m, _ = press(t, m, tea.KeyCtrlO)
	assert.Contains(t, m.content, "population of over two million")
	assert.False(t, m.isError)
	assert.Contains(t, m.View(), "Paris")
}

func TestModel_FetchErrorKeepsState(t *testing.T) {
	m, bot := newModel(stubFetcher{err: domain.NotFoundError("zzz", "", nil)})
	m = typeText(t, m, "zzz")
	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.True(t, m.isError)
	assert.Equal(t, modeTopic, m.mode)
	assert.Equal(t, service.NoTopic, bot.State())
}

func TestModel_EmptyTopicAndMoreInfoWithoutAnswer(t *testing.T) {
	m, _ := newModel(stubFetcher{doc: paris})
	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.True(t, m.isError)

	m, _ = press(t, m, tea.KeyCtrlO)
	assert.True(t, m.isError)
	assert.Equal(t, service.Message(domain.ErrNoTopicSet), m.status)
}

func TestModel_CtrlTSwitchesToTopicMode(t *testing.T) {
	m, _ := newModel(stubFetcher{doc: paris})
	next, _ := m.Update(topicLoadedMsg{topic: "paris", doc: paris})
	m = next.(Model)
	require.Equal(t, modeQuery, m.mode)

	m, _ = press(t, m, tea.KeyCtrlT)
	assert.Equal(t, modeTopic, m.mode)
}

func TestHighlightSentence(t *testing.T) {
	para := "First one. Second one."
	assert.Contains(t, highlightSentence(para, "Second one."), "Second one.")
	assert.Equal(t, para, highlightSentence(para, "Missing."))
	assert.Equal(t, para, highlightSentence(para, ""))
}

type topicFetcher map[string]domain.Document

func (f topicFetcher) Fetch(_ context.Context, topic string) (domain.Document, error) {
	if doc, ok := f[topic]; ok {
		return doc, nil
	}
	return domain.Document{}, domain.NetworkError(topic, "", errors.New("connection refused"))
}

func TestModel_FailedRefetchKeepsPreviousTopicQueryable(t *testing.T) {
	m, bot := newModel(topicFetcher{"paris": paris})
	next, _ := m.Update(topicLoadedMsg{topic: "paris", doc: paris})
	m = next.(Model)

	m, _ = press(t, m, tea.KeyCtrlT)
	require.Equal(t, modeTopic, m.mode)
	m = typeText(t, m, "berlin")
	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(Model)

	assert.True(t, m.isError)
	assert.Equal(t, modeQuery, m.mode)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, "Paris", bot.Title())

	m = typeText(t, m, "capital of France")
	m, cmd = press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, m.content, "Paris is the capital of France.")
	assert.Equal(t, service.AnsweredOnce, bot.State())
}

func TestModel_CtrlTTogglesBackToQuery(t *testing.T) {
	m, _ := newModel(stubFetcher{doc: paris})
	next, _ := m.Update(topicLoadedMsg{topic: "paris", doc: paris})
	m = next.(Model)

	m, _ = press(t, m, tea.KeyCtrlT)
	m = typeText(t, m, "half typed")
	m, _ = press(t, m, tea.KeyCtrlT)
	assert.Equal(t, modeQuery, m.mode)
	assert.Equal(t, "", m.input.Value())
}

func TestModel_CtrlTWithoutTopicStaysInTopicMode(t *testing.T) {
	m, _ := newModel(stubFetcher{doc: paris})
	m, _ = press(t, m, tea.KeyCtrlT)
	assert.Equal(t, modeTopic, m.mode)
}
