package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wikibot/internal/domain"
	"wikibot/internal/service"
)

// BotPort is the TUI-facing subset of a bot session.
type BotPort interface {
	Load(doc domain.Document)
	Ask(query string) (domain.Answer, error)
	MoreInfo() (string, error)
	Title() string
	Summary() string
	LastAnswer() (int, string, bool)
}

type mode int

const (
	modeTopic mode = iota
	modeQuery
)

// topicLoadedMsg carries the result of a background fetch back into Update,
// where the session state is changed.
type topicLoadedMsg struct {
	topic string
	doc   domain.Document
	err   error
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	bot      BotPort
	fetcher  domain.Fetcher
	timeout  time.Duration
	input    textinput.Model
	viewport viewport.Model
	mode     mode
	content  string
	status   string
	isError  bool
	loading  bool
	ready    bool
}

// New creates a new TUI model instance. If initialTopic is not empty it is
// fetched on start.
func New(bot BotPort, fetcher domain.Fetcher, timeout time.Duration, initialTopic string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		bot:      bot,
		fetcher:  fetcher,
		timeout:  timeout,
		input:    ti,
		viewport: vp,
		status:   "Type a topic and press Enter.",
	}
	m.setMode(modeTopic)
	if strings.TrimSpace(initialTopic) != "" {
		m.input.SetValue(initialTopic)
	}
	return m
}

// Init starts the cursor blink and, when a topic was given on the command
// line, its fetch.
func (m Model) Init() tea.Cmd {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return tea.Batch(textinput.Blink, m.fetchCmd(v))
	}
	return textinput.Blink
}

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + topic
		totalFooterLines := 2                                    // status + help
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case topicLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// The previous topic, if any, is still loaded and answerable.
			if m.bot.Title() != "" {
				m.setMode(modeQuery)
			}
			m.setStatus(service.Message(msg.err), true)
			return m, nil
		}
		m.bot.Load(msg.doc)
		m.content = ""
		m.setStatus(service.TopicSetMessage(msg.doc.Title), false)
		m.setMode(modeQuery)
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlT:
			if m.mode == modeTopic && m.bot.Title() != "" {
				m.setMode(modeQuery)
				m.setStatus("Back to "+m.bot.Title()+". Ask a question.", false)
				return m, nil
			}
			m.setMode(modeTopic)
			m.setStatus("Type a new topic and press Enter.", false)
			return m, nil
		case tea.KeyCtrlO:
			m.moreInfo()
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if m.mode == modeTopic {
		if text == "" {
			m.setStatus(service.Message(domain.ErrEmptyTopic), true)
			return m, nil
		}
		m.loading = true
		m.setStatus(fmt.Sprintf("Fetching %q...", text), false)
		return m, m.fetchCmd(text)
	}

	ans, err := m.bot.Ask(text)
	if err != nil {
		m.setStatus(service.Message(err), true)
		return m, nil
	}
	if ans.Matched {
		m.content = labelStyle.Render("WikiBot:") + " " + ans.Sentence
		m.setStatus(fmt.Sprintf("Answer for %q  score=%.3f  (ctrl+o for more)", text, ans.Score), false)
	} else {
		m.content = labelStyle.Render("WikiBot:") + " " + service.NoMatchMessage
		m.setStatus(fmt.Sprintf("No match for %q", text), false)
	}
	m.input.SetValue("")
	m.viewport.SetContent(m.renderContent())
	return m, nil
}

func (m *Model) moreInfo() {
	para, err := m.bot.MoreInfo()
	if err != nil {
		m.setStatus(service.Message(err), true)
		return
	}
	_, sentence, _ := m.bot.LastAnswer()
	m.content = labelStyle.Render("More Info:") + " " + highlightSentence(para, sentence)
	m.setStatus("Paragraph containing the last answer.", false)
	m.viewport.SetContent(m.renderContent())
}

func (m Model) fetchCmd(topic string) tea.Cmd {
	fetcher, timeout := m.fetcher, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		doc, err := fetcher.Fetch(ctx, topic)
		return topicLoadedMsg{topic: topic, doc: doc, err: err}
	}
}

func (m *Model) setMode(md mode) {
	m.mode = md
	m.input.SetValue("")
	if md == modeTopic {
		m.input.Placeholder = "Enter a topic, e.g. Alan Turing"
	} else {
		m.input.Placeholder = "Ask a question and press Enter"
	}
}

func (m *Model) setStatus(s string, isError bool) {
	m.status = s
	m.isError = isError
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("WikiBot: your interactive Wikipedia chatbot")
	topic := "No topic yet."
	if t := m.bot.Title(); t != "" {
		topic = "Topic: " + lipgloss.NewStyle().Bold(true).Render(t)
	}
	topic = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(topic)
	input := queryBoxStyle.Render(m.input.View())
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	if m.isError {
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}
	status := statusStyle.Render(m.status)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("enter submit • ctrl+t new topic/back • ctrl+o more info • esc quit")
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + topic + "\n" + results + "\n" + input + "\n" + status + "\n" + help
}

func (m Model) renderContent() string {
	if m.content != "" {
		return m.content
	}
	if s := m.bot.Summary(); s != "" {
		return labelStyle.Render("Summary:") + " " + s
	}
	return "No answers yet."
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// highlightSentence emphasises the first occurrence of sentence inside paragraph.
func highlightSentence(paragraph, sentence string) string {
	if sentence == "" {
		return paragraph
	}
	i := strings.Index(paragraph, sentence)
	if i < 0 {
		return paragraph
	}
	return paragraph[:i] + highlightStyle.Render(sentence) + paragraph[i+len(sentence):]
}
