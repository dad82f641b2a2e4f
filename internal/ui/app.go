// internal/ui/app.go
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"backrooms/internal/commands"
	"backrooms/internal/config"
	"backrooms/internal/db"
	"backrooms/internal/engine"
	"backrooms/internal/events"
	"backrooms/internal/export"
	"backrooms/internal/models"
	"backrooms/internal/template"
)

const sidebarWidth = 24

// ReportMsg carries one engine report into the update loop.
type ReportMsg struct {
	Actor     string
	Content   string
	MessageID string
	Loading   bool
}

// runDoneMsg signals that the engine's Start returned.
type runDoneMsg struct {
	conversationID string
	err            error
}

type tickMsg time.Time

// chanSink implements engine.Sink by forwarding reports into the program's
// message channel. The engine calls Report from its own goroutine.
type chanSink struct {
	ch chan<- tea.Msg
}

func (s chanSink) Report(actor, content, messageID string, loading bool) {
	s.ch <- ReportMsg{Actor: actor, Content: content, MessageID: messageID, Loading: loading}
}

// configResolver adapts persisted custom-model selections to the engine.
type configResolver struct {
	cfg *config.Config
}

func (r configResolver) Resolve(slot int) (engine.Selection, bool) {
	sel, ok := r.cfg.Resolve(slot)
	return engine.Selection{ID: sel.ID, Name: sel.Name}, ok
}

// Model is the top-level bubbletea model.
type Model struct {
	cfg      *config.Config
	store    *db.Store
	registry *models.Registry
	notifier *events.Client

	reports chan tea.Msg

	width, height int
	ready         bool

	mode    ViewMode
	input   textinput.Model
	view    *ConversationView
	history *HistoryState
	status  string

	eng          *engine.Engine
	running      bool
	readOnly     bool // viewing a stored transcript
	participants []string
}

func New(cfg *config.Config, store *db.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "/new to start a conversation, /help for commands"
	ti.Focus()

	return Model{
		cfg:      cfg,
		store:    store,
		registry: models.NewRegistry(),
		notifier: events.NewClient(cfg.Defaults.WebhookURL),
		reports:  make(chan tea.Msg, 256),
		input:    ti,
		history:  NewHistoryState(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen())
}

// listen waits for the next engine report or run-done signal.
func (m Model) listen() tea.Cmd {
	return func() tea.Msg { return <-m.reports }
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.history.SetMaxHeight(msg.Height)
		if m.view != nil {
			m.view.Viewport.Width = m.width - sidebarWidth - 4
			m.view.Viewport.Height = m.height - 6
			m.view.Refresh()
		}
		return m, nil

	case ReportMsg:
		if m.view != nil {
			final := m.view.Conversation.Upsert(msg.Actor, msg.Content, msg.MessageID, msg.Loading)
			if final && msg.Content != "" && m.store != nil {
				if _, err := m.store.AddMessage(m.view.Conversation.ID, msg.Actor, msg.Content); err != nil {
					m.status = fmt.Sprintf("persist failed: %v", err)
				}
			}
			m.view.Refresh()
		}
		return m, m.listen()

	case runDoneMsg:
		m.running = false
		if m.store != nil {
			status, reason := "ended", ""
			if msg.err != nil {
				status, reason = "failed", msg.err.Error()
			}
			m.store.UpdateStatus(msg.conversationID, status, reason)
		}
		reason := "ended"
		if msg.err != nil {
			m.status = fmt.Sprintf("Run failed: %v", msg.err)
			reason = "failed"
		} else {
			m.status = "Conversation over."
		}
		m.notifier.ConversationEnded(msg.conversationID, reason)
		return m, m.listen()

	case tickMsg:
		if m.view != nil && m.running {
			m.view.Conversation.TickAnimation()
			m.view.Refresh()
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ViewHelp:
		switch msg.String() {
		case "esc", "f1", "?", "q":
			m.mode = ViewNormal
		}
		return m, nil

	case ViewHistory:
		switch msg.String() {
		case "esc":
			m.mode = ViewNormal
		case "up", "k":
			m.history.Up()
		case "down", "j":
			m.history.Down()
		case "enter":
			if sel := m.history.Selected(); sel != nil {
				conv, err := LoadTranscript(m.store, sel.ID)
				if err != nil {
					m.status = err.Error()
				} else {
					m.view = NewConversationView(conv, m.width-sidebarWidth-4, m.height-6)
					m.view.Refresh()
					m.readOnly = true
					m.participants = nil
				}
			}
			m.mode = ViewNormal
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		if m.eng != nil {
			m.eng.Stop()
		}
		return m, tea.Quit

	case "f1":
		m.mode = ViewHelp
		return m, nil

	case "ctrl+s":
		if m.eng != nil {
			m.eng.Stop()
		}
		return m, nil

	case " ":
		// Space toggles pause, but only with an empty input line so it
		// still types inside commands.
		if m.input.Value() == "" && m.eng != nil && m.running {
			if m.eng.State() == engine.StatePaused {
				m.eng.Resume()
				m.status = "Resumed."
			} else {
				m.eng.Pause()
				m.status = "Paused. In-flight response keeps streaming."
			}
			return m, nil
		}

	case "pgup", "pgdown":
		if m.view != nil {
			var cmd tea.Cmd
			m.view.Viewport, cmd = m.view.Viewport.Update(msg)
			return m, cmd
		}

	case "enter":
		input := m.input.Value()
		m.input.SetValue("")
		if cmd := commands.Parse(input); cmd != nil {
			return m.handleCommand(cmd)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleCommand(cmd commands.Command) (tea.Model, tea.Cmd) {
	switch c := cmd.(type) {
	case commands.Help:
		m.mode = ViewHelp

	case commands.NewConversation:
		return m.startConversation(c.Template)

	case commands.Stop:
		if m.eng != nil {
			m.eng.Stop()
		}

	case commands.Pause:
		if m.eng != nil {
			m.eng.Pause()
			m.status = "Paused. In-flight response keeps streaming."
		}

	case commands.Resume:
		if m.eng != nil {
			m.eng.Resume()
			m.status = "Resumed."
		}

	case commands.ShowHistory:
		if err := m.history.Load(m.store); err != nil {
			m.status = err.Error()
		} else {
			m.mode = ViewHistory
		}

	case commands.Export:
		m.exportCurrent()

	case commands.ListTemplates:
		m.status = "Templates: " + strings.Join(template.List(), ", ")

	case commands.SetModel:
		name := c.Name
		if name == "" {
			name = c.ID
		}
		m.cfg.SetCustomModel(c.Slot, config.Selection{ID: c.ID, Name: name})
		if err := m.cfg.Save(); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = fmt.Sprintf("Slot %d custom model set to %s", c.Slot, c.ID)
		}

	case commands.Close:
		if m.eng != nil {
			m.eng.Stop()
		}
		m.view = nil
		m.readOnly = false
		m.participants = nil

	case commands.ParseError:
		m.status = c.Message
	}

	return m, nil
}

// startConversation builds providers and participants from config plus the
// named template and launches the engine in its own goroutine.
func (m Model) startConversation(tmplName string) (tea.Model, tea.Cmd) {
	if m.running {
		m.status = "A conversation is already running. /stop it first."
		return m, nil
	}
	if tmplName == "" {
		tmplName = m.cfg.Defaults.Template
	}

	tmpl, err := template.Load(tmplName)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	providers := engine.ProviderSet{}
	if key := m.cfg.Providers.Hyperbolic.APIKey; key != "" {
		if base := m.cfg.Providers.Hyperbolic.BaseURL; base != "" {
			providers[models.ProviderHyperbolic] = models.NewCompletionWithBaseURL(key, base)
		} else {
			providers[models.ProviderHyperbolic] = models.NewCompletion(key)
		}
	}
	if key := m.cfg.Providers.OpenRouter.APIKey; key != "" {
		if base := m.cfg.Providers.OpenRouter.BaseURL; base != "" {
			providers[models.ProviderOpenRouter] = models.NewChatWithBaseURL(key, base)
		} else {
			providers[models.ProviderOpenRouter] = models.NewChat(key)
		}
	}

	participants, err := engine.BuildParticipants(
		m.registry, tmpl.Participants, providers, configResolver{m.cfg}, m.cfg.Defaults.MaxTokens)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	maxTurns := tmpl.MaxTurns
	if maxTurns == 0 {
		maxTurns = m.cfg.Defaults.MaxTurns
	}

	convID := uuid.NewString()
	opts := engine.Options{
		MaxTurns:     maxTurns,
		PollInterval: time.Duration(m.cfg.Defaults.PollInterval) * time.Millisecond,
		OnTurnComplete: func(turn int) {
			m.notifier.TurnCompleted(convID, turn)
		},
	}

	eng, err := engine.New(participants, chanSink{m.reports}, opts)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	name := fmt.Sprintf("%s %s", tmpl.Name, time.Now().Format("2006-01-02 15:04"))
	if m.store != nil {
		if err := m.store.CreateConversation(convID, name, tmpl.Name); err != nil {
			m.status = fmt.Sprintf("persist failed: %v", err)
		}
	}

	conv := NewConversation(convID, name, tmpl.Name)
	m.view = NewConversationView(conv, m.width-sidebarWidth-4, m.height-6)
	m.readOnly = false
	m.participants = nil
	for _, p := range participants {
		m.participants = append(m.participants, p.Label())
	}

	m.eng = eng
	m.running = true
	m.status = fmt.Sprintf("Running %q with %d participants.", tmpl.Name, len(participants))
	m.notifier.ConversationStarted(convID, tmpl.Name, len(participants))

	reports := m.reports
	go func() {
		err := eng.Start(context.Background())
		reports <- runDoneMsg{conversationID: convID, err: err}
	}()

	return m, tick()
}

// exportCurrent writes the visible transcript to a markdown file.
func (m *Model) exportCurrent() {
	if m.view == nil {
		m.status = "Nothing to export."
		return
	}

	conv := m.view.Conversation
	exp := &export.ConversationExport{
		ID:           conv.ID,
		Name:         conv.Name,
		Template:     conv.Template,
		CreatedAt:    conv.CreatedAt,
		Participants: m.participants,
	}
	for _, msg := range conv.Messages {
		if msg.Loading {
			continue
		}
		exp.Messages = append(exp.Messages, export.TranscriptMessage{
			Actor:     msg.Actor,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = err.Error()
		return
	}
	path, err := export.WriteConversation(exp, home)
	if err != nil {
		m.status = fmt.Sprintf("export failed: %v", err)
		return
	}
	m.status = "Exported to " + path
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.mode {
	case ViewHelp:
		return HelpContent(m.width, m.height)
	case ViewHistory:
		return m.history.Render(m.width, m.height)
	}

	var body string
	if m.view == nil {
		welcome := TitleStyle.Render("BACKROOMS") + "\n\n" +
			DimStyle.Render("Scripted conversations between language models.") + "\n\n" +
			DimStyle.Render("/new to start, /help for commands")
		body = lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, welcome)
	} else {
		main := m.view.Viewport.View()
		if len(m.participants) > 0 {
			sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(
				m.view.Conversation.RenderSidebar(m.participants))
			main = lipgloss.JoinHorizontal(lipgloss.Top, main, sidebar)
		}
		body = main
	}

	state := ""
	if m.eng != nil {
		state = DimStyle.Render(" [" + m.eng.State().String() + "]")
	}
	title := TitleStyle.Render("backrooms") + state

	statusLine := DimStyle.Render(m.status)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		statusLine,
		m.input.View(),
	)
}
