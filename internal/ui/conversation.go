// internal/ui/conversation.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"backrooms/internal/engine"
)

// ChatMessage is one rendered entry in the transcript. Streaming updates
// replace an entry in place by MessageID instead of appending.
type ChatMessage struct {
	Actor     string
	Content   string
	MessageID string
	Loading   bool
	Timestamp time.Time
}

// Conversation holds the live transcript for one run.
type Conversation struct {
	ID        string
	Name      string
	Template  string
	CreatedAt time.Time
	Messages  []ChatMessage

	byID       map[string]int // MessageID -> index into Messages
	actorSlots map[string]int // actor name -> style slot, in arrival order

	// Streaming indicator state
	StreamingActor string
	StreamStart    time.Time
	AnimationFrame int
}

func NewConversation(id, name, tmpl string) *Conversation {
	return &Conversation{
		ID:         id,
		Name:       name,
		Template:   tmpl,
		CreatedAt:  time.Now(),
		byID:       make(map[string]int),
		actorSlots: make(map[string]int),
	}
}

// Upsert applies one engine report: replace in place when the message ID is
// known, append otherwise. Returns true when the message is newly final
// (just transitioned out of loading), which is when it should be persisted.
func (c *Conversation) Upsert(actor, content, messageID string, loading bool) bool {
	if _, ok := c.actorSlots[actor]; !ok && actor != engine.SystemActor {
		c.actorSlots[actor] = len(c.actorSlots)
	}

	if loading {
		if c.StreamingActor != actor {
			c.StreamStart = time.Now()
		}
		c.StreamingActor = actor
	} else if c.StreamingActor == actor {
		c.StreamingActor = ""
		c.StreamStart = time.Time{}
	}

	if idx, ok := c.byID[messageID]; ok && messageID != "" {
		wasLoading := c.Messages[idx].Loading
		c.Messages[idx].Content = content
		c.Messages[idx].Loading = loading
		return wasLoading && !loading
	}

	c.Messages = append(c.Messages, ChatMessage{
		Actor:     actor,
		Content:   content,
		MessageID: messageID,
		Loading:   loading,
		Timestamp: time.Now(),
	})
	if messageID != "" {
		c.byID[messageID] = len(c.Messages) - 1
	}
	return !loading
}

// TickAnimation advances the streaming indicator animation.
func (c *Conversation) TickAnimation() {
	c.AnimationFrame = (c.AnimationFrame + 1) % 4
}

func (c *Conversation) streamingIndicator() string {
	frames := []string{"", ".", "..", "..."}
	return frames[c.AnimationFrame]
}

// actorStyle picks a stable per-actor style.
func (c *Conversation) actorStyle(actor string) lipgloss.Style {
	if actor == engine.SystemActor {
		return SystemStyle
	}
	return ParticipantStyle(c.actorSlots[actor])
}

// RenderMessages renders the transcript body.
func (c *Conversation) RenderMessages(width int) string {
	var sb strings.Builder

	for _, msg := range c.Messages {
		ts := msg.Timestamp.Format("15:04")
		style := c.actorStyle(msg.Actor)
		sb.WriteString(style.Render(fmt.Sprintf("[%s] %s:", ts, msg.Actor)))
		sb.WriteString("\n")

		for _, line := range strings.Split(msg.Content, "\n") {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderSidebar renders participant names with streaming status.
func (c *Conversation) RenderSidebar(participants []string) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("PARTICIPANTS"))
	sb.WriteString("\n\n")

	for i, name := range participants {
		style := ParticipantStyle(i)
		if name == c.StreamingActor {
			elapsed := formatElapsedTime(time.Since(c.StreamStart))
			sb.WriteString(fmt.Sprintf("%s %s %s\n",
				StatusWarn.Render("●"),
				style.Render(name+c.streamingIndicator()),
				DimStyle.Render(fmt.Sprintf("(%s)", elapsed))))
		} else {
			sb.WriteString(fmt.Sprintf("%s %s\n", StatusOK.Render("●"), style.Render(name)))
		}
	}

	return sb.String()
}

// formatElapsedTime formats duration in a human-readable way.
func formatElapsedTime(elapsed time.Duration) string {
	if elapsed < time.Second {
		return "<1s"
	}
	if elapsed < time.Minute {
		return fmt.Sprintf("%ds", int(elapsed.Seconds()))
	}
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", mins, secs)
}

// ConversationView wraps a conversation with a viewport for scrolling.
type ConversationView struct {
	Conversation *Conversation
	Viewport     viewport.Model
}

func NewConversationView(conv *Conversation, width, height int) *ConversationView {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()
	vp.MouseWheelEnabled = true

	return &ConversationView{
		Conversation: conv,
		Viewport:     vp,
	}
}

func (v *ConversationView) Refresh() {
	v.Viewport.SetContent(v.Conversation.RenderMessages(v.Viewport.Width))
	v.Viewport.GotoBottom()
}
