// internal/ui/history.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"backrooms/internal/db"
)

// ViewMode represents the current view state
type ViewMode int

const (
	ViewNormal ViewMode = iota
	ViewHistory
	ViewHelp
)

// HistoryState holds the state for the history browser
type HistoryState struct {
	conversations []db.Conversation
	cursor        int
	scrollTop     int
	maxHeight     int
}

// NewHistoryState creates a new history state
func NewHistoryState() *HistoryState {
	return &HistoryState{
		maxHeight: 20, // default, updated on window resize
	}
}

// Up moves the cursor up
func (h *HistoryState) Up() {
	if h.cursor > 0 {
		h.cursor--
		if h.cursor < h.scrollTop {
			h.scrollTop = h.cursor
		}
	}
}

// Down moves the cursor down
func (h *HistoryState) Down() {
	if h.cursor < len(h.conversations)-1 {
		h.cursor++
		if h.cursor >= h.scrollTop+h.maxHeight {
			h.scrollTop = h.cursor - h.maxHeight + 1
		}
	}
}

// Selected returns the currently selected conversation, or nil if none
func (h *HistoryState) Selected() *db.Conversation {
	if h.cursor >= 0 && h.cursor < len(h.conversations) {
		return &h.conversations[h.cursor]
	}
	return nil
}

// Load refreshes the list from the store
func (h *HistoryState) Load(store *db.Store) error {
	if store == nil {
		return fmt.Errorf("database not available")
	}
	conversations, err := store.ListConversations()
	if err != nil {
		return err
	}
	h.conversations = conversations
	h.cursor = 0
	h.scrollTop = 0
	return nil
}

// SetMaxHeight updates the max visible height
func (h *HistoryState) SetMaxHeight(height int) {
	h.maxHeight = height - 10 // leave room for header/footer
	if h.maxHeight < 5 {
		h.maxHeight = 5
	}
}

// Render renders the history browser overlay
func (h *HistoryState) Render(width, height int) string {
	var content strings.Builder

	content.WriteString(TitleStyle.Render("CONVERSATION HISTORY"))
	content.WriteString("\n")
	content.WriteString(DimStyle.Render("Select a past conversation to view"))
	content.WriteString("\n\n")

	if len(h.conversations) == 0 {
		content.WriteString(DimStyle.Render("No past conversations found."))
		content.WriteString("\n\n")
		content.WriteString(DimStyle.Render("Start one with /new and it will appear here."))
	} else {
		visibleEnd := h.scrollTop + h.maxHeight
		if visibleEnd > len(h.conversations) {
			visibleEnd = len(h.conversations)
		}

		header := fmt.Sprintf("  %-8s  %-20s  %-10s  %s",
			"ID", "Name", "Status", "Updated")
		content.WriteString(DimStyle.Render(header))
		content.WriteString("\n")
		content.WriteString(DimStyle.Render(strings.Repeat("-", 64)))
		content.WriteString("\n")

		for i := h.scrollTop; i < visibleEnd; i++ {
			c := h.conversations[i]

			name := c.Name
			if len(name) > 18 {
				name = name[:18] + ".."
			}

			timeStr := c.UpdatedAt.Format("2006-01-02 15:04")
			if time.Since(c.UpdatedAt) < 24*time.Hour {
				timeStr = c.UpdatedAt.Format("Today 15:04")
			}

			var statusStyle lipgloss.Style
			switch c.Status {
			case "active":
				statusStyle = StatusOK
			case "ended":
				statusStyle = lipgloss.NewStyle().Foreground(Green)
			case "failed":
				statusStyle = StatusCrit
			default:
				statusStyle = DimStyle
			}

			cursor := "  "
			lineStyle := DimStyle
			if i == h.cursor {
				cursor = "> "
				lineStyle = lipgloss.NewStyle().Foreground(Cyan)
			}

			id := c.ID
			if len(id) > 8 {
				id = id[:8]
			}
			statusStr := statusStyle.Width(10).Render(c.Status)
			line := fmt.Sprintf("%-8s  %-20s  %s  %s", id, name, statusStr, timeStr)

			content.WriteString(cursor)
			content.WriteString(lineStyle.Render(line))
			content.WriteString("\n")
		}

		if len(h.conversations) > h.maxHeight {
			content.WriteString("\n")
			content.WriteString(DimStyle.Render(fmt.Sprintf("Showing %d-%d of %d",
				h.scrollTop+1, visibleEnd, len(h.conversations))))
		}
	}

	content.WriteString("\n\n")
	content.WriteString(DimStyle.Render("Up/Down: Navigate | Enter: View | Esc: Cancel"))

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 2).
		MaxWidth(width - 10).
		MaxHeight(height - 4)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlayStyle.Render(content.String()),
	)
}

// LoadTranscript reads a stored conversation back into a Conversation for
// read-only viewing.
func LoadTranscript(store *db.Store, conversationID string) (*Conversation, error) {
	if store == nil {
		return nil, fmt.Errorf("database not available")
	}

	stored, err := store.GetConversation(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	conv := NewConversation(stored.ID, stored.Name, stored.Template)
	conv.CreatedAt = stored.CreatedAt

	messages, err := store.GetMessages(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	for _, msg := range messages {
		conv.Upsert(msg.Actor, msg.Content, "", false)
		conv.Messages[len(conv.Messages)-1].Timestamp = msg.CreatedAt
	}

	return conv, nil
}
