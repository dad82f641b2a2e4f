// Package commands handles slash command parsing for the backrooms TUI.
package commands

import (
	"strconv"
	"strings"
)

// Command interface for all command types
type Command interface {
	Type() string
}

// Help returns help text
type Help struct{}

func (Help) Type() string { return "help" }

// NewConversation starts a run from a template
type NewConversation struct {
	Template string // empty means the configured default
}

func (NewConversation) Type() string { return "new" }

// Stop ends the current run
type Stop struct{}

func (Stop) Type() string { return "stop" }

// Pause suspends the current run
type Pause struct{}

func (Pause) Type() string { return "pause" }

// Resume continues a paused run
type Resume struct{}

func (Resume) Type() string { return "resume" }

// ShowHistory shows past conversations
type ShowHistory struct{}

func (ShowHistory) Type() string { return "history" }

// Export exports the current conversation
type Export struct{}

func (Export) Type() string { return "export" }

// ListTemplates lists available templates
type ListTemplates struct{}

func (ListTemplates) Type() string { return "templates" }

// SetModel assigns a custom model to a participant slot
type SetModel struct {
	Slot int
	ID   string
	Name string
}

func (SetModel) Type() string { return "model" }

// Close closes the current conversation view
type Close struct{}

func (Close) Type() string { return "close" }

// ParseError represents a command parsing error
type ParseError struct {
	Message string
}

func (ParseError) Type() string { return "error" }

// Parse parses user input and returns the appropriate Command.
// Returns nil if the input is not a slash command.
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help":
		return Help{}

	case "/new":
		return NewConversation{Template: strings.Join(args, " ")}

	case "/stop":
		return Stop{}

	case "/pause":
		return Pause{}

	case "/resume":
		return Resume{}

	case "/history":
		return ShowHistory{}

	case "/export":
		return Export{}

	case "/templates":
		return ListTemplates{}

	case "/model":
		if len(args) < 2 {
			return ParseError{Message: "/model requires a slot number and a model id"}
		}
		slot, err := strconv.Atoi(args[0])
		if err != nil || slot < 0 {
			return ParseError{Message: "/model slot must be a non-negative number"}
		}
		name := ""
		if len(args) > 2 {
			name = strings.Join(args[2:], " ")
		}
		return SetModel{Slot: slot, ID: args[1], Name: name}

	case "/close":
		return Close{}

	default:
		return ParseError{Message: "unknown command: " + cmd}
	}
}

// HelpText returns the help text for all available commands.
func HelpText() string {
	return `Available commands:
  /help                      - Show this help
  /new [template]            - Start a conversation (default template if omitted)
  /templates                 - List available templates
  /model <slot> <id> [name]  - Assign a custom model to a participant slot
  /pause                     - Pause after the current response finishes streaming
  /resume                    - Resume a paused conversation
  /stop                      - Stop the conversation
  /export                    - Export the transcript to markdown
  /history                   - Browse past conversations
  /close                     - Close the current conversation view`
}
