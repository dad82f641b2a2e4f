// internal/ui/help.go
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Help overlay content and rendering

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Yellow).
				MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	helpCmdStyle = lipgloss.NewStyle().
			Foreground(Magenta)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(White)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(Dim)
)

// HelpContent returns the formatted help overlay content
func HelpContent(width, height int) string {
	var content strings.Builder

	content.WriteString(helpTitleStyle.Render("BACKROOMS HELP"))
	content.WriteString("\n\n")

	content.WriteString(helpSectionStyle.Render("KEYBINDINGS"))
	content.WriteString("\n\n")

	keybindings := []struct {
		key  string
		desc string
	}{
		{"Space", "Pause / resume the conversation"},
		{"Ctrl+S", "Stop the conversation"},
		{"F1 / ?", "Toggle this help overlay"},
		{"PgUp/PgDn", "Scroll the transcript"},
		{"Esc", "Close overlay / return to input"},
		{"Ctrl+C / Ctrl+Q", "Quit"},
	}

	for _, kb := range keybindings {
		key := helpKeyStyle.Width(16).Render(kb.key)
		content.WriteString("  " + key + "  " + helpDescStyle.Render(kb.desc) + "\n")
	}

	content.WriteString("\n")
	content.WriteString(helpSectionStyle.Render("SLASH COMMANDS"))
	content.WriteString("\n\n")

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/new [template]", "Start a conversation from a template"},
		{"/templates", "List available templates"},
		{"/model <slot> <id>", "Assign a custom model to a slot"},
		{"/pause", "Pause after the current response"},
		{"/resume", "Resume a paused conversation"},
		{"/stop", "Stop the conversation"},
		{"/export", "Export the transcript to markdown"},
		{"/history", "Browse past conversations"},
		{"/close", "Close the conversation view"},
	}

	for _, cmd := range commands {
		cmdStr := helpCmdStyle.Width(20).Render(cmd.cmd)
		content.WriteString("  " + cmdStr + "  " + helpDescStyle.Render(cmd.desc) + "\n")
	}

	content.WriteString("\n")
	content.WriteString(helpSectionStyle.Render("HOW IT WORKS"))
	content.WriteString("\n\n")

	protocol := []string{
		"Each turn, every participant generates once, in slot order.",
		"A completed response is fed into every other participant's",
		"context as if a human had typed it. The conversation ends when",
		"a participant emits ^C^C, a call fails, or max turns run out.",
		"",
		"Pausing never cancels an in-flight response; the stream finishes",
		"and the next participant simply waits.",
	}

	for _, line := range protocol {
		if line == "" {
			content.WriteString("\n")
		} else {
			content.WriteString("  " + helpDimStyle.Render(line) + "\n")
		}
	}

	content.WriteString("\n")
	footer := helpDimStyle.Render("Press F1 or Esc to close this help")
	content.WriteString(lipgloss.PlaceHorizontal(width-8, lipgloss.Center, footer))

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 3).
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
