// internal/export/markdown.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TranscriptMessage represents a message to export.
type TranscriptMessage struct {
	Actor     string
	Content   string
	Timestamp time.Time
}

// ConversationExport contains the data needed to export a conversation.
type ConversationExport struct {
	ID           string
	Name         string
	Template     string
	CreatedAt    time.Time
	Messages     []TranscriptMessage
	Participants []string // display names
}

// ExportConversation generates a formatted markdown string from a transcript.
func ExportConversation(conv *ConversationExport) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(conv.Name)
	sb.WriteString("\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("**Conversation ID:** `%s`\n\n", conv.ID))
	sb.WriteString(fmt.Sprintf("**Created:** %s\n\n", conv.CreatedAt.Format("2006-01-02 15:04:05")))
	if conv.Template != "" {
		sb.WriteString(fmt.Sprintf("**Template:** `%s`\n\n", conv.Template))
	}

	if len(conv.Participants) > 0 {
		sb.WriteString("**Participants:** ")
		sb.WriteString(strings.Join(conv.Participants, ", "))
		sb.WriteString("\n\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString("## Transcript\n\n")

	for i, msg := range conv.Messages {
		ts := msg.Timestamp.Format("15:04:05")
		sb.WriteString(fmt.Sprintf("### [%s] %s\n\n", ts, msg.Actor))

		content := strings.TrimSpace(msg.Content)
		if containsCodeBlock(content) {
			// Content already has code blocks, render as-is
			sb.WriteString(content)
		} else {
			// Wrap in blockquote for visual distinction
			lines := strings.Split(content, "\n")
			for _, line := range lines {
				sb.WriteString("> ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")

		if i < len(conv.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from backrooms on %s*\n", time.Now().Format("2006-01-02 15:04:05")))

	return sb.String()
}

// WriteConversation exports a transcript to a markdown file under baseDir.
func WriteConversation(conv *ConversationExport, baseDir string) (string, error) {
	datePart := conv.CreatedAt.Format("2006-01-02")
	namePart := sanitizeFilename(conv.Name)
	filename := fmt.Sprintf("%s-%s.md", datePart, namePart)

	exportDir := filepath.Join(baseDir, "backrooms")
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(exportDir, filename)
	content := ExportConversation(conv)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

// sanitizeFilename removes/replaces characters unsuitable for filenames.
func sanitizeFilename(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-' || r == '_':
			sb.WriteRune(r)
		}
	}

	result := sb.String()

	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	result = strings.Trim(result, "-")

	if result == "" {
		result = "conversation"
	}
	if len(result) > 50 {
		result = result[:50]
	}

	return result
}

// containsCodeBlock checks if content already has markdown code blocks.
func containsCodeBlock(content string) bool {
	return strings.Contains(content, "```")
}
