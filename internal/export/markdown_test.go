// internal/export/markdown_test.go
package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleExport() *ConversationExport {
	created := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	return &ConversationExport{
		ID:           "conv-1",
		Name:         "Backrooms Run",
		Template:     "backrooms",
		CreatedAt:    created,
		Participants: []string{"Opus 1", "Opus 2"},
		Messages: []TranscriptMessage{
			{Actor: "Opus 1", Content: "hello\nsecond line", Timestamp: created},
			{Actor: "Opus 2", Content: "```\nls -la\n```", Timestamp: created.Add(time.Minute)},
		},
	}
}

func TestExportConversation(t *testing.T) {
	out := ExportConversation(sampleExport())

	for _, want := range []string{
		"# Backrooms Run",
		"**Conversation ID:** `conv-1`",
		"**Template:** `backrooms`",
		"**Participants:** Opus 1, Opus 2",
		"## Transcript",
		"Opus 1",
		"Opus 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q", want)
		}
	}

	// Plain text is blockquoted, every line.
	if !strings.Contains(out, "> hello\n> second line") {
		t.Error("plain message not blockquoted per line")
	}
	// Code blocks pass through untouched.
	if !strings.Contains(out, "```\nls -la\n```") {
		t.Error("code block was rewrapped")
	}
	if strings.Contains(out, "> ```") {
		t.Error("code block was blockquoted")
	}
}

func TestWriteConversation(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteConversation(sampleExport(), dir)
	if err != nil {
		t.Fatalf("WriteConversation failed: %v", err)
	}

	if filepath.Base(path) != "2026-08-25-backrooms-run.md" {
		t.Errorf("filename = %q", filepath.Base(path))
	}
	if filepath.Dir(path) != filepath.Join(dir, "backrooms") {
		t.Errorf("export dir = %q", filepath.Dir(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.Contains(string(data), "# Backrooms Run") {
		t.Error("written file missing title")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Backrooms Run", "backrooms-run"},
		{"weird / name!!", "weird-name"},
		{"---", "conversation"},
		{"", "conversation"},
		{"a  b   c", "a-b-c"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("x", 80)
	if got := sanitizeFilename(long); len(got) != 50 {
		t.Errorf("long name not truncated: len = %d", len(got))
	}
}
