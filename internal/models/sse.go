// internal/models/sse.go
package models

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
)

// readStream consumes a server-sent-events body line by line, emitting one
// Chunk per content fragment and a final Done chunk carrying the full
// concatenated text. A single malformed record is logged and skipped; the
// stream only fails as a whole on transport errors. Cancellation of ctx
// surfaces as ErrCancelled so callers can keep partial output.
func readStream(ctx context.Context, body io.Reader, ch chan<- Chunk) {
	reader := bufio.NewReader(body)
	var full strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				ch <- Chunk{Err: ErrCancelled}
				return
			}
			ch <- Chunk{Err: err}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}

		text, ok := extractContent(data)
		if !ok {
			continue
		}
		if text != "" {
			full.WriteString(text)
			ch <- Chunk{Text: text}
		}
	}

	ch <- Chunk{Full: full.String(), Done: true}
}

// extractContent pulls the content fragment out of one SSE record. The
// three payload shapes the supported providers send are checked in order:
// completion text, chat delta, full chat message.
func extractContent(data string) (string, bool) {
	var payload struct {
		Choices []struct {
			Text  string `json:"text"`
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		log.Printf("[sse] skipping malformed record: %v", err)
		return "", false
	}
	if len(payload.Choices) == 0 {
		log.Printf("[sse] skipping record with no choices: %.80s", data)
		return "", false
	}

	c := payload.Choices[0]
	switch {
	case c.Text != "":
		return c.Text, true
	case c.Delta.Content != "":
		return c.Delta.Content, true
	case c.Message.Content != "":
		return c.Message.Content, true
	}
	// Role-only and finish frames carry no content; that's normal.
	return "", true
}
