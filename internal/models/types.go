// internal/models/types.go
package models

import (
	"errors"
	"fmt"
)

// Role identifies the author of a message as seen from one participant's
// perspective.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a participant's conversation context.
// Immutable once created.
type Message struct {
	Role    Role
	Content string
}

// Chunk represents a piece of a streaming response.
type Chunk struct {
	Text string // incremental fragment
	Full string // complete concatenated text, set only when Done
	Done bool
	Err  error
}

// ErrCancelled marks a generation aborted by the caller. Callers treat it
// as a graceful stop and keep whatever text already arrived.
var ErrCancelled = errors.New("generation cancelled")

// UpstreamError is a non-success response from a provider API.
type UpstreamError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API error %d %s: %s", e.Status, e.StatusText, e.Body)
	}
	return fmt.Sprintf("API error %d %s", e.Status, e.StatusText)
}
