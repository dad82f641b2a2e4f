// internal/events/client.go
// Fire-and-forget webhook notifications for conversation lifecycle events.
// Disabled unless an endpoint is configured.
package events

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
)

// Event types
const (
	EventConversationStarted = "conversation_started"
	EventConversationEnded   = "conversation_ended"
	EventTurnCompleted       = "turn_completed"
)

// Event is the webhook payload.
type Event struct {
	Type      string            `json:"type"`
	Source    string            `json:"source"`
	Timestamp int64             `json:"timestamp"`
	Data      map[string]string `json:"data,omitempty"`
}

// Client posts events to a configured endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client. An empty endpoint disables emission.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 2 * time.Second, // short timeout for fire-and-forget
		},
	}
}

// Enabled reports whether events will be sent.
func (c *Client) Enabled() bool {
	return c.endpoint != ""
}

// Emit sends an event asynchronously (fire and forget).
func (c *Client) Emit(eventType string, data map[string]string) {
	if !c.Enabled() {
		return
	}

	event := Event{
		Type:      eventType,
		Source:    "backrooms",
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	go c.send(event)
}

// send performs the actual HTTP POST (runs in goroutine).
func (c *Client) send(event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("[events] failed to marshal event: %v", err)
		return
	}

	resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		// Receiver may simply not be up; not worth logging every time.
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("[events] event rejected with status %d", resp.StatusCode)
	}
}

// ConversationStarted emits a conversation_started event.
func (c *Client) ConversationStarted(id, tmpl string, participants int) {
	c.Emit(EventConversationStarted, map[string]string{
		"conversation_id": id,
		"template":        tmpl,
		"participants":    strconv.Itoa(participants),
	})
}

// ConversationEnded emits a conversation_ended event.
func (c *Client) ConversationEnded(id, reason string) {
	c.Emit(EventConversationEnded, map[string]string{
		"conversation_id": id,
		"reason":          reason,
	})
}

// TurnCompleted emits a turn_completed event.
func (c *Client) TurnCompleted(id string, turn int) {
	c.Emit(EventTurnCompleted, map[string]string{
		"conversation_id": id,
		"turn":            strconv.Itoa(turn),
	})
}
