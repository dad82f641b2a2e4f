// internal/models/chat.go
package models

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultOpenRouterURL is the OpenRouter API base.
const DefaultOpenRouterURL = "https://openrouter.ai/api/v1"

// ChatModel talks to a chat-completions style API (OpenRouter and anything
// wire-compatible with it). History is sent as a structured role/content
// message list.
type ChatModel struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewChat(apiKey string) *ChatModel {
	return &ChatModel{
		apiKey:  apiKey,
		baseURL: DefaultOpenRouterURL,
		client:  &http.Client{},
	}
}

// NewChatWithBaseURL overrides the API base, used by tests.
func NewChatWithBaseURL(apiKey, baseURL string) *ChatModel {
	m := NewChat(apiKey)
	m.baseURL = baseURL
	return m
}

func (m *ChatModel) Name() string { return ProviderOpenRouter }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

func (m *ChatModel) Generate(ctx context.Context, req GenerateRequest) <-chan Chunk {
	ch := make(chan Chunk, 100)

	go func() {
		defer close(ch)

		var messages []chatMessage
		if req.System != "" {
			messages = append(messages, chatMessage{Role: string(RoleSystem), Content: req.System})
		}
		for _, msg := range req.History {
			messages = append(messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
		}

		body := chatRequest{
			Model:       req.Model,
			Messages:    messages,
			Temperature: Temperature,
			MaxTokens:   req.MaxTokens,
			Stream:      true,
		}

		bodyBytes, err := json.Marshal(body)
		if err != nil {
			ch <- Chunk{Err: fmt.Errorf("marshal: %w", err)}
			return
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
		if err != nil {
			ch <- Chunk{Err: fmt.Errorf("request: %w", err)}
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)

		resp, err := m.client.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				ch <- Chunk{Err: ErrCancelled}
				return
			}
			ch <- Chunk{Err: fmt.Errorf("do: %w", err)}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			ch <- Chunk{Err: &UpstreamError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), Body: string(body)}}
			return
		}

		readStream(ctx, resp.Body, ch)
	}()

	return ch
}
