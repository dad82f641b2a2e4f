// internal/models/completion.go
package models

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultHyperbolicURL is the Hyperbolic API base.
const DefaultHyperbolicURL = "https://api.hyperbolic.xyz/v1"

// Turn labels for the flattened transcript. The base models behind the
// completion API are not chat-tuned, so the structured history is collapsed
// into free text with a fixed labeling convention: the participant's own
// turns are SelfLabel, everyone else's are OtherLabel.
const (
	SelfLabel  = "AI2"
	OtherLabel = "AI1"
)

// CompletionModel talks to a text-completions style API (Hyperbolic base
// models). History is flattened into a single prompt string.
type CompletionModel struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewCompletion(apiKey string) *CompletionModel {
	return &CompletionModel{
		apiKey:  apiKey,
		baseURL: DefaultHyperbolicURL,
		client:  &http.Client{},
	}
}

// NewCompletionWithBaseURL overrides the API base, used by tests.
func NewCompletionWithBaseURL(apiKey, baseURL string) *CompletionModel {
	m := NewCompletion(apiKey)
	m.baseURL = baseURL
	return m
}

func (m *CompletionModel) Name() string { return ProviderHyperbolic }

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
}

// FlattenPrompt collapses a structured message history into the free-text
// transcript the base models expect, ending with the participant's own
// label to cue its next turn.
func FlattenPrompt(system string, history []Message) string {
	var sb strings.Builder

	if system != "" {
		sb.WriteString("System: ")
		sb.WriteString(system)
		sb.WriteString("\n\n")
	}

	for _, msg := range history {
		label := OtherLabel
		if msg.Role == RoleAssistant {
			label = SelfLabel
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}

	sb.WriteString(SelfLabel)
	sb.WriteString(":")
	return sb.String()
}

func (m *CompletionModel) Generate(ctx context.Context, req GenerateRequest) <-chan Chunk {
	ch := make(chan Chunk, 100)

	go func() {
		defer close(ch)

		body := completionRequest{
			Model:       req.Model,
			Prompt:      FlattenPrompt(req.System, req.History),
			Temperature: Temperature,
			MaxTokens:   req.MaxTokens,
			Stream:      true,
		}

		bodyBytes, err := json.Marshal(body)
		if err != nil {
			ch <- Chunk{Err: fmt.Errorf("marshal: %w", err)}
			return
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/completions", bytes.NewReader(bodyBytes))
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
