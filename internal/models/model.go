// internal/models/model.go
package models

import (
	"context"
)

// Temperature is the fixed sampling temperature for every request. The
// conversations this tool runs want maximum drift, so it is not
// configurable.
const Temperature = 1.0

// GenerateRequest carries everything a provider needs for one call.
type GenerateRequest struct {
	Model     string    // wire-level model name
	System    string    // system prompt, may be empty
	History   []Message // the calling participant's context
	MaxTokens int
}

// Provider is the interface all model backends implement. Generate returns
// a channel of chunks: zero or more fragment chunks, then exactly one
// terminal chunk carrying either Done with the full text or Err. The
// channel is closed after the terminal chunk.
type Provider interface {
	// Name returns the provider identifier used in the registry.
	Name() string

	// Generate issues one streaming completion call. Cancelling ctx makes
	// the terminal chunk carry ErrCancelled.
	Generate(ctx context.Context, req GenerateRequest) <-chan Chunk
}
