// internal/models/completion_test.go
package models

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFlattenPrompt(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "hello there"},
		{Role: RoleAssistant, Content: "hi"},
		{Role: RoleUser, Content: "how are you"},
	}

	got := FlattenPrompt("you are a CLI", history)
	want := "System: you are a CLI\n\n" +
		"AI1: hello there\n\n" +
		"AI2: hi\n\n" +
		"AI1: how are you\n\n" +
		"AI2:"
	if got != want {
		t.Errorf("FlattenPrompt = %q, want %q", got, want)
	}
}

func TestFlattenPromptNoSystem(t *testing.T) {
	got := FlattenPrompt("", []Message{{Role: RoleUser, Content: "x"}})
	if strings.Contains(got, "System:") {
		t.Errorf("prompt %q carries a System preamble with no system text", got)
	}
	if !strings.HasSuffix(got, SelfLabel+":") {
		t.Errorf("prompt %q must end with the self-label cue", got)
	}
}

func TestFlattenPromptEmptyHistory(t *testing.T) {
	if got := FlattenPrompt("", nil); got != "AI2:" {
		t.Errorf("FlattenPrompt with empty history = %q, want bare cue", got)
	}
}

func TestCompletionModelRequestShape(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/completions" {
			t.Errorf("path = %q, want /completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer hyper-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`data: {"choices":[{"text":"the void"}]}` + "\n\ndata: [DONE]\n"))
	}))
	defer srv.Close()

	m := NewCompletionWithBaseURL("hyper-key", srv.URL)
	req := GenerateRequest{
		Model:     "meta-llama/Meta-Llama-3.1-405B",
		System:    "simulate",
		History:   []Message{{Role: RoleUser, Content: "ls"}},
		MaxTokens: 256,
	}

	text, last := collect(t, m.Generate(context.Background(), req))
	if text != "the void" {
		t.Errorf("streamed text = %q", text)
	}
	if !last.Done || last.Full != "the void" {
		t.Errorf("final chunk = %+v", last)
	}

	if got.Model != "meta-llama/Meta-Llama-3.1-405B" {
		t.Errorf("model = %q", got.Model)
	}
	if !got.Stream {
		t.Error("stream flag not set")
	}
	if got.Temperature != Temperature {
		t.Errorf("temperature = %v, want %v", got.Temperature, Temperature)
	}
	if want := FlattenPrompt(req.System, req.History); got.Prompt != want {
		t.Errorf("prompt = %q, want %q", got.Prompt, want)
	}
}

func TestCompletionModelUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no capacity", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := NewCompletionWithBaseURL("k", srv.URL)
	_, last := collect(t, m.Generate(context.Background(), GenerateRequest{Model: "x"}))

	var ue *UpstreamError
	if !errors.As(last.Err, &ue) {
		t.Fatalf("err = %v, want *UpstreamError", last.Err)
	}
	if ue.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", ue.Status)
	}
}
