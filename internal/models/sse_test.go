// internal/models/sse_test.go
package models

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// drain runs readStream over the given body and collects every chunk.
func drain(t *testing.T, body string) []Chunk {
	t.Helper()
	ch := make(chan Chunk, 100)
	go func() {
		defer close(ch)
		readStream(context.Background(), strings.NewReader(body), ch)
	}()
	var out []Chunk
	for c := range ch {
		out = append(out, c)
	}
	return out
}

func TestReadStreamPayloadShapes(t *testing.T) {
	// Completion text, chat delta, full chat message all carry content.
	bodies := []string{
		`data: {"choices":[{"text":"x"}]}` + "\n",
		`data: {"choices":[{"delta":{"content":"x"}}]}` + "\n",
		`data: {"choices":[{"message":{"content":"x"}}]}` + "\n",
	}

	for _, body := range bodies {
		chunks := drain(t, body+"data: [DONE]\n")
		if len(chunks) != 2 {
			t.Fatalf("got %d chunks for %q, want text + done", len(chunks), body)
		}
		if chunks[0].Text != "x" {
			t.Errorf("text chunk = %q for %q, want %q", chunks[0].Text, body, "x")
		}
		if !chunks[1].Done || chunks[1].Full != "x" {
			t.Errorf("final chunk = %+v for %q, want done with full text", chunks[1], body)
		}
	}
}

func TestReadStreamAccumulatesFullText(t *testing.T) {
	body := `data: {"choices":[{"delta":{"content":"Hello"}}]}` + "\n" +
		`data: {"choices":[{"delta":{"content":", "}}]}` + "\n" +
		`data: {"choices":[{"delta":{"content":"world"}}]}` + "\n" +
		"data: [DONE]\n"

	chunks := drain(t, body)
	final := chunks[len(chunks)-1]
	if !final.Done {
		t.Fatal("last chunk is not terminal")
	}
	if final.Full != "Hello, world" {
		t.Errorf("Full = %q, want %q", final.Full, "Hello, world")
	}
}

func TestReadStreamSkipsMalformedRecords(t *testing.T) {
	body := `data: {"choices":[{"delta":{"content":"a"}}]}` + "\n" +
		"data: {not json}\n" +
		`data: {"no_choices":true}` + "\n" +
		`data: {"choices":[{"delta":{"content":"b"}}]}` + "\n" +
		"data: [DONE]\n"

	chunks := drain(t, body)
	var texts []string
	for _, c := range chunks {
		if c.Text != "" {
			texts = append(texts, c.Text)
		}
	}
	if len(texts) != 2 || texts[0] != "a" || texts[1] != "b" {
		t.Errorf("texts = %v, want [a b]", texts)
	}
	if final := chunks[len(chunks)-1]; !final.Done || final.Full != "ab" {
		t.Errorf("final chunk = %+v, want done with %q", final, "ab")
	}
}

func TestReadStreamIgnoresRoleOnlyFrames(t *testing.T) {
	// Role-only and finish frames have choices but no content; no chunk and
	// no skip log.
	body := `data: {"choices":[{"delta":{"role":"assistant"}}]}` + "\n" +
		`data: {"choices":[{"delta":{"content":"hi"}}]}` + "\n" +
		`data: {"choices":[{"finish_reason":"stop","delta":{}}]}` + "\n" +
		"data: [DONE]\n"

	chunks := drain(t, body)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want text + done", len(chunks))
	}
	if chunks[0].Text != "hi" {
		t.Errorf("text = %q, want %q", chunks[0].Text, "hi")
	}
}

func TestReadStreamEOFWithoutDoneMarker(t *testing.T) {
	// Streams that end without [DONE] still get a terminal chunk.
	body := `data: {"choices":[{"text":"partial"}]}` + "\n"

	chunks := drain(t, body)
	final := chunks[len(chunks)-1]
	if !final.Done || final.Full != "partial" {
		t.Errorf("final chunk = %+v, want done with %q", final, "partial")
	}
}

// cancelReader fails with context.Canceled after its content is consumed.
type cancelReader struct {
	r    *strings.Reader
	done bool
}

func (c *cancelReader) Read(p []byte) (int, error) {
	if c.r.Len() == 0 {
		return 0, context.Canceled
	}
	return c.r.Read(p)
}

func TestReadStreamCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan Chunk, 100)
	go func() {
		defer close(ch)
		readStream(ctx, &cancelReader{r: strings.NewReader(`data: {"choices":[{"text":"a"}]}` + "\n")}, ch)
	}()

	var last Chunk
	for c := range ch {
		last = c
	}
	if !errors.Is(last.Err, ErrCancelled) {
		t.Errorf("last chunk err = %v, want ErrCancelled", last.Err)
	}
}
