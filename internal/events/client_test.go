// internal/events/client_test.go
package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestEmitDisabledWithoutEndpoint(t *testing.T) {
	c := NewClient("")
	if c.Enabled() {
		t.Error("client with empty endpoint reports enabled")
	}
	// Must not panic or block.
	c.Emit(EventConversationStarted, nil)
}

func TestConversationLifecycleEvents(t *testing.T) {
	received := make(chan Event, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var e Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			t.Errorf("decode event: %v", err)
		}
		received <- e
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if !c.Enabled() {
		t.Fatal("client with endpoint reports disabled")
	}

	c.ConversationStarted("conv-1", "backrooms", 2)
	e := receive(t, received)
	if e.Type != EventConversationStarted {
		t.Errorf("type = %q", e.Type)
	}
	if e.Source != "backrooms" {
		t.Errorf("source = %q", e.Source)
	}
	if e.Data["conversation_id"] != "conv-1" || e.Data["template"] != "backrooms" || e.Data["participants"] != "2" {
		t.Errorf("data = %v", e.Data)
	}
	if e.Timestamp == 0 {
		t.Error("timestamp not set")
	}

	c.TurnCompleted("conv-1", 3)
	e = receive(t, received)
	if e.Type != EventTurnCompleted || e.Data["turn"] != "3" {
		t.Errorf("turn event = %+v", e)
	}

	c.ConversationEnded("conv-1", "stop token")
	e = receive(t, received)
	if e.Type != EventConversationEnded || e.Data["reason"] != "stop token" {
		t.Errorf("ended event = %+v", e)
	}
}

func TestEmitSurvivesDeadEndpoint(t *testing.T) {
	// A receiver that is not up must not break the caller.
	c := NewClient("http://127.0.0.1:1/unreachable")
	c.ConversationEnded("conv-1", "stopped")
	time.Sleep(50 * time.Millisecond)
}
