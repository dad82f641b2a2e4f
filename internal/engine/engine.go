// internal/engine/engine.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"backrooms/internal/models"
	"backrooms/internal/signal"
)

// ErrConfig marks problems detected before any network call is attempted:
// unresolvable model mappings, missing providers, bad seed roles. A run
// with such a problem never starts.
var ErrConfig = errors.New("configuration error")

// DefaultPollInterval is how often a paused engine re-checks its state
// before issuing the next participant's call.
const DefaultPollInterval = 500 * time.Millisecond

// State of a single run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Options tune one run.
type Options struct {
	MaxTurns     int
	PollInterval time.Duration // zero means DefaultPollInterval

	// OnTurnComplete, if set, is called after each full pass over the
	// participants. Used for event notifications; must not block.
	OnTurnComplete func(turn int)
}

// Engine drives N participants through repeated rounds of generation,
// broadcasting each completed response into every other participant's
// context with role polarity swapped. An engine instance is single-use: a
// new run needs a new engine.
type Engine struct {
	participants []*Participant
	contexts     [][]models.Message
	sink         Sink
	opts         Options

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc // current turn's cancellation, nil between turns
	failure error              // fatal call error that ended the run, if any
}

// New validates the participant set and builds an idle engine. Contexts are
// seeded from each participant's seed messages.
func New(participants []*Participant, sink Sink, opts Options) (*Engine, error) {
	if sink == nil {
		return nil, fmt.Errorf("%w: nil sink", ErrConfig)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: no participants", ErrConfig)
	}
	if opts.MaxTurns < 0 {
		return nil, fmt.Errorf("%w: negative max turns", ErrConfig)
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = DefaultPollInterval
	}

	contexts := make([][]models.Message, len(participants))
	for i, p := range participants {
		if p.Provider == nil {
			return nil, fmt.Errorf("%w: participant %d has no provider", ErrConfig, i)
		}
		if p.WireName() == "" {
			return nil, fmt.Errorf("%w: participant %d has no model name", ErrConfig, i)
		}
		for _, msg := range p.Seed {
			switch msg.Role {
			case models.RoleUser, models.RoleAssistant, models.RoleSystem:
			default:
				return nil, fmt.Errorf("%w: participant %d seed has invalid role %q", ErrConfig, i, msg.Role)
			}
		}
		contexts[i] = append([]models.Message(nil), p.Seed...)
	}

	return &Engine{
		participants: participants,
		contexts:     contexts,
		sink:         sink,
		opts:         opts,
		state:        StateIdle,
	}, nil
}

// State returns the current run state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Context returns a copy of participant i's accumulated message history.
func (e *Engine) Context(i int) []models.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Message(nil), e.contexts[i]...)
}

// Participants returns the participant slots.
func (e *Engine) Participants() []*Participant {
	return e.participants
}

// Start runs the conversation until the stop token appears, a call fails,
// max turns are exhausted, or Stop is called. It blocks for the whole run;
// callers wanting concurrency run it in a goroutine. A second Start on the
// same engine is an error; a run ended by a failed call returns that call's
// error.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateIdle {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("engine is single-use, state is %s", state)
	}
	e.state = StateRunning
	e.mu.Unlock()

	for turn := 0; turn < e.opts.MaxTurns; turn++ {
		if !e.runTurn(ctx, turn) {
			e.mu.Lock()
			defer e.mu.Unlock()
			return e.failure
		}
		if e.opts.OnTurnComplete != nil {
			e.opts.OnTurnComplete(turn)
		}
	}

	e.sink.Report(SystemActor, "Conversation ended.", uuid.NewString(), false)
	e.Stop()
	return nil
}

// Stop moves the run to its terminal state and cancels any in-flight call.
// Idempotent.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateStopped {
		return
	}
	e.state = StateStopped
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Pause suspends issuing new participant calls. The in-flight call, if any,
// keeps streaming; partial generations are not wasted. No-op unless
// running.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateRunning {
		e.state = StatePaused
	}
}

// Resume returns a paused run to running. No-op unless paused.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StatePaused {
		e.state = StateRunning
	}
}

// runTurn executes one sequential pass over all participants. Returns false
// when the run is over.
func (e *Engine) runTurn(ctx context.Context, turn int) bool {
	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.mu.Lock()
	if e.state == StateStopped {
		e.mu.Unlock()
		return false
	}
	e.cancel = cancel
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
	}()

	for i := range e.participants {
		if !e.waitWhilePaused() {
			return false
		}
		if !e.step(turnCtx, i) {
			return false
		}
	}
	return true
}

// waitWhilePaused blocks in a bounded-interval poll while the run is
// paused. Returns false once the run is stopped.
func (e *Engine) waitWhilePaused() bool {
	for {
		switch e.State() {
		case StateStopped:
			return false
		case StatePaused:
			time.Sleep(e.opts.PollInterval)
		default:
			return true
		}
	}
}

// step issues one participant's call, streams its output to the sink, and
// on success broadcasts the result into every context. Returns false when
// the run is over.
func (e *Engine) step(ctx context.Context, i int) bool {
	p := e.participants[i]
	actor := p.Label()
	msgID := uuid.NewString()

	req := models.GenerateRequest{
		Model:     p.WireName(),
		System:    p.System,
		History:   e.Context(i),
		MaxTokens: p.MaxTokens,
	}

	e.sink.Report(actor, Cursor, msgID, true)

	var acc strings.Builder
	for chunk := range p.Provider.Generate(ctx, req) {
		switch {
		case chunk.Err != nil:
			if errors.Is(chunk.Err, models.ErrCancelled) {
				// Graceful stop: keep the partial text, no error notice.
				e.sink.Report(actor, acc.String(), msgID, false)
				e.Stop()
				return false
			}
			e.sink.Report(actor, acc.String(), msgID, false)
			e.sink.Report(SystemActor, fmt.Sprintf("%s failed: %v", actor, chunk.Err), uuid.NewString(), false)
			e.mu.Lock()
			e.failure = chunk.Err
			e.mu.Unlock()
			e.Stop()
			return false

		case chunk.Done:
			return e.finish(i, actor, msgID, chunk.Full)

		case chunk.Text != "":
			acc.WriteString(chunk.Text)
			e.sink.Report(actor, acc.String()+Cursor, msgID, true)
		}
	}

	// Channel closed without a terminal chunk; treat what arrived as the
	// complete response.
	return e.finish(i, actor, msgID, acc.String())
}

// finish finalizes a completed response: last in-place report without the
// cursor, stop-token detection, then broadcast.
func (e *Engine) finish(i int, actor, msgID, text string) bool {
	e.sink.Report(actor, text, msgID, false)

	if signal.Contains(text) {
		e.sink.Report(SystemActor, fmt.Sprintf("%s ended the conversation.", actor), uuid.NewString(), false)
		e.Stop()
		return false
	}

	e.broadcast(i, text)
	return true
}

// broadcast appends participant i's completed output to every context:
// assistant in its own, user everywhere else.
func (e *Engine) broadcast(i int, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for j := range e.contexts {
		role := models.RoleUser
		if j == i {
			role = models.RoleAssistant
		}
		e.contexts[j] = append(e.contexts[j], models.Message{Role: role, Content: text})
	}
}
