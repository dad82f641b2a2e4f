// internal/engine/participant.go
package engine

import (
	"fmt"

	"backrooms/internal/models"
)

// Selection is a user-persisted model choice for a custom-selector slot.
type Selection struct {
	ID   string // wire-level model name
	Name string // display name
}

// ModelResolver supplies persisted selections for custom-selector slots,
// keyed by participant index. Read-only from the engine's perspective.
type ModelResolver interface {
	Resolve(slot int) (Selection, bool)
}

// Participant is one conversation slot. Owned exclusively by the engine for
// the duration of a run.
type Participant struct {
	Index       int
	DisplayName string
	Entry       models.Entry
	Provider    models.Provider
	Resolver    ModelResolver // only consulted for custom-selector entries
	System      string        // immutable for the run
	Seed        []models.Message
	MaxTokens   int
}

// WireName returns the model name to send upstream, resolving the
// custom-selector indirection at call time. An absent selection falls back
// to the registry placeholder; degraded but non-fatal.
func (p *Participant) WireName() string {
	if !p.Entry.CustomSelector {
		return p.Entry.WireName
	}
	if p.Resolver != nil {
		if sel, ok := p.Resolver.Resolve(p.Index); ok && sel.ID != "" {
			return sel.ID
		}
	}
	return p.Entry.WireName
}

// Label returns the name used in sink reports, preferring the resolved
// selection's display name for custom slots.
func (p *Participant) Label() string {
	if p.Entry.CustomSelector && p.Resolver != nil {
		if sel, ok := p.Resolver.Resolve(p.Index); ok && sel.Name != "" {
			return fmt.Sprintf("%s %d", sel.Name, p.Index+1)
		}
	}
	return p.DisplayName
}
