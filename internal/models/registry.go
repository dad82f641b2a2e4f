// internal/models/registry.go
package models

// Provider identifiers
const (
	ProviderHyperbolic = "hyperbolic" // text-completion only, base models
	ProviderOpenRouter = "openrouter" // unified chat router over many vendors
)

// CustomKey is the registry key of the special slot whose real wire name is
// resolved at call time from a user-persisted selection.
const CustomKey = "custom"

// Entry describes one selectable model.
type Entry struct {
	Key            string
	DisplayName    string
	Provider       string
	WireName       string
	CustomSelector bool // wire name resolved per participant slot at call time
}

// Registry is a pure lookup table from model key to entry. It is built once
// and injected; nothing mutates it after construction.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// NewRegistry returns the built-in model table.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for _, e := range []Entry{
		{Key: "llama-405b-base", DisplayName: "Llama 405B", Provider: ProviderHyperbolic, WireName: "meta-llama/Meta-Llama-3.1-405B"},
		{Key: "llama-70b-base", DisplayName: "Llama 70B", Provider: ProviderHyperbolic, WireName: "meta-llama/Meta-Llama-3.1-70B"},
		{Key: "opus", DisplayName: "Opus", Provider: ProviderOpenRouter, WireName: "anthropic/claude-3-opus"},
		{Key: "sonnet", DisplayName: "Sonnet", Provider: ProviderOpenRouter, WireName: "anthropic/claude-3.5-sonnet"},
		{Key: "gpt-4o", DisplayName: "GPT-4o", Provider: ProviderOpenRouter, WireName: "openai/gpt-4o"},
		{Key: CustomKey, DisplayName: "Custom", Provider: ProviderOpenRouter, WireName: "openrouter/auto", CustomSelector: true},
	} {
		r.entries[e.Key] = e
		r.order = append(r.order, e.Key)
	}
	return r
}

// Lookup returns the entry for a model key.
func (r *Registry) Lookup(key string) (Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Keys returns all model keys in table order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
