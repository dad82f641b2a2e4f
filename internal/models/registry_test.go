// internal/models/registry_test.go
package models

import "testing"

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	e, ok := r.Lookup("llama-405b-base")
	if !ok {
		t.Fatal("llama-405b-base not found")
	}
	if e.Provider != ProviderHyperbolic {
		t.Errorf("provider = %q, want hyperbolic", e.Provider)
	}
	if e.WireName != "meta-llama/Meta-Llama-3.1-405B" {
		t.Errorf("wire name = %q", e.WireName)
	}

	e, ok = r.Lookup("opus")
	if !ok {
		t.Fatal("opus not found")
	}
	if e.Provider != ProviderOpenRouter {
		t.Errorf("provider = %q, want openrouter", e.Provider)
	}

	if _, ok := r.Lookup("nonexistent"); ok {
		t.Error("Lookup(nonexistent) succeeded")
	}
}

func TestRegistryCustomEntry(t *testing.T) {
	r := NewRegistry()
	e, ok := r.Lookup(CustomKey)
	if !ok {
		t.Fatal("custom entry not found")
	}
	if !e.CustomSelector {
		t.Error("custom entry not flagged as a custom selector")
	}
	if e.WireName == "" {
		t.Error("custom entry needs a placeholder wire name")
	}
}

func TestRegistryKeysStable(t *testing.T) {
	r := NewRegistry()
	keys := r.Keys()
	if len(keys) == 0 {
		t.Fatal("no keys")
	}
	for _, k := range keys {
		if _, ok := r.Lookup(k); !ok {
			t.Errorf("key %q listed but not resolvable", k)
		}
	}
	if keys[0] != "llama-405b-base" {
		t.Errorf("keys not in table order: first = %q", keys[0])
	}
}

func TestUpstreamErrorMessage(t *testing.T) {
	e := &UpstreamError{Status: 429, StatusText: "Too Many Requests", Body: "slow down"}
	if got := e.Error(); got != "API error 429 Too Many Requests: slow down" {
		t.Errorf("Error() = %q", got)
	}
	e = &UpstreamError{Status: 500, StatusText: "Internal Server Error"}
	if got := e.Error(); got != "API error 500 Internal Server Error" {
		t.Errorf("Error() = %q", got)
	}
}
