// internal/engine/setup.go
package engine

import (
	"fmt"

	"backrooms/internal/models"
	"backrooms/internal/template"
)

// ProviderSet maps provider identifiers to constructed backends. Built once
// from config; a provider whose API key is missing is simply absent.
type ProviderSet map[string]models.Provider

// BuildParticipants resolves a template's participant specs against the
// model registry and the available providers. Provider selection happens
// here, once per participant, not per call. All failures are ErrConfig:
// they surface before any network call is attempted.
func BuildParticipants(reg *models.Registry, specs []template.ParticipantSpec, providers ProviderSet, resolver ModelResolver, defaultMaxTokens int) ([]*Participant, error) {
	participants := make([]*Participant, 0, len(specs))

	for i, spec := range specs {
		entry, ok := reg.Lookup(spec.Model)
		if !ok {
			return nil, fmt.Errorf("%w: participant %d: unknown model %q", ErrConfig, i, spec.Model)
		}

		provider, ok := providers[entry.Provider]
		if !ok {
			return nil, fmt.Errorf("%w: participant %d: provider %s is not configured (missing API key?)", ErrConfig, i, entry.Provider)
		}

		seed := make([]models.Message, 0, len(spec.Seed))
		for _, s := range spec.Seed {
			seed = append(seed, models.Message{Role: models.Role(s.Role), Content: s.Content})
		}

		maxTokens := spec.MaxTokens
		if maxTokens == 0 {
			maxTokens = defaultMaxTokens
		}

		p := &Participant{
			Index:       i,
			DisplayName: fmt.Sprintf("%s %d", entry.DisplayName, i+1),
			Entry:       entry,
			Provider:    provider,
			System:      spec.System,
			Seed:        seed,
			MaxTokens:   maxTokens,
		}
		if entry.CustomSelector {
			p.Resolver = resolver
		}
		participants = append(participants, p)
	}

	return participants, nil
}
