// Package engine holds the registry of synthesis backends. All dispatch goes
// through models.Engine — never call a specific engine package directly.
package engine

import (
	"fmt"
	"sort"

	"voiceforge/pkg/models"
)

// Registry maps engine kinds to their implementations. It is populated once
// at startup and read-only afterwards, so lookups need no locking.
type Registry struct {
	engines map[models.EngineKind]models.Engine
}

// NewRegistry builds an immutable registry from the given engines.
// A duplicate kind is a programming error and returns an error.
func NewRegistry(engines ...models.Engine) (*Registry, error) {
	m := make(map[models.EngineKind]models.Engine, len(engines))
	for _, e := range engines {
		if _, dup := m[e.Kind()]; dup {
			return nil, fmt.Errorf("engine kind %q registered twice", e.Kind())
		}
		m[e.Kind()] = e
	}
	return &Registry{engines: m}, nil
}

// Get returns the engine for the given kind, or ErrUnknownEngine.
func (r *Registry) Get(kind models.EngineKind) (models.Engine, error) {
	e, ok := r.engines[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
	return e, nil
}

// Kinds lists the registered engine kinds in stable order.
func (r *Registry) Kinds() []models.EngineKind {
	kinds := make([]models.EngineKind, 0, len(r.engines))
	for k := range r.engines {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
