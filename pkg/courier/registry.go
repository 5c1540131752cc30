package courier

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Factory builds a provider from credentials. It must not perform network
// I/O and must fail with a credentials error when required keys are absent.
type Factory func(creds Credentials, deps Deps) (Provider, error)

type entry struct {
	meta    Metadata
	factory Factory
}

// Registry maps provider names to their factories and metadata.
type Registry struct {
	entries map[string]entry
	deps    Deps
	mu      sync.RWMutex
}

// NewRegistry creates a new provider registry. Every provider it resolves
// shares deps.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		entries: make(map[string]entry),
		deps:    deps.WithDefaults(),
	}
}

// Register adds a provider to the registry under meta.Name. Registering the
// same name again replaces the previous entry.
func (r *Registry) Register(meta Metadata, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[meta.Name] = entry{meta: meta, factory: f}
}

// Resolve builds the provider registered under name.
func (r *Registry) Resolve(name string, creds Credentials) (Provider, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, NewInvalidProviderError(name, r.Names())
	}

	if e.factory == nil {
		return nil, NewCourierError(name, KindInvalidProvider, "provider has no factory")
	}

	p, err := e.factory(creds, r.deps)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NewCourierError(name, KindInvalidProvider, "factory returned no provider")
	}
	if got := p.Metadata().Name; got != name {
		return nil, NewCourierError(name, KindInvalidProvider,
			fmt.Sprintf("factory built provider %q", got))
	}
	return p, nil
}

// Metadata returns the metadata registered under name without building
// the provider.
func (r *Registry) Metadata(name string) (Metadata, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return Metadata{}, NewInvalidProviderError(name, r.Names())
	}
	return e.meta, nil
}

// Providers returns the metadata of every registered provider, sorted by
// name.
func (r *Registry) Providers() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Metadata, 0, len(r.entries))
	for _, name := range slices.Sorted(maps.Keys(r.entries)) {
		result = append(result, r.entries[name].meta)
	}
	return result
}

// Names returns the names of all registered providers in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}

// Count returns the number of registered providers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
