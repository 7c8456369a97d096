package collector

import (
	"fmt"
	"sync"
)

// Registry keeps collectors in registration order
type Registry struct {
	mu         sync.RWMutex
	collectors []Collector
	index      map[string]int
}

// NewRegistry creates a new collector registry
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Register adds a collector to the registry. Names must be unique.
func (r *Registry) Register(c Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[c.Name()]; exists {
		return fmt.Errorf("collector already registered: %s", c.Name())
	}
	r.index[c.Name()] = len(r.collectors)
	r.collectors = append(r.collectors, c)
	return nil
}

// Get retrieves a collector by name
func (r *Registry) Get(name string) (Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.collectors[i], true
}

// GetAll returns all registered collectors in registration order
func (r *Registry) GetAll() []Collector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Collector, len(r.collectors))
	copy(result, r.collectors)
	return result
}

// Names returns collector names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collectors))
	for _, c := range r.collectors {
		names = append(names, c.Name())
	}
	return names
}

// Len returns the number of registered collectors
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.collectors)
}
