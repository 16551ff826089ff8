package pipeline

import (
	"sort"
	"sync"
)

// AlgorithmFactory builds a fresh algorithm instance for
// definition-driven assembly.
type AlgorithmFactory func() (Algorithm, error)

// ToolFactory builds a fresh tool instance for definition-driven assembly.
type ToolFactory func() (Tool, error)

// Registry provides named component lookup for assembling pipelines from
// definitions.
type Registry struct {
	mu         sync.RWMutex
	algorithms map[string]AlgorithmFactory
	tools      map[string]ToolFactory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		algorithms: make(map[string]AlgorithmFactory),
		tools:      make(map[string]ToolFactory),
	}
}

// RegisterAlgorithm adds an algorithm factory under name.
func (r *Registry) RegisterAlgorithm(name string, factory AlgorithmFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithms[name] = factory
}

// RegisterTool adds a tool factory under name.
func (r *Registry) RegisterTool(name string, factory ToolFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = factory
}

// Algorithm retrieves an algorithm factory by name.
func (r *Registry) Algorithm(name string) (AlgorithmFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.algorithms[name]
	return f, ok
}

// Tool retrieves a tool factory by name.
func (r *Registry) Tool(name string) (ToolFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.tools[name]
	return f, ok
}

// List returns sorted names of all registered factories.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.algorithms)+len(r.tools))
	for name := range r.algorithms {
		names = append(names, name)
	}
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
