package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/polkadot/pkg/errors"
)

// Registry is a thread-safe set of items keyed by name
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty Registry
func New[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register adds item under name. Names are unique.
func (r *Registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrDuplicate, "%q is already registered", name).
			WithDetail("name", name)
	}
	r.items[name] = item
	return nil
}

// Get retrieves the item registered under name
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "%q is not registered", name).
			WithDetail("name", name)
	}
	return item, nil
}

// Has checks if name is registered
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

// Names returns all registered names in sorted order
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustRegister registers an item and panics if registration fails.
// Meant for init() functions, where a failure is a programming error.
func MustRegister[T any](r *Registry[T], name string, item T) {
	if err := r.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
