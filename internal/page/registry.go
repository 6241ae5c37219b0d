// Package page holds the decorative page components (charts, carousels, hero copy) as static
// configuration, kept in a registry that lives for one page lifecycle.
package page

import (
	"errors"
	"fmt"
	"sync"
)

// Kind identifies the library a component is rendered by.
type Kind string

const (
	KindChart      Kind = "chart"
	KindCarousel   Kind = "carousel"
	KindTypewriter Kind = "typewriter"
)

var (
	// ErrDuplicate is returned when a component id is registered twice.
	ErrDuplicate = errors.New("component already registered")
	// ErrDisposed is returned when registering after Dispose.
	ErrDisposed = errors.New("registry disposed")
)

// Component is one mounted widget.
type Component interface {
	ID() string
	Kind() Kind
	Options() any
}

// Disposer is implemented by components that hold resources.
type Disposer interface {
	Dispose() error
}

// Registry maps component ids to components.
type Registry struct {
	mu       sync.RWMutex
	items    map[string]Component
	order    []string
	disposed bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Component)}
}

// Register adds c under its id.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return ErrDisposed
	}
	if _, ok := r.items[c.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, c.ID())
	}
	r.items[c.ID()] = c
	r.order = append(r.order, c.ID())
	return nil
}

// Get looks up a component.
func (r *Registry) Get(id string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	return c, ok
}

// List returns components in registration order.
func (r *Registry) List() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Component, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Dispose tears down every component in reverse registration order and empties the registry.
// Later calls are no-ops.
func (r *Registry) Dispose() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return nil
	}
	r.disposed = true

	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		id := r.order[i]
		if d, ok := r.items[id].(Disposer); ok {
			if err := d.Dispose(); err != nil {
				errs = append(errs, fmt.Errorf("dispose %s: %w", id, err))
			}
		}
	}
	r.items = map[string]Component{}
	r.order = nil
	return errors.Join(errs...)
}

// NewLaunchWatchRegistry registers the components shown on the landing page.
func NewLaunchWatchRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, c := range []Component{
		HeroTypewriter(),
		PriceChart(),
		SupplyChart(),
		TestimonialCarousel(),
	} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}
