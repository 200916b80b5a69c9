// pattern: Imperative Shell

package engine

import (
	"errors"
	"fmt"
	"slices"

	"dockrow/internal/logging"
)

var ErrDuplicateContainer = errors.New("container already mounted")

// Registry owns the mounted containers of a host by id.
type Registry struct {
	engines map[string]*Engine
	ids     []string
	logs    logging.LoggerProvider
}

// NewRegistry creates an empty registry. Engines get a logger scoped
// "engine.<id>" from logs unless their options carry one.
func NewRegistry(logs logging.LoggerProvider) *Registry {
	return &Registry{engines: make(map[string]*Engine), logs: logs}
}

// Mount creates, populates and mounts a container.
func (r *Registry) Mount(id string, opts Options) (*Engine, error) {
	if _, ok := r.engines[id]; ok {
		return nil, fmt.Errorf("mount %q: %w", id, ErrDuplicateContainer)
	}
	opts.ContainerID = id
	if opts.Logger == nil && r.logs != nil {
		opts.Logger = r.logs.For("engine." + id)
	}
	e, err := New(opts)
	if err != nil {
		return nil, fmt.Errorf("mount %q: %w", id, err)
	}
	e.Mount()
	r.engines[id] = e
	r.ids = append(r.ids, id)
	return e, nil
}

// Get returns a mounted container.
func (r *Registry) Get(id string) (*Engine, bool) {
	e, ok := r.engines[id]
	return e, ok
}

// IDs returns the container ids in mount order.
func (r *Registry) IDs() []string { return slices.Clone(r.ids) }

// Len returns the number of mounted containers.
func (r *Registry) Len() int { return len(r.ids) }

// Unmount unmounts and forgets a container.
func (r *Registry) Unmount(id string) bool {
	e, ok := r.engines[id]
	if !ok {
		return false
	}
	e.Unmount()
	delete(r.engines, id)
	r.ids = slices.DeleteFunc(r.ids, func(s string) bool { return s == id })
	return true
}

// Close unmounts every container, most recent first.
func (r *Registry) Close() {
	for i := len(r.ids) - 1; i >= 0; i-- {
		id := r.ids[i]
		r.engines[id].Unmount()
		delete(r.engines, id)
	}
	r.ids = nil
}
