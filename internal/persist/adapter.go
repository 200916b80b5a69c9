// pattern: Imperative Shell

package persist

import (
	"fmt"
	"sync"

	"dockrow/internal/logging"
)

// KeyPrefix namespaces layout entries in a shared store.
const KeyPrefix = "dockrow/layout/"

// Key returns the store key for a container.
func Key(containerID string) string {
	return KeyPrefix + containerID
}

// Adapter saves and loads one container's state.
type Adapter struct {
	store  Store
	key    string
	logger *logging.ScopedLogger

	mu      sync.Mutex
	written string
}

// NewAdapter binds a store to a container. A nil logger discards output.
func NewAdapter(store Store, containerID string, logger *logging.ScopedLogger) *Adapter {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Adapter{
		store:  store,
		key:    Key(containerID),
		logger: logger,
	}
}

// Key returns the store key the adapter reads and writes.
func (a *Adapter) Key() string { return a.key }

// Store returns the underlying store.
func (a *Adapter) Store() Store { return a.store }

// Save writes the state. Failures are logged and never returned; layout
// changes must not fail because the store is unavailable.
func (a *Adapter) Save(s State) {
	raw, err := Marshal(s)
	if err != nil {
		a.logger.Error("encode layout failed", "key", a.key, "error", err)
		return
	}
	if err := a.store.Set(a.key, raw); err != nil {
		a.logger.Warn("save layout failed", "key", a.key, "error", err)
		return
	}
	a.mu.Lock()
	a.written = raw
	a.mu.Unlock()
	a.logger.Debug("layout saved", "key", a.key, "windows", len(s.Windows))
}

// Load reads and parses the saved state.
func (a *Adapter) Load() (*State, error) {
	raw, ok, err := a.store.Get(a.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.key, err)
	}
	if !ok {
		return nil, ErrNoState
	}
	return Parse(raw)
}

// Written returns the last blob this adapter stored.
func (a *Adapter) Written() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.written
}
