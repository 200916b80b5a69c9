// pattern: Imperative Shell

package persist

import "sync"

// Store is a string key/value store. It has no transactions and no expiry.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Memory is a Store kept in a map.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)
