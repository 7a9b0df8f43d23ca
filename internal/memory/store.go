// Package memory implements an in-memory shelf backend. It keeps slots in a
// map guarded by a RWMutex and makes no persistence assumptions; it backs
// tests and the "memory" backend.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

var _ types.Backend = (*Store)(nil)

// Store is an in-memory types.Backend. The zero value is not usable; call
// NewStore. A Store is usable as a types.Store without calling Attach.
type Store struct {
	mu    sync.RWMutex
	slots map[string]any
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{slots: make(map[string]any)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key string) (any, bool, error) {
	if key == "" {
		return nil, false, types.ErrInvalidKey
	}
	s.mu.RLock()
	v, ok := s.slots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	out, err := types.Normalize(v)
	if err != nil {
		return nil, false, fmt.Errorf("copying %s: %w", key, err)
	}
	return out, true, nil
}

// Set stores a normalized copy of value under key. A nil value removes the
// slot.
func (s *Store) Set(key string, value any) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	if value == nil {
		return s.Remove(key)
	}
	v, err := types.Normalize(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slots[key] = v
	s.mu.Unlock()
	return nil
}

// Remove deletes the slot for key.
func (s *Store) Remove(key string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
	return nil
}

// Keys returns every slot name, sorted.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.slots))
	for k := range s.slots {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

// Attach validates config. The memory backend holds no external resources,
// so attaching and detaching only check the configuration.
func (s *Store) Attach(config types.Config) error {
	return config.Validate()
}

// Detach is a no-op; the slots survive for the life of the Store.
func (s *Store) Detach() error {
	return nil
}
