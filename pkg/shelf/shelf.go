package shelf

import (
	"fmt"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	logMsgReadFailed    = "store read failed, treating slot as absent"
	logMsgRejected      = "stored value rejected by bridge, treating slot as absent"
	logMsgNotSerialized = "value has no native form, removing slot"
	logMsgCleared       = "store cleared"
	logAttrKey          = "key"
	logAttrError        = "error"
	logAttrKind         = "kind"
	logAttrRemoved      = "removed"
)

// Logger receives diagnostics about absent reads and removals.
// *slog.Logger satisfies it.
//
// Debug level: values a bridge rejected, values removed because they had no
// native form. Warn level: store read failures. Info level: Clear.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Shelf is the keyed accessor over a store. It adds no locking of its own;
// concurrent use is as safe as the store it wraps.
type Shelf struct {
	store  types.Store
	logger Logger
}

// Option configures a Shelf.
type Option func(*Shelf) error

// WithLogger sets the logger for the Shelf.
func WithLogger(logger Logger) Option {
	return func(s *Shelf) error {
		s.logger = logger
		return nil
	}
}

// New returns a Shelf over store.
// Returns ErrNilStore if store is nil.
func New(store types.Store, options ...Option) (*Shelf, error) {
	if store == nil {
		return nil, types.ErrNilStore
	}
	s := &Shelf{store: store}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Store returns the underlying store.
func (s *Shelf) Store() types.Store { return s.store }

// Get reads the value for key. ok is false when the slot is missing, holds a
// native value of the wrong kind, is rejected by the key's bridge, or cannot
// be read from the store.
func Get[T any](s *Shelf, key Key[T]) (value T, ok bool) {
	native, found, err := s.store.Get(key.name)
	if err != nil {
		s.warn(logMsgReadFailed, logAttrKey, key.name, logAttrError, err.Error())
		return value, false
	}
	if !found {
		return value, false
	}
	value, ok = key.bridge.Deserialize(native)
	if !ok {
		kind, _ := types.KindOf(native)
		s.debug(logMsgRejected, logAttrKey, key.name, logAttrKind, kind.String())
	}
	return value, ok
}

// Value reads the value for key, returning fallback when it is absent.
func Value[T any](s *Shelf, key Key[T], fallback T) T {
	if v, ok := Get(s, key); ok {
		return v
	}
	return fallback
}

// Set writes value under key. When the key's bridge has no native form for
// value (a nil optional, for instance) the slot is removed instead.
func Set[T any](s *Shelf, key Key[T], value T) error {
	native, ok := key.bridge.Serialize(value)
	if !ok {
		s.debug(logMsgNotSerialized, logAttrKey, key.name)
		return s.Remove(key)
	}
	if err := s.store.Set(key.name, native); err != nil {
		return fmt.Errorf("setting %s: %w", key.name, err)
	}
	return nil
}

// Remove deletes the slot for key.
func (s *Shelf) Remove(key Named) error {
	if err := s.store.Remove(key.Name()); err != nil {
		return fmt.Errorf("removing %s: %w", key.Name(), err)
	}
	return nil
}

// Contains reports whether the store holds a slot for key, whatever its
// content. A store read failure reports false.
func (s *Shelf) Contains(key Named) bool {
	_, found, err := s.store.Get(key.Name())
	if err != nil {
		s.warn(logMsgReadFailed, logAttrKey, key.Name(), logAttrError, err.Error())
		return false
	}
	return found
}

// Keys returns the names of every slot in the store.
func (s *Shelf) Keys() ([]string, error) {
	keys, err := s.store.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}

// Clear removes every slot in the store. It is irreversible.
func (s *Shelf) Clear() error {
	keys, err := s.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.store.Remove(k); err != nil {
			return fmt.Errorf("clearing %s: %w", k, err)
		}
	}
	s.info(logMsgCleared, logAttrRemoved, len(keys))
	return nil
}

func (s *Shelf) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Shelf) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Shelf) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
