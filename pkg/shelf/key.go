package shelf

import "github.com/mesh-intelligence/shelf/pkg/bridge"

// Named is anything that addresses a slot by name. Key implements it.
type Named interface {
	Name() string
}

// Key binds a slot name to the bridge for its values. Keys are immutable
// and compared by name: two keys with the same name address the same slot,
// whatever their value types.
type Key[T any] struct {
	name   string
	bridge bridge.Bridge[T]
}

// NewKey returns a Key for the slot name whose values go through b.
func NewKey[T any](name string, b bridge.Bridge[T]) Key[T] {
	return Key[T]{name: name, bridge: b}
}

// KeyFor returns a Key using the bridge T nominates.
func KeyFor[T bridge.Serializable[T]](name string) Key[T] {
	return NewKey(name, bridge.For[T]())
}

// Name returns the slot name.
func (k Key[T]) Name() string { return k.name }

// Bridge returns the bridge values of this key go through.
func (k Key[T]) Bridge() bridge.Bridge[T] { return k.bridge }

func (k Key[T]) String() string { return k.name }
