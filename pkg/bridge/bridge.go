// Package bridge converts between typed Go values and the native values a
// shelf store accepts.
//
// A Bridge is a stateless strategy for one shape. Primitive shapes have a
// dedicated bridge; composite shapes (Slice, Map, Optional) take the bridge
// of their element and compose recursively, so a []*User resolves through
// Slice(Optional(Codable[User]())). Bridges are chosen where a Key is
// declared, never by inspecting a value at runtime: a shape without a
// bridge does not compile.
//
// Deserialization never fails loudly. Missing input, a native value of the
// wrong kind and a decode error all report absent (ok == false). Composite
// bridges drop the elements that are absent and keep the rest.
package bridge

// Bridge converts between a typed value and a native store value.
type Bridge[T any] interface {
	// Serialize converts value into a native value. ok is false when the
	// value has no native representation; callers store nothing.
	Serialize(value T) (native any, ok bool)

	// Deserialize converts a native value (nil when the slot is missing)
	// into T. ok is false when native is missing, of the wrong kind, or
	// rejected by the bridge.
	Deserialize(native any) (value T, ok bool)
}

// Serializable is implemented by shapes that nominate their own bridge.
// The method must not depend on the receiver's value; it is called on the
// zero value.
type Serializable[T any] interface {
	ShelfBridge() Bridge[T]
}

// For returns the bridge nominated by T.
func For[T Serializable[T]]() Bridge[T] {
	var zero T
	return zero.ShelfBridge()
}

// SliceOf returns the slice bridge over T's nominated bridge.
func SliceOf[T Serializable[T]]() Bridge[[]T] {
	return Slice(For[T]())
}

// MapOf returns the string-keyed map bridge over T's nominated bridge.
func MapOf[T Serializable[T]]() Bridge[map[string]T] {
	return Map(For[T]())
}

// OptionalOf returns the optional bridge over T's nominated bridge.
func OptionalOf[T Serializable[T]]() Bridge[*T] {
	return Optional(For[T]())
}

// Funcs adapts a pair of functions to a Bridge. A nil function falls back
// to the identity cast in that direction, so a bridge only needs to
// specialize the direction it cares about.
type Funcs[T any] struct {
	SerializeFunc   func(T) (any, bool)
	DeserializeFunc func(any) (T, bool)
}

var _ Bridge[string] = Funcs[string]{}

// Serialize implements Bridge.
func (f Funcs[T]) Serialize(value T) (any, bool) {
	if f.SerializeFunc != nil {
		return f.SerializeFunc(value)
	}
	return value, true
}

// Deserialize implements Bridge.
func (f Funcs[T]) Deserialize(native any) (T, bool) {
	if f.DeserializeFunc != nil {
		return f.DeserializeFunc(native)
	}
	v, ok := native.(T)
	return v, ok
}
