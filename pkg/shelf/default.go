package shelf

// Default is a typed field backed by a slot. Reads return the stored value,
// or the fallback when the slot is absent; writes go straight to the store.
// Nothing is cached.
type Default[T any] struct {
	shelf    *Shelf
	key      Key[T]
	fallback T
}

// Bind returns a Default for key on s. For optional shapes pass nil as the
// fallback.
func Bind[T any](s *Shelf, key Key[T], fallback T) *Default[T] {
	return &Default[T]{shelf: s, key: key, fallback: fallback}
}

// Get returns the stored value, or the fallback when it is absent.
func (d *Default[T]) Get() T {
	return Value(d.shelf, d.key, d.fallback)
}

// Set stores v.
func (d *Default[T]) Set(v T) error {
	return Set(d.shelf, d.key, v)
}

// Reset removes the slot so the next Get returns the fallback.
func (d *Default[T]) Reset() error {
	return d.shelf.Remove(d.key)
}

// Key returns the bound key.
func (d *Default[T]) Key() Key[T] { return d.key }

// Fallback returns the value Get returns when the slot is absent.
func (d *Default[T]) Fallback() T { return d.fallback }
