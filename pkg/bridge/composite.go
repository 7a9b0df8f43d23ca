package bridge

type sliceBridge[T any] struct {
	elem Bridge[T]
}

// Slice returns the bridge for []T, stored as a native array. Elements the
// element bridge reports absent are dropped in both directions; the order of
// the remaining elements is preserved. A nil slice is stored as an empty
// array.
func Slice[T any](elem Bridge[T]) Bridge[[]T] {
	return sliceBridge[T]{elem: elem}
}

func (b sliceBridge[T]) Serialize(values []T) (any, bool) {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if n, ok := b.elem.Serialize(v); ok {
			out = append(out, n)
		}
	}
	return out, true
}

func (b sliceBridge[T]) Deserialize(native any) ([]T, bool) {
	arr, ok := native.([]any)
	if !ok {
		return nil, false
	}
	out := make([]T, 0, len(arr))
	for _, n := range arr {
		if v, ok := b.elem.Deserialize(n); ok {
			out = append(out, v)
		}
	}
	return out, true
}

type mapBridge[T any] struct {
	elem Bridge[T]
}

// Map returns the bridge for map[string]T, stored as a native string-keyed
// map. Entries the element bridge reports absent are dropped in both
// directions; the other entries keep their keys. A nil map is stored as an
// empty map.
func Map[T any](elem Bridge[T]) Bridge[map[string]T] {
	return mapBridge[T]{elem: elem}
}

func (b mapBridge[T]) Serialize(values map[string]T) (any, bool) {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if n, ok := b.elem.Serialize(v); ok {
			out[k] = n
		}
	}
	return out, true
}

func (b mapBridge[T]) Deserialize(native any) (map[string]T, bool) {
	m, ok := native.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]T, len(m))
	for k, n := range m {
		if v, ok := b.elem.Deserialize(n); ok {
			out[k] = v
		}
	}
	return out, true
}

type optionalBridge[T any] struct {
	inner Bridge[T]
}

// Optional returns the bridge for *T. A nil pointer serializes to absent so
// the slot is removed; a non-nil pointer goes through inner. Deserialize
// applies inner to the stored value and returns a pointer to the result.
func Optional[T any](inner Bridge[T]) Bridge[*T] {
	return optionalBridge[T]{inner: inner}
}

func (b optionalBridge[T]) Serialize(p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return b.inner.Serialize(*p)
}

func (b optionalBridge[T]) Deserialize(native any) (*T, bool) {
	v, ok := b.inner.Deserialize(native)
	if !ok {
		return nil, false
	}
	return &v, true
}
