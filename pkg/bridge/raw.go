package bridge

import "time"

type rawBridge[T, R any] struct {
	raw     Bridge[R]
	toRaw   func(T) R
	fromRaw func(R) (T, bool)
}

// Raw returns a bridge for a shape that is isomorphic to a raw value R.
// Serialize stores toRaw(v) through raw; Deserialize reads R through raw and
// rebuilds the value with fromRaw, which reports false for raw values that
// name no value of T.
func Raw[T, R any](raw Bridge[R], toRaw func(T) R, fromRaw func(R) (T, bool)) Bridge[T] {
	return rawBridge[T, R]{raw: raw, toRaw: toRaw, fromRaw: fromRaw}
}

func (b rawBridge[T, R]) Serialize(v T) (any, bool) {
	return b.raw.Serialize(b.toRaw(v))
}

func (b rawBridge[T, R]) Deserialize(native any) (T, bool) {
	r, ok := b.raw.Deserialize(native)
	if !ok {
		var zero T
		return zero, false
	}
	return b.fromRaw(r)
}

// StringEnum returns the bridge for a string-backed enum. The value is stored
// as its underlying string. Reading a string outside cases is absent. With no
// cases every string is accepted.
func StringEnum[T ~string](cases ...T) Bridge[T] {
	valid := caseSet(cases)
	return Raw(String(),
		func(v T) string { return string(v) },
		func(s string) (T, bool) {
			v := T(s)
			return v, valid.has(v)
		},
	)
}

// Integer is the set of integer kinds an IntEnum may be backed by.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// IntEnum returns the bridge for an integer-backed enum, stored as int64.
// Reading an integer outside cases is absent. With no cases every integer
// that fits T is accepted.
func IntEnum[T Integer](cases ...T) Bridge[T] {
	valid := caseSet(cases)
	return Raw(Int64(),
		func(v T) int64 { return int64(v) },
		func(n int64) (T, bool) {
			v := T(n)
			if int64(v) != n {
				return v, false
			}
			return v, valid.has(v)
		},
	)
}

// Duration returns the bridge for time.Duration, stored as nanoseconds.
func Duration() Bridge[time.Duration] {
	return Raw(Int64(),
		func(d time.Duration) int64 { return int64(d) },
		func(n int64) (time.Duration, bool) { return time.Duration(n), true },
	)
}

type cases[T comparable] map[T]struct{}

func caseSet[T comparable](list []T) cases[T] {
	if len(list) == 0 {
		return nil
	}
	set := make(cases[T], len(list))
	for _, c := range list {
		set[c] = struct{}{}
	}
	return set
}

// has reports whether v is a known case. A nil set knows every value.
func (c cases[T]) has(v T) bool {
	if c == nil {
		return true
	}
	_, ok := c[v]
	return ok
}
