package types

import (
	"fmt"
	"math"
	"time"
)

// Kind identifies one member of the closed set of native value shapes a
// store accepts.
type Kind int

// Native value kinds. The Go representation of each kind is fixed:
//
//	KindString  string
//	KindInt     int64
//	KindFloat   float64
//	KindBool    bool
//	KindData    []byte
//	KindObject  time.Time
//	KindArray   []any of native values
//	KindMap     map[string]any of native values
const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindData
	KindObject
	KindArray
	KindMap
)

var kindNames = map[Kind]string{
	KindString: "string",
	KindInt:    "int",
	KindFloat:  "float",
	KindBool:   "bool",
	KindData:   "data",
	KindObject: "object",
	KindArray:  "array",
	KindMap:    "map",
}

// String returns the lowercase kind name used in persisted records.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// ParseKind returns the Kind for a name produced by Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// KindOf reports the kind of an already normalized native value.
func KindOf(v any) (Kind, bool) {
	switch v.(type) {
	case string:
		return KindString, true
	case int64:
		return KindInt, true
	case float64:
		return KindFloat, true
	case bool:
		return KindBool, true
	case []byte:
		return KindData, true
	case time.Time:
		return KindObject, true
	case []any:
		return KindArray, true
	case map[string]any:
		return KindMap, true
	default:
		return KindInvalid, false
	}
}

// Normalize converts v into its canonical native representation. Go integer
// types widen to int64 and float32 widens to float64. Byte slices, arrays and
// maps are deep-copied so the result shares no memory with v.
// Returns ErrUnsupportedValue for nil, for nested nils and for any value
// outside the native set.
func Normalize(v any) (any, error) {
	switch x := v.(type) {
	case string, bool, int64, float64:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return normalizeUint(x)
	case float32:
		return float64(x), nil
	case []byte:
		if x == nil {
			return []byte{}, nil
		}
		out := make([]byte, len(x))
		copy(out, x)
		return out, nil
	case time.Time:
		return x, nil
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			n, err := Normalize(elem)
			if err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			n, err := Normalize(elem)
			if err != nil {
				return nil, fmt.Errorf("map entry %q: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedValue)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func normalizeUint(x uint64) (any, error) {
	if x > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedValue, x)
	}
	return int64(x), nil
}
