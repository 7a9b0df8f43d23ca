// Package wire encodes native store values as tagged JSON so durable
// backends can persist them without losing their Go kind. Every value is a
// {"t": kind, "v": payload} object; arrays and maps nest tagged values.
//
//	string  "v": "text"
//	int     "v": 42
//	float   "v": 1.5, or "NaN", "+Inf", "-Inf"
//	bool    "v": true
//	data    "v": base64 string
//	object  "v": RFC 3339 timestamp with nanoseconds
//	array   "v": [tagged, ...]
//	map     "v": {"key": tagged, ...}
package wire

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformed is returned when a record cannot be decoded.
var ErrMalformed = errors.New("malformed tagged value")

type tagged struct {
	T string              `json:"t"`
	V jsoniter.RawMessage `json:"v"`
}

// Encode normalizes v and returns its tagged JSON encoding together with its
// kind.
func Encode(v any) ([]byte, types.Kind, error) {
	n, err := types.Normalize(v)
	if err != nil {
		return nil, types.KindInvalid, err
	}
	tree, kind, err := toTree(n)
	if err != nil {
		return nil, types.KindInvalid, err
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, types.KindInvalid, fmt.Errorf("marshaling %s value: %w", kind, err)
	}
	return data, kind, nil
}

// Decode parses a tagged JSON encoding back into a native value.
func Decode(data []byte) (any, error) {
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromTagged(t)
}

// toTree builds the JSON-ready tagged form of a normalized value.
func toTree(v any) (map[string]any, types.Kind, error) {
	kind, ok := types.KindOf(v)
	if !ok {
		return nil, types.KindInvalid, fmt.Errorf("%w: %T", types.ErrUnsupportedValue, v)
	}
	var payload any
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			payload = strconv.FormatFloat(x, 'g', -1, 64)
		} else {
			payload = x
		}
	case time.Time:
		payload = x.Format(time.RFC3339Nano)
	case []any:
		items := make([]any, len(x))
		for i, elem := range x {
			tree, _, err := toTree(elem)
			if err != nil {
				return nil, types.KindInvalid, err
			}
			items[i] = tree
		}
		payload = items
	case map[string]any:
		entries := make(map[string]any, len(x))
		for k, elem := range x {
			tree, _, err := toTree(elem)
			if err != nil {
				return nil, types.KindInvalid, err
			}
			entries[k] = tree
		}
		payload = entries
	default:
		payload = x
	}
	return map[string]any{"t": kind.String(), "v": payload}, kind, nil
}

func fromTagged(t tagged) (any, error) {
	kind, ok := types.ParseKind(t.T)
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformed, t.T)
	}
	switch kind {
	case types.KindString:
		var s string
		if err := unmarshalPayload(t, &s); err != nil {
			return nil, err
		}
		return s, nil
	case types.KindInt:
		var n int64
		if err := unmarshalPayload(t, &n); err != nil {
			return nil, err
		}
		return n, nil
	case types.KindFloat:
		return decodeFloat(t)
	case types.KindBool:
		var b bool
		if err := unmarshalPayload(t, &b); err != nil {
			return nil, err
		}
		return b, nil
	case types.KindData:
		var b []byte
		if err := unmarshalPayload(t, &b); err != nil {
			return nil, err
		}
		if b == nil {
			b = []byte{}
		}
		return b, nil
	case types.KindObject:
		var s string
		if err := unmarshalPayload(t, &s); err != nil {
			return nil, err
		}
		when, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return when, nil
	case types.KindArray:
		var items []tagged
		if err := unmarshalPayload(t, &items); err != nil {
			return nil, err
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := fromTagged(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default: // types.KindMap
		var entries map[string]tagged
		if err := unmarshalPayload(t, &entries); err != nil {
			return nil, err
		}
		out := make(map[string]any, len(entries))
		for k, entry := range entries {
			v, err := fromTagged(entry)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
}

func decodeFloat(t tagged) (any, error) {
	var f float64
	if err := json.Unmarshal(t.V, &f); err == nil {
		return f, nil
	}
	var s string
	if err := unmarshalPayload(t, &s); err != nil {
		return nil, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return f, nil
}

func unmarshalPayload(t tagged, dst any) error {
	if err := json.Unmarshal(t.V, dst); err != nil {
		return fmt.Errorf("%w: %s payload: %v", ErrMalformed, t.T, err)
	}
	return nil
}
