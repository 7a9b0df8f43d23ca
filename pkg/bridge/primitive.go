package bridge

import (
	"math"
	"strconv"
)

type stringBridge struct{}

// String returns the bridge for string values.
func String() Bridge[string] { return stringBridge{} }

func (stringBridge) Serialize(v string) (any, bool) { return v, true }

func (stringBridge) Deserialize(native any) (string, bool) {
	s, ok := native.(string)
	return s, ok
}

type int64Bridge struct{}

// Int64 returns the bridge for int64 values.
func Int64() Bridge[int64] { return int64Bridge{} }

func (int64Bridge) Serialize(v int64) (any, bool) { return v, true }

func (int64Bridge) Deserialize(native any) (int64, bool) {
	return asInt64(native)
}

type intBridge struct{}

// Int returns the bridge for int values. Values are stored as int64; a
// stored value that does not fit the platform int is absent.
func Int() Bridge[int] { return intBridge{} }

func (intBridge) Serialize(v int) (any, bool) { return int64(v), true }

func (intBridge) Deserialize(native any) (int, bool) {
	n, ok := asInt64(native)
	if !ok {
		return 0, false
	}
	if strconv.IntSize == 32 && (n < math.MinInt32 || n > math.MaxInt32) {
		return 0, false
	}
	return int(n), true
}

type doubleBridge struct{}

// Double returns the bridge for float64 values.
func Double() Bridge[float64] { return doubleBridge{} }

func (doubleBridge) Serialize(v float64) (any, bool) { return v, true }

func (doubleBridge) Deserialize(native any) (float64, bool) {
	return asFloat64(native)
}

type floatBridge struct{}

// Float returns the bridge for float32 values. Values are stored as float64.
func Float() Bridge[float32] { return floatBridge{} }

func (floatBridge) Serialize(v float32) (any, bool) { return float64(v), true }

func (floatBridge) Deserialize(native any) (float32, bool) {
	f, ok := asFloat64(native)
	if !ok {
		return 0, false
	}
	return float32(f), true
}

type boolBridge struct{}

// Bool returns the bridge for bool values.
func Bool() Bridge[bool] { return boolBridge{} }

func (boolBridge) Serialize(v bool) (any, bool) { return v, true }

func (boolBridge) Deserialize(native any) (bool, bool) {
	b, ok := native.(bool)
	return b, ok
}

type dataBridge struct{}

// Data returns the bridge for binary blobs. A nil slice is absent.
func Data() Bridge[[]byte] { return dataBridge{} }

func (dataBridge) Serialize(v []byte) (any, bool) {
	if v == nil {
		return nil, false
	}
	return v, true
}

func (dataBridge) Deserialize(native any) ([]byte, bool) {
	b, ok := native.([]byte)
	return b, ok
}

// asInt64 accepts an int64, or a float64 holding an integral value that
// fits in an int64.
func asInt64(native any) (int64, bool) {
	switch v := native.(type) {
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

// asFloat64 accepts a float64 or an int64.
func asFloat64(native any) (float64, bool) {
	switch v := native.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
