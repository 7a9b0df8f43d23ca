package bridge

import "github.com/mesh-intelligence/shelf/pkg/codec"

type codableBridge[T any] struct {
	codec codec.Codec
}

// Codable returns the bridge for a structured record. The record is encoded
// to a binary blob with codec.JSON; an encode or decode failure is absent.
func Codable[T any]() Bridge[T] {
	return CodableWith[T](codec.JSON)
}

// CodableWith is Codable with an explicit codec.
func CodableWith[T any](c codec.Codec) Bridge[T] {
	return codableBridge[T]{codec: c}
}

func (b codableBridge[T]) Serialize(v T) (any, bool) {
	data, err := b.codec.Marshal(v)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (b codableBridge[T]) Deserialize(native any) (T, bool) {
	var v T
	data, ok := native.([]byte)
	if !ok {
		return v, false
	}
	if err := b.codec.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
