// Package codec provides the structured encoders the record bridge uses to
// turn a typed value into a binary blob and back.
package codec

import (
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// Codec encodes and decodes structured values.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for diagnostics.
	Name() string
}

// JSON is the default record codec. It follows encoding/json semantics
// (struct tags, Marshaler interfaces) through json-iterator.
var JSON Codec = jsonCodec{api: jsoniter.ConfigCompatibleWithStandardLibrary}

// YAML encodes records as YAML documents.
var YAML Codec = yamlCodec{}

type jsonCodec struct {
	api jsoniter.API
}

func (c jsonCodec) Marshal(v any) ([]byte, error)      { return c.api.Marshal(v) }
func (c jsonCodec) Unmarshal(data []byte, v any) error { return c.api.Unmarshal(data, v) }
func (jsonCodec) Name() string                         { return "json" }

type yamlCodec struct{}

func (yamlCodec) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (yamlCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }
func (yamlCodec) Name() string                       { return "yaml" }
