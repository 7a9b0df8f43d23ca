// JSON record structures for shelf dump files.
package sqlite

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// slotJSON represents one slot in a dump file. Value is the tagged encoding
// from internal/wire.
type slotJSON struct {
	Key   string              `json:"key"`
	Value jsoniter.RawMessage `json:"value"`
}
