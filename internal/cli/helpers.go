// Shared helpers for shelf CLI commands.
package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mesh-intelligence/shelf/internal/backends"
	"github.com/mesh-intelligence/shelf/pkg/bridge"
	"github.com/mesh-intelligence/shelf/pkg/codec"
	"github.com/mesh-intelligence/shelf/pkg/shelf"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// slotName names a slot typed on the command line.
type slotName string

func (n slotName) Name() string { return string(n) }

// rawKey returns a key that passes native values through unchanged.
func rawKey(name string) shelf.Key[any] {
	return shelf.NewKey(name, bridge.Object[any]())
}

// attachBackend resolves the backend configuration, opens the backend and
// wraps it in a Shelf. The caller must defer backend.Detach().
func (a *app) attachBackend() (types.Backend, *shelf.Shelf, error) {
	cfg, err := a.backendConfig()
	if err != nil {
		return nil, nil, userError(err)
	}

	backend, err := backends.Open(cfg, a.logger)
	if err != nil {
		return nil, nil, classify(err)
	}

	prefs, err := shelf.New(backend, shelf.WithLogger(a.logger))
	if err != nil {
		backend.Detach()
		return nil, nil, sysError(err)
	}
	return backend, prefs, nil
}

// kindJSON selects free-form JSON input on the set command.
const kindJSON = "json"

// jsonNumbers decodes JSON numbers as json.Number so integers keep the int
// kind.
var jsonNumbers = jsoniter.Config{UseNumber: true}.Froze()

// parseValue converts command-line text into a native value of the named
// kind. The name is a types.Kind name or "json".
func parseValue(kindName, text string) (any, error) {
	if kindName == kindJSON {
		return parseJSON(text)
	}
	kind, ok := types.ParseKind(kindName)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kindName)
	}

	switch kind {
	case types.KindString:
		return text, nil
	case types.KindInt:
		return strconv.ParseInt(text, 10, 64)
	case types.KindFloat:
		return strconv.ParseFloat(text, 64)
	case types.KindBool:
		return strconv.ParseBool(text)
	case types.KindData:
		return base64.StdEncoding.DecodeString(text)
	case types.KindObject:
		return time.Parse(time.RFC3339Nano, text)
	default:
		v, err := parseJSON(text)
		if err != nil {
			return nil, err
		}
		if got, _ := types.KindOf(v); got != kind {
			return nil, fmt.Errorf("expected a JSON %s, got %s", kind, got)
		}
		return v, nil
	}
}

// parseJSON decodes text as JSON into native values. Integral numbers become
// int64 and the rest float64.
func parseJSON(text string) (any, error) {
	var v any
	if err := jsonNumbers.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("parse json: null is not a value")
	}
	return fromJSON(v)
}

func fromJSON(v any) (any, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		return x.Float64()
	case []any:
		out := make([]any, 0, len(x))
		for _, elem := range x {
			if elem == nil {
				continue
			}
			n, err := fromJSON(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			if elem == nil {
				continue
			}
			n, err := fromJSON(elem)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return x, nil
	}
}

// printValue writes a native value to w. In JSON mode the value is encoded
// as JSON; otherwise scalars print bare and composites print as JSON.
func printValue(w io.Writer, v any, jsonMode bool) error {
	if !jsonMode {
		switch x := v.(type) {
		case string:
			_, err := fmt.Fprintln(w, x)
			return err
		case []byte:
			_, err := fmt.Fprintln(w, base64.StdEncoding.EncodeToString(x))
			return err
		case time.Time:
			_, err := fmt.Fprintln(w, x.Format(time.RFC3339Nano))
			return err
		case int64, float64, bool:
			_, err := fmt.Fprintln(w, x)
			return err
		}
	}
	data, err := codec.JSON.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal value: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
