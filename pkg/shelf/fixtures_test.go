package shelf_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/memory"
	"github.com/mesh-intelligence/shelf/pkg/bridge"
	"github.com/mesh-intelligence/shelf/pkg/shelf"
)

type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

func (Gender) ShelfBridge() bridge.Bridge[Gender] {
	return bridge.StringEnum(GenderUnknown, GenderMale, GenderFemale)
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := bridge.For[Gender]().Deserialize(s)
	if !ok {
		v = GenderUnknown
	}
	*g = v
	return nil
}

type User struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

func (User) ShelfBridge() bridge.Bridge[User] {
	return bridge.Codable[User]()
}

func newShelf(t *testing.T) (*shelf.Shelf, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	s, err := shelf.New(store)
	require.NoError(t, err)
	return s, store
}

// failingStore fails every operation.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(string) (any, bool, error) { return nil, false, errStoreDown }
func (failingStore) Set(string, any) error         { return errStoreDown }
func (failingStore) Remove(string) error           { return errStoreDown }
func (failingStore) Keys() ([]string, error)       { return nil, errStoreDown }

// recordingLogger keeps every message it receives.
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) record(level, msg string) {
	l.messages = append(l.messages, fmt.Sprintf("%s: %s", level, msg))
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record("error", msg) }

func newStoreWith(t *testing.T, key string, native any) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Set(key, native))
	return store
}
