package shelf_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/bridge"
	"github.com/mesh-intelligence/shelf/pkg/shelf"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

var (
	isFirstLaunch   = shelf.NewKey("isFirstLaunch", bridge.Bool())
	firstLaunchDate = shelf.NewKey("firstLaunchDate", bridge.Time())
	currentUser     = shelf.NewKey("currentUser", bridge.OptionalOf[User]())
	followerCount   = shelf.NewKey("followerCount", bridge.Int())
	followers       = shelf.NewKey("followers", bridge.SliceOf[User]())
	userFollows     = shelf.NewKey("userFollows", bridge.MapOf[User]())
	gender          = shelf.KeyFor[Gender]("gender")
)

func TestNewRejectsNilStore(t *testing.T) {
	_, err := shelf.New(nil)
	assert.ErrorIs(t, err, types.ErrNilStore)
}

func TestGetMissingIsAbsent(t *testing.T) {
	s, _ := newShelf(t)
	v, ok := shelf.Get(s, followerCount)
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestSetGetRoundTrip(t *testing.T) {
	s, store := newShelf(t)
	zhsan := User{Name: "Zhsan", Age: 12, Gender: GenderMale}
	when := time.Date(2020, 4, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, shelf.Set(s, isFirstLaunch, false))
	require.NoError(t, shelf.Set(s, firstLaunchDate, when))
	require.NoError(t, shelf.Set(s, currentUser, &zhsan))
	require.NoError(t, shelf.Set(s, followerCount, 1))
	require.NoError(t, shelf.Set(s, followers, []User{zhsan}))
	require.NoError(t, shelf.Set(s, userFollows, map[string]User{zhsan.Name: zhsan}))

	first, ok := shelf.Get(s, isFirstLaunch)
	require.True(t, ok)
	assert.False(t, first)

	date, ok := shelf.Get(s, firstLaunchDate)
	require.True(t, ok)
	assert.True(t, when.Equal(date))

	user, ok := shelf.Get(s, currentUser)
	require.True(t, ok)
	assert.Equal(t, zhsan, *user)

	count, ok := shelf.Get(s, followerCount)
	require.True(t, ok)
	assert.Equal(t, 1, count)

	list, ok := shelf.Get(s, followers)
	require.True(t, ok)
	assert.Equal(t, []User{zhsan}, list)

	follows, ok := shelf.Get(s, userFollows)
	require.True(t, ok)
	assert.Equal(t, map[string]User{"Zhsan": zhsan}, follows)

	raw, _, err := store.Get("followerCount")
	require.NoError(t, err)
	assert.Equal(t, int64(1), raw, "the store only ever sees native values")
}

func TestSetNilOptionalRemovesSlot(t *testing.T) {
	s, store := newShelf(t)
	zhsan := User{Name: "Zhsan"}
	require.NoError(t, shelf.Set(s, currentUser, &zhsan))
	require.True(t, s.Contains(currentUser))

	require.NoError(t, shelf.Set(s, currentUser, nil))
	assert.False(t, s.Contains(currentUser))

	_, found, err := store.Get(currentUser.Name())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetWrongKindIsAbsent(t *testing.T) {
	s, store := newShelf(t)
	require.NoError(t, store.Set("followerCount", "lots"))

	_, ok := shelf.Get(s, followerCount)
	assert.False(t, ok)
	assert.Equal(t, 7, shelf.Value(s, followerCount, 7))
}

func TestEnumKey(t *testing.T) {
	s, store := newShelf(t)
	require.NoError(t, shelf.Set(s, gender, GenderMale))

	raw, _, err := store.Get("gender")
	require.NoError(t, err)
	assert.Equal(t, "male", raw)

	require.NoError(t, store.Set("gender", "invalid"))
	_, ok := shelf.Get(s, gender)
	assert.False(t, ok)
	assert.Equal(t, GenderUnknown, shelf.Value(s, gender, GenderUnknown))
}

func TestArrayDropPolicy(t *testing.T) {
	s, store := newShelf(t)
	names := shelf.NewKey("names", bridge.Slice(bridge.String()))
	require.NoError(t, store.Set("names", []any{"a", int64(2), "c"}))

	got, ok := shelf.Get(s, names)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestMapDropPolicy(t *testing.T) {
	s, store := newShelf(t)
	scores := shelf.NewKey("scores", bridge.Map(bridge.Double()))
	require.NoError(t, store.Set("scores", map[string]any{"a": 1.5, "b": true, "c": int64(2)}))

	got, ok := shelf.Get(s, scores)
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"a": 1.5, "c": 2}, got)
}

func TestKeysAliasByName(t *testing.T) {
	s, _ := newShelf(t)
	asInt := shelf.NewKey("shared", bridge.Int())
	asString := shelf.NewKey("shared", bridge.String())

	require.NoError(t, shelf.Set(s, asInt, 3))
	require.NoError(t, shelf.Set(s, asString, "three"))

	_, ok := shelf.Get(s, asInt)
	assert.False(t, ok, "last write wins, and it is a string")
	v, ok := shelf.Get(s, asString)
	require.True(t, ok)
	assert.Equal(t, "three", v)
}

func TestRemove(t *testing.T) {
	s, _ := newShelf(t)
	require.NoError(t, shelf.Set(s, followerCount, 5))
	require.NoError(t, s.Remove(followerCount))

	_, ok := shelf.Get(s, followerCount)
	assert.False(t, ok)
	assert.NoError(t, s.Remove(followerCount), "removing a missing slot succeeds")
}

func TestClear(t *testing.T) {
	s, _ := newShelf(t)
	require.NoError(t, shelf.Set(s, followerCount, 5))
	require.NoError(t, shelf.Set(s, isFirstLaunch, false))
	require.NoError(t, shelf.Set(s, gender, GenderFemale))

	require.NoError(t, s.Clear())

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Equal(t, 0, shelf.Value(s, followerCount, 0))
	assert.True(t, shelf.Value(s, isFirstLaunch, true))
	assert.Equal(t, GenderUnknown, shelf.Value(s, gender, GenderUnknown))
}

func TestStoreFailures(t *testing.T) {
	logger := &recordingLogger{}
	s, err := shelf.New(failingStore{}, shelf.WithLogger(logger))
	require.NoError(t, err)

	_, ok := shelf.Get(s, followerCount)
	assert.False(t, ok, "read failures are absent")
	assert.False(t, s.Contains(followerCount))
	assert.Contains(t, logger.messages, "warn: store read failed, treating slot as absent")

	assert.ErrorIs(t, shelf.Set(s, followerCount, 1), errStoreDown)
	assert.ErrorIs(t, s.Remove(followerCount), errStoreDown)
	assert.ErrorIs(t, s.Clear(), errStoreDown)
}

func TestSetUnsupportedObjectReturnsError(t *testing.T) {
	s, _ := newShelf(t)
	type opaque struct{ N int }
	key := shelf.NewKey("opaque", bridge.Object[opaque]())

	err := shelf.Set(s, key, opaque{N: 1})
	assert.ErrorIs(t, err, types.ErrUnsupportedValue)
}

func TestRejectedValueIsLogged(t *testing.T) {
	logger := &recordingLogger{}
	store := newStoreWith(t, "followerCount", "nope")
	s, err := shelf.New(store, shelf.WithLogger(logger))
	require.NoError(t, err)

	_, ok := shelf.Get(s, followerCount)
	assert.False(t, ok)
	assert.Equal(t, []string{"debug: stored value rejected by bridge, treating slot as absent"}, logger.messages)
}

func TestWithSlogLogger(t *testing.T) {
	s, err := shelf.New(newStoreWith(t, "k", int64(1)), shelf.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	require.NoError(t, s.Clear())
}
