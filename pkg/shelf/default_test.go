package shelf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/bridge"
	"github.com/mesh-intelligence/shelf/pkg/shelf"
)

func TestDefaultFallback(t *testing.T) {
	s, _ := newShelf(t)
	count := shelf.Bind(s, followerCount, 0)

	assert.Equal(t, 0, count.Get())

	require.NoError(t, count.Set(5))
	assert.Equal(t, 5, count.Get())

	require.NoError(t, count.Reset())
	assert.Equal(t, 0, count.Get())
}

func TestDefaultEnumFallback(t *testing.T) {
	s, store := newShelf(t)
	g := shelf.Bind(s, gender, GenderUnknown)

	require.NoError(t, store.Set("gender", "invalid"))
	assert.Equal(t, GenderUnknown, g.Get())

	require.NoError(t, g.Set(GenderFemale))
	assert.Equal(t, GenderFemale, g.Get())
}

func TestDefaultOptional(t *testing.T) {
	s, _ := newShelf(t)
	user := shelf.Bind(s, currentUser, nil)
	assert.Nil(t, user.Get())

	zhsan := User{Name: "Zhsan", Age: 12, Gender: GenderMale}
	require.NoError(t, user.Set(&zhsan))
	require.NotNil(t, user.Get())
	assert.Equal(t, zhsan, *user.Get())

	require.NoError(t, user.Set(nil))
	assert.Nil(t, user.Get())
}

func TestDefaultSharesSlotWithKey(t *testing.T) {
	s, _ := newShelf(t)
	launch := shelf.Bind(s, isFirstLaunch, true)
	require.NoError(t, shelf.Set(s, isFirstLaunch, false))

	assert.False(t, launch.Get(), "no caching between reads")
	assert.Equal(t, "isFirstLaunch", launch.Key().Name())
	assert.True(t, launch.Fallback())
}

func TestDefaultAppend(t *testing.T) {
	s, _ := newShelf(t)
	list := shelf.Bind(s, followers, []User{})
	count := shelf.Bind(s, followerCount, 0)
	names := shelf.Bind(s, shelf.NewKey("names", bridge.Slice(bridge.String())), nil)

	zhsan := User{Name: "Zhsan", Age: 12, Gender: GenderMale}
	for i := 0; i < 3; i++ {
		require.NoError(t, list.Set(append(list.Get(), zhsan)))
		require.NoError(t, count.Set(count.Get()+1))
		require.NoError(t, names.Set(append(names.Get(), zhsan.Name)))
	}

	assert.Len(t, list.Get(), 3)
	assert.Equal(t, 3, count.Get())
	assert.Equal(t, []string{"Zhsan", "Zhsan", "Zhsan"}, names.Get())
}
