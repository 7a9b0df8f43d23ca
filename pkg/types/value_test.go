package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	when := time.Date(2020, 3, 11, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"string", "abc", "abc"},
		{"int widens", 7, int64(7)},
		{"int32 widens", int32(-3), int64(-3)},
		{"uint16 widens", uint16(9), int64(9)},
		{"float32 widens", float32(1.5), float64(1.5)},
		{"bool", true, true},
		{"nil bytes become empty", []byte(nil), []byte{}},
		{"time is an object", when, when},
		{"nested array", []any{1, "a", []any{true}}, []any{int64(1), "a", []any{true}}},
		{"nested map", map[string]any{"n": int8(2), "m": map[string]any{}}, map[string]any{"n": int64(2), "m": map[string]any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"struct", struct{ A int }{1}},
		{"typed slice", []string{"a"}},
		{"nested nil", []any{"a", nil}},
		{"nested struct in map", map[string]any{"x": struct{}{}}},
		{"uint64 overflow", uint64(math.MaxUint64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in)
			assert.ErrorIs(t, err, ErrUnsupportedValue)
		})
	}
}

func TestNormalizeCopiesBytes(t *testing.T) {
	src := []byte{1, 2, 3}
	got, err := Normalize(src)
	require.NoError(t, err)

	src[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		in   any
		want Kind
	}{
		{"s", KindString},
		{int64(1), KindInt},
		{1.5, KindFloat},
		{false, KindBool},
		{[]byte{}, KindData},
		{time.Time{}, KindObject},
		{[]any{}, KindArray},
		{map[string]any{}, KindMap},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, ok := KindOf(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := KindOf(1)
	assert.False(t, ok, "plain int is not normalized")
}

func TestParseKind(t *testing.T) {
	for k := KindString; k <= KindMap; k++ {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("invalid")
	assert.False(t, ok)
}
