package estimator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type failing struct{}

func (failing) Estimate(any) (int64, error) { return 0, errors.New("boom") }

// TestJSON_Estimate measures bytes, strings and structured values.
func TestJSON_Estimate(t *testing.T) {
	var e JSON

	size, err := e.Estimate([]byte("abcd"))
	require.NoError(t, err)
	require.Equal(t, int64(4), size)

	size, err = e.Estimate("hello")
	require.NoError(t, err)
	require.Equal(t, int64(5), size)

	size, err = e.Estimate(map[string]int{"a": 1})
	require.NoError(t, err)
	require.Equal(t, int64(len(`{"a":1}`)), size)

	size, err = e.Estimate(nil)
	require.NoError(t, err)
	require.Zero(t, size)
}

// TestJSON_Estimate_Unsizable fails on values JSON cannot encode.
func TestJSON_Estimate_Unsizable(t *testing.T) {
	_, err := JSON{}.Estimate(make(chan int))
	require.ErrorIs(t, err, ErrUnsizable)
}

// TestWithFallback_Size falls back to the fixed estimate on failure.
func TestWithFallback_Size(t *testing.T) {
	w := NewWithFallback(failing{}, 0)

	size, fallback := w.Size("anything")
	require.True(t, fallback)
	require.Equal(t, DefaultFallbackBytes, size)

	w = NewWithFallback(nil, 64)
	size, fallback = w.Size(func() {})
	require.True(t, fallback)
	require.Equal(t, int64(64), size)

	size, fallback = w.Size("abc")
	require.False(t, fallback)
	require.Equal(t, int64(3), size)
}

type sized int64

func (s sized) SizeBytes() int64 { return int64(s) }

// TestJSON_Estimate_Sizer trusts values that report their own size.
func TestJSON_Estimate_Sizer(t *testing.T) {
	size, err := JSON{}.Estimate(sized(42))
	require.NoError(t, err)
	require.Equal(t, int64(42), size)
}
