package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("a fixed seed replays the same draws", func(t *testing.T) {
		a, err := New(42)
		require.NoError(t, err)
		b, err := New(42)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			assert.Equal(t, a.Intn(1000), b.Intn(1000))
		}
	})

	t.Run("a zero seed draws a fresh one", func(t *testing.T) {
		r, err := New(0)
		require.NoError(t, err)

		n := r.Intn(10)
		assert.True(t, n >= 0 && n < 10)
	})
}

func TestNewSeed(t *testing.T) {
	_, err := NewSeed()
	assert.NoError(t, err)
}
