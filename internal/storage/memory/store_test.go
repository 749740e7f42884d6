package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Init())

	_, found, err := s.Get(ctx, "cigars")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "cigars", "[]"))
	require.NoError(t, s.Set(ctx, "premium_mode", "true"))

	v, found, err := s.Get(ctx, "premium_mode")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", v)

	require.NoError(t, s.MultiRemove(ctx, "cigars", "premium_mode", "never_written"))
	assert.Equal(t, 0, s.Len())
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Close())

	_, _, err := s.Get(ctx, "cigars")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set(ctx, "cigars", "[]"), ErrClosed)
	assert.ErrorIs(t, s.MultiRemove(ctx, "cigars"), ErrClosed)

	require.NoError(t, s.Load())
	assert.NoError(t, s.Set(ctx, "cigars", "[]"))
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	assert.ErrorIs(t, s.Set(ctx, "cigars", "[]"), context.Canceled)
	assert.Equal(t, 0, s.Len())
}
