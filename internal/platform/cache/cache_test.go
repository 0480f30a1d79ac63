package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutAddrUsesMemory(t *testing.T) {
	c, err := New(context.Background(), Options{})
	require.NoError(t, err)
	_, ok := c.(*Memory)
	assert.True(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 11, 1, 8, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "report", []byte("[]"), time.Minute))
	value, ok, err := m.Get(ctx, "report")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(value))

	now = now.Add(time.Minute)
	_, ok, err = m.Get(ctx, "report")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySetNX(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	created, err := m.SetNX(ctx, "idem", []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = m.SetNX(ctx, "idem", []byte("b"), 0)
	require.NoError(t, err)
	assert.False(t, created)

	value, _, _ := m.Get(ctx, "idem")
	assert.Equal(t, "a", string(value))
}

func TestMemoryIncrAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	n, err := m.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = m.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, m.Delete(ctx, "gen"))
	_, ok, _ := m.Get(ctx, "gen")
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "text", []byte("abc"), 0))
	_, err = m.Incr(ctx, "text")
	assert.Error(t, err)
}
