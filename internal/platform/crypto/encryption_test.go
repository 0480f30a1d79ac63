package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestSealOpen(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)
	require.True(t, c.Configured())

	sealed, err := c.Seal("079123456789")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, sealedPrefix))
	assert.NotContains(t, sealed, "079123456789")

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "079123456789", plain)
}

func TestUnconfiguredPassesThrough(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.False(t, c.Configured())

	sealed, err := c.Seal("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", sealed)

	_, err = c.Open(sealedPrefix + "AAAA")
	assert.Error(t, err)
}

func TestOpenLegacyPlaintext(t *testing.T) {
	c, err := New(testKey)
	require.NoError(t, err)

	plain, err := c.Open("legacy-value")
	require.NoError(t, err)
	assert.Equal(t, "legacy-value", plain)
}

func TestRejectsShortKey(t *testing.T) {
	_, err := New("short")
	assert.Error(t, err)
}
