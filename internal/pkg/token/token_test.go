package token

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_URLSafe256Bits(t *testing.T) {
	tok, err := Generate()
	require.NoError(t, err)
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100000)
	for i := 0; i < 100000; i++ {
		tok, err := Generate()
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token after %d draws", i)
		seen[tok] = struct{}{}
	}
}

func TestHash_Deterministic(t *testing.T) {
	tok, err := Generate()
	require.NoError(t, err)
	assert.Equal(t, Hash(tok), Hash(tok))
	assert.Len(t, Hash(tok), 64)
	assert.NotEqual(t, Hash(tok), Hash(tok+"x"))
}

func TestHex_Length(t *testing.T) {
	s, err := Hex(6)
	require.NoError(t, err)
	assert.Len(t, s, 12)
	assert.Regexp(t, "^[0-9a-f]{12}$", s)
}
