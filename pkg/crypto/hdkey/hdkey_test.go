package hdkey

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BIP-32 test vector 1
const vector1Seed = "000102030405060708090a0b0c0d0e0f"

func masterFromVector(t *testing.T) *HDKey {
	seed, err := hex.DecodeString(vector1Seed)
	require.NoError(t, err)

	masterKey, err := NewMasterKey(seed)
	require.NoError(t, err)
	return masterKey
}

func TestNewMasterKey(t *testing.T) {
	masterKey := masterFromVector(t)
	assert.Equal(t, "m", masterKey.Path())
	assert.True(t, masterKey.IsPrivate())
	assert.Equal(t,
		"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		masterKey.ExtendedPrivateKey())

	_, err := NewMasterKey([]byte("too short"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "seed must be at least 16 bytes")
}

func TestDerivePathVector(t *testing.T) {
	child, err := masterFromVector(t).DerivePath("m/0'")
	require.NoError(t, err)
	assert.Equal(t, "m/0'", child.Path())
	assert.Equal(t,
		"xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
		child.ExtendedPrivateKey())
}

func TestDerivePath(t *testing.T) {
	masterKey := masterFromVector(t)

	tests := []struct {
		name      string
		path      string
		wantPath  string
		wantError bool
	}{
		{name: "Master", path: "m", wantPath: "m"},
		{name: "Hardened", path: "m/0'/1'", wantPath: "m/0'/1'"},
		{name: "h suffix", path: "m/0h/1h", wantPath: "m/0h/1h"},
		{name: "Mixed", path: "m/3'/7", wantPath: "m/3'/7"},
		{name: "Upper M", path: "M/2'", wantPath: "m/2'"},
		{name: "Invalid path - no m/", path: "44'/0'", wantError: true},
		{name: "Invalid path - invalid segment", path: "m/44'/abc", wantError: true},
		{name: "Invalid path - index too large", path: "m/2147483648", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived, err := masterKey.DerivePath(tt.path)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, derived)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, derived.Path())
			assert.Len(t, derived.Seed(), 32)
		})
	}
}

func TestHardenedSuffixesAgree(t *testing.T) {
	masterKey := masterFromVector(t)

	a, err := masterKey.DerivePath("m/5'")
	require.NoError(t, err)
	b, err := masterKey.DerivePath("m/5h")
	require.NoError(t, err)
	c, err := masterKey.DeriveChild(5, true)
	require.NoError(t, err)

	assert.Equal(t, a.Seed(), b.Seed())
	assert.Equal(t, a.Seed(), c.Seed())
	assert.Equal(t, "m/5'", c.Path())
}

func TestChildrenDiffer(t *testing.T) {
	masterKey := masterFromVector(t)

	a, err := masterKey.DeriveChild(0, true)
	require.NoError(t, err)
	b, err := masterKey.DeriveChild(1, true)
	require.NoError(t, err)

	assert.NotEqual(t, a.Seed(), b.Seed())
	assert.NotEqual(t, a.Fingerprint(), "")
}

func TestSeedIsCopy(t *testing.T) {
	masterKey := masterFromVector(t)

	seed := masterKey.Seed()
	seed[0] ^= 0xFF
	assert.NotEqual(t, seed, masterKey.Seed())
}
