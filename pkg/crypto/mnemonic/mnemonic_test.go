package mnemonic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

const abandonAbout = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewMnemonic(t *testing.T) {
	tests := []struct {
		name        string
		entropyBits int
		wantWords   int
		wantError   bool
	}{
		{"128 bits (12 words)", 128, 12, false},
		{"160 bits (15 words)", 160, 15, false},
		{"192 bits (18 words)", 192, 18, false},
		{"224 bits (21 words)", 224, 21, false},
		{"256 bits (24 words)", 256, 24, false},
		{"Invalid: 64 bits", 64, 0, true},
		{"Invalid: 512 bits", 512, 0, true},
		{"Invalid: 129 bits", 129, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMnemonic(tt.entropyBits)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, m)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantWords, m.WordCount())
				assert.True(t, bip39.IsMnemonicValid(m.Words()))
			}
		})
	}
}

func TestFromWords(t *testing.T) {
	m, err := FromWords(abandonAbout)
	require.NoError(t, err)
	assert.Equal(t, 12, m.WordCount())
	assert.Equal(t, abandonAbout, m.Words())

	spaced, err := FromWords("  " + strings.ReplaceAll(abandonAbout, " ", "  ") + "\n")
	require.NoError(t, err)
	assert.Equal(t, abandonAbout, spaced.Words())

	_, err = FromWords("invalid invalid invalid invalid invalid invalid invalid invalid invalid invalid invalid invalid")
	assert.Error(t, err)
}

func TestFromEntropy(t *testing.T) {
	tests := []struct {
		name      string
		entropy   []byte
		wantError bool
	}{
		{"16 bytes", make([]byte, 16), false},
		{"20 bytes", make([]byte, 20), false},
		{"32 bytes", make([]byte, 32), false},
		{"Invalid: 15 bytes", make([]byte, 15), true},
		{"Invalid: 33 bytes", make([]byte, 33), true},
		{"Invalid: 18 bytes", make([]byte, 18), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromEntropy(tt.entropy)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)

			recovered, err := m.Entropy()
			require.NoError(t, err)
			assert.Equal(t, tt.entropy, recovered)
		})
	}

	m, err := FromEntropy(make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, abandonAbout, m.Words())
}

func TestSeed(t *testing.T) {
	m, err := FromWords(abandonAbout)
	require.NoError(t, err)

	assert.Equal(t, bip39.NewSeed(abandonAbout, ""), m.Seed(""))
	assert.Equal(t, bip39.NewSeed(abandonAbout, "TREZOR"), m.Seed("TREZOR"))
	assert.Len(t, m.Seed("x"), 64)
	assert.NotEqual(t, m.Seed("a"), m.Seed("b"))
}

func TestValidateWordCount(t *testing.T) {
	tests := []struct {
		count int
		valid bool
	}{
		{12, true},
		{15, true},
		{18, true},
		{21, true},
		{24, true},
		{11, false},
		{13, false},
		{25, false},
		{0, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.count), func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateWordCount(tt.count))
		})
	}
}

func TestEntropyBitsFromWordCount(t *testing.T) {
	tests := []struct {
		wordCount int
		wantBits  int
		wantError bool
	}{
		{12, 128, false},
		{15, 160, false},
		{18, 192, false},
		{21, 224, false},
		{24, 256, false},
		{13, 0, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.wordCount), func(t *testing.T) {
			bits, err := EntropyBitsFromWordCount(tt.wordCount)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantBits, bits)
			}
		})
	}
}

func TestWordListImmutability(t *testing.T) {
	m, err := NewMnemonic(128)
	require.NoError(t, err)

	words := m.WordList()
	originalWords := make([]string, len(words))
	copy(originalWords, words)

	words[0] = "modified"

	assert.Equal(t, originalWords, m.WordList())
	assert.Equal(t, strings.Join(originalWords, " "), m.Words())
}

func BenchmarkSeedGeneration(b *testing.B) {
	m, err := NewMnemonic(256)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Seed("passphrase")
	}
}
