// Package prng expands short seeds into arbitrarily long deterministic byte
// streams with SHAKE256.
package prng

import (
	"golang.org/x/crypto/sha3"
)

// Reader is a SHAKE256 output stream. It never returns an error.
type Reader struct {
	h sha3.ShakeHash
}

// New returns a Reader over domain || 0x00 || seed. Distinct domains give
// independent streams from the same seed.
func New(seed []byte, domain string) *Reader {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(domain))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(seed)
	return &Reader{h: h}
}

func (r *Reader) Read(p []byte) (int, error) {
	return r.h.Read(p)
}
