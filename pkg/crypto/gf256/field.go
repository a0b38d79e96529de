// Package gf256 provides constant-time arithmetic over GF(2^8) and the vector
// primitives the matrix routines in package blas are written against.
//
// Elements are bytes, reduced modulo the Rijndael polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B), the same field used by AES and by
// HashiCorp Vault's Shamir implementation.
package gf256

const (
	// Rijndael polynomial: x^8 + x^4 + x^3 + x + 1
	rijndaelPoly = 0x11B

	// reduction term applied when the high bit is shifted out
	reduce = byte(rijndaelPoly & 0xFF)
)

// Mul multiplies a and b in GF(256).
//
// The loop always runs eight rounds and selects with masks instead of
// branches, so the running time does not depend on either operand.
func Mul(a, b byte) byte {
	var r byte
	for i := 7; i >= 0; i-- {
		r = (-(b >> uint(i) & 1) & a) ^ (-(r >> 7) & reduce) ^ (r + r)
	}
	return r
}

// Inv returns the multiplicative inverse of a, computed as a^254.
// Inv(0) is 0.
func Inv(a byte) byte {
	a2 := Mul(a, a)
	a4 := Mul(a2, a2)
	a8 := Mul(a4, a4)
	a16 := Mul(a8, a8)
	a32 := Mul(a16, a16)
	a64 := Mul(a32, a32)
	a128 := Mul(a64, a64)

	r := Mul(a2, a4)
	r = Mul(r, a8)
	r = Mul(r, a16)
	r = Mul(r, a32)
	r = Mul(r, a64)
	return Mul(r, a128)
}

// IsNonzero returns 1 if a is nonzero and 0 otherwise.
func IsNonzero(a byte) byte {
	return byte((uint32(a) + 0xFF) >> 8)
}
