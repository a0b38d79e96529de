// Package blas implements linear algebra over GF(256) on caller-owned,
// row-major byte buffers: vector helpers, matrix products, Gaussian
// elimination, linear-system solving and matrix inversion.
//
// Dimensions are always passed explicitly and never stored. Nothing here
// allocates on the heap or keeps state between calls, and control flow never
// depends on matrix contents, only on dimensions. Rank deficiency is
// reported as a false return; the output buffers are still fully written.
package blas

import "github.com/Davincible/gfmat/pkg/crypto/gf256"

// Engine runs the routines on top of one gf256 backend. It holds no mutable
// state and may be shared between goroutines working on disjoint buffers.
type Engine struct {
	gf gf256.Arithmetic
}

// New returns an Engine backed by gf.
func New(gf gf256.Arithmetic) *Engine {
	return &Engine{gf: gf}
}

// Backend returns the name of the underlying field backend.
func (e *Engine) Backend() string {
	return e.gf.Name()
}

var std = New(gf256.Reference{})

// Default returns the Engine the package-level functions use.
func Default() *Engine {
	return std
}

// The functions below run on the reference backend.

func SetZero(b []byte) { std.SetZero(b) }

func IsZero(a []byte) bool { return std.IsZero(a) }

func PolyMul(c, a, b []byte) { std.PolyMul(c, a, b) }

func MatProd(c, matA []byte, vecBytes, width int, b []byte) {
	std.MatProd(c, matA, vecBytes, width, b)
}

func MatMul(c, a, b []byte, n int) { std.MatMul(c, a, b, n) }

func GaussElim(mat []byte, h, w int) bool { return std.GaussElim(mat, h, w) }

func SolveLinearEq(sol, a, c []byte, n int) bool {
	return std.SolveLinearEq(sol, a, c, n)
}

func MatInv(invA, a []byte, h int, scratch []byte) bool {
	return std.MatInv(invA, a, h, scratch)
}
