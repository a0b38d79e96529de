package blas

import "fmt"

// InvScratchSize is the scratch length MatInv needs for an h×h matrix.
func InvScratchSize(h int) int {
	return 2 * h * h
}

// MatInv writes the inverse of the h×h matrix a into invA and reports
// whether a was invertible.
//
// scratch is borrowed for the duration of the call to hold the augmented
// [a | I] matrix and must be at least InvScratchSize(h) long; it is left
// holding the reduced form. A shorter scratch panics.
func (e *Engine) MatInv(invA, a []byte, h int, scratch []byte) bool {
	if len(scratch) < InvScratchSize(h) {
		panic(fmt.Sprintf("blas: inversion scratch is %d bytes, need %d", len(scratch), InvScratchSize(h)))
	}

	w := 2 * h
	aa := scratch[:h*w]
	for i := 0; i < h; i++ {
		ai := aa[i*w : (i+1)*w]
		e.SetZero(ai)
		e.gf.Add(ai[:h], a[i*h:(i+1)*h])
		ai[h+i] = 1
	}

	ok := e.GaussElim(aa, h, w)
	Submatrix(invA, h, h, aa, w, h)
	return ok
}
