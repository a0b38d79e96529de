package blas

import "github.com/Davincible/gfmat/pkg/crypto/gf256"

// GaussElim reduces the h×w matrix mat (w >= h) to reduced row-echelon form
// in place and reports whether every pivot was nonzero.
//
// A zero pivot is repaired by adding the rows below it into the pivot row
// with a predicated add rather than by swapping rows, so the same sequence of
// operations runs for every matrix of a given shape. When no row below can
// repair the pivot, elimination carries on and the result is false.
func (e *Engine) GaussElim(mat []byte, h, w int) bool {
	r8 := byte(1)

	for i := 0; i < h; i++ {
		ai := mat[w*i : w*(i+1)]
		// columns left of the pivot are already final; keep 4-column alignment
		skip := i &^ 3

		for j := i + 1; j < h; j++ {
			aj := mat[w*j : w*(j+1)]
			e.gf.PredicatedAdd(ai[skip:], 1^gf256.IsNonzero(ai[i]), aj[skip:])
		}
		r8 &= gf256.IsNonzero(ai[i])

		pivot := gf256.Inv(ai[i])
		e.gf.MulScalar(ai[skip:], pivot)

		for j := 0; j < h; j++ {
			if i == j {
				continue
			}
			aj := mat[w*j : w*(j+1)]
			e.gf.Madd(aj[skip:], ai[skip:], aj[i])
		}
	}

	return r8 == 1
}
