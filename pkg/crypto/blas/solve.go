package blas

import "fmt"

// MaxSolveDim is the largest n SolveLinearEq accepts. The augmented n×(n+1)
// matrix must fit the solver's fixed 64×64 scratch.
const MaxSolveDim = 63

const solveScratch = (MaxSolveDim + 1) * (MaxSolveDim + 1)

// SolveLinearEq solves a * sol = c for the n×n row-major matrix a and
// reports whether a had full rank. n above MaxSolveDim is a programming
// error and panics.
func (e *Engine) SolveLinearEq(sol, a, c []byte, n int) bool {
	if n > MaxSolveDim {
		panic(fmt.Sprintf("blas: solve dimension %d exceeds maximum %d", n, MaxSolveDim))
	}

	var mat [solveScratch]byte
	w := n + 1
	for i := 0; i < n; i++ {
		copy(mat[i*w:i*w+n], a[i*n:(i+1)*n])
		mat[i*w+n] = c[i]
	}

	ok := e.GaussElim(mat[:n*w], n, w)
	for i := 0; i < n; i++ {
		sol[i] = mat[i*w+n]
	}
	return ok
}
