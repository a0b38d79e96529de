package blas

// MatProd sets c[:vecBytes] to the sum over i in [0, width) of
// matA[i*vecBytes:(i+1)*vecBytes] * b[i].
//
// matA is read one column at a time, so a row-major buffer holding M gives
// M^T * b. Callers that want M * b store M column-major.
func (e *Engine) MatProd(c, matA []byte, vecBytes, width int, b []byte) {
	c = c[:vecBytes]
	e.SetZero(c)
	for i := 0; i < width; i++ {
		e.gf.Madd(c, matA[i*vecBytes:(i+1)*vecBytes], b[i])
	}
}

// MatMul multiplies two n×n matrices. Row k of c is the sum over i of row i
// of a scaled by b[k][i], so in row-major terms c = b * a.
func (e *Engine) MatMul(c, a, b []byte, n int) {
	for k := 0; k < n; k++ {
		ck := c[k*n : (k+1)*n]
		bk := b[k*n : (k+1)*n]
		e.SetZero(ck)
		for i := 0; i < n; i++ {
			e.gf.Madd(ck, a[i*n:(i+1)*n], bk[i])
		}
	}
}

// Submatrix copies columns [st, st+w2) of the h×w matrix mat into the h×w2
// matrix dst.
func Submatrix(dst []byte, w2, st int, mat []byte, w, h int) {
	for i := 0; i < h; i++ {
		copy(dst[i*w2:(i+1)*w2], mat[i*w+st:i*w+st+w2])
	}
}
