package blas

// SetZero clears b by adding it to itself.
func (e *Engine) SetZero(b []byte) {
	e.gf.Add(b, b)
}

// GetElement returns a[i]. The caller guarantees i < len(a).
func GetElement(a []byte, i int) byte {
	return a[i]
}

// IsZero reports whether every element of a is zero. It always reads the
// whole vector.
func (e *Engine) IsZero(a []byte) bool {
	var r byte
	for _, v := range a {
		r |= v
	}
	return r == 0
}

// PolyMul sets c to the schoolbook product of the polynomials a and b, which
// must have the same length n. c must hold 2n-1 elements.
func (e *Engine) PolyMul(c, a, b []byte) {
	n := len(a)
	e.SetZero(c[:2*n-1])
	for i := 0; i < n; i++ {
		e.gf.Madd(c[i:i+n], a, b[i])
	}
}
