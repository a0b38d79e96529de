package gf256

// Reference processes one element at a time.
type Reference struct{}

func (Reference) Name() string { return "reference" }

func (Reference) Add(dst, src []byte) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func (Reference) Madd(dst, src []byte, c byte) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] ^= Mul(src[i], c)
	}
}

func (Reference) MulScalar(dst []byte, c byte) {
	for i := range dst {
		dst[i] = Mul(dst[i], c)
	}
}

func (Reference) PredicatedAdd(dst []byte, pred byte, src []byte) {
	mask := -(pred & 1)
	src = src[:len(dst)]
	for i := range dst {
		dst[i] ^= src[i] & mask
	}
}
