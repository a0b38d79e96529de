package gf256

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulKnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b byte
		want byte
	}{
		{"FIPS-197 example", 0x57, 0x83, 0xC1},
		{"FIPS-197 xtime chain", 0x57, 0x13, 0xFE},
		{"multiply by one", 0xAB, 0x01, 0xAB},
		{"multiply by zero", 0xAB, 0x00, 0x00},
		{"zero times", 0x00, 0xFF, 0x00},
		{"reduction", 0x80, 0x02, 0x1B},
		{"3 times 3", 0x03, 0x03, 0x05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mul(tt.a, tt.b))
			assert.Equal(t, tt.want, Mul(tt.b, tt.a))
		})
	}
}

func TestInv(t *testing.T) {
	assert.Equal(t, byte(0), Inv(0))
	assert.Equal(t, byte(1), Inv(1))

	for a := 1; a < 256; a++ {
		inv := Inv(byte(a))
		require.Equal(t, byte(1), Mul(byte(a), inv), "a=%#x inv=%#x", a, inv)
	}
}

func TestIsNonzero(t *testing.T) {
	assert.Equal(t, byte(0), IsNonzero(0))
	for a := 1; a < 256; a++ {
		require.Equal(t, byte(1), IsNonzero(byte(a)))
	}
}

func TestMulDistributes(t *testing.T) {
	for a := 0; a < 256; a += 7 {
		for b := 0; b < 256; b += 5 {
			for c := 0; c < 256; c += 11 {
				left := Mul(byte(a), byte(b)^byte(c))
				right := Mul(byte(a), byte(b)) ^ Mul(byte(a), byte(c))
				require.Equal(t, left, right)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Backends() {
		gf, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, gf.Name())
	}

	gf, err := Lookup(" WIDE ")
	require.NoError(t, err)
	assert.Equal(t, "wide", gf.Name())

	_, err = Lookup("avx2")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func randomBytes(t testing.TB, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestBackendsAgree(t *testing.T) {
	lengths := []int{0, 1, 7, 8, 9, 15, 16, 31, 64, 100}

	for _, n := range lengths {
		src := randomBytes(t, n)
		base := randomBytes(t, n)
		scalar := randomBytes(t, 1)[0]

		ops := []struct {
			name string
			run  func(gf Arithmetic, dst []byte)
		}{
			{"Add", func(gf Arithmetic, dst []byte) { gf.Add(dst, src) }},
			{"Madd", func(gf Arithmetic, dst []byte) { gf.Madd(dst, src, scalar) }},
			{"MulScalar", func(gf Arithmetic, dst []byte) { gf.MulScalar(dst, scalar) }},
			{"PredicatedAdd on", func(gf Arithmetic, dst []byte) { gf.PredicatedAdd(dst, 1, src) }},
			{"PredicatedAdd off", func(gf Arithmetic, dst []byte) { gf.PredicatedAdd(dst, 0, src) }},
		}

		for _, op := range ops {
			ref := append([]byte(nil), base...)
			wide := append([]byte(nil), base...)

			op.run(Reference{}, ref)
			op.run(Wide{}, wide)

			require.Equal(t, ref, wide, "%s with n=%d", op.name, n)
		}
	}
}

func TestReferenceSemantics(t *testing.T) {
	src := []byte{0x01, 0x02, 0x57, 0xFF}
	dst := []byte{0x10, 0x20, 0x00, 0xFF}

	gf := Reference{}

	added := append([]byte(nil), dst...)
	gf.Add(added, src)
	assert.Equal(t, []byte{0x11, 0x22, 0x57, 0x00}, added)

	madd := make([]byte, 4)
	gf.Madd(madd, src, 0x83)
	assert.Equal(t, Mul(0x57, 0x83), madd[2])

	self := append([]byte(nil), dst...)
	gf.Add(self, self)
	assert.Equal(t, make([]byte, 4), self)

	skipped := append([]byte(nil), dst...)
	gf.PredicatedAdd(skipped, 0, src)
	assert.Equal(t, dst, skipped)
}

func BenchmarkMaddReference(b *testing.B) {
	dst := randomBytes(b, 1024)
	src := randomBytes(b, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Reference{}.Madd(dst, src, 0xA5)
	}
}

func BenchmarkMaddWide(b *testing.B) {
	dst := randomBytes(b, 1024)
	src := randomBytes(b, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Wide{}.Madd(dst, src, 0xA5)
	}
}
