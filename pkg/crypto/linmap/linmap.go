// Package linmap generates and applies invertible linear maps over GF(256),
// the secret affine layers multivariate signature schemes wrap around their
// central map.
package linmap

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/Davincible/gfmat/pkg/crypto/blas"
	"github.com/Davincible/gfmat/pkg/crypto/prng"
	"github.com/Davincible/gfmat/pkg/secure"
)

const (
	// MaxAttempts bounds how many random matrices Generate draws before
	// giving up.
	MaxAttempts = 64

	formatVersion = 1

	seedDomain = "gfmat/linmap"
)

var (
	// ErrSingular is returned when no invertible matrix was found.
	ErrSingular = errors.New("no invertible matrix found")

	// ErrInvalidEncoding is returned by UnmarshalBinary for malformed input.
	ErrInvalidEncoding = errors.New("invalid linear map encoding")
)

// Map is an invertible n×n linear map together with its inverse. Both
// matrices are stored column-major, the layout blas.Engine.MatProd reads.
type Map struct {
	N       int
	forward []byte
	inverse []byte
	eng     *blas.Engine
}

// Generate draws n×n matrices from rng until one is invertible.
func Generate(rng io.Reader, n int, eng *blas.Engine) (*Map, error) {
	if n < 1 || n > blas.MaxSolveDim {
		return nil, fmt.Errorf("dimension must be between 1 and %d, got %d", blas.MaxSolveDim, n)
	}
	if eng == nil {
		eng = blas.Default()
	}

	scratch := secure.NewScratch(blas.InvScratchSize(n))
	defer scratch.Release()

	m := &Map{
		N:       n,
		forward: make([]byte, n*n),
		inverse: make([]byte, n*n),
		eng:     eng,
	}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if _, err := io.ReadFull(rng, m.forward); err != nil {
			m.Destroy()
			return nil, fmt.Errorf("failed to read matrix entropy: %w", err)
		}
		if eng.MatInv(m.inverse, m.forward, n, scratch.Bytes(blas.InvScratchSize(n))) {
			return m, nil
		}
	}

	m.Destroy()
	return nil, fmt.Errorf("%w after %d attempts", ErrSingular, MaxAttempts)
}

// FromSeed deterministically derives a map from seed.
func FromSeed(seed []byte, n int, eng *blas.Engine) (*Map, error) {
	if len(seed) < 16 {
		return nil, fmt.Errorf("seed must be at least 16 bytes")
	}
	return Generate(prng.New(seed, seedDomain), n, eng)
}

// Apply sets dst = M * x.
func (m *Map) Apply(dst, x []byte) {
	m.eng.MatProd(dst, m.forward, m.N, m.N, x)
}

// Invert sets dst = M^-1 * y.
func (m *Map) Invert(dst, y []byte) {
	m.eng.MatProd(dst, m.inverse, m.N, m.N, y)
}

// Verify reports whether the stored inverse really inverts the forward
// matrix.
func (m *Map) Verify() bool {
	n := m.N
	prod := make([]byte, n*n)
	m.eng.MatMul(prod, m.forward, m.inverse, n)
	for i := 0; i < n; i++ {
		prod[i*n+i] ^= 1
	}
	return m.eng.IsZero(prod)
}

// Forward returns a copy of the forward matrix, column-major.
func (m *Map) Forward() []byte {
	return append([]byte(nil), m.forward...)
}

// Fingerprint identifies the map without revealing it.
func (m *Map) Fingerprint() string {
	h := sha256.Sum256(m.forward)
	return hex.EncodeToString(h[:8])
}

// MarshalBinary encodes the map as version || n || forward || inverse.
func (m *Map) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 2+2*len(m.forward))
	out = append(out, formatVersion, byte(m.N))
	out = append(out, m.forward...)
	out = append(out, m.inverse...)
	return out, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary and checks that the
// two matrices are inverses of each other.
func (m *Map) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: too short", ErrInvalidEncoding)
	}
	if data[0] != formatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidEncoding, data[0])
	}

	n := int(data[1])
	if n < 1 || n > blas.MaxSolveDim {
		return fmt.Errorf("%w: bad dimension %d", ErrInvalidEncoding, n)
	}
	if len(data) != 2+2*n*n {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncoding, 2+2*n*n, len(data))
	}

	if m.eng == nil {
		m.eng = blas.Default()
	}
	m.N = n
	m.forward = append([]byte(nil), data[2:2+n*n]...)
	m.inverse = append([]byte(nil), data[2+n*n:]...)

	if !m.Verify() {
		m.Destroy()
		return fmt.Errorf("%w: matrices are not inverses", ErrInvalidEncoding)
	}
	return nil
}

// WithEngine returns a Map that runs on eng and shares m's matrices.
func (m *Map) WithEngine(eng *blas.Engine) *Map {
	return &Map{N: m.N, forward: m.forward, inverse: m.inverse, eng: eng}
}

// Destroy wipes both matrices.
func (m *Map) Destroy() {
	secure.Zero(m.forward)
	secure.Zero(m.inverse)
}
