package gf256

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBackend is returned by Lookup for names that match no backend.
var ErrUnknownBackend = errors.New("unknown gf256 backend")

// Arithmetic is the set of vector primitives over GF(256).
//
// Every operation works on len(dst) elements; src must be at least that
// long. Implementations must run in time that depends only on the length,
// never on element values, the scalar or the predicate, and all
// implementations must produce identical results.
type Arithmetic interface {
	// Add sets dst ^= src.
	Add(dst, src []byte)

	// Madd sets dst ^= src * c.
	Madd(dst, src []byte, c byte)

	// MulScalar sets dst *= c.
	MulScalar(dst []byte, c byte)

	// PredicatedAdd sets dst ^= src when pred is 1 and leaves dst unchanged
	// when pred is 0.
	PredicatedAdd(dst []byte, pred byte, src []byte)

	// Name identifies the backend.
	Name() string
}

var backends = map[string]Arithmetic{
	Reference{}.Name(): Reference{},
	Wide{}.Name():      Wide{},
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Arithmetic, error) {
	gf, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return gf, nil
}

// Backends returns the names of every available backend.
func Backends() []string {
	return []string{Reference{}.Name(), Wide{}.Name()}
}
