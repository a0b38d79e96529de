package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
)

// Scratch is working memory lent to a routine for the duration of one call,
// such as the augmented matrix of an inversion. It is wiped on Release and
// whenever it has to grow. A Scratch must not be shared between goroutines.
type Scratch struct {
	data []byte
}

func NewScratch(size int) *Scratch {
	return &Scratch{
		data: make([]byte, size),
	}
}

// Bytes returns a slice of exactly n bytes backed by the scratch.
func (s *Scratch) Bytes(n int) []byte {
	if n > len(s.data) {
		Zero(s.data)
		s.data = make([]byte, n)
	}
	return s.data[:n]
}

func (s *Scratch) Len() int {
	return len(s.data)
}

func (s *Scratch) Release() {
	Zero(s.data)
}

func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	return subtle.ConstantTimeCompare(x, y) == 1
}

func SecureRandom(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("failed to generate secure random bytes: %w", err)
	}
	return b, nil
}
