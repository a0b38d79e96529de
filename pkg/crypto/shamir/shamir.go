// Package shamir splits secrets with HashiCorp Vault's GF(256) Shamir
// implementation and recovers them by solving the interpolation problem as a
// Vandermonde linear system.
package shamir

import (
	"fmt"

	"github.com/hashicorp/vault/shamir"

	"github.com/Davincible/gfmat/pkg/crypto/blas"
	"github.com/Davincible/gfmat/pkg/crypto/gf256"
	"github.com/Davincible/gfmat/pkg/secure"
)

// Share is one Vault share: the polynomial evaluations followed by the
// x-coordinate in the last byte.
type Share struct {
	Index byte
	Data  []byte
}

// X returns the x-coordinate the share was evaluated at.
func (s Share) X() byte {
	return s.Data[len(s.Data)-1]
}

type Config struct {
	Parts     int
	Threshold int
}

func (c *Config) Validate() error {
	if c.Parts < 2 {
		return fmt.Errorf("parts must be at least 2, got %d", c.Parts)
	}
	if c.Threshold < 2 {
		return fmt.Errorf("threshold must be at least 2, got %d", c.Threshold)
	}
	if c.Threshold > c.Parts {
		return fmt.Errorf("threshold (%d) cannot be greater than parts (%d)", c.Threshold, c.Parts)
	}
	if c.Parts > 255 {
		return fmt.Errorf("parts cannot exceed 255, got %d", c.Parts)
	}
	return nil
}

func Split(secret []byte, config Config) ([]Share, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if len(secret) == 0 {
		return nil, fmt.Errorf("secret cannot be empty")
	}

	shares, err := shamir.Split(secret, config.Parts, config.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split secret: %w", err)
	}

	result := make([]Share, len(shares))
	for i, share := range shares {
		result[i] = Share{
			Index: byte(i + 1),
			Data:  share,
		}
	}

	return result, nil
}

// Combine reconstructs the secret with Vault's Lagrange interpolation.
func Combine(shares []Share) ([]byte, error) {
	if err := checkShares(shares); err != nil {
		return nil, err
	}

	shareBytes := make([][]byte, len(shares))
	for i, share := range shares {
		shareBytes[i] = share.Data
	}

	secret, err := shamir.Combine(shareBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to combine shares: %w", err)
	}

	return secret, nil
}

// Recover reconstructs the secret by inverting the Vandermonde matrix of the
// share coordinates. The secret is the constant coefficient, so only row 0 of
// the inverse is needed, and it is applied to every byte position at once.
func Recover(shares []Share, eng *blas.Engine) ([]byte, error) {
	if err := checkShares(shares); err != nil {
		return nil, err
	}
	if eng == nil {
		eng = blas.Default()
	}

	k := len(shares)
	n := len(shares[0].Data) - 1

	vander := make([]byte, k*k)
	payloads := make([]byte, k*n)
	for j, share := range shares {
		x := share.X()
		p := byte(1)
		for i := 0; i < k; i++ {
			vander[j*k+i] = p
			p = gf256.Mul(p, x)
		}
		copy(payloads[j*n:(j+1)*n], share.Data[:n])
	}
	defer secure.Zero(payloads)

	inv := make([]byte, k*k)
	scratch := secure.NewScratch(blas.InvScratchSize(k))
	defer scratch.Release()

	if !eng.MatInv(inv, vander, k, scratch.Bytes(blas.InvScratchSize(k))) {
		return nil, fmt.Errorf("shares do not have distinct coordinates")
	}

	secret := make([]byte, n)
	eng.MatProd(secret, payloads, n, k, inv[:k])
	return secret, nil
}

func VerifyShare(share Share, expectedLen int) error {
	if len(share.Data) != expectedLen {
		return fmt.Errorf("invalid share length: expected %d, got %d", expectedLen, len(share.Data))
	}
	if share.Index == 0 {
		return fmt.Errorf("share index cannot be 0")
	}
	return nil
}

func checkShares(shares []Share) error {
	if len(shares) < 2 {
		return fmt.Errorf("at least 2 shares are required for reconstruction")
	}
	if len(shares) > 255 {
		return fmt.Errorf("at most 255 shares can be combined, got %d", len(shares))
	}

	for _, share := range shares {
		if len(share.Data) == 0 {
			return fmt.Errorf("share %d has empty data", share.Index)
		}
	}

	expected := len(shares[0].Data)
	if expected < 2 {
		return fmt.Errorf("share %d is too short", shares[0].Index)
	}
	for _, share := range shares[1:] {
		if len(share.Data) != expected {
			return fmt.Errorf("share %d: length mismatch", share.Index)
		}
	}
	return nil
}
