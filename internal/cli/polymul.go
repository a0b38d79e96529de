package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
)

type PolyMulResult struct {
	Product string `json:"product"`
	Degree  int    `json:"degree"`
	Backend string `json:"backend"`
}

func NewPolyMulCommand() *cobra.Command {
	var a, b string

	cmd := &cobra.Command{
		Use:   "polymul",
		Short: "Multiply two polynomials with GF(256) coefficients",
		Long: `Multiply two polynomials of equal length n, given as hex coefficient
vectors from the constant term upward. The product has 2n-1 coefficients.`,
		Example: `  # (1 + x)^2 = 1 + x^2
  gfmat polymul --a 0101 --b 0101`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			if err := validation.ValidateHex(a); err != nil {
				return fmt.Errorf("polynomial a: %w", err)
			}
			n := len(strings.TrimSpace(a)) / 2
			pa, err := validation.ValidateVectorHex(a, n)
			if err != nil {
				return fmt.Errorf("polynomial a: %w", err)
			}
			pb, err := validation.ValidateVectorHex(b, n)
			if err != nil {
				return fmt.Errorf("polynomial b must have %d coefficients: %w", n, err)
			}

			c := make([]byte, 2*n-1)
			s.eng.PolyMul(c, pa, pb)
			slog.Debug("Polynomial product finished", "len", n, "backend", s.eng.Backend())

			result := PolyMulResult{
				Product: hex.EncodeToString(c),
				Degree:  len(c) - 1,
				Backend: s.eng.Backend(),
			}
			return s.emit(result, func(w io.Writer) {
				yellow.Fprint(w, "Product: ")
				fmt.Fprintln(w, result.Product)
			})
		},
	}

	cmd.Flags().StringVar(&a, "a", "", "First polynomial, hex coefficients")
	cmd.Flags().StringVar(&b, "b", "", "Second polynomial, hex coefficients")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}
