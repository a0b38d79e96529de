package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
	"github.com/Davincible/gfmat/pkg/crypto/blas"
	"github.com/Davincible/gfmat/pkg/secure"
)

type InvertResult struct {
	Dimension int      `json:"dimension"`
	Inverse   []string `json:"inverse"`
	FullRank  bool     `json:"full_rank"`
	Backend   string   `json:"backend"`
}

func NewInvertCommand() *cobra.Command {
	var (
		dim    int
		matrix string
	)

	cmd := &cobra.Command{
		Use:   "invert",
		Short: "Invert a square matrix",
		Long: `Invert an n×n matrix over GF(256). A singular matrix is reported as
rank deficient; the printed output is then not an inverse.`,
		Example: `  gfmat invert --dim 2 --matrix "0301 0101"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := validation.ValidateDimension(dim); err != nil {
				return err
			}

			a, err := readMatrix(s, matrix, dim, dim)
			if err != nil {
				return err
			}
			defer s.wipe(a)

			scratch := secure.NewScratch(blas.InvScratchSize(dim))
			defer scratch.Release()

			inv := make([]byte, dim*dim)
			defer s.wipe(inv)

			ok := s.eng.MatInv(inv, a, dim, scratch.Bytes(blas.InvScratchSize(dim)))
			slog.Debug("Matrix inversion finished", "dim", dim, "backend", s.eng.Backend(), "full_rank", ok)

			result := InvertResult{
				Dimension: dim,
				Inverse:   hexRows(inv, dim, dim),
				FullRank:  ok,
				Backend:   s.eng.Backend(),
			}
			return s.emit(result, func(w io.Writer) {
				if !ok {
					red.Fprintln(w, "Matrix is singular")
					return
				}
				yellow.Fprintf(w, "Inverse of %dx%d matrix:\n", dim, dim)
				printMatrix(w, inv, dim, dim)
			})
		},
	}

	cmd.Flags().IntVarP(&dim, "dim", "n", 0, "Matrix dimension (1-63)")
	cmd.Flags().StringVarP(&matrix, "matrix", "m", "", "Row-major matrix in hex (prompted if omitted)")
	_ = cmd.MarkFlagRequired("dim")

	return cmd
}
