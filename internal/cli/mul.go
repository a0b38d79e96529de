package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
)

type MulResult struct {
	Dimension int      `json:"dimension"`
	Product   []string `json:"product"`
	Backend   string   `json:"backend"`
}

func NewMulCommand() *cobra.Command {
	var (
		dim int
		a   string
		b   string
	)

	cmd := &cobra.Command{
		Use:   "mul",
		Short: "Multiply two square matrices",
		Long:  `Compute the row-major product A·B of two n×n matrices over GF(256).`,
		Example: `  gfmat mul --dim 2 --a "0102 0304" --b "0100 0001"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if dim < 1 {
				return fmt.Errorf("dimension must be positive (got %d)", dim)
			}

			left, err := validation.ValidateMatrixHex(a, dim, dim)
			if err != nil {
				return fmt.Errorf("matrix A: %w", err)
			}
			right, err := validation.ValidateMatrixHex(b, dim, dim)
			if err != nil {
				return fmt.Errorf("matrix B: %w", err)
			}

			// MatMul(c, x, y) forms y·x, so the operands go in swapped.
			prod := make([]byte, dim*dim)
			s.eng.MatMul(prod, right, left, dim)
			slog.Debug("Matrix product finished", "dim", dim, "backend", s.eng.Backend())

			result := MulResult{
				Dimension: dim,
				Product:   hexRows(prod, dim, dim),
				Backend:   s.eng.Backend(),
			}
			return s.emit(result, func(w io.Writer) {
				yellow.Fprintln(w, "A·B:")
				printMatrix(w, prod, dim, dim)
			})
		},
	}

	cmd.Flags().IntVarP(&dim, "dim", "n", 0, "Matrix dimension")
	cmd.Flags().StringVar(&a, "a", "", "Left matrix A, row-major hex")
	cmd.Flags().StringVar(&b, "b", "", "Right matrix B, row-major hex")
	_ = cmd.MarkFlagRequired("dim")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}
