package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
)

type SolveResult struct {
	Dimension int    `json:"dimension"`
	Solution  string `json:"solution"`
	FullRank  bool   `json:"full_rank"`
	Backend   string `json:"backend"`
}

func NewSolveCommand() *cobra.Command {
	var (
		dim    int
		matrix string
		rhs    string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve A·x = c for a square matrix A",
		Example: `  # 3x + y = 5, x + y = 2
  gfmat solve --dim 2 --matrix "0301 0101" --rhs 0502`,
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

			if rhs == "" {
				if rhs, err = s.prompt.Line(fmt.Sprintf("Enter right-hand side (%d bytes hex): ", dim)); err != nil {
					return fmt.Errorf("failed to read right-hand side: %w", err)
				}
			}
			c, err := validation.ValidateVectorHex(rhs, dim)
			if err != nil {
				return err
			}

			sol := make([]byte, dim)
			ok := s.eng.SolveLinearEq(sol, a, c, dim)
			slog.Debug("Linear solve finished", "dim", dim, "backend", s.eng.Backend(), "full_rank", ok)

			result := SolveResult{
				Dimension: dim,
				Solution:  hex.EncodeToString(sol),
				FullRank:  ok,
				Backend:   s.eng.Backend(),
			}
			return s.emit(result, func(w io.Writer) {
				if !ok {
					red.Fprintln(w, "System has no unique solution")
					return
				}
				yellow.Fprint(w, "Solution: ")
				fmt.Fprintln(w, result.Solution)
			})
		},
	}

	cmd.Flags().IntVarP(&dim, "dim", "n", 0, "Number of unknowns (1-63)")
	cmd.Flags().StringVarP(&matrix, "matrix", "m", "", "Row-major coefficient matrix in hex")
	cmd.Flags().StringVarP(&rhs, "rhs", "c", "", "Right-hand side vector in hex")
	_ = cmd.MarkFlagRequired("dim")

	return cmd
}
