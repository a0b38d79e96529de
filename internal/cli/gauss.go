package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
)

type GaussResult struct {
	Rows     int      `json:"rows"`
	Cols     int      `json:"cols"`
	Reduced  []string `json:"reduced"`
	FullRank bool     `json:"full_rank"`
	Backend  string   `json:"backend"`
}

func NewGaussCommand() *cobra.Command {
	var (
		rows   int
		cols   int
		matrix string
	)

	cmd := &cobra.Command{
		Use:   "gauss",
		Short: "Reduce a matrix to row echelon form",
		Long: `Run constant-time Gaussian elimination on an h×w matrix over GF(256).
Every pivot is scaled to 1 and eliminated from all other rows, so a matrix
whose leading h×h block has full rank ends in the form [I | X].`,
		Example: `  # Reduce a 2x3 augmented system
  gfmat gauss --rows 2 --cols 3 --matrix "030105 010102"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			if cols == 0 {
				cols = rows
			}
			if err := validation.ValidateDimension(rows); err != nil {
				return err
			}
			if cols < rows {
				return fmt.Errorf("cols (%d) must be at least rows (%d)", cols, rows)
			}

			mat, err := readMatrix(s, matrix, rows, cols)
			if err != nil {
				return err
			}
			defer s.wipe(mat)

			slog.Debug("Running Gaussian elimination", "rows", rows, "cols", cols, "backend", s.eng.Backend())
			ok := s.eng.GaussElim(mat, rows, cols)
			slog.Debug("Gaussian elimination finished", "full_rank", ok)

			result := GaussResult{
				Rows:     rows,
				Cols:     cols,
				Reduced:  hexRows(mat, rows, cols),
				FullRank: ok,
				Backend:  s.eng.Backend(),
			}
			return s.emit(result, func(w io.Writer) {
				yellow.Fprintf(w, "Reduced %dx%d matrix:\n", rows, cols)
				printMatrix(w, mat, rows, cols)
				printRank(w, ok)
			})
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "r", 0, "Number of rows (1-63)")
	cmd.Flags().IntVarP(&cols, "cols", "c", 0, "Number of columns (defaults to rows)")
	cmd.Flags().StringVarP(&matrix, "matrix", "m", "", "Row-major matrix in hex (prompted if omitted)")
	_ = cmd.MarkFlagRequired("rows")

	return cmd
}

// readMatrix decodes a row-major matrix from the flag value, prompting for
// it when the flag was left empty.
func readMatrix(s *session, input string, h, w int) ([]byte, error) {
	if input == "" {
		line, err := s.prompt.Line(fmt.Sprintf("Enter %dx%d matrix (hex, row-major): ", h, w))
		if err != nil {
			return nil, fmt.Errorf("failed to read matrix: %w", err)
		}
		input = line
	}
	return validation.ValidateMatrixHex(input, h, w)
}
