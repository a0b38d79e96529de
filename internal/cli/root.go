package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the gfmat command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gfmat",
		Short: "Linear algebra over GF(256) and the key material built on it",
		Long: `gfmat exposes a constant-time GF(256) linear algebra engine.

Matrix commands (gauss, invert, solve, mul, polymul) take row-major
matrices as hex strings; rows may be separated by spaces or commas.

Key commands derive secret invertible linear maps from a BIP39 phrase
(keygen), apply them to vectors (apply), and split or recover secrets
with Shamir's scheme, recovery being a Vandermonde solve (split, recover).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	rootCmd.AddCommand(
		NewGaussCommand(),
		NewInvertCommand(),
		NewSolveCommand(),
		NewMulCommand(),
		NewPolyMulCommand(),
		NewKeygenCommand(),
		NewApplyCommand(),
		NewSplitCommand(),
		NewRecoverCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("backend", "b", "", "Field arithmetic backend (reference, wide); defaults to the configured one")

	return rootCmd
}
