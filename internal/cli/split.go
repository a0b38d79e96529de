package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
	"github.com/Davincible/gfmat/pkg/crypto/shamir"
)

type SplitResult struct {
	Shares    []string `json:"shares"`
	Threshold int      `json:"threshold"`
	Total     int      `json:"total"`
}

func NewSplitCommand() *cobra.Command {
	var (
		parts     int
		threshold int
		secretHex string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into Shamir shares",
		Long: `Split a hex secret into shares over GF(256). Any threshold of them
recover the secret with 'gfmat recover'. Each share is the polynomial
evaluations followed by its x-coordinate.`,
		Example: `  gfmat split --parts 5 --threshold 3 --secret 00112233

  # Prompt for the secret without echo
  gfmat split --parts 3 --threshold 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			if err := validation.ValidateSplitParams(parts, threshold); err != nil {
				return err
			}

			if secretHex == "" {
				raw, err := s.prompt.Secret("Enter secret (hex): ")
				if err != nil {
					return fmt.Errorf("failed to read secret: %w", err)
				}
				secretHex = string(raw)
				s.wipe(raw)
			}
			if err := validation.ValidateHex(secretHex); err != nil {
				return fmt.Errorf("invalid secret: %w", err)
			}
			secret, err := hex.DecodeString(secretHex)
			if err != nil {
				return fmt.Errorf("invalid secret: %w", err)
			}
			defer s.wipe(secret)

			shares, err := shamir.Split(secret, shamir.Config{
				Parts:     parts,
				Threshold: threshold,
			})
			if err != nil {
				return err
			}
			slog.Debug("Secret split", "parts", parts, "threshold", threshold, "len", len(secret))

			result := SplitResult{
				Shares:    make([]string, len(shares)),
				Threshold: threshold,
				Total:     parts,
			}
			for i, share := range shares {
				result.Shares[i] = hex.EncodeToString(share.Data)
			}

			return s.emit(result, func(w io.Writer) {
				green.Fprintf(w, "Created %d shares, any %d recover the secret\n\n", parts, threshold)
				for i, share := range result.Shares {
					fmt.Fprintf(w, "Share %d: %s\n", i+1, share)
				}
			})
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "n", 3, "Number of shares")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 2, "Shares needed to recover")
	cmd.Flags().StringVarP(&secretHex, "secret", "s", "", "Secret in hex (prompted if omitted)")

	return cmd
}
