package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
	"github.com/Davincible/gfmat/pkg/crypto/shamir"
	"github.com/Davincible/gfmat/pkg/secure"
)

type RecoverResult struct {
	Secret     string `json:"secret"`
	SharesUsed int    `json:"shares_used"`
	Backend    string `json:"backend"`
}

func NewRecoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover [share...]",
		Short: "Recover a secret from Shamir shares by solving a linear system",
		Long: `Recover a secret from threshold-many shares. The shares' x-coordinates
form a Vandermonde matrix which is inverted over GF(256); the secret is
the first row of the inverse applied to the share payloads. The result is
cross-checked against Lagrange interpolation.

Shares are taken from the arguments, or read one per line from stdin
until an empty line when no arguments are given.`,
		Example: `  gfmat recover 5e0f...01 a211...02 07c3...03`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if args, err = readShareLines(s); err != nil {
					return err
				}
			}

			shares := make([]shamir.Share, 0, len(args))
			for i, arg := range args {
				arg = strings.TrimSpace(arg)
				if err := validation.ValidateShare(arg); err != nil {
					return fmt.Errorf("share %d: %w", i+1, err)
				}
				data, err := hex.DecodeString(arg)
				if err != nil {
					return fmt.Errorf("share %d: %w", i+1, err)
				}
				shares = append(shares, shamir.Share{Index: byte(i + 1), Data: data})
			}
			defer func() {
				for _, share := range shares {
					s.wipe(share.Data)
				}
			}()

			secret, err := shamir.Recover(shares, s.eng)
			if err != nil {
				return fmt.Errorf("failed to recover secret: %w", err)
			}
			defer s.wipe(secret)

			check, err := shamir.Combine(shares)
			if err != nil {
				return fmt.Errorf("failed to cross-check secret: %w", err)
			}
			defer s.wipe(check)
			if !secure.ConstantTimeCompare(secret, check) {
				return fmt.Errorf("linear solve and interpolation disagree")
			}
			slog.Debug("Secret recovered", "shares", len(shares), "backend", s.eng.Backend())

			result := RecoverResult{
				Secret:     hex.EncodeToString(secret),
				SharesUsed: len(shares),
				Backend:    s.eng.Backend(),
			}
			return s.emit(result, func(w io.Writer) {
				green.Fprintf(w, "Recovered secret from %d shares:\n", len(shares))
				fmt.Fprintln(w, result.Secret)
			})
		},
	}

	return cmd
}

func readShareLines(s *session) ([]string, error) {
	var lines []string
	for {
		line, err := s.prompt.Line(fmt.Sprintf("Share %d (empty to finish): ", len(lines)+1))
		if err != nil || line == "" {
			if len(lines) == 0 {
				return nil, fmt.Errorf("no shares given")
			}
			return lines, nil
		}
		lines = append(lines, line)
	}
}
