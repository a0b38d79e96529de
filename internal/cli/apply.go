package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
	"github.com/Davincible/gfmat/pkg/storage"
)

type ApplyResult struct {
	Fingerprint string `json:"fingerprint"`
	Inverse     bool   `json:"inverse"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

func NewApplyCommand() *cobra.Command {
	var (
		keyFile string
		profile string
		input   string
		inverse bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a stored linear map (or its inverse) to a vector",
		Example: `  # y = M·x with the map registered as "signing"
  gfmat apply --profile signing --input 000102...

  # x = M⁻¹·y
  gfmat apply --profile signing --inverse --input <y>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			if keyFile == "" {
				if profile == "" {
					return fmt.Errorf("either --key or --profile is required")
				}
				p, err := s.cm.GetProfile(profile)
				if err != nil {
					return err
				}
				keyFile = p.Path
			}

			ks, err := storage.NewKeyStorage(keyFile, s.cfg.Security.KDF)
			if err != nil {
				return err
			}
			if !ks.Exists() {
				return fmt.Errorf("key file %s does not exist", keyFile)
			}

			password, err := s.prompt.Secret("Enter key file password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			defer s.wipe(password)

			stored, meta, err := ks.LoadMap(password)
			if err != nil {
				return fmt.Errorf("failed to open key file: %w", err)
			}
			defer stored.Destroy()
			lm := stored.WithEngine(s.eng)

			x, err := validation.ValidateVectorHex(input, lm.N)
			if err != nil {
				return err
			}

			y := make([]byte, lm.N)
			if inverse {
				lm.Invert(y, x)
			} else {
				lm.Apply(y, x)
			}
			slog.Debug("Applied linear map", "fingerprint", meta.Fingerprint, "inverse", inverse, "backend", s.eng.Backend())

			result := ApplyResult{
				Fingerprint: meta.Fingerprint,
				Inverse:     inverse,
				Input:       hex.EncodeToString(x),
				Output:      hex.EncodeToString(y),
			}
			return s.emit(result, func(w io.Writer) {
				op := "M·x"
				if inverse {
					op = "M⁻¹·y"
				}
				cyan.Fprintf(w, "%s with map %s:\n", op, meta.Fingerprint)
				fmt.Fprintln(w, result.Output)
			})
		},
	}

	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "Key file written by keygen")
	cmd.Flags().StringVar(&profile, "profile", "", "Registered key name")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input vector in hex")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "Apply the inverse map")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
