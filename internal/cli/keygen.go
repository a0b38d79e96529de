package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Davincible/gfmat/internal/validation"
	"github.com/Davincible/gfmat/pkg/config"
	"github.com/Davincible/gfmat/pkg/crypto/hdkey"
	"github.com/Davincible/gfmat/pkg/crypto/linmap"
	"github.com/Davincible/gfmat/pkg/crypto/mnemonic"
	"github.com/Davincible/gfmat/pkg/storage"
)

type KeygenResult struct {
	Name        string `json:"name"`
	File        string `json:"file"`
	Dimension   int    `json:"dimension"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	Mnemonic    string `json:"mnemonic,omitempty"`
}

func NewKeygenCommand() *cobra.Command {
	var (
		dim     int
		words   int
		path    string
		name    string
		output  string
		kdf     string
		restore bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Derive a secret invertible linear map from a seed phrase",
		Long: `Generate (or restore) a BIP39 seed phrase, derive a child seed along a
BIP32 path, and expand it into an invertible n×n matrix over GF(256)
together with its inverse. The map is stored in a password-encrypted
key file and registered under a name for later use with 'gfmat apply'.

The same phrase and path always give the same map, so the phrase is the
backup.`,
		Example: `  # New 24-word phrase, 32x32 map at m/0'
  gfmat keygen --name signing

  # Rebuild a map from an existing phrase
  gfmat keygen --restore --path "m/0'" --dim 32 --name signing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defaults := s.cfg.Defaults

			if dim == 0 {
				dim = defaults.Dimension
			}
			if words == 0 {
				words = defaults.WordCount
			}
			if path == "" {
				path = defaults.DerivationPath
			}
			if kdf == "" {
				kdf = s.cfg.Security.KDF
			}

			if err := validation.ValidateDimension(dim); err != nil {
				return err
			}
			if err := validation.ValidateDerivationPath(path); err != nil {
				return err
			}

			m, err := keygenMnemonic(s, restore, words)
			if err != nil {
				return err
			}

			seed := m.Seed("")
			defer s.wipe(seed)

			master, err := hdkey.NewMasterKey(seed)
			if err != nil {
				return err
			}
			child, err := master.DerivePath(path)
			if err != nil {
				return fmt.Errorf("failed to derive %s: %w", path, err)
			}
			childSeed := child.Seed()
			defer s.wipe(childSeed)

			slog.Debug("Deriving linear map", "dim", dim, "path", child.Path(), "backend", s.eng.Backend())
			lm, err := linmap.FromSeed(childSeed, dim, s.eng)
			if err != nil {
				return fmt.Errorf("failed to derive linear map: %w", err)
			}
			defer lm.Destroy()

			if name == "" {
				name = "map-" + lm.Fingerprint()
			}
			if output == "" {
				dir, err := s.cfg.Storage.KeyDir()
				if err != nil {
					return err
				}
				output = filepath.Join(dir, name+".json")
			}

			password, err := s.prompt.NewPassword(s.cfg.Security.MinPassphraseLength)
			if err != nil {
				return err
			}
			defer s.wipe(password)

			if err := saveKeyFile(s, output, kdf, lm, child.Path(), password); err != nil {
				return err
			}

			if err := s.cm.AddProfile(&config.KeyProfile{
				Name:           name,
				Path:           output,
				Dimension:      dim,
				DerivationPath: child.Path(),
				Fingerprint:    lm.Fingerprint(),
			}); err != nil {
				return fmt.Errorf("failed to register key: %w", err)
			}

			result := KeygenResult{
				Name:        name,
				File:        output,
				Dimension:   dim,
				Path:        child.Path(),
				Fingerprint: lm.Fingerprint(),
			}
			if !restore {
				result.Mnemonic = m.Words()
			}

			return s.emit(result, func(w io.Writer) {
				green.Fprintf(w, "Created %dx%d linear map %q\n", dim, dim, name)
				fmt.Fprintf(w, "  Fingerprint: %s\n", result.Fingerprint)
				fmt.Fprintf(w, "  Path:        %s\n", result.Path)
				fmt.Fprintf(w, "  Key file:    %s\n", result.File)
				if result.Mnemonic != "" {
					fmt.Fprintln(w)
					yellow.Fprintf(w, "Seed phrase (%d words):\n", m.WordCount())
					wl := m.WordList()
					for i := 0; i < len(wl); i += 4 {
						end := min(i+4, len(wl))
						fmt.Fprintf(w, "  %2d. %s\n", i+1, strings.Join(wl[i:end], " "))
					}
					fmt.Fprintln(w)
					red.Fprintln(w, "⚠️  Anyone with this phrase can rebuild the map. Store it offline.")
				}
			})
		},
	}

	cmd.Flags().IntVarP(&dim, "dim", "n", 0, "Map dimension (1-63, defaults to config)")
	cmd.Flags().IntVarP(&words, "words", "w", 0, "Seed phrase length: 12, 15, 18, 21 or 24")
	cmd.Flags().StringVarP(&path, "path", "p", "", "BIP32 derivation path")
	cmd.Flags().StringVar(&name, "name", "", "Name to register the key under")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Key file path (defaults to the configured key directory)")
	cmd.Flags().StringVar(&kdf, "kdf", "", "Key file KDF: pbkdf2 or argon2id")
	cmd.Flags().BoolVar(&restore, "restore", false, "Read an existing seed phrase instead of generating one")

	return cmd
}

func keygenMnemonic(s *session, restore bool, words int) (*mnemonic.Mnemonic, error) {
	if restore {
		line, err := s.prompt.Line("Enter seed phrase: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read seed phrase: %w", err)
		}
		line = validation.SanitizeInput(line)
		if err := validation.ValidateMnemonic(line); err != nil {
			return nil, err
		}
		return mnemonic.FromWords(line)
	}

	bits, err := mnemonic.EntropyBitsFromWordCount(words)
	if err != nil {
		return nil, err
	}
	return mnemonic.NewMnemonic(bits)
}

func saveKeyFile(s *session, file, kdf string, lm *linmap.Map, path string, password []byte) error {
	ks, err := storage.NewKeyStorage(file, kdf)
	if err != nil {
		return err
	}
	if err := ks.SaveMap(lm, path, password); err != nil {
		return fmt.Errorf("failed to save key file: %w", err)
	}

	mode, err := s.cfg.Storage.Permissions()
	if err != nil {
		return err
	}
	if err := os.Chmod(file, mode); err != nil {
		return fmt.Errorf("failed to set key file permissions: %w", err)
	}

	slog.Debug("Key file written", "file", file, "kdf", kdf)
	return nil
}
