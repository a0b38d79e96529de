package validation

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/Davincible/gfmat/pkg/crypto/blas"
)

var (
	hexPattern  = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	pathPattern = regexp.MustCompile(`^[mM](/\d+['hH]?)*$`)

	matrixSeparators = strings.NewReplacer(" ", "", "\t", "", "\n", "", ",", "", ";", "", ":", "")
)

func ValidateHex(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return fmt.Errorf("hex string cannot be empty")
	}

	if len(input)%2 != 0 {
		return fmt.Errorf("hex string must have even length")
	}

	if !hexPattern.MatchString(input) {
		return fmt.Errorf("invalid hex characters")
	}

	return nil
}

// ValidateDimension checks n against the solver's capacity.
func ValidateDimension(n int) error {
	if n < 1 || n > blas.MaxSolveDim {
		return fmt.Errorf("dimension must be between 1 and %d (got %d)", blas.MaxSolveDim, n)
	}
	return nil
}

// ValidateMatrixHex decodes a row-major h×w matrix. Rows may be separated by
// whitespace, commas, semicolons or colons.
func ValidateMatrixHex(input string, h, w int) ([]byte, error) {
	if h < 1 || w < 1 {
		return nil, fmt.Errorf("matrix shape %dx%d is empty", h, w)
	}

	compact := matrixSeparators.Replace(input)
	if err := ValidateHex(compact); err != nil {
		return nil, fmt.Errorf("invalid matrix: %w", err)
	}

	data, err := hex.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("failed to decode matrix: %w", err)
	}

	if len(data) != h*w {
		return nil, fmt.Errorf("matrix has %d bytes, expected %dx%d = %d", len(data), h, w, h*w)
	}

	return data, nil
}

// ValidateVectorHex decodes a vector of exactly n bytes.
func ValidateVectorHex(input string, n int) ([]byte, error) {
	data, err := ValidateMatrixHex(input, 1, n)
	if err != nil {
		return nil, fmt.Errorf("invalid vector: %w", err)
	}
	return data, nil
}

func ValidateShare(share string) error {
	if err := ValidateHex(share); err != nil {
		return fmt.Errorf("invalid share format: %w", err)
	}

	if len(strings.TrimSpace(share)) < 4 {
		return fmt.Errorf("share is too short")
	}

	return nil
}

func ValidateMnemonic(words string) error {
	words = strings.TrimSpace(words)
	if words == "" {
		return fmt.Errorf("mnemonic cannot be empty")
	}

	wordList := strings.Fields(words)
	switch len(wordList) {
	case 12, 15, 18, 21, 24:
	default:
		return fmt.Errorf("mnemonic must have 12, 15, 18, 21, or 24 words (got %d)", len(wordList))
	}

	for i, word := range wordList {
		if len(word) < 3 || len(word) > 8 {
			return fmt.Errorf("word %d has invalid length: %s", i+1, word)
		}

		for _, ch := range word {
			if ch < 'a' || ch > 'z' {
				return fmt.Errorf("word %d contains invalid characters: %s", i+1, word)
			}
		}
	}

	return nil
}

func ValidateDerivationPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("derivation path cannot be empty")
	}

	if !pathPattern.MatchString(path) {
		return fmt.Errorf("invalid derivation path format")
	}

	return nil
}

func ValidateSplitParams(parts, threshold int) error {
	if parts < 2 || parts > 255 {
		return fmt.Errorf("parts must be between 2 and 255 (got %d)", parts)
	}

	if threshold < 2 || threshold > parts {
		return fmt.Errorf("threshold must be between 2 and %d (got %d)", parts, threshold)
	}

	return nil
}

// ValidatePassphrase checks a key-file passphrase. minLength of zero allows
// an empty passphrase.
func ValidatePassphrase(passphrase string, minLength int) error {
	if len(passphrase) < minLength {
		return fmt.Errorf("passphrase must be at least %d characters", minLength)
	}

	if len(passphrase) > 256 {
		return fmt.Errorf("passphrase too long (max 256 characters)")
	}

	if i := strings.IndexByte(passphrase, 0); i >= 0 {
		return fmt.Errorf("passphrase contains null character at position %d", i)
	}

	return nil
}

func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n")
}
