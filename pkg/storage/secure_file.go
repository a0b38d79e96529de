package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"github.com/Davincible/gfmat/pkg/secure"
)

const (
	SaltSize   = 32
	KeySize    = 32
	Iterations = 100000

	KDFPBKDF2   = "pbkdf2"
	KDFArgon2id = "argon2id"

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var (
	// ErrDecrypt is returned when the password is wrong or the file was
	// tampered with.
	ErrDecrypt = errors.New("failed to decrypt")

	ErrUnknownKDF = errors.New("unknown key derivation function")
)

type SecureStorage struct {
	filepath string
	kdf      string
}

type EncryptedData struct {
	KDF        string `json:"kdf"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// NewSecureStorage returns storage at path that encrypts new files with kdf.
// Existing files are opened with whatever KDF they record.
func NewSecureStorage(path, kdf string) (*SecureStorage, error) {
	if kdf == "" {
		kdf = KDFPBKDF2
	}
	if err := ValidateKDF(kdf); err != nil {
		return nil, err
	}
	return &SecureStorage{
		filepath: path,
		kdf:      kdf,
	}, nil
}

func ValidateKDF(kdf string) error {
	switch kdf {
	case KDFPBKDF2, KDFArgon2id:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKDF, kdf)
	}
}

// newAEAD derives the file key and pairs it with the cipher that goes with
// the KDF: AES-256-GCM for pbkdf2, ChaCha20-Poly1305 for argon2id.
func newAEAD(kdf string, password, salt []byte) (cipher.AEAD, error) {
	switch kdf {
	case KDFPBKDF2:
		key := pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
		defer secure.Zero(key)

		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return gcm, nil

	case KDFArgon2id:
		key := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
		defer secure.Zero(key)

		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cipher: %w", err)
		}
		return aead, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, kdf)
	}
}

func (s *SecureStorage) Save(data []byte, password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	salt, err := secure.SecureRandom(SaltSize)
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := newAEAD(s.kdf, password, salt)
	if err != nil {
		return err
	}

	nonce, err := secure.SecureRandom(aead.NonceSize())
	if err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	encrypted := EncryptedData{
		KDF:        s.kdf,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, data, []byte(s.kdf)),
	}

	jsonData, err := json.Marshal(encrypted)
	if err != nil {
		return fmt.Errorf("failed to marshal encrypted data: %w", err)
	}

	dir := filepath.Dir(s.filepath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(s.filepath, jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *SecureStorage) Load(password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}

	jsonData, err := os.ReadFile(s.filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var encrypted EncryptedData
	if err := json.Unmarshal(jsonData, &encrypted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal encrypted data: %w", err)
	}

	aead, err := newAEAD(encrypted.KDF, password, encrypted.Salt)
	if err != nil {
		return nil, err
	}
	if len(encrypted.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: bad nonce length", ErrDecrypt)
	}

	plaintext, err := aead.Open(nil, encrypted.Nonce, encrypted.Ciphertext, []byte(encrypted.KDF))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	return plaintext, nil
}

func (s *SecureStorage) Exists() bool {
	_, err := os.Stat(s.filepath)
	return err == nil
}

func (s *SecureStorage) Delete() error {
	if !s.Exists() {
		return nil
	}

	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return fmt.Errorf("failed to read file for secure deletion: %w", err)
	}

	noise, err := secure.SecureRandom(len(data))
	if err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	if err := os.WriteFile(s.filepath, noise, 0600); err != nil {
		return fmt.Errorf("failed to overwrite file: %w", err)
	}

	return os.Remove(s.filepath)
}
