package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Davincible/gfmat/pkg/crypto/linmap"
	"github.com/Davincible/gfmat/pkg/secure"
)

// KeyStorage keeps one linear map in an encrypted file.
type KeyStorage struct {
	storage *SecureStorage
}

type StoredKey struct {
	Map         []byte            `json:"map"`
	Dimension   int               `json:"dimension"`
	Fingerprint string            `json:"fingerprint"`
	Path        string            `json:"path,omitempty"`
	Created     time.Time         `json:"created"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func NewKeyStorage(path, kdf string) (*KeyStorage, error) {
	s, err := NewSecureStorage(path, kdf)
	if err != nil {
		return nil, err
	}
	return &KeyStorage{storage: s}, nil
}

func (s *KeyStorage) SaveMap(m *linmap.Map, derivationPath string, password []byte) error {
	encoded, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode map: %w", err)
	}
	defer secure.Zero(encoded)

	stored := StoredKey{
		Map:         encoded,
		Dimension:   m.N,
		Fingerprint: m.Fingerprint(),
		Path:        derivationPath,
		Created:     time.Now().UTC(),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}
	defer secure.Zero(data)

	return s.storage.Save(data, password)
}

func (s *KeyStorage) LoadMap(password []byte) (*linmap.Map, *StoredKey, error) {
	data, err := s.storage.Load(password)
	if err != nil {
		return nil, nil, err
	}
	defer secure.Zero(data)

	var stored StoredKey
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal key: %w", err)
	}

	m := &linmap.Map{}
	if err := m.UnmarshalBinary(stored.Map); err != nil {
		return nil, nil, fmt.Errorf("failed to decode map: %w", err)
	}
	secure.Zero(stored.Map)
	stored.Map = nil

	if m.Fingerprint() != stored.Fingerprint {
		m.Destroy()
		return nil, nil, fmt.Errorf("fingerprint mismatch: file says %s, map is %s", stored.Fingerprint, m.Fingerprint())
	}

	return m, &stored, nil
}

func (s *KeyStorage) Exists() bool {
	return s.storage.Exists()
}

func (s *KeyStorage) Delete() error {
	return s.storage.Delete()
}
