// Package hdkey derives independent child seeds from one master seed along
// BIP-32 paths, so several linear maps can be backed up by a single phrase.
package hdkey

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

const HardenedKeyOffset = uint32(0x80000000)

type HDKey struct {
	key  *bip32.Key
	path string
}

func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) < 16 {
		return nil, fmt.Errorf("seed must be at least 16 bytes")
	}

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	return &HDKey{
		key:  masterKey,
		path: "m",
	}, nil
}

func (h *HDKey) DerivePath(path string) (*HDKey, error) {
	path = strings.TrimSpace(path)
	if path == "m" || path == "M" {
		return h, nil
	}
	if !strings.HasPrefix(path, "m/") && !strings.HasPrefix(path, "M/") {
		return nil, fmt.Errorf("path must start with 'm/' or 'M/'")
	}

	segments := strings.Split(path, "/")[1:]
	current := h

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		hardened := strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h")
		if hardened {
			segment = strings.TrimSuffix(strings.TrimSuffix(segment, "'"), "h")
		}

		index, err := strconv.ParseUint(segment, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment '%s': %w", segment, err)
		}

		current, err = current.DeriveChild(uint32(index), hardened)
		if err != nil {
			return nil, err
		}
	}

	return &HDKey{
		key:  current.key,
		path: "m" + path[1:],
	}, nil
}

// DeriveChild derives the direct child at index.
func (h *HDKey) DeriveChild(index uint32, hardened bool) (*HDKey, error) {
	childIndex := index
	suffix := ""
	if hardened {
		childIndex += HardenedKeyOffset
		suffix = "'"
	}

	child, err := h.key.NewChildKey(childIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to derive child key at index %d: %w", childIndex, err)
	}

	return &HDKey{
		key:  child,
		path: fmt.Sprintf("%s/%d%s", h.path, index, suffix),
	}, nil
}

// Seed returns the 32-byte private key of this node, used as seed material
// for a linear map.
func (h *HDKey) Seed() []byte {
	return append([]byte(nil), h.key.Key...)
}

func (h *HDKey) Fingerprint() string {
	return hex.EncodeToString(h.key.FingerPrint)
}

func (h *HDKey) ExtendedPrivateKey() string {
	return h.key.String()
}

func (h *HDKey) Path() string {
	return h.path
}

func (h *HDKey) IsPrivate() bool {
	return h.key.IsPrivate
}
