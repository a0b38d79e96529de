// Package config provides configuration management for the gfmat CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Davincible/gfmat/pkg/crypto/blas"
	"github.com/Davincible/gfmat/pkg/crypto/gf256"
	"github.com/Davincible/gfmat/pkg/crypto/mnemonic"
	"github.com/Davincible/gfmat/pkg/storage"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Security SecurityConfig  `json:"security"`
	Storage  StorageConfig   `json:"storage"`
	UI       UIConfig        `json:"ui"`
}

// DefaultSettings contains default values for common operations
type DefaultSettings struct {
	Backend        string `json:"backend"`         // Default: reference
	Dimension      int    `json:"dimension"`       // Default: 32
	WordCount      int    `json:"word_count"`      // Default: 24
	DerivationPath string `json:"derivation_path"` // Default: m/0'
}

type SecurityConfig struct {
	MinPassphraseLength int    `json:"min_passphrase_length"`
	WipeMemory          bool   `json:"wipe_memory"`
	KDF                 string `json:"kdf"` // pbkdf2 or argon2id
}

type StorageConfig struct {
	DefaultPath     string `json:"default_path"`
	FilePermissions string `json:"file_permissions"`
}

type UIConfig struct {
	UseColor bool `json:"use_color"`
}

// KeyProfile records a key file created by keygen so it can be referred to
// by name.
type KeyProfile struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	Dimension      int    `json:"dimension"`
	DerivationPath string `json:"derivation_path"`
	Fingerprint    string `json:"fingerprint"`
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
	profiles   map[string]*KeyProfile
}

// NewConfigManager creates a configuration manager at the default path,
// writing a default config on first run.
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

func NewConfigManagerAt(configPath string) (*ConfigManager, error) {
	cm := &ConfigManager{
		configPath: configPath,
		profiles:   make(map[string]*KeyProfile),
	}

	if err := cm.LoadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	if err := cm.LoadProfiles(); err != nil {
		cm.profiles = make(map[string]*KeyProfile)
	}

	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Backend:        gf256.Reference{}.Name(),
			Dimension:      32,
			WordCount:      24,
			DerivationPath: "m/0'",
		},
		Security: SecurityConfig{
			MinPassphraseLength: 8,
			WipeMemory:          true,
			KDF:                 storage.KDFPBKDF2,
		},
		Storage: StorageConfig{
			DefaultPath:     "~/.gfmat/keys",
			FilePermissions: "0600",
		},
		UI: UIConfig{
			UseColor: true,
		},
	}
}

// Validate checks that every named setting refers to something that exists.
func (c *Config) Validate() error {
	if _, err := gf256.Lookup(c.Defaults.Backend); err != nil {
		return fmt.Errorf("defaults.backend: %w", err)
	}
	if c.Defaults.Dimension < 1 || c.Defaults.Dimension > blas.MaxSolveDim {
		return fmt.Errorf("defaults.dimension must be between 1 and %d, got %d", blas.MaxSolveDim, c.Defaults.Dimension)
	}
	if !mnemonic.ValidateWordCount(c.Defaults.WordCount) {
		return fmt.Errorf("defaults.word_count must be 12, 15, 18, 21 or 24, got %d", c.Defaults.WordCount)
	}
	if err := storage.ValidateKDF(c.Security.KDF); err != nil {
		return fmt.Errorf("security.kdf: %w", err)
	}
	if c.Security.MinPassphraseLength < 0 {
		return fmt.Errorf("security.min_passphrase_length cannot be negative")
	}
	if _, err := c.Storage.Permissions(); err != nil {
		return fmt.Errorf("storage.file_permissions: %w", err)
	}
	return nil
}

// Permissions parses FilePermissions as an octal mode.
func (s StorageConfig) Permissions() (os.FileMode, error) {
	mode, err := strconv.ParseUint(s.FilePermissions, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: %w", s.FilePermissions, err)
	}
	if mode&^0777 != 0 {
		return 0, fmt.Errorf("invalid mode %q", s.FilePermissions)
	}
	return os.FileMode(mode), nil
}

// KeyDir returns DefaultPath with a leading ~ expanded.
func (s StorageConfig) KeyDir() (string, error) {
	if s.DefaultPath == "~" || strings.HasPrefix(s.DefaultPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(s.DefaultPath, "~")), nil
	}
	return s.DefaultPath, nil
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cm.configPath, err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

func (cm *ConfigManager) SetConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	cm.config = config
	return nil
}

func (cm *ConfigManager) Path() string {
	return cm.configPath
}

func (cm *ConfigManager) profilesPath() string {
	return filepath.Join(filepath.Dir(cm.configPath), "profiles.json")
}

// LoadProfiles loads saved key profiles
func (cm *ConfigManager) LoadProfiles() error {
	data, err := os.ReadFile(cm.profilesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	profiles := make(map[string]*KeyProfile)
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("failed to parse profiles: %w", err)
	}

	cm.profiles = profiles
	return nil
}

// SaveProfiles saves key profiles to disk
func (cm *ConfigManager) SaveProfiles() error {
	data, err := json.MarshalIndent(cm.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.WriteFile(cm.profilesPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write profiles: %w", err)
	}

	return nil
}

func (cm *ConfigManager) AddProfile(profile *KeyProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	cm.profiles[profile.Name] = profile
	return cm.SaveProfiles()
}

func (cm *ConfigManager) GetProfile(name string) (*KeyProfile, error) {
	profile, exists := cm.profiles[name]
	if !exists {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}
	return profile, nil
}

// ListProfiles returns all profiles sorted by name
func (cm *ConfigManager) ListProfiles() []*KeyProfile {
	profiles := make([]*KeyProfile, 0, len(cm.profiles))
	for _, profile := range cm.profiles {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles
}

func (cm *ConfigManager) DeleteProfile(name string) error {
	if _, exists := cm.profiles[name]; !exists {
		return fmt.Errorf("profile '%s' not found", name)
	}

	delete(cm.profiles, name)
	return cm.SaveProfiles()
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("GFMAT_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gfmat", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "gfmat", "config.json"), nil
}
