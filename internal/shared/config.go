package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Lending  LendingConfig  `toml:"lending"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// CatalogConfig controls the item registry.
type CatalogConfig struct {
	DuplicateIDs string `toml:"duplicate_ids"`
	Seed         bool   `toml:"seed"`
}

// LendingConfig controls the lending ledger.
type LendingConfig struct {
	ReturnPolicy     string `toml:"return_policy"`
	DuplicateMembers string `toml:"duplicate_members"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Driver       string `toml:"driver"`
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

const (
	DuplicateReject    = "reject"
	DuplicateOverwrite = "overwrite"
	DuplicateAllow     = "allow"

	ReturnExplicit = "explicit"
	ReturnOldest   = "oldest"

	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their defaults from the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// SaveConfig encodes config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	return WriteConfigFile(path, false)
}

// WriteConfigFile writes the embedded example config to path, replacing an
// existing file only when overwrite is set.
func WriteConfigFile(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains([]string{DuplicateReject, DuplicateOverwrite}, c.Catalog.DuplicateIDs) {
		return fmt.Errorf("%w: catalog.duplicate_ids must be %q or %q, got %q",
			ErrInvalidConfig, DuplicateReject, DuplicateOverwrite, c.Catalog.DuplicateIDs)
	}
	if !slices.Contains([]string{ReturnExplicit, ReturnOldest}, c.Lending.ReturnPolicy) {
		return fmt.Errorf("%w: lending.return_policy must be %q or %q, got %q",
			ErrInvalidConfig, ReturnExplicit, ReturnOldest, c.Lending.ReturnPolicy)
	}
	if !slices.Contains([]string{DuplicateReject, DuplicateAllow}, c.Lending.DuplicateMembers) {
		return fmt.Errorf("%w: lending.duplicate_members must be %q or %q, got %q",
			ErrInvalidConfig, DuplicateReject, DuplicateAllow, c.Lending.DuplicateMembers)
	}
	if !slices.Contains([]string{DriverSQLite, DriverPostgres, DriverPgx}, c.Database.Driver) {
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
