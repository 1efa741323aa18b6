package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

// ErrVaultPathRequired indicates the watcher was enabled without a vault path.
var ErrVaultPathRequired = errors.New("mdsync config: vault path is required when the watcher is enabled")

// ErrDatabasePathRequired indicates the sqlite settings store has no file path.
var ErrDatabasePathRequired = errors.New("mdsync config: database path is required when the sqlite store is enabled")

// ErrLoggingProviderUnknown indicates an unsupported logging provider name.
var ErrLoggingProviderUnknown = errors.New("mdsync config: logging provider is invalid")

// ErrLoggingLevelInvalid indicates an unsupported logging level name.
var ErrLoggingLevelInvalid = errors.New("mdsync config: logging level is invalid")

// ErrLoggingFormatInvalid indicates an unsupported logging format name.
var ErrLoggingFormatInvalid = errors.New("mdsync config: logging format is invalid")

// Config aggregates runtime options for the sync module. Fields intentionally
// use simple types so host applications can load them from any source.
type Config struct {
	Vault    VaultConfig
	Database DatabaseConfig
	Watcher  WatcherConfig
	Logging  LoggingConfig
}

// VaultConfig locates the markdown document tree.
type VaultConfig struct {
	Path string
}

// DatabaseConfig captures the sqlite-backed settings store location. When
// Enabled is false the module runs against an in-memory store.
type DatabaseConfig struct {
	Enabled bool
	Path    string
}

// WatcherConfig controls the filesystem watcher.
type WatcherConfig struct {
	Enabled  bool
	Debounce time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns a configuration suitable for local CLI use.
func DefaultConfig() Config {
	return Config{
		Vault: VaultConfig{Path: "vault"},
		Watcher: WatcherConfig{
			Debounce: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "text",
		},
	}
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if c.Watcher.Enabled && strings.TrimSpace(c.Vault.Path) == "" {
		return ErrVaultPathRequired
	}
	if c.Database.Enabled && strings.TrimSpace(c.Database.Path) == "" {
		return ErrDatabasePathRequired
	}
	return c.Logging.Validate()
}

// Validate checks the logging options against the supported providers.
func (c LoggingConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "", "console", "gologger", "noop":
	default:
		return ErrLoggingProviderUnknown
	}
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "text", "json":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}
