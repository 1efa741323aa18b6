package mdsync

import "github.com/goliatone/go-mdsync/internal/runtimeconfig"

var (
	ErrVaultPathRequired      = runtimeconfig.ErrVaultPathRequired
	ErrDatabasePathRequired   = runtimeconfig.ErrDatabasePathRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	VaultConfig    = runtimeconfig.VaultConfig
	DatabaseConfig = runtimeconfig.DatabaseConfig
	WatcherConfig  = runtimeconfig.WatcherConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns a configuration suitable for local CLI use.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
