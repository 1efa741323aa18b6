package runtimeconfig

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateWatcherNeedsVault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Watcher.Enabled = true
	cfg.Vault.Path = "  "
	if err := cfg.Validate(); err != ErrVaultPathRequired {
		t.Fatalf("expected ErrVaultPathRequired, got %v", err)
	}
}

func TestValidateSqliteNeedsPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Enabled = true
	if err := cfg.Validate(); err != ErrDatabasePathRequired {
		t.Fatalf("expected ErrDatabasePathRequired, got %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); err != ErrLoggingProviderUnknown {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err != ErrLoggingLevelInvalid {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err != ErrLoggingFormatInvalid {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
