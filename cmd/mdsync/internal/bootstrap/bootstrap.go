// Package bootstrap wires CLI flags and the optional TOML config file into a
// running sync module. Precedence: flags > config file > built-in defaults.
package bootstrap

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mdsync "github.com/goliatone/go-mdsync"
	"github.com/goliatone/go-mdsync/internal/exporter"
)

// FileConfig is the on-disk TOML shape.
type FileConfig struct {
	Vault    vaultSection    `toml:"vault"`
	Database databaseSection `toml:"database"`
	Watcher  watcherSection  `toml:"watcher"`
	Logging  loggingSection  `toml:"logging"`
	Export   exportSection   `toml:"export"`
}

type vaultSection struct {
	Path string `toml:"path"`
}

type databaseSection struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type watcherSection struct {
	Enabled  bool   `toml:"enabled"`
	Debounce string `toml:"debounce"`
}

type loggingSection struct {
	Provider string `toml:"provider"`
	Level    string `toml:"level"`
	Format   string `toml:"format"`
}

type exportSection struct {
	Dir string `toml:"dir"`
}

// Options captures the CLI-level overrides shared by the binaries.
type Options struct {
	ConfigPath string
	VaultPath  string
	ExportDir  string
}

// Module bundles the constructed runtime pieces a binary needs.
type Module struct {
	Module    *mdsync.Module
	Config    mdsync.Config
	ExportDir string
}

// BuildModule loads configuration and constructs a sync module backed by the
// filesystem exporter.
func BuildModule(opts Options) (*Module, error) {
	cfg, exportDir, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	backend, err := exporter.New(exportDir)
	if err != nil {
		return nil, err
	}

	module, err := mdsync.New(cfg,
		mdsync.WithAddressBookBackend(backend),
		mdsync.WithCalendarBackend(backend),
	)
	if err != nil {
		return nil, err
	}

	return &Module{Module: module, Config: cfg, ExportDir: exportDir}, nil
}

func loadConfig(opts Options) (mdsync.Config, string, error) {
	cfg := mdsync.DefaultConfig()
	exportDir := "export"

	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		var file FileConfig
		if _, err := toml.DecodeFile(path, &file); err != nil {
			if os.IsNotExist(err) {
				return cfg, "", fmt.Errorf("bootstrap: config file %s not found", path)
			}
			return cfg, "", fmt.Errorf("bootstrap: parse %s: %w", path, err)
		}
		applyFileConfig(&cfg, &exportDir, file)
	}

	if opts.VaultPath != "" {
		cfg.Vault.Path = opts.VaultPath
	}
	if opts.ExportDir != "" {
		exportDir = opts.ExportDir
	}

	return cfg, exportDir, nil
}

func applyFileConfig(cfg *mdsync.Config, exportDir *string, file FileConfig) {
	if file.Vault.Path != "" {
		cfg.Vault.Path = file.Vault.Path
	}
	cfg.Database.Enabled = file.Database.Enabled
	if file.Database.Path != "" {
		cfg.Database.Path = file.Database.Path
	}
	cfg.Watcher.Enabled = file.Watcher.Enabled
	if file.Watcher.Debounce != "" {
		if d, err := time.ParseDuration(file.Watcher.Debounce); err == nil {
			cfg.Watcher.Debounce = d
		}
	}
	if file.Logging.Provider != "" {
		cfg.Logging.Provider = file.Logging.Provider
	}
	if file.Logging.Level != "" {
		cfg.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		cfg.Logging.Format = file.Logging.Format
	}
	if file.Export.Dir != "" {
		*exportDir = file.Export.Dir
	}
}
