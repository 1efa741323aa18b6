// Package mdsync turns markdown vault documents with YAML frontmatter into
// contact cards and calendar events, pushed into pluggable address book and
// calendar backends.
package mdsync

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-mdsync/internal/commands"
	syncercmd "github.com/goliatone/go-mdsync/internal/commands/syncer"
	"github.com/goliatone/go-mdsync/internal/configstore"
	"github.com/goliatone/go-mdsync/internal/logging"
	"github.com/goliatone/go-mdsync/internal/logging/console"
	"github.com/goliatone/go-mdsync/internal/logging/gologger"
	"github.com/goliatone/go-mdsync/internal/settings"
	"github.com/goliatone/go-mdsync/internal/syncer"
	"github.com/goliatone/go-mdsync/internal/watcher"
	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

// SyncService exports the orchestrator contract for module consumers.
type SyncService = syncer.Service

// SyncSettings exports the loaded configuration snapshot type.
type SyncSettings = settings.Sync

// ErrBackendsRequired indicates the module was built with neither an address
// book nor a calendar backend.
var ErrBackendsRequired = errors.New("mdsync: at least one of the address book or calendar backends is required")

// Option overrides a module collaborator during construction.
type Option func(*Module)

// WithAddressBookBackend injects the contact persistence backend.
func WithAddressBookBackend(backend interfaces.AddressBookBackend) Option {
	return func(m *Module) {
		m.books = backend
	}
}

// WithCalendarBackend injects the calendar persistence backend.
func WithCalendarBackend(backend interfaces.CalendarBackend) Option {
	return func(m *Module) {
		m.calendars = backend
	}
}

// WithSettingsStore overrides the settings store built from the config.
func WithSettingsStore(store interfaces.SettingsStore) Option {
	return func(m *Module) {
		m.store = store
	}
}

// WithLoggerProvider overrides the logger provider built from the config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.loggers = provider
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Module) {
		m.clock = clock
	}
}

// Module is the top level sync runtime facade. It owns the settings store,
// the orchestrator, and the command handlers; hosts supply the DAV-style
// backends through options.
type Module struct {
	cfg       Config
	store     interfaces.SettingsStore
	books     interfaces.AddressBookBackend
	calendars interfaces.CalendarBackend
	loggers   interfaces.LoggerProvider
	clock     func() time.Time

	db      *bun.DB
	service *syncer.Service
}

// New constructs a sync module from the provided configuration and options.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.books == nil && m.calendars == nil {
		return nil, ErrBackendsRequired
	}

	if m.loggers == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.loggers = provider
	}

	if m.store == nil {
		store, db, err := buildSettingsStore(cfg.Database)
		if err != nil {
			return nil, err
		}
		m.store = store
		m.db = db
	}

	service, err := syncer.NewService(syncer.ServiceConfig{
		Settings:     m.store,
		AddressBooks: m.books,
		Calendars:    m.calendars,
		Logger:       logging.SyncerLogger(m.loggers),
		Clock:        m.clock,
	})
	if err != nil {
		return nil, err
	}
	m.service = service

	return m, nil
}

// Syncer returns the configured sync orchestrator.
func (m *Module) Syncer() *SyncService {
	return m.service
}

// SettingsStore exposes the underlying settings store so hosts can persist
// configuration through the same keys the pipeline reads.
func (m *Module) SettingsStore() interfaces.SettingsStore {
	return m.store
}

// LoadSettings reads the current configuration snapshot.
func (m *Module) LoadSettings(ctx context.Context) (*SyncSettings, error) {
	return settings.Load(ctx, m.store, logging.SettingsLogger(m.loggers))
}

// SyncDocumentHandler returns a command handler that processes one file.
func (m *Module) SyncDocumentHandler() *syncercmd.SyncDocumentHandler {
	return syncercmd.NewSyncDocumentHandler(m.service, commands.CommandLogger(m.loggers, "syncer"))
}

// SyncDirectoryHandler returns a command handler that walks a vault tree.
func (m *Module) SyncDirectoryHandler() *syncercmd.SyncDirectoryHandler {
	return syncercmd.NewSyncDirectoryHandler(m.service, commands.CommandLogger(m.loggers, "syncer"))
}

// Watcher builds a filesystem watcher bound to the configured vault path.
func (m *Module) Watcher() (*watcher.Watcher, error) {
	return watcher.New(watcher.Config{
		VaultPath: m.cfg.Vault.Path,
		Service:   m.service,
		Debounce:  m.cfg.Watcher.Debounce,
		Logger:    logging.WatcherLogger(m.loggers),
	})
}

// Close releases the sqlite handle when the module owns one.
func (m *Module) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		return console.NewProvider(console.Options{}), nil
	case "gologger":
		format := cfg.Format
		if strings.EqualFold(format, "text") {
			format = "console"
		}
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case "noop":
		return noopProvider{}, nil
	default:
		return nil, ErrLoggingProviderUnknown
	}
}

func buildSettingsStore(cfg DatabaseConfig) (interfaces.SettingsStore, *bun.DB, error) {
	if !cfg.Enabled {
		return configstore.NewMemoryStore(), nil, nil
	}

	sqldb, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	store := configstore.NewBunStore(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
