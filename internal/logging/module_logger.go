package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

const (
	rootModule     = "mdsync"
	metadataModule = "mdsync.metadata"
	syncerModule   = "mdsync.syncer"
	settingsModule = "mdsync.settings"
	watcherModule  = "mdsync.watcher"
)

const (
	fieldDocument = "document"
	fieldUserID   = "user_id"
	fieldConfigID = "config_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MetadataLogger returns the logger namespace reserved for the metadata parser.
func MetadataLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, metadataModule)
}

// SyncerLogger returns the logger namespace reserved for the sync orchestrator.
func SyncerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, syncerModule)
}

// SettingsLogger returns the logger namespace reserved for settings loading.
func SettingsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, settingsModule)
}

// WatcherLogger returns the logger namespace reserved for the vault watcher.
func WatcherLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watcherModule)
}

// WithSyncContext enriches the provided logger with the fields the error
// handling contract requires for diagnosing a skipped sync: document name,
// target user, and config id. Empty values are ignored.
func WithSyncContext(logger interfaces.Logger, document, userID, configID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(document); trimmed != "" {
		fields[fieldDocument] = trimmed
	}
	if trimmed := strings.TrimSpace(userID); trimmed != "" {
		fields[fieldUserID] = trimmed
	}
	if trimmed := strings.TrimSpace(configID); trimmed != "" {
		fields[fieldConfigID] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
