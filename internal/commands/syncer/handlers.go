package syncercmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mdsync/internal/commands"
	"github.com/goliatone/go-mdsync/internal/logging"
	"github.com/goliatone/go-mdsync/internal/syncer"
	"github.com/goliatone/go-mdsync/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	syncDocumentOperation  = "syncer.sync_document"
	syncDirectoryOperation = "syncer.sync_directory"
)

// ErrServiceRequired is returned when a handler is built without a sync service.
var ErrServiceRequired = errors.New("syncer command: service is required")

var (
	_ command.Commander[SyncDocumentCommand]  = (*SyncDocumentHandler)(nil)
	_ command.Commander[SyncDirectoryCommand] = (*SyncDirectoryHandler)(nil)
)

// SyncDocumentHandler processes one markdown file through the sync pipeline.
type SyncDocumentHandler struct {
	inner *commands.Handler[SyncDocumentCommand]
}

// NewSyncDocumentHandler creates a handler bound to the supplied sync service.
func NewSyncDocumentHandler(service *syncer.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncDocumentCommand]) *SyncDocumentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncDocumentCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		return service.ProcessDocument(ctx, syncer.NewFileDocument(msg.Path))
	}

	handlerOpts := append([]commands.HandlerOption[SyncDocumentCommand]{
		commands.WithLogger[SyncDocumentCommand](baseLogger),
		commands.WithOperation[SyncDocumentCommand](syncDocumentOperation),
	}, opts...)

	return &SyncDocumentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *SyncDocumentHandler) Execute(ctx context.Context, msg SyncDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler walks a vault directory and processes every markdown
// file found there.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied sync service.
func NewSyncDirectoryHandler(service *syncer.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		return walkMarkdown(ctx, service, baseLogger, msg.Directory, msg.Pattern)
	}

	handlerOpts := append([]commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncDirectoryOperation),
	}, opts...)

	return &SyncDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// walkMarkdown visits every .md file under root. Documents are processed one
// at a time and a failing document does not stop the walk; failures are
// logged and the first one is reported at the end.
func walkMarkdown(ctx context.Context, service *syncer.Service, logger interfaces.Logger, root, pattern string) error {
	var firstErr error

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		if pattern != "" {
			matched, matchErr := filepath.Match(pattern, d.Name())
			if matchErr != nil {
				return fmt.Errorf("syncer command: invalid pattern %q: %w", pattern, matchErr)
			}
			if !matched {
				return nil
			}
		}
		if err := service.ProcessDocument(ctx, syncer.NewFileDocument(path)); err != nil {
			logger.Error("document sync failed", "path", path, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return firstErr
}
