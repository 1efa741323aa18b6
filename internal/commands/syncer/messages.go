package syncercmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	syncDocumentMessageType  = "mdsync.syncer.sync_document"
	syncDirectoryMessageType = "mdsync.syncer.sync_directory"
)

// SyncDocumentCommand processes a single markdown file as one write event.
type SyncDocumentCommand struct {
	// Path selects the markdown file (relative or absolute) to process.
	Path string `json:"path"`
}

// Type implements command.Message.
func (SyncDocumentCommand) Type() string { return syncDocumentMessageType }

// Validate ensures the path input is present before handlers execute.
func (cmd SyncDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("mdsync.syncer.sync_document.path_required", "path is required")
			}
			return nil
		})),
	)
}

// SyncDirectoryCommand walks a vault directory and processes every markdown
// file found there, each as an independent write event.
type SyncDirectoryCommand struct {
	// Directory selects the vault root (relative or absolute) to walk.
	Directory string `json:"directory"`
	// Pattern optionally narrows the walk to matching base names (filepath.Match syntax).
	Pattern string `json:"pattern,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures the directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("mdsync.syncer.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
