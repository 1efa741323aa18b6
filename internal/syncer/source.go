package syncer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

// FileDocument adapts a file on disk to the DocumentSource contract. The
// mime type is derived from the extension so the orchestrator's markdown
// gate works without sniffing content.
type FileDocument struct {
	path string
}

// NewFileDocument wraps a filesystem path.
func NewFileDocument(path string) *FileDocument {
	return &FileDocument{path: path}
}

// MimeType reports text/markdown for .md and .markdown files.
func (f *FileDocument) MimeType() string {
	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".md", ".markdown":
		return interfaces.MarkdownMimeType
	default:
		return "application/octet-stream"
	}
}

// Name returns the file's base name.
func (f *FileDocument) Name() string {
	return filepath.Base(f.path)
}

// Path returns the full filesystem path.
func (f *FileDocument) Path() string {
	return f.path
}

// Content reads the file.
func (f *FileDocument) Content() ([]byte, error) {
	return os.ReadFile(f.path)
}

var _ interfaces.DocumentSource = (*FileDocument)(nil)
