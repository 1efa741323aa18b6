// Package exporter provides filesystem-backed implementations of the DAV
// backend contracts. Cards and events are written as .vcf/.ics files under an
// output directory, which is what the CLI binaries use when no real DAV
// server is wired in.
package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

const (
	contactsDir = "contacts"
	calendarDir = "calendar"
)

// FileBackend implements both backend contracts against a directory tree.
// Every user shares a single "default" collection per kind.
type FileBackend struct {
	root string
}

// New creates a file backend rooted at dir.
func New(dir string) (*FileBackend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("exporter: output directory is required")
	}
	for _, sub := range []string{contactsDir, calendarDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("exporter: create %s: %w", sub, err)
		}
	}
	return &FileBackend{root: dir}, nil
}

// AddressBooksForUser reports the single shared contacts collection.
func (b *FileBackend) AddressBooksForUser(ctx context.Context, userID string) ([]interfaces.Collection, error) {
	return []interfaces.Collection{{ID: 1, URI: "default"}}, nil
}

// Cards lists the card files already exported.
func (b *FileBackend) Cards(ctx context.Context, bookID int64) ([]interfaces.Object, error) {
	return b.list(contactsDir)
}

// CreateCard writes a new card file.
func (b *FileBackend) CreateCard(ctx context.Context, bookID int64, uri string, data []byte) error {
	return b.write(contactsDir, uri, data)
}

// UpdateCard overwrites an existing card file.
func (b *FileBackend) UpdateCard(ctx context.Context, bookID int64, uri string, data []byte) error {
	return b.write(contactsDir, uri, data)
}

// CalendarsForUser reports the single shared calendar collection.
func (b *FileBackend) CalendarsForUser(ctx context.Context, userID string) ([]interfaces.Collection, error) {
	return []interfaces.Collection{{ID: 1, URI: "default"}}, nil
}

// CalendarObjects lists the event files already exported.
func (b *FileBackend) CalendarObjects(ctx context.Context, calendarID int64) ([]interfaces.Object, error) {
	return b.list(calendarDir)
}

// CreateCalendarObject writes a new event file.
func (b *FileBackend) CreateCalendarObject(ctx context.Context, calendarID int64, uri string, data []byte) error {
	return b.write(calendarDir, uri, data)
}

// UpdateCalendarObject overwrites an existing event file.
func (b *FileBackend) UpdateCalendarObject(ctx context.Context, calendarID int64, uri string, data []byte) error {
	return b.write(calendarDir, uri, data)
}

func (b *FileBackend) list(sub string) ([]interfaces.Object, error) {
	entries, err := os.ReadDir(filepath.Join(b.root, sub))
	if err != nil {
		return nil, fmt.Errorf("exporter: list %s: %w", sub, err)
	}
	out := make([]interfaces.Object, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		out = append(out, interfaces.Object{URI: entry.Name()})
	}
	return out, nil
}

func (b *FileBackend) write(sub, uri string, data []byte) error {
	// Collection uris come from metadata; keep writes inside the export tree.
	name := filepath.Base(uri)
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("exporter: invalid object uri %q", uri)
	}
	path := filepath.Join(b.root, sub, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("exporter: write %s: %w", name, err)
	}
	return nil
}

var (
	_ interfaces.AddressBookBackend = (*FileBackend)(nil)
	_ interfaces.CalendarBackend    = (*FileBackend)(nil)
)
