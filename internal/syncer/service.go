package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-mdsync/internal/logging"
	"github.com/goliatone/go-mdsync/internal/metadata"
	"github.com/goliatone/go-mdsync/internal/settings"
	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

var (
	// ErrSettingsStoreRequired indicates the service was built without a
	// settings store.
	ErrSettingsStoreRequired = errors.New("syncer: settings store is required")
	// ErrNoAddressBooks indicates the backend returned no address books for
	// the target user.
	ErrNoAddressBooks = errors.New("syncer: no address books found for user")
	// ErrNoCalendars indicates the backend returned no calendars for the
	// target user.
	ErrNoCalendars = errors.New("syncer: no calendars found for user")
)

// ServiceConfig wires the collaborators the orchestrator depends on. Clock
// defaults to time.Now and feeds DTSTAMP values; tests override it for
// deterministic output.
type ServiceConfig struct {
	Settings     interfaces.SettingsStore
	AddressBooks interfaces.AddressBookBackend
	Calendars    interfaces.CalendarBackend
	Logger       interfaces.Logger
	Clock        func() time.Time
}

// Service drives the per-event sync pipeline: parse the document's
// frontmatter, gate on class and filters, then fan out into contact and
// calendar record generation.
type Service struct {
	settingsStore interfaces.SettingsStore
	books         interfaces.AddressBookBackend
	calendars     interfaces.CalendarBackend
	logger        interfaces.Logger
	clock         func() time.Time
}

// NewService constructs the sync orchestrator.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Settings == nil {
		return nil, ErrSettingsStoreRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		settingsStore: cfg.Settings,
		books:         cfg.AddressBooks,
		calendars:     cfg.Calendars,
		logger:        logger,
		clock:         clock,
	}, nil
}

// ProcessDocument handles one write event. Non-markdown nodes are ignored.
// Failures inside a single config or array element are logged and contained;
// only an unreadable document or an unreachable settings store surface as an
// error to the caller.
func (s *Service) ProcessDocument(ctx context.Context, src interfaces.DocumentSource) error {
	if src == nil {
		return nil
	}
	if src.MimeType() != interfaces.MarkdownMimeType {
		return nil
	}

	logger := logging.WithSyncContext(s.logger, src.Name(), "", "")
	logger.Debug("processing markdown write event", "path", src.Path())

	raw, err := src.Content()
	if err != nil {
		logger.Error("document content unavailable", "error", err)
		return fmt.Errorf("syncer: read %s: %w", src.Name(), err)
	}

	text := string(raw)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}

	front, body := metadata.ExtractFrontmatter(text)
	meta := metadata.Parse(front)

	snapshot, err := settings.Load(ctx, s.settingsStore, s.logger)
	if err != nil {
		logger.Error("settings unavailable", "error", err)
		return err
	}

	if snapshot.Contacts.Enabled {
		s.processContacts(ctx, src.Name(), meta, snapshot.Contacts)
	}
	if snapshot.Calendar.Enabled {
		s.processCalendar(ctx, src.Name(), meta, body, snapshot.Calendar)
	}

	logger.Info("markdown document processed")
	return nil
}

// processContacts runs the contact branch: class gate, global filter, then
// every enabled config whose own filter matches. One failing config never
// stops the remaining ones.
func (s *Service) processContacts(ctx context.Context, name string, meta *metadata.Map, cfg settings.ContactSettings) {
	logger := logging.WithSyncContext(s.logger, name, "", "")

	class, _ := meta.Flat("Classe")
	if class == "" || class != cfg.Class {
		logger.Debug("contact sync skipped: class mismatch", "expected", cfg.Class, "actual", class)
		return
	}
	if !metadata.MatchesFilter(meta, cfg.Filter) {
		logger.Debug("contact sync skipped by global filter")
		return
	}

	for _, target := range cfg.Configs {
		if !target.Enabled {
			continue
		}
		if !metadata.MatchesFilter(meta, target.MetadataFilter) {
			continue
		}
		scoped := logging.WithSyncContext(s.logger, name, target.UserID, target.ID)
		if err := s.buildContact(ctx, name, meta, cfg.Mapping, target); err != nil {
			scoped.Error("contact sync failed", "error", err)
			continue
		}
		scoped.Info("contact synced")
	}
}

// processCalendar runs the calendar branch: class gate, global filter, then
// every enabled array-property config. Elements are isolated from each other
// so one malformed entry never drops its siblings.
func (s *Service) processCalendar(ctx context.Context, name string, meta *metadata.Map, body string, cfg settings.CalendarSettings) {
	logger := logging.WithSyncContext(s.logger, name, "", "")

	class, _ := meta.Flat("Classe")
	if class == "" || class != cfg.Class {
		logger.Debug("calendar sync skipped: class mismatch", "expected", cfg.Class, "actual", class)
		return
	}
	if !metadata.MatchesFilter(meta, cfg.Filter) {
		logger.Debug("calendar sync skipped by global filter")
		return
	}

	for _, target := range cfg.Configs {
		if !target.Enabled {
			continue
		}
		if !metadata.MatchesFilter(meta, target.MetadataFilter) {
			continue
		}
		scoped := logging.WithSyncContext(s.logger, name, target.UserID, target.ID)
		if err := s.buildCalendarEvents(ctx, name, meta, body, cfg.Mapping, target); err != nil {
			scoped.Error("calendar sync failed", "error", err)
		}
	}
}

// baseName strips the .md extension from a document name.
func baseName(name string) string {
	return strings.TrimSuffix(name, ".md")
}
