package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdsync/internal/ical"
	"github.com/goliatone/go-mdsync/internal/logging"
	"github.com/goliatone/go-mdsync/internal/metadata"
	"github.com/goliatone/go-mdsync/internal/settings"
	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

// dateLayouts are the accepted item date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// buildCalendarEvents expands one calendar config into events. Configs with
// an array property emit one event per list element; configs without one
// emit a single event from the document's root metadata.
func (s *Service) buildCalendarEvents(ctx context.Context, name string, meta *metadata.Map, body string, mapping settings.CalendarMapping, cfg settings.CalendarConfig) error {
	if s.calendars == nil {
		return fmt.Errorf("syncer: no calendar backend configured")
	}

	calendar, err := s.resolveCalendar(ctx, cfg)
	if err != nil {
		return err
	}

	logger := logging.WithSyncContext(s.logger, name, cfg.UserID, cfg.ID)

	if cfg.ArrayProperty == "" {
		event, err := s.buildDocumentEvent(name, meta, mapping)
		if err != nil {
			logger.Warn("document event skipped", "error", err)
			return nil
		}
		return s.upsertEvent(ctx, calendar.ID, event)
	}

	value, ok := meta.Get(cfg.ArrayProperty)
	if !ok {
		logger.Debug("array property absent, nothing to expand", "property", cfg.ArrayProperty)
		return nil
	}
	list, ok := value.(*metadata.List)
	if !ok {
		logger.Debug("array property is not a list", "property", cfg.ArrayProperty)
		return nil
	}

	for index, raw := range list.Items {
		item, ok := raw.(*metadata.Map)
		if !ok {
			logger.Warn("list element is not a mapping, skipped", "index", index)
			continue
		}
		event, err := s.buildItemEvent(name, meta, body, cfg, item, index)
		if err != nil {
			logger.Warn("list element skipped", "index", index, "error", err)
			continue
		}
		if err := s.upsertEvent(ctx, calendar.ID, event); err != nil {
			logger.Error("event upsert failed", "index", index, "uid", event.UID, "error", err)
		}
	}
	return nil
}

// resolveCalendar picks the target calendar: explicit uri, then "personal"
// or "default", then the user's first calendar.
func (s *Service) resolveCalendar(ctx context.Context, cfg settings.CalendarConfig) (interfaces.Collection, error) {
	calendars, err := s.calendars.CalendarsForUser(ctx, cfg.UserID)
	if err != nil {
		return interfaces.Collection{}, fmt.Errorf("syncer: list calendars for %s: %w", cfg.UserID, err)
	}
	if len(calendars) == 0 {
		return interfaces.Collection{}, fmt.Errorf("%w: %s", ErrNoCalendars, cfg.UserID)
	}

	if cfg.Calendar != "" {
		for _, cal := range calendars {
			if cal.URI == cfg.Calendar {
				return cal, nil
			}
		}
	}
	for _, cal := range calendars {
		if cal.URI == "personal" || cal.URI == "default" {
			return cal, nil
		}
	}
	return calendars[0], nil
}

// buildItemEvent assembles one all-day event from an array element. The
// element must carry a parseable date; anything else is reported so the
// caller can skip it.
func (s *Service) buildItemEvent(name string, root *metadata.Map, body string, cfg settings.CalendarConfig, item *metadata.Map, index int) (ical.Event, error) {
	rawDate, ok := item.Get(cfg.EffectiveDateField())
	if !ok {
		return ical.Event{}, fmt.Errorf("missing date field %q", cfg.EffectiveDateField())
	}
	scalarDate, ok := rawDate.(metadata.Scalar)
	if !ok {
		return ical.Event{}, fmt.Errorf("date field %q is not a scalar", cfg.EffectiveDateField())
	}
	start, err := parseEventDate(string(scalarDate))
	if err != nil {
		return ical.Event{}, err
	}

	id := renderID(cfg.EffectiveIDFormat(), name, index, true)
	title := renderTitle(cfg.EffectiveTitleFormat(), name, item, root)

	assigned := resolveItemOrRoot(cfg.EffectiveAssignedField(), item, root)
	description := composeDescription(cfg.DescriptionFields, body, item, root, assigned)

	event := ical.Event{
		UID:         id + "@mdsync",
		Summary:     title,
		Description: description,
		Location:    resolveItemOrRoot(cfg.EffectiveLocationField(), item, root),
		Start:       start,
		End:         start.AddDate(0, 0, 1),
		Stamp:       s.clock(),
	}
	if assigned != "" {
		event.Attendees = splitAttendees(assigned)
	}
	return event, nil
}

// buildDocumentEvent assembles a single event from the document's root
// metadata using the global calendar mapping. A missing date defaults to the
// current time so a bare note still lands on the calendar.
func (s *Service) buildDocumentEvent(name string, meta *metadata.Map, mapping settings.CalendarMapping) (ical.Event, error) {
	start := s.clock().Truncate(24 * time.Hour)
	if raw, ok := meta.Flat(mapping.DateField()); ok && raw != "" {
		parsed, err := parseEventDate(raw)
		if err != nil {
			return ical.Event{}, err
		}
		start = parsed
	}

	title := baseName(name)
	if mapping.Title != "" {
		if v, ok := meta.Flat(mapping.Title); ok && v != "" {
			title = v
		}
	}

	id := ""
	for _, key := range []string{"id", "Id"} {
		if v, ok := meta.Get(key); ok {
			if sc, isScalar := v.(metadata.Scalar); isScalar && string(sc) != "" {
				id = string(sc)
				break
			}
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	description, _ := meta.Flat(mapping.DescriptionField())
	location, _ := meta.Flat(mapping.LocationField())

	return ical.Event{
		UID:         id + "@mdsync",
		Summary:     title,
		Description: metadata.UnwrapWikiLink(description),
		Location:    metadata.UnwrapWikiLink(location),
		Start:       start,
		End:         start.AddDate(0, 0, 1),
		Stamp:       s.clock(),
	}, nil
}

// composeDescription joins the configured description sources. The literal
// "_content" token contributes the document body, _root. fields read the
// whole-document metadata, and everything else reads the current item; each
// named field renders as a "field: value" line. The responsible parties are
// appended last.
func composeDescription(fields []string, body string, item, root *metadata.Map, assigned string) string {
	var b strings.Builder

	for _, field := range fields {
		switch {
		case field == "_content":
			content := strings.TrimSpace(body)
			if content != "" {
				b.WriteString("Contenu:\n")
				b.WriteString(content)
				b.WriteString("\n")
			}
		case strings.HasPrefix(field, "_root."):
			rootField := strings.TrimPrefix(field, "_root.")
			if v := resolveRootField(root, rootField); v != "" {
				b.WriteString(rootField)
				b.WriteString(": ")
				b.WriteString(v)
				b.WriteString("\n")
			}
		default:
			if value, ok := item.Get(field); ok {
				if v := metadata.FormatValue(value); v != "" {
					b.WriteString(field)
					b.WriteString(": ")
					b.WriteString(v)
					b.WriteString("\n")
				}
			}
		}
	}

	if assigned != "" {
		b.WriteString("\nResponsables: ")
		b.WriteString(assigned)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// parseEventDate strips surrounding quotes and tries the accepted layouts.
func parseEventDate(raw string) (time.Time, error) {
	cleaned := strings.Trim(strings.TrimSpace(raw), "'\"")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// splitAttendees turns a formatted assigned value into attendee names.
func splitAttendees(assigned string) []string {
	parts := strings.Split(assigned, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (s *Service) upsertEvent(ctx context.Context, calendarID int64, event ical.Event) error {
	uri := strings.TrimSuffix(event.UID, "@mdsync") + ".ics"
	data := event.Serialize()

	objects, err := s.calendars.CalendarObjects(ctx, calendarID)
	if err != nil {
		return fmt.Errorf("syncer: list calendar objects: %w", err)
	}
	for _, obj := range objects {
		if obj.URI == uri {
			if err := s.calendars.UpdateCalendarObject(ctx, calendarID, uri, data); err != nil {
				return fmt.Errorf("syncer: update event %s: %w", uri, err)
			}
			return nil
		}
	}
	if err := s.calendars.CreateCalendarObject(ctx, calendarID, uri, data); err != nil {
		return fmt.Errorf("syncer: create event %s: %w", uri, err)
	}
	return nil
}
