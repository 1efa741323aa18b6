package ical

import (
	"strings"
	"time"
)

const (
	prodID = "-//go-mdsync//EN"

	// attendeeMailbox is the placeholder address attached to attendee names;
	// the source metadata only carries display names.
	attendeeMailbox = "noreply@mdsync.local"

	dateLayout  = "20060102"
	stampLayout = "20060102T150405Z"
)

// Event is an all-day calendar event ready for RFC 5545 serialization.
// Start and End are dates; Stamp is the DTSTAMP instant and is rendered in
// UTC.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Attendees   []string
	Start       time.Time
	End         time.Time
	Stamp       time.Time
}

// Serialize renders the event as a VCALENDAR block with CRLF line endings.
// Every free-text field passes through EscapeText.
func (e Event) Serialize() []byte {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+prodID)
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "BEGIN:VEVENT")
	writeLine(&b, "UID:"+e.UID)
	writeLine(&b, "DTSTAMP:"+e.Stamp.UTC().Format(stampLayout))
	writeLine(&b, "SUMMARY:"+EscapeText(e.Summary))
	if e.Description != "" {
		writeLine(&b, "DESCRIPTION:"+EscapeText(e.Description))
	}
	if e.Location != "" {
		writeLine(&b, "LOCATION:"+EscapeText(e.Location))
	}
	for _, attendee := range e.Attendees {
		name := strings.TrimSpace(attendee)
		if name == "" {
			continue
		}
		writeLine(&b, "ATTENDEE;CN="+EscapeText(name)+":mailto:"+attendeeMailbox)
	}
	writeLine(&b, "DTSTART;VALUE=DATE:"+e.Start.Format(dateLayout))
	writeLine(&b, "DTEND;VALUE=DATE:"+e.End.Format(dateLayout))
	writeLine(&b, "END:VEVENT")
	writeLine(&b, "END:VCALENDAR")

	return []byte(b.String())
}

// EscapeText applies RFC 5545 text escaping: backslash, comma, and semicolon
// are backslash-escaped, newlines become literal \n, and carriage returns are
// dropped.
func EscapeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ',':
			b.WriteString(`\,`)
		case ';':
			b.WriteString(`\;`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
