package interfaces

import "context"

// Collection identifies an address book or calendar owned by a user. ID is
// the backend's opaque collection identifier, URI the user-visible name the
// sync configuration refers to (e.g. "contacts", "personal").
type Collection struct {
	ID  int64
	URI string
}

// Object identifies a single card or calendar object inside a collection.
// The URI doubles as the stable upsert key for generated records.
type Object struct {
	URI string
}

// AddressBookBackend is the persistence surface for generated contact cards.
// Implementations typically wrap a CardDAV backend; the module only relies on
// list, create, and update semantics.
type AddressBookBackend interface {
	AddressBooksForUser(ctx context.Context, userID string) ([]Collection, error)
	Cards(ctx context.Context, bookID int64) ([]Object, error)
	CreateCard(ctx context.Context, bookID int64, uri string, data []byte) error
	UpdateCard(ctx context.Context, bookID int64, uri string, data []byte) error
}

// CalendarBackend is the persistence surface for generated calendar events,
// mirroring AddressBookBackend for CalDAV-style stores.
type CalendarBackend interface {
	CalendarsForUser(ctx context.Context, userID string) ([]Collection, error)
	CalendarObjects(ctx context.Context, calendarID int64) ([]Object, error)
	CreateCalendarObject(ctx context.Context, calendarID int64, uri string, data []byte) error
	UpdateCalendarObject(ctx context.Context, calendarID int64, uri string, data []byte) error
}
