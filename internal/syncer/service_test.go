package syncer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-mdsync/internal/configstore"
	"github.com/goliatone/go-mdsync/internal/settings"
	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

type davCall struct {
	op           string
	collectionID int64
	uri          string
	data         string
}

type fakeAddressBooks struct {
	books    []interfaces.Collection
	existing map[int64][]interfaces.Object
	calls    []davCall
}

func (f *fakeAddressBooks) AddressBooksForUser(ctx context.Context, userID string) ([]interfaces.Collection, error) {
	return f.books, nil
}

func (f *fakeAddressBooks) Cards(ctx context.Context, bookID int64) ([]interfaces.Object, error) {
	return f.existing[bookID], nil
}

func (f *fakeAddressBooks) CreateCard(ctx context.Context, bookID int64, uri string, data []byte) error {
	f.calls = append(f.calls, davCall{op: "create", collectionID: bookID, uri: uri, data: string(data)})
	return nil
}

func (f *fakeAddressBooks) UpdateCard(ctx context.Context, bookID int64, uri string, data []byte) error {
	f.calls = append(f.calls, davCall{op: "update", collectionID: bookID, uri: uri, data: string(data)})
	return nil
}

type fakeCalendars struct {
	calendars []interfaces.Collection
	existing  map[int64][]interfaces.Object
	calls     []davCall
}

func (f *fakeCalendars) CalendarsForUser(ctx context.Context, userID string) ([]interfaces.Collection, error) {
	return f.calendars, nil
}

func (f *fakeCalendars) CalendarObjects(ctx context.Context, calendarID int64) ([]interfaces.Object, error) {
	return f.existing[calendarID], nil
}

func (f *fakeCalendars) CreateCalendarObject(ctx context.Context, calendarID int64, uri string, data []byte) error {
	f.calls = append(f.calls, davCall{op: "create", collectionID: calendarID, uri: uri, data: string(data)})
	return nil
}

func (f *fakeCalendars) UpdateCalendarObject(ctx context.Context, calendarID int64, uri string, data []byte) error {
	f.calls = append(f.calls, davCall{op: "update", collectionID: calendarID, uri: uri, data: string(data)})
	return nil
}

type memoryDocument struct {
	name    string
	mime    string
	content string
}

func (d *memoryDocument) MimeType() string         { return d.mime }
func (d *memoryDocument) Name() string             { return d.name }
func (d *memoryDocument) Path() string             { return "vault/" + d.name }
func (d *memoryDocument) Content() ([]byte, error) { return []byte(d.content), nil }

func markdownDoc(name, content string) *memoryDocument {
	return &memoryDocument{name: name, mime: interfaces.MarkdownMimeType, content: content}
}

func seedStore(t *testing.T, pairs map[string]string) *configstore.MemoryStore {
	t.Helper()
	store := configstore.NewMemoryStore()
	for key, value := range pairs {
		if err := store.Set(context.Background(), key, value); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
	return store
}

func newTestService(t *testing.T, store interfaces.SettingsStore, books interfaces.AddressBookBackend, calendars interfaces.CalendarBackend) *Service {
	t.Helper()
	svc, err := NewService(ServiceConfig{
		Settings:     store,
		AddressBooks: books,
		Calendars:    calendars,
		Clock:        func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestProcessDocumentIgnoresNonMarkdown(t *testing.T) {
	books := &fakeAddressBooks{books: []interfaces.Collection{{ID: 1, URI: "contacts"}}}
	store := seedStore(t, map[string]string{
		settings.KeyContactsEnabled: "1",
	})
	svc := newTestService(t, store, books, nil)

	doc := &memoryDocument{name: "photo.png", mime: "image/png", content: "not markdown"}
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(books.calls) != 0 {
		t.Fatalf("expected no backend calls, got %d", len(books.calls))
	}
}

func TestProcessDocumentBuildsContact(t *testing.T) {
	books := &fakeAddressBooks{
		books:    []interfaces.Collection{{ID: 7, URI: "contacts"}},
		existing: map[int64][]interfaces.Object{},
	}
	store := seedStore(t, map[string]string{
		settings.KeyContactsEnabled: "1",
		settings.KeyContactsClass:   "Personne",
		settings.KeyContactsMapping: `{"name":"Nom","email":"Email"}`,
		settings.KeyContactsConfigs: `[{"id":"cfg-1","enabled":true,"user_id":"alice"}]`,
	})
	svc := newTestService(t, store, books, nil)

	doc := markdownDoc("Jean Dupont.md", "---\nClasse: Personne\nNom: Jean Dupont\nEmail: jean@x.com\n---\nNotes.\n")
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}

	if len(books.calls) != 1 {
		t.Fatalf("expected 1 card call, got %d", len(books.calls))
	}
	call := books.calls[0]
	if call.op != "create" {
		t.Fatalf("expected create, got %s", call.op)
	}
	if call.collectionID != 7 {
		t.Fatalf("expected book 7, got %d", call.collectionID)
	}
	if !strings.HasSuffix(call.uri, ".vcf") {
		t.Fatalf("expected .vcf uri, got %s", call.uri)
	}
	if !strings.Contains(call.data, "FN:Jean Dupont") {
		t.Fatalf("missing FN line:\n%s", call.data)
	}
	if !strings.Contains(call.data, "EMAIL:jean@x.com") {
		t.Fatalf("missing EMAIL line:\n%s", call.data)
	}
}

func TestProcessDocumentContactClassMismatch(t *testing.T) {
	books := &fakeAddressBooks{books: []interfaces.Collection{{ID: 1, URI: "contacts"}}}
	store := seedStore(t, map[string]string{
		settings.KeyContactsEnabled: "1",
		settings.KeyContactsClass:   "Personne",
		settings.KeyContactsConfigs: `[{"id":"cfg-1","enabled":true,"user_id":"alice"}]`,
	})
	svc := newTestService(t, store, books, nil)

	doc := markdownDoc("projet.md", "---\nClasse: Projet\nNom: X\n---\n")
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(books.calls) != 0 {
		t.Fatalf("expected no card calls, got %d", len(books.calls))
	}
}

func TestProcessDocumentContactUpdateExisting(t *testing.T) {
	// A document carrying an explicit id metadata field keeps updating the
	// same card uri across writes.
	books := &fakeAddressBooks{
		books: []interfaces.Collection{{ID: 3, URI: "default"}},
		existing: map[int64][]interfaces.Object{
			3: {{URI: "jean-dupont.vcf"}},
		},
	}
	store := seedStore(t, map[string]string{
		settings.KeyContactsEnabled: "1",
		settings.KeyContactsClass:   "Personne",
		settings.KeyContactsMapping: `{"name":"name"}`,
		settings.KeyContactsConfigs: `[{"id":"cfg-1","enabled":true,"user_id":"alice"}]`,
	})
	svc := newTestService(t, store, books, nil)

	doc := markdownDoc("Jean Dupont.md", "---\nClasse: Personne\nid: jean-dupont\n---\n")
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(books.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(books.calls))
	}
	if books.calls[0].op != "update" || books.calls[0].uri != "jean-dupont.vcf" {
		t.Fatalf("expected update of jean-dupont.vcf, got %s %s", books.calls[0].op, books.calls[0].uri)
	}
	if !strings.Contains(books.calls[0].data, "FN:Jean Dupont") {
		t.Fatalf("name token should use the document basename:\n%s", books.calls[0].data)
	}
}

const actionDoc = `---
Classe: Action
Nom: atelier-jardin
Taches:
  - nom: preparer
    date: 2024-06-01
    assignés: "[[personnes/alice.md|Alice]], [[personnes/bob.md]]"
  - nom: planter
    date: 2024-06-08
  - nom: arroser
    date: 2024-06-15
---
Plan de la semaine.
`

func TestProcessDocumentFansOutCalendarEvents(t *testing.T) {
	calendars := &fakeCalendars{
		calendars: []interfaces.Collection{{ID: 11, URI: "personal"}},
		existing:  map[int64][]interfaces.Object{},
	}
	store := seedStore(t, map[string]string{
		settings.KeyCalendarEnabled: "1",
		settings.KeyCalendarClass:   "Action",
		settings.KeyCalendarConfigs: `[{"id":"anim-1","enabled":true,"user_id":"alice","array_property":"Taches","date_field":"date","title_format":"{nom}","id_format":"tache_{index}"}]`,
	})
	svc := newTestService(t, store, nil, calendars)

	if err := svc.ProcessDocument(context.Background(), markdownDoc("atelier.md", actionDoc)); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}

	if len(calendars.calls) != 3 {
		t.Fatalf("expected 3 event calls, got %d", len(calendars.calls))
	}
	wantURIs := []string{"tache_0.ics", "tache_1.ics", "tache_2.ics"}
	wantSummaries := []string{"SUMMARY:preparer", "SUMMARY:planter", "SUMMARY:arroser"}
	for i, call := range calendars.calls {
		if call.op != "create" {
			t.Fatalf("call %d: expected create, got %s", i, call.op)
		}
		if call.uri != wantURIs[i] {
			t.Fatalf("call %d: expected uri %s, got %s", i, wantURIs[i], call.uri)
		}
		if !strings.Contains(call.data, wantSummaries[i]) {
			t.Fatalf("call %d: missing %s in:\n%s", i, wantSummaries[i], call.data)
		}
	}
	first := calendars.calls[0].data
	if !strings.Contains(first, "DTSTART;VALUE=DATE:20240601") {
		t.Fatalf("missing start date:\n%s", first)
	}
	if !strings.Contains(first, "DTEND;VALUE=DATE:20240602") {
		t.Fatalf("end should be start plus one day:\n%s", first)
	}
	if !strings.Contains(first, "ATTENDEE;CN=Alice:") {
		t.Fatalf("missing labeled attendee:\n%s", first)
	}
	if !strings.Contains(first, "ATTENDEE;CN=bob:") {
		t.Fatalf("missing plain wiki-link attendee:\n%s", first)
	}
}

func TestProcessDocumentCalendarGlobalFilter(t *testing.T) {
	calendars := &fakeCalendars{
		calendars: []interfaces.Collection{{ID: 11, URI: "personal"}},
		existing:  map[int64][]interfaces.Object{},
	}
	store := seedStore(t, map[string]string{
		settings.KeyCalendarEnabled: "1",
		settings.KeyCalendarClass:   "Action",
		settings.KeyCalendarFilter:  `{"Statut":"Confirmé"}`,
		settings.KeyCalendarConfigs: `[{"id":"anim-1","enabled":true,"user_id":"alice","array_property":"Taches"}]`,
	})
	svc := newTestService(t, store, nil, calendars)

	// Field absent.
	if err := svc.ProcessDocument(context.Background(), markdownDoc("atelier.md", actionDoc)); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(calendars.calls) != 0 {
		t.Fatalf("expected 0 calls for missing filter field, got %d", len(calendars.calls))
	}

	// Field present with a different value.
	rejected := strings.Replace(actionDoc, "Nom: atelier-jardin", "Nom: atelier-jardin\nStatut: Brouillon", 1)
	if err := svc.ProcessDocument(context.Background(), markdownDoc("atelier.md", rejected)); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(calendars.calls) != 0 {
		t.Fatalf("expected 0 calls for mismatched filter value, got %d", len(calendars.calls))
	}

	// Filter satisfied.
	accepted := strings.Replace(actionDoc, "Nom: atelier-jardin", "Nom: atelier-jardin\nStatut: Confirmé", 1)
	if err := svc.ProcessDocument(context.Background(), markdownDoc("atelier.md", accepted)); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(calendars.calls) != 3 {
		t.Fatalf("expected 3 calls once the filter matches, got %d", len(calendars.calls))
	}
}

func TestProcessDocumentSkipsElementsWithoutDates(t *testing.T) {
	calendars := &fakeCalendars{
		calendars: []interfaces.Collection{{ID: 11, URI: "personal"}},
		existing:  map[int64][]interfaces.Object{},
	}
	store := seedStore(t, map[string]string{
		settings.KeyCalendarEnabled: "1",
		settings.KeyCalendarClass:   "Action",
		settings.KeyCalendarConfigs: `[{"id":"anim-1","enabled":true,"user_id":"alice","array_property":"Taches"}]`,
	})
	svc := newTestService(t, store, nil, calendars)

	doc := markdownDoc("atelier.md", "---\nClasse: Action\nTaches:\n  - nom: sans-date\n  - nom: ok\n    date: 2024-06-01\n  - nom: cassee\n    date: pas-une-date\n---\n")
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(calendars.calls) != 1 {
		t.Fatalf("expected 1 call for the sole valid element, got %d", len(calendars.calls))
	}
	if calendars.calls[0].uri != "event_1.ics" {
		t.Fatalf("id should keep the element's original index, got %s", calendars.calls[0].uri)
	}
}

func TestProcessDocumentCalendarTitleTemplates(t *testing.T) {
	calendars := &fakeCalendars{
		calendars: []interfaces.Collection{{ID: 11, URI: "personal"}},
		existing:  map[int64][]interfaces.Object{},
	}
	store := seedStore(t, map[string]string{
		settings.KeyCalendarEnabled: "1",
		settings.KeyCalendarClass:   "Action",
		settings.KeyCalendarConfigs: `[{"id":"anim-1","enabled":true,"user_id":"alice","array_property":"Taches","title_format":"{name.split(\"-\")[-1]} {_root.Nom} {nom}","id_format":"{filename}_{index}"}]`,
	})
	svc := newTestService(t, store, nil, calendars)

	doc := markdownDoc("2024-ete-jardin.md", "---\nClasse: Action\nNom: Jardin partagé\nTaches:\n  - nom: preparer\n    date: 2024-06-01\n---\n")
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(calendars.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calendars.calls))
	}
	call := calendars.calls[0]
	if call.uri != "2024-ete-jardin_0.ics" {
		t.Fatalf("unexpected uri %s", call.uri)
	}
	if !strings.Contains(call.data, "SUMMARY:jardin Jardin partagé preparer") {
		t.Fatalf("title template not fully expanded:\n%s", call.data)
	}
}

func TestProcessDocumentDescriptionComposition(t *testing.T) {
	calendars := &fakeCalendars{
		calendars: []interfaces.Collection{{ID: 11, URI: "personal"}},
		existing:  map[int64][]interfaces.Object{},
	}
	store := seedStore(t, map[string]string{
		settings.KeyCalendarEnabled: "1",
		settings.KeyCalendarClass:   "Action",
		settings.KeyCalendarConfigs: `[{"id":"anim-1","enabled":true,"user_id":"alice","array_property":"Taches","description_fields":["_root.Nom","nom"]}]`,
	})
	svc := newTestService(t, store, nil, calendars)

	doc := markdownDoc("atelier.md", "---\nClasse: Action\nNom: Jardin\nTaches:\n  - nom: preparer\n    date: 2024-06-01\n    assignés: Alice\n---\n")
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(calendars.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calendars.calls))
	}
	data := calendars.calls[0].data
	if !strings.Contains(data, `DESCRIPTION:Nom: Jardin\nnom: preparer\n\nResponsables: Alice`) {
		t.Fatalf("unexpected description:\n%s", data)
	}
}

func TestProcessDocumentWholeDocumentEvent(t *testing.T) {
	calendars := &fakeCalendars{
		calendars: []interfaces.Collection{{ID: 11, URI: "personal"}},
		existing:  map[int64][]interfaces.Object{},
	}
	store := seedStore(t, map[string]string{
		settings.KeyCalendarEnabled: "1",
		settings.KeyCalendarClass:   "Action",
		settings.KeyCalendarMapping: `{"title":"Titre","date":"Date"}`,
		settings.KeyCalendarConfigs: `[{"id":"anim-1","enabled":true,"user_id":"alice"}]`,
	})
	svc := newTestService(t, store, nil, calendars)

	doc := markdownDoc("reunion.md", "---\nClasse: Action\nid: reunion-juin\nTitre: Réunion de juin\nDate: 2024-06-20\n---\n")
	if err := svc.ProcessDocument(context.Background(), doc); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(calendars.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calendars.calls))
	}
	call := calendars.calls[0]
	if call.uri != "reunion-juin.ics" {
		t.Fatalf("explicit id should drive the uri, got %s", call.uri)
	}
	if !strings.Contains(call.data, "SUMMARY:Réunion de juin") {
		t.Fatalf("missing mapped title:\n%s", call.data)
	}
	if !strings.Contains(call.data, "DTSTART;VALUE=DATE:20240620") {
		t.Fatalf("missing mapped date:\n%s", call.data)
	}
}

func TestNewServiceRequiresSettings(t *testing.T) {
	if _, err := NewService(ServiceConfig{}); err != ErrSettingsStoreRequired {
		t.Fatalf("expected ErrSettingsStoreRequired, got %v", err)
	}
}
