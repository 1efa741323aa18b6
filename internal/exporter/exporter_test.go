package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	backend, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	books, err := backend.AddressBooksForUser(ctx, "alice")
	if err != nil || len(books) != 1 {
		t.Fatalf("expected one address book, got %v (%v)", books, err)
	}

	if err := backend.CreateCard(ctx, books[0].ID, "jean.vcf", []byte("BEGIN:VCARD")); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	cards, err := backend.Cards(ctx, books[0].ID)
	if err != nil || len(cards) != 1 || cards[0].URI != "jean.vcf" {
		t.Fatalf("expected jean.vcf listed, got %v (%v)", cards, err)
	}

	if err := backend.UpdateCard(ctx, books[0].ID, "jean.vcf", []byte("BEGIN:VCARD\r\nVERSION:3.0")); err != nil {
		t.Fatalf("UpdateCard: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "contacts", "jean.vcf"))
	if err != nil {
		t.Fatalf("read exported card: %v", err)
	}
	if string(data) != "BEGIN:VCARD\r\nVERSION:3.0" {
		t.Fatalf("update should overwrite, got %q", data)
	}
}

func TestFileBackendCalendarObjects(t *testing.T) {
	dir := t.TempDir()
	backend, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := backend.CreateCalendarObject(ctx, 1, "event_0.ics", []byte("BEGIN:VCALENDAR")); err != nil {
		t.Fatalf("CreateCalendarObject: %v", err)
	}
	objects, err := backend.CalendarObjects(ctx, 1)
	if err != nil || len(objects) != 1 || objects[0].URI != "event_0.ics" {
		t.Fatalf("expected event_0.ics listed, got %v (%v)", objects, err)
	}
}

func TestFileBackendSanitizesURIs(t *testing.T) {
	dir := t.TempDir()
	backend, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := backend.CreateCard(context.Background(), 1, "../escape.vcf", []byte("x")); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "contacts", "escape.vcf")); err != nil {
		t.Fatalf("card should land inside the export tree: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.vcf")); err == nil {
		t.Fatal("card must not escape the contacts directory")
	}
}
