package syncer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/goliatone/go-mdsync/internal/metadata"
	"github.com/goliatone/go-mdsync/internal/settings"
	"github.com/goliatone/go-mdsync/internal/vcard"
	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

// buildContact assembles a vCard from the document metadata and upserts it
// into the target user's address book.
func (s *Service) buildContact(ctx context.Context, name string, meta *metadata.Map, mapping settings.ContactMapping, cfg settings.ContactConfig) error {
	if s.books == nil {
		return fmt.Errorf("syncer: no address book backend configured")
	}

	book, err := s.resolveAddressBook(ctx, cfg)
	if err != nil {
		return err
	}

	card := buildCard(name, meta, mapping)
	uri := contactURI(name, meta)

	return s.upsertCard(ctx, book.ID, uri, card.Serialize())
}

// resolveAddressBook picks the target collection: the config's explicit book
// uri first, then a book named "contacts" or "default", then the user's
// first book.
func (s *Service) resolveAddressBook(ctx context.Context, cfg settings.ContactConfig) (interfaces.Collection, error) {
	books, err := s.books.AddressBooksForUser(ctx, cfg.UserID)
	if err != nil {
		return interfaces.Collection{}, fmt.Errorf("syncer: list address books for %s: %w", cfg.UserID, err)
	}
	if len(books) == 0 {
		return interfaces.Collection{}, fmt.Errorf("%w: %s", ErrNoAddressBooks, cfg.UserID)
	}

	if cfg.AddressBook != "" {
		for _, book := range books {
			if book.URI == cfg.AddressBook {
				return book, nil
			}
		}
	}
	for _, book := range books {
		if book.URI == "contacts" || book.URI == "default" {
			return book, nil
		}
	}
	return books[0], nil
}

// contactURI derives the stable card filename. An explicit id or Id metadata
// field wins; otherwise the document name is hashed so successive writes of
// the same file keep updating one card.
func contactURI(name string, meta *metadata.Map) string {
	for _, key := range []string{"id", "Id"} {
		if v, ok := meta.Get(key); ok {
			if s, ok := v.(metadata.Scalar); ok && string(s) != "" {
				return string(s) + ".vcf"
			}
		}
	}
	sum := md5.Sum([]byte(name))
	return hex.EncodeToString(sum[:]) + ".vcf"
}

// buildCard maps metadata fields onto a vCard using the global contact
// mapping. Empty resolved values are simply omitted.
func buildCard(name string, meta *metadata.Map, mapping settings.ContactMapping) *vcard.Card {
	card := &vcard.Card{FormattedName: contactDisplayName(name, meta, mapping)}

	if v := resolveFormatted(meta, mapping.EmailField()); v != "" {
		card.AddEmail(v)
	}
	if v := resolveFormatted(meta, mapping.PhoneField()); v != "" {
		card.AddPhone(v, false)
	}
	if v := resolveFormatted(meta, mapping.MobileField()); v != "" {
		card.AddPhone(v, true)
	}

	// Additional properties sorted for deterministic output.
	props := make([]string, 0, len(mapping.Additional))
	for prop := range mapping.Additional {
		props = append(props, prop)
	}
	sort.Strings(props)
	for _, prop := range props {
		if v := resolveFormatted(meta, mapping.Additional[prop]); v != "" {
			card.AddExtra(prop, v)
		}
	}
	return card
}

// contactDisplayName resolves the card's FN. The literal mapping token "name"
// means the document's own basename; any other field is looked up in the
// metadata and falls back to the basename when absent.
func contactDisplayName(name string, meta *metadata.Map, mapping settings.ContactMapping) string {
	field := mapping.Name
	if field == "" {
		field = "FN"
	}
	if field == "name" {
		return baseName(name)
	}
	if v := resolveFormatted(meta, field); v != "" {
		return v
	}
	return baseName(name)
}

// resolveFormatted resolves a metadata path and unwraps wiki-link syntax.
func resolveFormatted(meta *metadata.Map, field string) string {
	if field == "" {
		return ""
	}
	value, ok := metadata.Resolve(meta, field)
	if !ok {
		return ""
	}
	return metadata.UnwrapWikiLink(value)
}

func (s *Service) upsertCard(ctx context.Context, bookID int64, uri string, data []byte) error {
	cards, err := s.books.Cards(ctx, bookID)
	if err != nil {
		return fmt.Errorf("syncer: list cards: %w", err)
	}
	for _, card := range cards {
		if card.URI == uri {
			if err := s.books.UpdateCard(ctx, bookID, uri, data); err != nil {
				return fmt.Errorf("syncer: update card %s: %w", uri, err)
			}
			return nil
		}
	}
	if err := s.books.CreateCard(ctx, bookID, uri, data); err != nil {
		return fmt.Errorf("syncer: create card %s: %w", uri, err)
	}
	return nil
}
