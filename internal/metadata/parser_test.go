package metadata

import (
	"testing"
)

const nestedBlock = `Classe: Action
Titre: "Réunion annuelle"
Clients:
  - client: "[[clients/acme.md|ACME]]"
    contact: Jean
  - client: Beta
Taches:
  - nom: preparer
    date: '2024-03-01'
  - nom: animer
    date: '2024-03-02'
Tags: [crm, interne]`

func TestParse_NestedListsAndMaps(t *testing.T) {
	m := Parse(nestedBlock)

	if got, _ := m.Flat("Titre"); got != "Réunion annuelle" {
		t.Fatalf("expected quoted title stripped, got %q", got)
	}

	clients, ok := m.Get("Clients")
	if !ok {
		t.Fatalf("expected Clients key")
	}
	list, ok := clients.(*List)
	if !ok || list.Len() != 2 {
		t.Fatalf("expected 2 clients, got %#v", clients)
	}
	first, ok := list.At(0).(*Map)
	if !ok {
		t.Fatalf("expected object in list item, got %#v", list.At(0))
	}
	if got, _ := first.Flat("contact"); got != "Jean" {
		t.Fatalf("expected nested contact, got %q", got)
	}

	tags, _ := m.Get("Tags")
	tagList, ok := tags.(*List)
	if !ok || tagList.Len() != 2 {
		t.Fatalf("expected inline array of 2 tags, got %#v", tags)
	}
}

func TestParseTolerant_MatchesStrictOnSimpleBlocks(t *testing.T) {
	block := "Classe: Personne\nNom: Jean Dupont\nEmail: jean@x.com\nTéléphone: '0102030405'"

	strict, ok := parseStrict(block)
	if !ok {
		t.Fatalf("strict parse should accept simple block")
	}
	tolerant := ParseTolerant(block)

	if sk, tk := len(strict.Keys()), len(tolerant.Keys()); sk != tk {
		t.Fatalf("key count mismatch: strict=%d tolerant=%d", sk, tk)
	}
	for _, key := range strict.Keys() {
		sv, _ := strict.Flat(key)
		tv, _ := tolerant.Flat(key)
		if sv != tv {
			t.Fatalf("value mismatch for %q: strict=%q tolerant=%q", key, sv, tv)
		}
	}
}

func TestParseTolerant_PreservesKeyOrderAndCase(t *testing.T) {
	m := ParseTolerant("Zeta: 1\nalpha: 2\nMixte: 3")
	keys := m.Keys()
	if len(keys) != 3 || keys[0] != "Zeta" || keys[1] != "alpha" || keys[2] != "Mixte" {
		t.Fatalf("unexpected key order: %v", keys)
	}
}

func TestParseTolerant_SkipsCommentsAndNoise(t *testing.T) {
	m := ParseTolerant("# commentaire\nClasse: Action\n\n???not a mapping line\nStatut: Confirmé")
	if m.Len() != 2 {
		t.Fatalf("expected noise skipped, got keys %v", m.Keys())
	}
	if got, _ := m.Flat("Statut"); got != "Confirmé" {
		t.Fatalf("expected Statut kept, got %q", got)
	}
}

func TestParseTolerant_UnicodeKeys(t *testing.T) {
	m := ParseTolerant("Prénom: Jean\nRôle: Président")
	if got, ok := m.Flat("Prénom"); !ok || got != "Jean" {
		t.Fatalf("expected accented key parsed, got %q ok=%v", got, ok)
	}
}

func TestParseTolerant_ScalarListItems(t *testing.T) {
	m := ParseTolerant("participants:\n  - Jean\n  - 'Marie'\n  - \"Paul\"")
	v, _ := m.Get("participants")
	list, ok := v.(*List)
	if !ok || list.Len() != 3 {
		t.Fatalf("expected 3 participants, got %#v", v)
	}
	if got := list.At(1); got != Scalar("Marie") {
		t.Fatalf("expected quotes stripped, got %#v", got)
	}
}

func TestParseTolerant_InconsistentIndentationDoesNotPanic(t *testing.T) {
	m := ParseTolerant("a:\n      - x\n  borked\nb: ok\n\t\t- orphan")
	if got, _ := m.Flat("b"); got != "ok" {
		t.Fatalf("expected later keys to survive malformed indentation, got %q", got)
	}
}

func TestParse_FallsBackWhenStrictRejects(t *testing.T) {
	// Tab-indented nesting is invalid YAML but fine for the tolerant parser.
	block := "Clients:\n\t- client: ACME\nClasse: Action"
	m := Parse(block)
	if got, _ := m.Flat("Classe"); got != "Action" {
		t.Fatalf("expected fallback parse, got %q", got)
	}
	if _, ok := m.Get("Clients"); !ok {
		t.Fatalf("expected Clients container from fallback parser")
	}
}
