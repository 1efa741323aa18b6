package metadata

import "testing"

func TestMatchesFilter_EmptyFilterMatches(t *testing.T) {
	if !MatchesFilter(NewMap(), nil) {
		t.Fatalf("empty filter must match vacuously")
	}
	if !MatchesFilter(NewMap(), map[string]string{}) {
		t.Fatalf("empty filter map must match vacuously")
	}
}

func TestMatchesFilter_AllConditionsRequired(t *testing.T) {
	m := NewMap()
	m.Set("Classe", Scalar("Action"))
	m.Set("Statut", Scalar("Confirmé"))

	if !MatchesFilter(m, map[string]string{"Classe": "Action", "Statut": "Confirmé"}) {
		t.Fatalf("expected conjunctive match")
	}
	if MatchesFilter(m, map[string]string{"Classe": "Action", "Statut": "Annulé"}) {
		t.Fatalf("one failing condition must reject")
	}
	if MatchesFilter(m, map[string]string{"Absent": "x"}) {
		t.Fatalf("absent key must reject")
	}
}

func TestMatchesFilter_KeyCaseInsensitiveValueCaseSensitive(t *testing.T) {
	m := NewMap()
	m.Set("Statut", Scalar("Confirmé"))

	if !MatchesFilter(m, map[string]string{"statut": "Confirmé"}) {
		t.Fatalf("key lookup should be case-insensitive")
	}
	if MatchesFilter(m, map[string]string{"Statut": "confirmé"}) {
		t.Fatalf("value comparison must stay case-sensitive")
	}
}
