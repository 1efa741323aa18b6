package metadata

import "testing"

func testMap() *Map {
	inner := NewMap()
	inner.Set("b", Scalar("x"))
	list := &List{}
	list.Append(inner)

	m := NewMap()
	m.Set("a", list)
	return m
}

func TestResolve_IndexedPath(t *testing.T) {
	got, ok := Resolve(testMap(), "a[0].b")
	if !ok || got != "x" {
		t.Fatalf("expected x, got %q ok=%v", got, ok)
	}
}

func TestResolve_IndexOutOfRange(t *testing.T) {
	if _, ok := Resolve(testMap(), "a[1].b"); ok {
		t.Fatalf("expected miss for out-of-range index")
	}
}

func TestResolve_MissingSegment(t *testing.T) {
	if _, ok := Resolve(testMap(), "a[0].missing"); ok {
		t.Fatalf("expected miss for absent key")
	}
	if _, ok := Resolve(testMap(), "z[0].b"); ok {
		t.Fatalf("expected miss for absent array")
	}
}

func TestResolve_FlatLookup(t *testing.T) {
	m := NewMap()
	m.Set("a", Scalar("x"))
	if got, ok := Resolve(m, "a"); !ok || got != "x" {
		t.Fatalf("expected exact flat match, got %q", got)
	}

	upper := NewMap()
	upper.Set("A", Scalar("x"))
	if got, ok := Resolve(upper, "a"); !ok || got != "x" {
		t.Fatalf("expected case-insensitive flat match, got %q", got)
	}
}

func TestResolve_FlatLookupIgnoresNonScalars(t *testing.T) {
	if _, ok := Resolve(testMap(), "a"); ok {
		t.Fatalf("flat lookup must not return structured values")
	}
}

func TestResolve_StructuredLeafSerializes(t *testing.T) {
	m := testMap()
	got, ok := Resolve(m, "a[0]")
	if !ok || got != `{"b":"x"}` {
		t.Fatalf("expected serialized mapping, got %q ok=%v", got, ok)
	}
}

func TestFlat_ExactBeforeCaseInsensitive(t *testing.T) {
	m := NewMap()
	m.Set("Nom", Scalar("exact"))
	m.Set("nom", Scalar("lower"))
	if got, _ := m.Flat("Nom"); got != "exact" {
		t.Fatalf("exact key should win, got %q", got)
	}
}
