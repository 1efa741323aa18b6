package metadata

// MatchesFilter evaluates a metadata filter against the mapping. Every
// condition must hold: the key resolves (case-insensitively) to a scalar that
// is exactly string-equal to the expected value. An empty filter matches
// everything. There are no partial matches, coercions, or operators.
func MatchesFilter(m *Map, filter map[string]string) bool {
	for key, expected := range filter {
		actual, ok := m.Flat(key)
		if !ok || actual != expected {
			return false
		}
	}
	return true
}
