package metadata

import (
	"strconv"
	"strings"
)

// Value is one node of parsed frontmatter metadata: a scalar string, an
// ordered list, or an ordered mapping. Consumers pattern-match via type
// switches instead of duck-typed access.
type Value interface {
	value()
}

// Scalar is a leaf string value. Quotes surrounding the raw YAML value have
// already been stripped by the parser.
type Scalar string

func (Scalar) value() {}

// List is an ordered sequence of values.
type List struct {
	Items []Value
}

func (*List) value() {}

// Append adds a value at the end of the list.
func (l *List) Append(v Value) {
	l.Items = append(l.Items, v)
}

// Len returns the number of items.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// At returns the item at index, nil when out of range.
func (l *List) At(index int) Value {
	if l == nil || index < 0 || index >= len(l.Items) {
		return nil
	}
	return l.Items[index]
}

// Map is an ordered mapping of string keys to values. Keys are stored
// case-sensitively in insertion order; the flat accessor compares them
// case-insensitively.
type Map struct {
	keys   []string
	values map[string]Value
}

func (*Map) value() {}

// NewMap returns an empty ordered mapping.
func NewMap() *Map {
	return &Map{values: map[string]Value{}}
}

// Set stores a value under key, preserving the position of existing keys.
func (m *Map) Set(key string, v Value) {
	if m.values == nil {
		m.values = map[string]Value{}
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get looks up a value by exact key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Flat returns the scalar stored under key. The exact key wins; otherwise
// non-numeric keys are scanned case-insensitively in insertion order.
// Non-scalar values report a miss.
func (m *Map) Flat(key string) (string, bool) {
	if m == nil {
		return "", false
	}

	if v, ok := m.values[key]; ok {
		if s, ok := v.(Scalar); ok {
			return string(s), true
		}
		return "", false
	}

	for _, stored := range m.keys {
		if isNumericKey(stored) {
			continue
		}
		if strings.EqualFold(stored, key) {
			if s, ok := m.values[stored].(Scalar); ok {
				return string(s), true
			}
		}
	}
	return "", false
}

func isNumericKey(key string) bool {
	if key == "" {
		return false
	}
	_, err := strconv.Atoi(key)
	return err == nil
}

// Serialize renders a value as a compact JSON-ish string. Scalars render
// verbatim; lists and mappings render with JSON punctuation but without any
// escaping guarantees. The output is for diagnostics and description display
// only and is never re-parsed.
func Serialize(v Value) string {
	var b strings.Builder
	serializeInto(&b, v)
	return b.String()
}

func serializeInto(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case Scalar:
		b.WriteByte('"')
		b.WriteString(string(val))
		b.WriteByte('"')
	case *List:
		b.WriteByte('[')
		for i, item := range val.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			serializeInto(b, item)
		}
		b.WriteByte(']')
	case *Map:
		b.WriteByte('{')
		for i, key := range val.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(key)
			b.WriteString(`":`)
			serializeInto(b, val.values[key])
		}
		b.WriteByte('}')
	default:
		b.WriteString("null")
	}
}
