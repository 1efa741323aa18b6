package metadata

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	listItemPattern = regexp.MustCompile(`^\s*-\s*(.*)$`)
	keyValuePattern = regexp.MustCompile(`^\s*([\p{L}\p{N}_-]+):\s*(.*)$`)
	entryKVPattern  = regexp.MustCompile(`^([\p{L}\p{N}_-]+):\s*(.*)$`)
)

// Parse turns a frontmatter block into a Map. A strict YAML parse is
// attempted first; when it fails or does not yield a mapping, the tolerant
// line-oriented parser takes over. Parse never fails: the worst case is an
// empty mapping.
func Parse(front string) *Map {
	if m, ok := parseStrict(front); ok {
		return m
	}
	return ParseTolerant(front)
}

// parseStrict decodes the block with gopkg.in/yaml.v3 through yaml.Node so
// key order survives. Only a top-level mapping is accepted.
func parseStrict(front string) (*Map, bool) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(front), &doc); err != nil {
		return nil, false
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, false
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, false
	}
	m, ok := yamlNodeToValue(root).(*Map)
	return m, ok && m != nil
}

func yamlNodeToValue(n *yaml.Node) Value {
	switch n.Kind {
	case yaml.ScalarNode:
		return Scalar(n.Value)
	case yaml.SequenceNode:
		list := &List{}
		for _, child := range n.Content {
			if v := yamlNodeToValue(child); v != nil {
				list.Append(v)
			}
		}
		return list
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if v := yamlNodeToValue(n.Content[i+1]); v != nil {
				m.Set(key, v)
			}
		}
		return m
	case yaml.AliasNode:
		if n.Alias != nil {
			return yamlNodeToValue(n.Alias)
		}
	}
	return nil
}

// ParseTolerant parses a frontmatter block without a YAML grammar. It tracks
// indentation with a stack of open containers, supports objects inside list
// items, lazily typed empty containers, inline bracket arrays, and Unicode
// field names. Lines it cannot make sense of are skipped; it never fails.
func ParseTolerant(front string) *Map {
	root := &fallbackNode{}
	stack := []*fallbackNode{root}
	indents := []int{0}

	for _, rawLine := range splitLines(front) {
		line := strings.TrimRight(rawLine, " \t\r")
		if line == "" || line[0] == '#' {
			continue
		}

		indent := leadingWhitespace(line)
		for len(indents) > 1 && indent <= indents[len(indents)-1] {
			stack = stack[:len(stack)-1]
			indents = indents[:len(indents)-1]
		}
		current := stack[len(stack)-1]

		if m := listItemPattern.FindStringSubmatch(line); m != nil {
			rest := strings.TrimSpace(m[1])
			if kv := entryKVPattern.FindStringSubmatch(rest); kv != nil {
				// Object inside a list item: the new entry becomes the open
				// container for subsequent deeper-indented keys.
				entry := &fallbackNode{}
				entry.setField(kv[1], &fallbackNode{isScalar: true, scalar: cleanScalar(kv[2])})
				if current.appendItem(entry) {
					stack = append(stack, entry)
					indents = append(indents, indent)
				}
				continue
			}
			current.appendItem(&fallbackNode{isScalar: true, scalar: cleanScalar(rest)})
			continue
		}

		if m := keyValuePattern.FindStringSubmatch(line); m != nil {
			key := m[1]
			value := strings.TrimSpace(m[2])
			switch {
			case value == "":
				// Container whose type (list or map) is decided by the next
				// parsed line.
				child := &fallbackNode{}
				if current.setField(key, child) {
					stack = append(stack, child)
					indents = append(indents, indent)
				}
			case strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
				current.setField(key, inlineArray(value))
			default:
				current.setField(key, &fallbackNode{isScalar: true, scalar: cleanScalar(value)})
			}
		}
		// Anything else is noise from malformed documents; skip it.
	}

	m, ok := root.toValue().(*Map)
	if !ok || m == nil {
		return NewMap()
	}
	return m
}

// fallbackNode is the mutable container used while the tolerant parser walks
// the block. A node starts undecided and commits to scalar, list, or map mode
// on first use.
type fallbackNode struct {
	isScalar bool
	scalar   string
	list     []*fallbackNode
	keys     []string
	fields   map[string]*fallbackNode
}

func (n *fallbackNode) appendItem(child *fallbackNode) bool {
	if n.isScalar || len(n.keys) > 0 {
		return false
	}
	n.list = append(n.list, child)
	return true
}

func (n *fallbackNode) setField(key string, child *fallbackNode) bool {
	if n.isScalar || len(n.list) > 0 {
		return false
	}
	if n.fields == nil {
		n.fields = map[string]*fallbackNode{}
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = child
	return true
}

func (n *fallbackNode) toValue() Value {
	switch {
	case n.isScalar:
		return Scalar(n.scalar)
	case len(n.keys) > 0:
		m := NewMap()
		for _, key := range n.keys {
			m.Set(key, n.fields[key].toValue())
		}
		return m
	default:
		list := &List{}
		for _, item := range n.list {
			list.Append(item.toValue())
		}
		return list
	}
}

func inlineArray(value string) *fallbackNode {
	inner := strings.TrimSpace(value[1 : len(value)-1])
	node := &fallbackNode{}
	if inner == "" {
		return node
	}
	for _, part := range strings.Split(inner, ",") {
		node.appendItem(&fallbackNode{isScalar: true, scalar: cleanScalar(part)})
	}
	return node
}

// cleanScalar trims the raw value and removes one layer of surrounding
// matching quotes.
func cleanScalar(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		count++
	}
	return count
}
