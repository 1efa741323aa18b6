package metadata

import (
	"regexp"
	"strconv"
	"strings"
)

var indexedSegmentPattern = regexp.MustCompile(`^([^\[]+)\[(\d+)\]$`)

// Resolve walks a dotted/indexed path such as "postes[0].institution"
// against the metadata mapping. Paths without structure characters fall back
// to the case-insensitive flat lookup. A miss at any segment reports
// (_, false); it is never an error. Structured leaves are serialized for
// display.
func Resolve(m *Map, path string) (string, bool) {
	if m == nil || path == "" {
		return "", false
	}

	if !strings.ContainsAny(path, ".[]") {
		return m.Flat(path)
	}

	var current Value = m
	for _, segment := range strings.Split(path, ".") {
		if seg := indexedSegmentPattern.FindStringSubmatch(segment); seg != nil {
			index, err := strconv.Atoi(seg[2])
			if err != nil {
				return "", false
			}
			container, ok := current.(*Map)
			if !ok {
				return "", false
			}
			child, ok := container.Get(seg[1])
			if !ok {
				return "", false
			}
			list, ok := child.(*List)
			if !ok || index >= list.Len() {
				return "", false
			}
			current = list.At(index)
			continue
		}

		container, ok := current.(*Map)
		if !ok {
			return "", false
		}
		child, ok := container.Get(segment)
		if !ok {
			return "", false
		}
		current = child
	}

	if s, ok := current.(Scalar); ok {
		return string(s), true
	}
	return Serialize(current), true
}
