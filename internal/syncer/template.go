package syncer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-mdsync/internal/metadata"
)

var (
	placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

	// splitExprPattern matches dynamic filename expressions such as
	// name.split("-")[-1]; the index may be negative to count from the end.
	splitExprPattern = regexp.MustCompile(`^name\.split\(["']([^"']*)["']\)\[(-?\d+)\]$`)

	// rootIndexedPattern matches one level of array indexing plus a nested
	// field, e.g. Taches[0].date.
	rootIndexedPattern = regexp.MustCompile(`^([^\[\]]+)\[(\d+)\]\.(.+)$`)
)

// renderTitle expands a title template. Placeholders are resolved in three
// passes: dynamic filename expressions, _root. tokens against the document
// metadata, then the current item's scalar fields. Name expressions that do
// not evaluate collapse to the empty string; other unresolved placeholders
// are left verbatim.
func renderTitle(format, docName string, item, root *metadata.Map) string {
	out := placeholderPattern.ReplaceAllStringFunc(format, func(token string) string {
		expr := token[1 : len(token)-1]

		if expr == "name" || strings.HasPrefix(expr, "name.") {
			v, _ := resolveNameExpression(expr, docName)
			return v
		}
		if field, ok := strings.CutPrefix(expr, "_root."); ok {
			if v := resolveRootField(root, field); v != "" {
				return v
			}
			return token
		}
		if item != nil {
			if v, ok := item.Get(expr); ok {
				if s, isScalar := v.(metadata.Scalar); isScalar {
					return string(s)
				}
			}
		}
		return token
	})
	return out
}

// renderID expands an event id template. The {index} placeholder is only
// meaningful when expanding array elements; {filename} is the document
// basename.
func renderID(format, docName string, index int, withIndex bool) string {
	out := format
	if withIndex {
		out = strings.ReplaceAll(out, "{index}", strconv.Itoa(index))
	}
	out = strings.ReplaceAll(out, "{filename}", baseName(docName))
	return out
}

// resolveNameExpression evaluates "name" or a name.split(sep)[i] expression
// against the document's basename. Unsupported expressions and out-of-range
// indices report failure.
func resolveNameExpression(expr, docName string) (string, bool) {
	base := baseName(docName)
	if expr == "name" {
		return base, true
	}
	m := splitExprPattern.FindStringSubmatch(expr)
	if m == nil {
		return "", false
	}
	sep := m[1]
	idx, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}
	parts := strings.Split(base, sep)
	if idx < 0 {
		idx += len(parts)
	}
	if idx < 0 || idx >= len(parts) {
		return "", false
	}
	return strings.TrimSpace(parts[idx]), true
}

// resolveRootField reads a field from the whole-document metadata,
// supporting one level of array indexing with a nested field
// (e.g. Taches[1].statut). Structured values go through the display
// formatter.
func resolveRootField(root *metadata.Map, field string) string {
	if root == nil {
		return ""
	}
	if m := rootIndexedPattern.FindStringSubmatch(field); m != nil {
		arrayField, nested := m[1], m[3]
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return ""
		}
		value, ok := root.Get(arrayField)
		if !ok {
			return ""
		}
		list, ok := value.(*metadata.List)
		if !ok || idx >= list.Len() {
			return ""
		}
		entry, ok := list.At(idx).(*metadata.Map)
		if !ok {
			return ""
		}
		nestedValue, ok := entry.Get(nested)
		if !ok {
			return ""
		}
		return metadata.FormatValue(nestedValue)
	}

	value, ok := root.Get(field)
	if !ok {
		return ""
	}
	return metadata.FormatValue(value)
}

// resolveItemOrRoot reads a field from the current array element, or from the
// document metadata when the field carries a _root. prefix. Values pass
// through the display formatter so wiki links unwrap and lists join.
func resolveItemOrRoot(field string, item, root *metadata.Map) string {
	if rootField, ok := strings.CutPrefix(field, "_root."); ok {
		return resolveRootField(root, rootField)
	}
	if item == nil {
		return ""
	}
	value, ok := item.Get(field)
	if !ok {
		return ""
	}
	return metadata.FormatValue(value)
}
