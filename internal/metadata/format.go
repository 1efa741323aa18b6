package metadata

import (
	"path"
	"regexp"
	"strings"
)

var (
	wikiLinkLabeled = regexp.MustCompile(`\[\[([^\]|]+)\|([^\]]+)\]\]`)
	wikiLinkPlain   = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
)

// FormatValue normalizes a resolved value into display text. Wiki-style
// links are unwrapped to their label (or target basename), lists are joined
// with ", ", and anything else renders empty.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case Scalar:
		return UnwrapWikiLink(string(val))
	case *List:
		parts := make([]string, 0, len(val.Items))
		for _, item := range val.Items {
			if s, ok := item.(Scalar); ok {
				parts = append(parts, UnwrapWikiLink(string(s)))
				continue
			}
			parts = append(parts, UnwrapWikiLink(Serialize(item)))
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// UnwrapWikiLink replaces every Obsidian-style link in the text with its
// display form. "[[notes/foo.md|Foo Bar]]" becomes "Foo Bar",
// "[[notes/foo.md]]" becomes "foo", and surrounding text is preserved so a
// comma-separated list of links stays a list.
func UnwrapWikiLink(text string) string {
	out := wikiLinkLabeled.ReplaceAllStringFunc(text, func(match string) string {
		m := wikiLinkLabeled.FindStringSubmatch(match)
		return strings.TrimSpace(m[2])
	})
	out = wikiLinkPlain.ReplaceAllStringFunc(out, func(match string) string {
		m := wikiLinkPlain.FindStringSubmatch(match)
		target := strings.TrimSpace(m[1])
		return strings.TrimSuffix(path.Base(target), ".md")
	})
	return out
}
