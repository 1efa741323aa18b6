package metadata

import "strings"

// ExtractFrontmatter splits raw document text into the frontmatter block and
// the remaining body. The opening delimiter must be the very first line and
// consist of three or more dashes; the block runs until the next such line.
// Delimiter lines may carry trailing whitespace. When no frontmatter is
// present the full text is returned as body.
func ExtractFrontmatter(text string) (front string, body string) {
	lines := splitLines(text)
	if len(lines) == 0 || !isDelimiterLine(lines[0]) {
		return "", text
	}

	for i := 1; i < len(lines); i++ {
		if !isDelimiterLine(lines[i]) {
			continue
		}
		front = strings.Trim(strings.Join(lines[1:i], "\n"), "\n")
		body = strings.Join(lines[i+1:], "\n")
		return front, body
	}

	return "", text
}

// StripFrontmatter returns the document body with any leading frontmatter
// block removed and surrounding whitespace trimmed.
func StripFrontmatter(text string) string {
	_, body := ExtractFrontmatter(text)
	return strings.TrimSpace(body)
}

// BuildFileWithFrontmatter reassembles a document from a frontmatter block
// and a body, the inverse of ExtractFrontmatter for well-formed inputs.
func BuildFileWithFrontmatter(front, body string) string {
	return "---\n" + front + "\n---\n" + body
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}

func isDelimiterLine(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}
