package patch

import "strings"

// HasMarker reports whether content already carries the marker substring.
func HasMarker(content, marker string) bool {
	return strings.Contains(content, marker)
}

// InsertAfterLastImport inserts line directly after the last line that
// starts with prefix. It returns the content unchanged and false when no
// line starts with prefix.
func InsertAfterLastImport(content, line, prefix string) (string, bool) {
	lines := strings.Split(content, "\n")

	idx := -1
	for i, l := range lines {
		if strings.HasPrefix(l, prefix) {
			idx = i
		}
	}
	if idx < 0 {
		return content, false
	}

	insert := strings.TrimRight(line, " \t\r\n")
	eol := lineEnding(content)

	pos := 0
	for _, l := range lines[:idx+1] {
		pos += len(l) + 1
	}
	if pos > len(content) {
		// The last import is the final line and has no line break.
		return content + eol + insert, true
	}
	return content[:pos] + insert + eol + content[pos:], true
}

// InsertAfterAnchor inserts line after every exact occurrence of anchor.
// The anchor must match byte for byte; when it is absent the content is
// returned unchanged and false.
func InsertAfterAnchor(content, anchor, line string) (string, bool) {
	if anchor == "" || !strings.Contains(content, anchor) {
		return content, false
	}
	insert := strings.TrimRight(line, " \t\r\n")
	return strings.ReplaceAll(content, anchor, anchor+lineEnding(content)+insert), true
}

func lineEnding(content string) string {
	i := strings.IndexByte(content, '\n')
	if i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
