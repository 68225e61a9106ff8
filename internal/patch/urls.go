package patch

import (
	"strings"

	"github.com/joelspa/Katze/internal/domain"
)

// RewriteStats summarizes a RewriteBaseURL pass.
type RewriteStats struct {
	Rewritten  int
	Unbalanced []domain.Literal
}

// RewriteBaseURL turns string literals that start with baseURL into
// template literals that start with ${constant}.
//
// Backtick literals only get their prefix swapped. Single and double quoted
// literals are converted whole: both delimiters become backticks and the
// body is escaped so its value does not change. A quoted literal that is a
// JSX attribute value (href="...") is also wrapped in braces. A quoted
// literal whose closing quote is not on the same line is left alone and
// reported as unbalanced.
//
// Literals that do not start with baseURL and comments are copied through
// without looking inside them, so a URL quoted inside another string is not
// touched. Placeholders in template literals are scanned as code.
func RewriteBaseURL(content, baseURL, constant string) (string, RewriteStats) {
	if baseURL == "" {
		return content, RewriteStats{}
	}

	s := &urlScanner{
		src:     content,
		baseURL: baseURL,
		ref:     "${" + constant + "}",
	}
	s.out.Grow(len(content))
	s.code(false)
	return s.out.String(), s.stats
}

type urlScanner struct {
	src     string
	baseURL string
	ref     string

	i     int
	out   strings.Builder
	stats RewriteStats
}

// code copies source text until EOF or, when inPlaceholder is set, until
// the brace that closes the current ${...} placeholder.
func (s *urlScanner) code(inPlaceholder bool) {
	depth := 0
	for s.i < len(s.src) {
		c := s.src[s.i]
		switch {
		case c == '\'' || c == '"':
			s.quoted(c)
		case c == '`':
			s.template()
		case c == '/' && s.peek(1) == '/':
			s.copyUntil(2, "\n", false)
		case c == '/' && s.peek(1) == '*':
			s.copyUntil(2, "*/", true)
		case c == '{':
			depth++
			s.copy(1)
		case c == '}':
			s.copy(1)
			if depth == 0 && inPlaceholder {
				return
			}
			depth--
		default:
			s.copy(1)
		}
	}
}

func (s *urlScanner) quoted(q byte) {
	start := s.i
	body := start + 1
	end := closingQuote(s.src, body, q)

	if !hasBoundedPrefix(s.src[body:], s.baseURL) {
		if end < 0 {
			// Stray quote, e.g. an apostrophe in JSX text.
			s.copy(1)
			return
		}
		s.copy(end + 1 - start)
		return
	}

	if end < 0 {
		s.stats.Unbalanced = append(s.stats.Unbalanced, domain.Literal{
			Line: 1 + strings.Count(s.src[:start], "\n"),
			Text: lineAt(s.src, start),
		})
		s.copyUntil(1, "\n", false)
		return
	}

	jsxAttr := isJSXAttrValue(s.src, start)
	if jsxAttr {
		s.out.WriteByte('{')
	}
	s.out.WriteByte('`')
	s.out.WriteString(s.ref)
	s.out.WriteString(escapeTemplate(s.src[body+len(s.baseURL) : end]))
	s.out.WriteByte('`')
	if jsxAttr {
		s.out.WriteByte('}')
	}
	s.stats.Rewritten++
	s.i = end + 1
}

// template copies a backtick literal, swapping a leading base URL and
// scanning ${...} placeholders as code.
func (s *urlScanner) template() {
	s.copy(1)
	if hasBoundedPrefix(s.src[s.i:], s.baseURL) {
		s.out.WriteString(s.ref)
		s.i += len(s.baseURL)
		s.stats.Rewritten++
	}

	for s.i < len(s.src) {
		switch c := s.src[s.i]; {
		case c == '\\':
			s.copy(2)
		case c == '`':
			s.copy(1)
			return
		case c == '$' && s.peek(1) == '{':
			s.copy(2)
			s.code(true)
		default:
			s.copy(1)
		}
	}
}

func (s *urlScanner) peek(off int) byte {
	if s.i+off < len(s.src) {
		return s.src[s.i+off]
	}
	return 0
}

func (s *urlScanner) copy(n int) {
	end := s.i + n
	if end > len(s.src) {
		end = len(s.src)
	}
	s.out.WriteString(s.src[s.i:end])
	s.i = end
}

// copyUntil copies up to the next occurrence of stop found after the
// first skip bytes, including it when inclusive is set, or to EOF.
func (s *urlScanner) copyUntil(skip int, stop string, inclusive bool) {
	k := -1
	if s.i+skip <= len(s.src) {
		k = strings.Index(s.src[s.i+skip:], stop)
	}
	if k < 0 {
		s.copy(len(s.src) - s.i)
		return
	}
	n := skip + k
	if inclusive {
		n += len(stop)
	}
	s.copy(n)
}

// hasBoundedPrefix rejects matches such as http://localhost:50001 where the
// prefix runs into a longer host or port. A prefix ending in a separator
// such as "/" needs no boundary.
func hasBoundedPrefix(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	if len(s) == len(prefix) || !isHostByte(prefix[len(prefix)-1]) {
		return true
	}
	c := s[len(prefix)]
	return !isHostByte(c) && c != '.'
}

func isHostByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// isJSXAttrValue reports whether the quote at i follows name= inside an
// open JSX tag.
func isJSXAttrValue(s string, i int) bool {
	j := i - 1
	if j < 0 || s[j] != '=' {
		return false
	}
	k := j - 1
	for k >= 0 && (isHostByte(s[k]) || s[k] == ':') {
		k--
	}
	if k == j-1 || k < 0 || (s[k] != ' ' && s[k] != '\t' && s[k] != '\n' && s[k] != '\r') {
		return false
	}

	for ; k >= 0; k-- {
		switch s[k] {
		case '>':
			if k > 0 && s[k-1] == '=' {
				continue
			}
			return false
		case '<':
			next := byte(0)
			if k+1 < len(s) {
				next = s[k+1]
			}
			return (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z')
		case ';':
			return false
		}
	}
	return false
}

// closingQuote returns the index of the quote that closes a literal whose
// body starts at from, or -1 if a newline or EOF comes first.
func closingQuote(s string, from int, q byte) int {
	for k := from; k < len(s); k++ {
		switch s[k] {
		case '\\':
			k++
		case '\n':
			return -1
		case q:
			return k
		}
	}
	return -1
}

func escapeTemplate(body string) string {
	if !strings.ContainsAny(body, "`$") {
		return body
	}

	var b strings.Builder
	b.Grow(len(body) + 4)
	for k := 0; k < len(body); k++ {
		c := body[k]
		switch {
		case c == '\\' && k+1 < len(body):
			b.WriteByte(c)
			b.WriteByte(body[k+1])
			k++
		case c == '`':
			b.WriteString("\\`")
		case c == '$' && k+1 < len(body) && body[k+1] == '{':
			b.WriteString("\\$")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func lineAt(s string, i int) string {
	start := strings.LastIndexByte(s[:i], '\n') + 1
	end := strings.IndexByte(s[i:], '\n')
	if end < 0 {
		end = len(s)
	} else {
		end += i
	}
	return strings.TrimSpace(s[start:end])
}
