package metadata

import (
	"regexp"
	"strings"
)

var (
	declHeaderRe    = regexp.MustCompile(`\b` + DeclarationName + `\s*=\s*\{`)
	commentMarkerRe = regexp.MustCompile(`#\s*\{`)
)

// Span locates a declaration inside a file's text.
type Span struct {
	Start int // offset of the identifier
	Open  int // offset of the opening brace
	End   int // offset just past the matching closing brace
}

// Literal returns the mapping text including both braces.
func (s Span) Literal(text string) string {
	return text[s.Open:s.End]
}

// Locate finds the first declaration in text and its balanced closing brace.
// Braces inside string literals and comments are ignored, except that a comment
// marker directly before a brace ("# {") is first treated as absent, matching how the
// reader strips such markers before decoding. When that does not balance, for example
// because the rest of the marked line is prose, the comments are skipped entirely.
func Locate(text string) (Span, bool) {
	loc := declHeaderRe.FindStringIndex(text)
	if loc == nil {
		return Span{}, false
	}
	open := loc[1] - 1
	end, ok := matchBrace(text, open, true)
	if !ok {
		end, ok = matchBrace(text, open, false)
	}
	if !ok {
		return Span{}, false
	}
	return Span{Start: loc[0], Open: open, End: end}, true
}

// locateLoose finds the declaration the way a non-greedy `{.*?}\n\n` match would:
// from the header to the first closing brace followed by a blank line.
func locateLoose(text string) (Span, bool) {
	loc := declHeaderRe.FindStringIndex(text)
	if loc == nil {
		return Span{}, false
	}
	open := loc[1] - 1
	idx := strings.Index(text[open:], "}\n\n")
	if idx < 0 {
		return Span{}, false
	}
	return Span{Start: loc[0], Open: open, End: open + idx + 1}, true
}

func matchBrace(text string, open int, liveMarkers bool) (int, bool) {
	depth := 0
	for i := open; i < len(text); i++ {
		switch c := text[i]; c {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
			if depth == 0 {
				if c != '}' {
					return 0, false
				}
				return i + 1, true
			}
		case '\'', '"':
			next, ok := skipString(text, i)
			if !ok {
				return 0, false
			}
			i = next - 1
		case '#':
			if j := skipSpace(text, i+1); liveMarkers && j < len(text) && text[j] == '{' {
				// "# {": the brace is scanned on the next iteration
				i = j - 1
				continue
			}
			nl := strings.IndexByte(text[i:], '\n')
			if nl < 0 {
				return 0, false
			}
			i += nl
		}
	}
	return 0, false
}

func skipSpace(text string, i int) int {
	for i < len(text) && strings.IndexByte(" \t\n\r\f", text[i]) >= 0 {
		i++
	}
	return i
}

// skipString returns the offset just past the string literal opening at i.
func skipString(text string, i int) (int, bool) {
	q := text[i]
	triple := strings.HasPrefix(text[i:], strings.Repeat(string(q), 3))
	j := i + 1
	if triple {
		j = i + 3
	}
	for j < len(text) {
		switch text[j] {
		case '\\':
			j += 2
			continue
		case '\n':
			if !triple {
				return 0, false
			}
		case q:
			if !triple {
				return j + 1, true
			}
			if strings.HasPrefix(text[j:], strings.Repeat(string(q), 3)) {
				return j + 3, true
			}
		}
		j++
	}
	return 0, false
}

// stripCommentMarkers turns "# {" into "{" so commented-out entries decode as live ones.
func stripCommentMarkers(literal string) string {
	return commentMarkerRe.ReplaceAllString(literal, "{")
}
