package literal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeString decodes one Python string literal including its prefix and quotes.
// Byte strings decode to their text; f-strings are rejected.
func decodeString(lit string) (string, error) {
	i := 0
	raw := false
	for i < len(lit) && strings.IndexByte("rRuUbBfF", lit[i]) >= 0 {
		switch lit[i] {
		case 'r', 'R':
			raw = true
		case 'f', 'F':
			return "", fmt.Errorf("f-string %q is not a literal", lit)
		}
		i++
	}
	body := lit[i:]

	var quote string
	switch {
	case strings.HasPrefix(body, `"""`), strings.HasPrefix(body, `'''`):
		quote = body[:3]
	case strings.HasPrefix(body, `"`), strings.HasPrefix(body, `'`):
		quote = body[:1]
	default:
		return "", fmt.Errorf("malformed string literal %q", lit)
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return "", fmt.Errorf("unterminated string literal %q", lit)
	}
	body = body[len(quote) : len(body)-len(quote)]

	if raw {
		return body, nil
	}
	return unescape(body)
}

func unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 32)
			sb.WriteRune(rune(v))
			i = j - 1
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if i+1+width > len(s) {
				return "", fmt.Errorf("truncated \\%c escape", e)
			}
			v, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return "", fmt.Errorf("invalid \\%c escape %q", e, s[i+1:i+1+width])
			}
			sb.WriteRune(rune(v))
			i += width
		case 'N':
			return "", fmt.Errorf("named unicode escapes are not supported")
		default:
			// Python keeps unknown escapes verbatim.
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String(), nil
}
