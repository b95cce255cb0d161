package metadata

import "strings"

// Inject removes the first existing declaration from text, together with up to two
// newlines that terminate it, and returns block followed by the remaining text.
// A declaration that does not balance is removed up to its first "}\n\n".
// Bytes outside the removed span are preserved.
func Inject(text, block string) string {
	span, ok := Locate(text)
	if !ok {
		span, ok = locateLoose(text)
	}
	if ok {
		end := span.End
		for n := 0; n < 2 && end < len(text) && text[end] == '\n'; n++ {
			end++
		}
		text = text[:span.Start] + text[end:]
	}
	var b strings.Builder
	b.Grow(len(block) + len(text))
	b.WriteString(block)
	b.WriteString(text)
	return b.String()
}
