package metadata

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"blockmeta/internal/literal"
)

const indentUnit = "    "

// Render produces the declaration text for rec, terminated by a blank line.
// Output depends only on rec, so unchanged records render byte-identically.
func Render(rec *Record) string {
	var b strings.Builder
	b.WriteString(DeclarationName)
	b.WriteString(" = {\n")
	for _, f := range rec.Fields() {
		b.WriteString(indentUnit)
		b.WriteString(strconv.Quote(f.Key))
		b.WriteString(": ")
		b.WriteString(pretty(f.Value, 2))
		b.WriteString(",\n")
	}
	b.WriteString("}\n\n")
	return b.String()
}

// pretty renders v for a slot whose entries sit at indent levels; closing
// brackets go one level out.
func pretty(v any, indent int) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return PyRepr(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case *big.Int:
		return x.String()
	case float64:
		return pyFloat(x)
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return prettyList(items, indent)
	case []ArgSpec:
		items := make([]any, len(x))
		for i, a := range x {
			items[i] = a
		}
		return prettyList(items, indent)
	case []any:
		return prettyList(x, indent)
	case ArgSpec:
		return prettyDict(literal.Dict{
			{Key: "name", Value: x.Name},
			{Key: "type", Value: string(x.Type)},
			{Key: "required", Value: x.Required},
			{Key: "default", Value: x.Default},
		}, indent)
	case literal.Dict:
		return prettyDict(x, indent)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := make(literal.Dict, 0, len(keys))
		for _, k := range keys {
			d = append(d, literal.Pair{Key: k, Value: x[k]})
		}
		return prettyDict(d, indent)
	default:
		return PyRepr(fmt.Sprint(x))
	}
}

func prettyList(items []any, indent int) string {
	if len(items) == 0 {
		return "[]"
	}
	pad := strings.Repeat(indentUnit, indent)
	var b strings.Builder
	b.WriteString("[\n")
	for _, item := range items {
		b.WriteString(pad)
		b.WriteString(pretty(item, indent+1))
		b.WriteString(",\n")
	}
	b.WriteString(strings.Repeat(indentUnit, indent-1))
	b.WriteString("]")
	return b.String()
}

func prettyDict(d literal.Dict, indent int) string {
	if len(d) == 0 {
		return "{}"
	}
	pad := strings.Repeat(indentUnit, indent)
	var b strings.Builder
	b.WriteString("{\n")
	for _, p := range d {
		b.WriteString(pad)
		b.WriteString(strconv.Quote(p.Key))
		b.WriteString(": ")
		b.WriteString(pretty(p.Value, indent+1))
		b.WriteString(",\n")
	}
	b.WriteString(strings.Repeat(indentUnit, indent-1))
	b.WriteString("}")
	return b.String()
}

// PyRepr quotes s the way Python's repr does: single quotes unless s contains a
// single quote and no double quote.
func PyRepr(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case !unicode.IsPrint(r) && r != ' ':
			switch {
			case r <= 0xff:
				fmt.Fprintf(&b, `\x%02x`, r)
			case r <= 0xffff:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}

// pyFloat formats f like Python's float repr.
func pyFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
