//go:build cgo

package literal

import (
	"context"
	"errors"
	"math"
	"math/big"
	"reflect"
	"testing"
)

func TestDecode_Scalars(t *testing.T) {
	d := NewDecoder()
	tests := []struct {
		src  string
		want any
	}{
		{`'hello'`, "hello"},
		{`"it's"`, "it's"},
		{`'a\'b'`, "a'b"},
		{`'tab\there'`, "tab\there"},
		{`r'C:\new'`, `C:\new`},
		{`u'x'`, "x"},
		{`'\x41\u00e9'`, "Aé"},
		{`'''multi
line'''`, "multi\nline"},
		{`'ab' "cd"`, "abcd"},
		{`42`, int64(42)},
		{`-7`, int64(-7)},
		{`0x1F`, int64(31)},
		{`1_000`, int64(1000)},
		{`1.5`, 1.5},
		{`-0.25`, -0.25},
		{`True`, true},
		{`False`, false},
		{`None`, nil},
		{`('x')`, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := d.Decode(context.Background(), tt.src)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%q) = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestDecode_BigIntegers(t *testing.T) {
	d := NewDecoder()
	tests := []struct {
		src  string
		want any
	}{
		{`99999999999999999999`, "99999999999999999999"},
		{`-99999999999999999999`, "-99999999999999999999"},
		{`0x1_0000_0000_0000_0000`, "18446744073709551616"},
		{`+99999999999999999999`, "99999999999999999999"},
		{`9223372036854775807`, int64(math.MaxInt64)},
		{`-9223372036854775808`, int64(math.MinInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := d.Decode(context.Background(), tt.src)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.src, err)
			}
			if want, ok := tt.want.(string); ok {
				n, isBig := got.(*big.Int)
				if !isBig || n.String() != want {
					t.Errorf("Decode(%q) = %#v, want big %s", tt.src, got, want)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %#v, want %#v", tt.src, got, tt.want)
			}
		})
	}
}

func TestDecode_Containers(t *testing.T) {
	d := NewDecoder()
	src := `{
    "name": 'python/x.py',
    "tags": [],
    "platform": ['linux', 'macos',],
    "pair": ('a', 1),
    "args": [
        {
            "name": 'PORT',
            "default": None,
        },
    ],
}`
	got, err := d.DecodeDict(context.Background(), src)
	if err != nil {
		t.Fatalf("DecodeDict() error = %v", err)
	}

	wantKeys := []string{"name", "tags", "platform", "pair", "args"}
	if !reflect.DeepEqual(got.Keys(), wantKeys) {
		t.Errorf("Keys() = %v, want %v", got.Keys(), wantKeys)
	}
	if v, _ := got.Get("tags"); !reflect.DeepEqual(v, []any{}) {
		t.Errorf("tags = %#v, want empty list", v)
	}
	if v, _ := got.Get("platform"); !reflect.DeepEqual(v, []any{"linux", "macos"}) {
		t.Errorf("platform = %#v", v)
	}
	if v, _ := got.Get("pair"); !reflect.DeepEqual(v, []any{"a", int64(1)}) {
		t.Errorf("pair = %#v", v)
	}
	args, _ := got.Get("args")
	list, ok := args.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("args = %#v", args)
	}
	arg, ok := list[0].(Dict)
	if !ok {
		t.Fatalf("args[0] = %T, want Dict", list[0])
	}
	if v, _ := arg.Get("name"); v != "PORT" {
		t.Errorf("args[0].name = %v", v)
	}
	if !arg.Has("default") {
		t.Error("args[0] should have a default key")
	}
}

func TestDecode_CommentsInsideLiteral(t *testing.T) {
	d := NewDecoder()
	got, err := d.DecodeDict(context.Background(), "{\n    # curated\n    \"title\": 'X',  # trailing\n}")
	if err != nil {
		t.Fatalf("DecodeDict() error = %v", err)
	}
	if v, _ := got.Get("title"); v != "X" {
		t.Errorf("title = %v, want X", v)
	}
}

func TestDecode_DuplicateKeysKeepFirstPosition(t *testing.T) {
	d := NewDecoder()
	got, err := d.DecodeDict(context.Background(), `{"a": 1, "b": 2, "a": 3}`)
	if err != nil {
		t.Fatalf("DecodeDict() error = %v", err)
	}
	want := Dict{{"a", int64(3)}, {"b", int64(2)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeDict() = %#v, want %#v", got, want)
	}
}

func TestDecode_Rejects(t *testing.T) {
	d := NewDecoder()
	tests := []string{
		`{"a": os.getcwd()}`,
		`{"a": name}`,
		`{"a": f'{x}'}`,
		`{**base}`,
		`{1: 'x'}`,
		`[*xs]`,
		`{"a": 1 + 2}`,
		`{"a": ~1}`,
		`{"a": 1j}`,
		`{"a": `,
		`x = 1`,
		`1; 2`,
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if got, err := d.Decode(context.Background(), src); err == nil {
				t.Errorf("Decode(%q) = %#v, want error", src, got)
			}
		})
	}
}

func TestDecode_NotLiteralError(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(context.Background(), "{\n  'a': 1,\n  'b': open('x'),\n}")
	var nle *NotLiteralError
	if !errors.As(err, &nle) {
		t.Fatalf("expected *NotLiteralError, got %v", err)
	}
	if nle.Line != 3 {
		t.Errorf("Line = %d, want 3", nle.Line)
	}
}

func TestDecodeDict_RequiresDict(t *testing.T) {
	d := NewDecoder()
	if _, err := d.DecodeDict(context.Background(), `['a']`); err == nil {
		t.Error("DecodeDict on a list should fail")
	}
}
