//go:build cgo

package pyast

import (
	"context"
	"errors"
	"testing"
)

func TestParseStrict_Valid(t *testing.T) {
	p := NewParser()
	tree, err := p.ParseStrict(context.Background(), []byte("import os\n\ndef run():\n    return os.getcwd()\n"))
	if err != nil {
		t.Fatalf("ParseStrict() error = %v", err)
	}
	if tree.Root.Type() != "module" {
		t.Errorf("root type = %q, want module", tree.Root.Type())
	}
	defs := FindNodes(tree.Root, "function_definition")
	if len(defs) != 1 {
		t.Fatalf("expected 1 function_definition, got %d", len(defs))
	}
	if name := tree.Text(defs[0].ChildByFieldName("name")); name != "run" {
		t.Errorf("function name = %q, want run", name)
	}
}

func TestParseStrict_Invalid(t *testing.T) {
	p := NewParser()
	_, err := p.ParseStrict(context.Background(), []byte("import os\n\ndef broken(:\n    pass\n"))
	if err == nil {
		t.Fatal("expected syntax error")
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if serr.Line != 3 {
		t.Errorf("Line = %d, want 3", serr.Line)
	}
}

func TestParseStrict_Python2Statements(t *testing.T) {
	p := NewParser()
	for _, src := range []string{"print 'x'\n", "exec 'x = 1'\n"} {
		if _, err := p.ParseStrict(context.Background(), []byte(src)); err == nil {
			t.Errorf("ParseStrict(%q) should reject a Python 2 statement", src)
		}
	}
	for _, src := range []string{"print('x')\n", "print('a', 'b', sep='')\n", "exec('x = 1')\n"} {
		if _, err := p.ParseStrict(context.Background(), []byte(src)); err != nil {
			t.Errorf("ParseStrict(%q) error = %v", src, err)
		}
	}
}

func TestParse_Lenient(t *testing.T) {
	p := NewParser()
	tree, err := p.Parse(context.Background(), []byte("def (:\n"))
	if err != nil {
		t.Fatalf("Parse() should not fail on syntax errors: %v", err)
	}
	if tree.FirstError() == nil {
		t.Error("FirstError() should report the error node")
	}
}

func TestParser_Reuse(t *testing.T) {
	p := NewParser()
	for _, src := range []string{"x = 1\n", "y = (\n", "z = 3\n"} {
		if _, err := p.Parse(context.Background(), []byte(src)); err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
	}
	tree, err := p.ParseStrict(context.Background(), []byte("z = 3\n"))
	if err != nil {
		t.Fatalf("parser state leaked between parses: %v", err)
	}
	if n := len(FindNodes(tree.Root, "assignment")); n != 1 {
		t.Errorf("expected 1 assignment, got %d", n)
	}
}
