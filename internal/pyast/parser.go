// Package pyast wraps tree-sitter's Python grammar for the analyzer and the literal decoder.
package pyast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps a tree-sitter parser bound to the Python grammar.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new Python parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Tree is a parsed source file.
type Tree struct {
	Root   *sitter.Node
	Source []byte
}

// SyntaxError describes the first error node tree-sitter recovered from.
type SyntaxError struct {
	Line   int // 1-indexed
	Column int // 1-indexed
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("invalid syntax at line %d, column %d", e.Line, e.Column)
	}
	return fmt.Sprintf("invalid syntax at line %d, column %d near %q", e.Line, e.Column, e.Near)
}

// Parse parses source without judging its validity. Tree-sitter always produces a tree;
// callers that need strict parsing use ParseStrict.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return &Tree{Root: tree.RootNode(), Source: source}, nil
}

// ParseStrict parses source and returns a *SyntaxError if the tree contains
// error or missing nodes.
func (p *Parser) ParseStrict(ctx context.Context, source []byte) (*Tree, error) {
	t, err := p.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	if serr := t.FirstError(); serr != nil {
		return nil, serr
	}
	return t, nil
}

// python2Only lists statements the grammar still accepts but Python 3 rejects.
var python2Only = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// FirstError returns the first ERROR or MISSING node, or Python 2 statement, in
// document order, or nil.
func (t *Tree) FirstError() *SyntaxError {
	if t.Root == nil {
		return nil
	}
	var found *sitter.Node
	Walk(t.Root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() || python2Only[n.Type()] {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		if !t.Root.HasError() {
			return nil
		}
		found = t.Root
	}
	near := t.Text(found)
	if len(near) > 40 {
		near = near[:40]
	}
	return &SyntaxError{
		Line:   int(found.StartPoint().Row) + 1,
		Column: int(found.StartPoint().Column) + 1,
		Near:   near,
	}
}

// Text returns the source text spanned by n.
func (t *Tree) Text(n *sitter.Node) string {
	return string(t.Source[n.StartByte():n.EndByte()])
}

// Walk visits n and its descendants depth-first in document order. Returning false
// from fn skips the node's children.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), fn)
	}
}

// FindNodes returns every descendant of root whose type is in types.
func FindNodes(root *sitter.Node, types ...string) []*sitter.Node {
	var result []*sitter.Node
	Walk(root, func(n *sitter.Node) bool {
		for _, t := range types {
			if n.Type() == t {
				result = append(result, n)
				break
			}
		}
		return true
	})
	return result
}

// NamedChildren returns the named children of n, skipping comments.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}
