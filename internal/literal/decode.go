package literal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"blockmeta/internal/pyast"
)

// NotLiteralError reports a construct outside the literal subset.
type NotLiteralError struct {
	Kind string
	Line int
}

func (e *NotLiteralError) Error() string {
	return fmt.Sprintf("line %d: %s is not a literal", e.Line, e.Kind)
}

// Decoder evaluates literal expressions. It reuses one parser and is not safe for
// concurrent use.
type Decoder struct {
	parser *pyast.Parser
}

// NewDecoder creates a decoder with its own Python parser.
func NewDecoder() *Decoder {
	return &Decoder{parser: pyast.NewParser()}
}

// Decode evaluates src, which must hold exactly one literal expression.
func (d *Decoder) Decode(ctx context.Context, src string) (any, error) {
	tree, err := d.parser.ParseStrict(ctx, []byte(src))
	if err != nil {
		return nil, err
	}
	stmts := pyast.NamedChildren(tree.Root)
	if len(stmts) != 1 || stmts[0].Type() != "expression_statement" {
		return nil, fmt.Errorf("expected a single expression, found %d statements", len(stmts))
	}
	exprs := pyast.NamedChildren(stmts[0])
	if len(exprs) != 1 {
		return nil, notLiteral(stmts[0], "expression list")
	}
	return eval(tree, exprs[0])
}

// DecodeDict evaluates src and requires the result to be a dict.
func (d *Decoder) DecodeDict(ctx context.Context, src string) (Dict, error) {
	v, err := d.Decode(ctx, src)
	if err != nil {
		return nil, err
	}
	dict, ok := v.(Dict)
	if !ok {
		return nil, fmt.Errorf("expected a dict literal, got %T", v)
	}
	return dict, nil
}

func eval(t *pyast.Tree, n *sitter.Node) (any, error) {
	switch n.Type() {
	case "dictionary":
		return evalDict(t, n)
	case "list", "tuple", "set":
		return evalSequence(t, n)
	case "parenthesized_expression":
		inner := pyast.NamedChildren(n)
		if len(inner) != 1 {
			return nil, notLiteral(n, "parenthesized expression")
		}
		return eval(t, inner[0])
	case "string":
		return decodeString(t.Text(n))
	case "concatenated_string":
		var sb strings.Builder
		for _, part := range pyast.NamedChildren(n) {
			s, err := decodeString(t.Text(part))
			if err != nil {
				return nil, err
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	case "integer":
		return parseInt(t.Text(n))
	case "float":
		return parseFloat(t.Text(n))
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "none":
		return nil, nil
	case "unary_operator":
		return evalUnary(t, n)
	default:
		return nil, notLiteral(n, n.Type())
	}
}

func evalDict(t *pyast.Tree, n *sitter.Node) (Dict, error) {
	dict := Dict{}
	for _, child := range pyast.NamedChildren(n) {
		if child.Type() != "pair" {
			return nil, notLiteral(child, child.Type())
		}
		key, err := eval(t, child.ChildByFieldName("key"))
		if err != nil {
			return nil, err
		}
		ks, ok := key.(string)
		if !ok {
			return nil, notLiteral(child, fmt.Sprintf("non-string key %v", key))
		}
		value, err := eval(t, child.ChildByFieldName("value"))
		if err != nil {
			return nil, err
		}
		dict.Set(ks, value)
	}
	return dict, nil
}

func evalSequence(t *pyast.Tree, n *sitter.Node) ([]any, error) {
	items := []any{}
	for _, child := range pyast.NamedChildren(n) {
		v, err := eval(t, child)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func evalUnary(t *pyast.Tree, n *sitter.Node) (any, error) {
	op := n.ChildByFieldName("operator")
	arg := n.ChildByFieldName("argument")
	if op == nil || arg == nil {
		return nil, notLiteral(n, "unary expression")
	}
	v, err := eval(t, arg)
	if err != nil {
		return nil, err
	}
	switch t.Text(op) {
	case "+":
		switch v.(type) {
		case int64, *big.Int, float64:
			return v, nil
		}
	case "-":
		switch x := v.(type) {
		case int64:
			if x == math.MinInt64 {
				return normalizeInt(new(big.Int).Neg(big.NewInt(x))), nil
			}
			return -x, nil
		case *big.Int:
			return normalizeInt(new(big.Int).Neg(x)), nil
		case float64:
			return -x, nil
		}
	}
	return nil, notLiteral(n, "unary "+t.Text(op))
}

// parseInt returns an int64, or a *big.Int for values outside its range.
func parseInt(text string) (any, error) {
	lower := strings.ToLower(text)
	if strings.HasSuffix(lower, "j") || strings.HasSuffix(lower, "l") {
		return nil, fmt.Errorf("unsupported integer literal %q", text)
	}
	// Base 0 understands 0x/0o/0b prefixes and underscores, as Python does.
	v, err := strconv.ParseInt(text, 0, 64)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("invalid integer literal %q: %w", text, err)
	}
	n, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal %q", text)
	}
	return n, nil
}

// normalizeInt narrows n to int64 when it fits.
func normalizeInt(n *big.Int) any {
	if n.IsInt64() {
		return n.Int64()
	}
	return n
}

func parseFloat(text string) (float64, error) {
	if strings.HasSuffix(strings.ToLower(text), "j") {
		return 0, fmt.Errorf("unsupported complex literal %q", text)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float literal %q: %w", text, err)
	}
	return v, nil
}

func notLiteral(n *sitter.Node, kind string) error {
	return &NotLiteralError{Kind: kind, Line: int(n.StartPoint().Row) + 1}
}
