// Package analyzer derives facts about a Python block from its source: imported modules,
// third-party dependencies, templated arguments and the block's execution shape.
package analyzer

import (
	"context"
	"errors"
	"sort"

	blockerrors "blockmeta/internal/errors"
	"blockmeta/internal/metadata"
	"blockmeta/internal/pyast"
)

// DefaultStdlib lists the module roots never reported as dependencies.
var DefaultStdlib = []string{
	"os", "sys", "re", "math", "json", "socket", "subprocess", "time",
	"datetime", "random", "base64", "threading", "itertools", "functools",
}

// Facts is everything the analyzer infers from one source file.
type Facts struct {
	Imports      []string
	Dependencies []string
	Args         []metadata.ArgSpec
	BlockType    metadata.BlockType
	Entrypoint   string
}

// Options extends the built-in tables.
type Options struct {
	ExtraStdlib []string
	ExtraRules  []TypeRule
}

// Analyzer extracts Facts using tree-sitter. It holds a parser and is not safe for
// concurrent use.
type Analyzer struct {
	parser *pyast.Parser
	stdlib map[string]bool
	rules  []TypeRule
}

// New creates an analyzer with the default tables plus opts.
func New(opts Options) *Analyzer {
	stdlib := make(map[string]bool, len(DefaultStdlib)+len(opts.ExtraStdlib))
	for _, m := range DefaultStdlib {
		stdlib[m] = true
	}
	for _, m := range opts.ExtraStdlib {
		stdlib[m] = true
	}
	rules := make([]TypeRule, 0, len(DefaultTypeRules)+len(opts.ExtraRules))
	rules = append(rules, DefaultTypeRules...)
	rules = append(rules, opts.ExtraRules...)

	return &Analyzer{
		parser: pyast.NewParser(),
		stdlib: stdlib,
		rules:  rules,
	}
}

// Analyze runs import extraction, argument extraction and classification.
// It fails only when code is not valid Python.
func (a *Analyzer) Analyze(ctx context.Context, code []byte) (*Facts, error) {
	imports, deps, err := a.ExtractImports(ctx, code)
	if err != nil {
		return nil, err
	}
	blockType, entrypoint := a.Classify(ctx, code)
	return &Facts{
		Imports:      imports,
		Dependencies: deps,
		Args:         a.ExtractArgs(code),
		BlockType:    blockType,
		Entrypoint:   entrypoint,
	}, nil
}

func (a *Analyzer) parseStrict(ctx context.Context, code []byte) (*pyast.Tree, error) {
	tree, err := a.parser.ParseStrict(ctx, code)
	if err == nil {
		return tree, nil
	}
	var serr *pyast.SyntaxError
	if errors.As(err, &serr) {
		return nil, blockerrors.NewBlockError(blockerrors.ParseError, "source is not valid Python", serr).
			WithDetails(map[string]int{"line": serr.Line, "column": serr.Column})
	}
	return nil, blockerrors.NewBlockError(blockerrors.InternalError, "parser failed", err)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
