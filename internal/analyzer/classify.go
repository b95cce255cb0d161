package analyzer

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"blockmeta/internal/metadata"
	"blockmeta/internal/pyast"
)

// Classify decides the block type. Placeholders win over everything; otherwise the
// first top-level function definition makes a function block; anything else,
// including unparseable source, is a script. It never fails.
//
// A top-level `async def` counts as a function definition too, and so does a
// decorated one; stricter tooling that only accepts plain `def` would call such
// files scripts.
func (a *Analyzer) Classify(ctx context.Context, code []byte) (metadata.BlockType, string) {
	if HasPlaceholder(code) {
		return metadata.BlockTemplate, metadata.TemplateEntrypoint
	}

	tree, err := a.parser.ParseStrict(ctx, code)
	if err != nil {
		return metadata.BlockScript, ""
	}

	for _, stmt := range pyast.NamedChildren(tree.Root) {
		if name := topLevelFunction(tree, stmt); name != "" {
			return metadata.BlockFunction, name
		}
	}
	return metadata.BlockScript, ""
}

// topLevelFunction returns the name defined by a module-level def (plain, async or
// decorated), or "".
func topLevelFunction(t *pyast.Tree, stmt *sitter.Node) string {
	if stmt.Type() == "decorated_definition" {
		stmt = stmt.ChildByFieldName("definition")
		if stmt == nil {
			return ""
		}
	}
	if stmt.Type() != "function_definition" {
		return ""
	}
	name := stmt.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return t.Text(name)
}
