package analyzer

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"blockmeta/internal/pyast"
)

// ExtractImports returns every imported module name and the subset of root names
// that are not in the standard-library allow-list. Both are sorted and unique.
// Invalid Python yields a PARSE_ERROR BlockError.
func (a *Analyzer) ExtractImports(ctx context.Context, code []byte) (imports, deps []string, err error) {
	tree, err := a.parseStrict(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	importSet := map[string]struct{}{}
	depSet := map[string]struct{}{}
	add := func(module string) {
		if module == "" {
			return
		}
		importSet[module] = struct{}{}
		root, _, _ := strings.Cut(module, ".")
		if !a.stdlib[root] {
			depSet[root] = struct{}{}
		}
	}

	for _, stmt := range pyast.FindNodes(tree.Root, "import_statement", "import_from_statement", "future_import_statement") {
		switch stmt.Type() {
		case "import_statement":
			for _, child := range pyast.NamedChildren(stmt) {
				add(importedName(tree, child))
			}
		case "import_from_statement":
			add(fromModule(tree, stmt.ChildByFieldName("module_name")))
		case "future_import_statement":
			add("__future__")
		}
	}

	return sortedKeys(importSet), sortedKeys(depSet), nil
}

// importedName resolves one target of `import a.b, c as d`.
func importedName(t *pyast.Tree, n *sitter.Node) string {
	switch n.Type() {
	case "dotted_name":
		return dottedName(t, n)
	case "aliased_import":
		if name := n.ChildByFieldName("name"); name != nil {
			return dottedName(t, name)
		}
	}
	return ""
}

// fromModule resolves the module of `from X import ...`. Relative imports contribute
// their dotted part only; `from . import x` contributes nothing.
func fromModule(t *pyast.Tree, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "dotted_name":
		return dottedName(t, n)
	case "relative_import":
		for _, child := range pyast.NamedChildren(n) {
			if child.Type() == "dotted_name" {
				return dottedName(t, child)
			}
		}
	}
	return ""
}

// dottedName joins identifier parts, dropping any whitespace Python allows around dots.
func dottedName(t *pyast.Tree, n *sitter.Node) string {
	var parts []string
	for _, child := range pyast.NamedChildren(n) {
		if child.Type() == "identifier" {
			parts = append(parts, t.Text(child))
		}
	}
	return strings.Join(parts, ".")
}
