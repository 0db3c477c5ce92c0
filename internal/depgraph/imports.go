package depgraph

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ParseImports parses src with lang and returns every module specifier it
// references, in source order, duplicates dropped. Covered forms:
//
//	import x from './x'        import './side-effect'
//	export { y } from './y'    import z = require('./z')   (TypeScript)
//	require('./w')             import('./lazy')
func ParseImports(ctx context.Context, src []byte, lang *sitter.Language) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	var specs []string
	seen := make(map[string]struct{})
	walkImports(tree.RootNode(), src, func(spec string) {
		if spec == "" {
			return
		}
		if _, ok := seen[spec]; ok {
			return
		}
		seen[spec] = struct{}{}
		specs = append(specs, spec)
	})
	return specs, nil
}

func walkImports(n *sitter.Node, src []byte, emit func(string)) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "import_statement", "export_statement", "import_require_clause":
		if s := n.ChildByFieldName("source"); s != nil && s.Type() == "string" {
			emit(stringContent(s, src))
		}
	case "call_expression":
		if spec, ok := callSpecifier(n, src); ok {
			emit(spec)
		}
	}

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		walkImports(n.Child(i), src, emit)
	}
}

// callSpecifier matches require('x') and import('x') with a literal argument.
func callSpecifier(n *sitter.Node, src []byte) (string, bool) {
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")
	if fn == nil || args == nil {
		return "", false
	}
	switch {
	case fn.Type() == "import":
	case fn.Type() == "identifier" && fn.Content(src) == "require":
	default:
		return "", false
	}
	if args.NamedChildCount() == 0 {
		return "", false
	}
	first := args.NamedChild(0)
	if first == nil || first.Type() != "string" {
		return "", false
	}
	return stringContent(first, src), true
}

// stringContent extracts the string literal without its quotes.
func stringContent(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "string_fragment" {
			return child.Content(src)
		}
	}
	text := n.Content(src)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return ""
}
