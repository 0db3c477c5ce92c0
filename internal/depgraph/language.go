package depgraph

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// DetectLanguageFromExt returns the language name and tree-sitter Language
// for a given file extension. Returns ok=false for files that are part of
// the graph but never parsed for imports (stylesheets, images, JSON).
func DetectLanguageFromExt(ext string) (langName string, lang *sitter.Language, ok bool) {
	switch strings.ToLower(ext) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript", javascript.GetLanguage(), true
	case ".ts", ".mts", ".cts":
		return "typescript", typescript.GetLanguage(), true
	case ".tsx":
		return "tsx", tsx.GetLanguage(), true
	default:
		return "", nil, false
	}
}
