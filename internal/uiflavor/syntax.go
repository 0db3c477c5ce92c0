package uiflavor

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

const SyntaxName = "jsx-syntax"

const jsxQuery = `
	(jsx_element) @jsx
	(jsx_self_closing_element) @jsx
`

// Syntax parses content with the JavaScript grammar and matches when the
// tree holds at least one JSX element. Unlike the textual detectors it
// ignores markup-looking text inside strings and comments.
type Syntax struct {
	query *sitter.Query

	mu     sync.Mutex
	parser *sitter.Parser
}

func NewSyntax() (*Syntax, error) {
	lang := javascript.GetLanguage()
	q, err := sitter.NewQuery([]byte(jsxQuery), lang)
	if err != nil {
		return nil, fmt.Errorf("compile jsx query: %w", err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Syntax{query: q, parser: parser}, nil
}

func (s *Syntax) Name() string { return SyntaxName }

// Match is safe for concurrent use; parses are serialized on one parser.
func (s *Syntax) Match(content []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, err := s.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return false
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(s.query, tree.RootNode())
	_, ok := qc.NextMatch()
	return ok
}
