// Package uiflavor decides whether a plain code file embeds UI markup and
// therefore belongs under the UI-flavored extension.
package uiflavor

import (
	"fmt"
	"regexp"

	"github.com/agentic-research/carve/api"
)

// Heuristic is a single content predicate.
type Heuristic interface {
	Name() string
	Match(content []byte) bool
}

// Pattern is a Heuristic backed by a regular expression.
type Pattern struct {
	name string
	re   *regexp.Regexp
}

func NewPattern(name, expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile heuristic %q: %w", name, err)
	}
	return &Pattern{name: name, re: re}, nil
}

// MustPattern is like NewPattern but panics on a bad expression.
func MustPattern(name, expr string) *Pattern {
	p, err := NewPattern(name, expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) Name() string              { return p.name }
func (p *Pattern) Match(content []byte) bool { return p.re.Match(content) }

// Built-in detectors.
var (
	UIImport       = MustPattern("ui-import", `(?i)import.*React`)
	CapitalizedTag = MustPattern("capitalized-tag", `<[A-Z]`)
	ReturnParen    = MustPattern("return-paren", `return\s*\(`)
)

// Defaults returns the built-in textual detectors.
func Defaults() []Heuristic {
	return []Heuristic{UIImport, CapitalizedTag, ReturnParen}
}

// Lookup finds a built-in detector by name.
func Lookup(name string) (Heuristic, bool) {
	switch name {
	case UIImport.Name():
		return UIImport, true
	case CapitalizedTag.Name():
		return CapitalizedTag, true
	case ReturnParen.Name():
		return ReturnParen, true
	case SyntaxName:
		s, err := NewSyntax()
		if err != nil {
			return nil, false
		}
		return s, true
	}
	return nil, false
}

// FromProfile builds the detector list described by a profile. Entries with
// a pattern are compiled; entries without one must name a built-in.
// An empty list selects Defaults.
func FromProfile(hs []api.Heuristic) ([]Heuristic, error) {
	if len(hs) == 0 {
		return Defaults(), nil
	}
	out := make([]Heuristic, 0, len(hs))
	for _, h := range hs {
		if h.Pattern != "" {
			p, err := NewPattern(h.Name, h.Pattern)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
			continue
		}
		b, ok := Lookup(h.Name)
		if !ok {
			return nil, fmt.Errorf("unknown heuristic %q", h.Name)
		}
		out = append(out, b)
	}
	return out, nil
}
