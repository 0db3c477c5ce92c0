package treesync

import (
	"regexp"
	"strings"

	"github.com/agentic-research/carve/api"
)

// rewriter swaps the plain extension of relative import specifiers for the
// UI-flavored one. Only the extension token changes; keyword, whitespace
// and quotes are left as they were.
type rewriter struct {
	flavor api.Flavor
	re     *regexp.Regexp
}

func newRewriter(f api.Flavor) *rewriter {
	// Groups: 1 keyword, 2 space, 3 opening quote, 4 path without extension, 5 closing quote.
	expr := `\b(from|import)(\s+)(['"])((?:\.\.?/)+[^'"\r\n]*)` + regexp.QuoteMeta(f.Plain) + `(['"])`
	return &rewriter{flavor: f, re: regexp.MustCompile(expr)}
}

// rewrite returns content with every accepted specifier renamed, plus the
// number of rewrites. keep receives the specifier as written.
func (r *rewriter) rewrite(content string, keep func(spec string) bool) (string, int) {
	matches := r.re.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}

	var b strings.Builder
	b.Grow(len(content))
	last, n := 0, 0
	for _, m := range matches {
		extStart, extEnd := m[9], m[10]
		spec := content[m[8]:extEnd]
		if keep != nil && !keep(spec) {
			continue
		}
		b.WriteString(content[last:extStart])
		b.WriteString(r.flavor.UI)
		last = extEnd
		n++
	}
	if n == 0 {
		return content, 0
	}
	b.WriteString(content[last:])
	return b.String(), n
}
