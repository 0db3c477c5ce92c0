package treesync

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentic-research/carve/api"
)

var jsx = api.Flavor{Plain: ".js", UI: ".jsx"}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		n    int
	}{
		{"double quotes", `import A from "./a.js";`, `import A from "./a.jsx";`, 1},
		{"single quotes", `import A from './a.js';`, `import A from './a.jsx';`, 1},
		{"side effect", `import '../x/y.js';`, `import '../x/y.jsx';`, 1},
		{"export from", "export { a } from\t'./deep/a.js';", "export { a } from\t'./deep/a.jsx';", 1},
		{"parent chain", `import z from "../../z.js"`, `import z from "../../z.jsx"`, 1},
		{"bare specifier", `import x from "lib.js";`, `import x from "lib.js";`, 0},
		{"already flavored", `import a from './a.jsx';`, `import a from './a.jsx';`, 0},
		{"other extension", `import s from './s.css';`, `import s from './s.css';`, 0},
		{"dotted name", `import a from './a.js.map.js';`, `import a from './a.js.map.jsx';`, 1},
		{"word boundary", `reimport './a.js';`, `reimport './a.js';`, 0},
		{
			"several",
			"import a from './a.js';\nimport b from \"./b.js\";\n",
			"import a from './a.jsx';\nimport b from \"./b.jsx\";\n",
			2,
		},
	}

	rw := newRewriter(jsx)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := rw.rewrite(tt.in, nil)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestRewriteKeepFilter(t *testing.T) {
	rw := newRewriter(jsx)
	in := "import a from './a.js';\nimport b from './b.js';\n"

	var seen []string
	got, n := rw.rewrite(in, func(spec string) bool {
		seen = append(seen, spec)
		return spec == "./b.js"
	})
	assert.Equal(t, []string{"./a.js", "./b.js"}, seen)
	assert.Equal(t, 1, n)
	assert.Equal(t, "import a from './a.js';\nimport b from './b.jsx';\n", got)
}

// Rewriting then reversing the pair restores the input when it held no
// UI-flavored specifiers to begin with.
func TestRewriteRoundTrip(t *testing.T) {
	in := "import a from './a.js';\nexport * from \"../b/c.js\";\nimport 'x.js';\n"
	forward, n := newRewriter(jsx).rewrite(in, nil)
	assert.Equal(t, 2, n)

	back, m := newRewriter(api.Flavor{Plain: ".jsx", UI: ".js"}).rewrite(forward, nil)
	assert.Equal(t, n, m)
	assert.Equal(t, in, back)
}

func FuzzRewrite(f *testing.F) {
	f.Add("import a from './a.js';")
	f.Add("export { x } from \"../../x.js\"\nimport './y.js'")
	f.Add("from './")
	f.Add("")

	rw := newRewriter(jsx)
	f.Fuzz(func(t *testing.T, in string) {
		out, n := rw.rewrite(in, nil)
		grow := len(jsx.UI) - len(jsx.Plain)
		if len(out) != len(in)+n*grow {
			t.Fatalf("length %d, want %d (n=%d)", len(out), len(in)+n*grow, n)
		}
		if n == 0 && out != in {
			t.Fatalf("no rewrites but content changed")
		}
		if strings.Count(out, jsx.UI) < n {
			t.Fatalf("reported %d rewrites, found fewer %s tokens", n, jsx.UI)
		}
	})
}
