package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

func TestNarrativeNoCycles(t *testing.T) {
	deps := map[string][]string{
		"b.js": {},
		"a.js": {"b.js", "style.css"},
	}
	want := "# Dependency Report: a\n" +
		"*Generated on 3/5/2024*\n\n" +
		"## Summary\n" +
		"* **Total Files:** 2\n" +
		"* **Circular Dependencies:** ✅ None\n\n" +
		"## Dependency Details\n" +
		"| File | Depends On |\n" +
		"| :--- | :--- |\n" +
		"| `a.js` | `b.js`, `style.css` |\n" +
		"| `b.js` | _None_ |\n"

	assert.Equal(t, want, Narrative("a", deps, nil, fixedNow))
}

func TestNarrativeWithCycles(t *testing.T) {
	deps := map[string][]string{
		"a.js": {"b.js"},
		"b.js": {"a.js"},
	}
	got := Narrative("a", deps, [][]string{{"a.js", "b.js"}}, fixedNow)

	assert.Contains(t, got, "* **Circular Dependencies:** ⚠️ 1\n\n")
	assert.Contains(t, got, "## Circular Dependencies\n* `a.js` → `b.js`\n\n## Dependency Details\n")
	assert.NotContains(t, got, "✅ None")
}
