package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout renders the generation date as month/day/year without padding.
const DateLayout = "1/2/2006"

// Narrative renders the Markdown dependency report. Rows are sorted by
// file name so reruns over the same graph produce the same document.
func Narrative(name string, deps map[string][]string, cycles [][]string, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dependency Report: %s\n", name)
	fmt.Fprintf(&b, "*Generated on %s*\n\n", now.Format(DateLayout))

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "* **Total Files:** %d\n", len(deps))
	if len(cycles) > 0 {
		fmt.Fprintf(&b, "* **Circular Dependencies:** ⚠️ %d\n\n", len(cycles))
	} else {
		b.WriteString("* **Circular Dependencies:** ✅ None\n\n")
	}

	if len(cycles) > 0 {
		b.WriteString("## Circular Dependencies\n")
		for _, c := range cycles {
			b.WriteString("* " + strings.Join(quoteAll(c), " → ") + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Dependency Details\n")
	b.WriteString("| File | Depends On |\n")
	b.WriteString("| :--- | :--- |\n")
	for _, file := range sortedKeys(deps) {
		list := "_None_"
		if d := deps[file]; len(d) > 0 {
			list = strings.Join(quoteAll(d), ", ")
		}
		fmt.Fprintf(&b, "| `%s` | %s |\n", file, list)
	}
	return b.String()
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = "`" + s + "`"
	}
	return out
}

func sortedKeys(deps map[string][]string) []string {
	keys := make([]string, 0, len(deps))
	for k := range deps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
