package closure

import (
	"path/filepath"
	"testing"

	"github.com/agentic-research/carve/internal/depgraph"
	"github.com/stretchr/testify/assert"
)

func TestFromGraph(t *testing.T) {
	base := filepath.FromSlash("/proj/src")
	g := depgraph.NewGraph(base)
	g.AddEdge("main.js", "a.js")
	g.AddEdge("main.js", "missing.js")
	g.AddEdge("a.js", "../shared/util.js")
	g.AddEdge("a.js", "main.js")
	g.AddNode("../shared/util.js")

	got := FromGraph(g, filepath.Join(base, "main.js"))
	assert.Equal(t, []string{
		filepath.Join(base, "main.js"),
		filepath.Join(base, "a.js"),
		filepath.Join(base, "missing.js"),
		filepath.FromSlash("/proj/shared/util.js"),
	}, got)
}

func TestFromGraph_OnlyReachable(t *testing.T) {
	base := filepath.FromSlash("/proj/src")
	g := depgraph.NewGraph(base)
	g.AddEdge("main.js", "a.js")
	g.AddNode("a.js")
	g.AddEdge("stray.js", "b.js")

	got := FromGraph(g, filepath.Join(base, "main.js"))
	assert.Equal(t, []string{filepath.Join(base, "main.js"), filepath.Join(base, "a.js")}, got)
}

func TestFromGraph_UnvisitedEntry(t *testing.T) {
	base := filepath.FromSlash("/proj/src")
	g := depgraph.NewGraph(base)
	g.AddEdge("other.js", "a.js")

	entry := filepath.Join(base, "main.js")
	assert.Equal(t, []string{entry}, FromGraph(g, entry))
}

func TestSet(t *testing.T) {
	s := NewSet("a", "b", "a")
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Add("b"))
	assert.True(t, s.Add("c"))
	assert.True(t, s.Contains("c"))

	paths := s.Paths()
	paths[0] = "mutated"
	assert.Equal(t, []string{"a", "b", "c"}, s.Paths())
}
