package depgraph

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddEdgeDedupsAndInternsTargets(t *testing.T) {
	g := NewGraph("/src")
	g.AddEdge("a.js", "b.js")
	g.AddEdge("a.js", "b.js")
	g.AddEdge("a.js", "missing.js")

	assert.Equal(t, []string{"a.js"}, g.Nodes())
	assert.Equal(t, []string{"b.js", "missing.js"}, g.Deps("a.js"))
	assert.False(t, g.Has("b.js"), "edge targets are not visited nodes")
	assert.Nil(t, g.Deps("b.js"))
}

func TestGraph_ObjIsACopy(t *testing.T) {
	g := NewGraph("/src")
	g.AddEdge("a.js", "b.js")
	g.AddNode("b.js")

	obj := g.Obj()
	assert.Equal(t, map[string][]string{
		"a.js": {"b.js"},
		"b.js": {},
	}, obj)

	obj["a.js"][0] = "mutated"
	assert.Equal(t, []string{"b.js"}, g.Deps("a.js"))
}

func TestGraph_IDAndAbsRoundTrip(t *testing.T) {
	base := filepath.FromSlash("/repo/src")
	g := NewGraph(base)

	abs := filepath.Join(base, "lib", "util.js")
	id := g.ID(abs)
	assert.Equal(t, "lib/util.js", id)
	assert.Equal(t, abs, g.Abs(id))

	outside := filepath.FromSlash("/repo/shared/x.js")
	assert.Equal(t, "../shared/x.js", g.ID(outside))
	assert.Equal(t, outside, g.Abs(g.ID(outside)))
}

func TestGraph_Reachable(t *testing.T) {
	g := NewGraph("/src")
	g.AddEdge("main.js", "a.js")
	g.AddEdge("main.js", "b.js")
	g.AddEdge("a.js", "b.js")
	g.AddEdge("b.js", "main.js")
	g.AddNode("orphan.js")

	got, err := g.Reachable("main.js")
	require.NoError(t, err)
	assert.Equal(t, []string{"main.js", "a.js", "b.js"}, got)

	_, err = g.Reachable("nope.js")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGraph_NodesKeepDiscoveryOrder(t *testing.T) {
	g := NewGraph("/src")
	g.AddNode("z.js")
	g.AddNode("a.js")
	g.AddNode("m/b.js")
	assert.Equal(t, []string{"z.js", "a.js", "m/b.js"}, g.Nodes())
}
