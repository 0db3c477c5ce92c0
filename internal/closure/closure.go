package closure

import (
	"errors"
	"path/filepath"

	"github.com/agentic-research/carve/internal/depgraph"
)

// FromGraph builds the ClosureSet for an analyzed entry: the entry itself,
// then every node and dependency target reachable from it, resolved to
// absolute paths against the graph's base directory. An entry the graph
// never visited contributes only itself.
func FromGraph(g *depgraph.Graph, entry string) []string {
	set := NewSet(filepath.Clean(entry))
	ids, err := g.Reachable(g.ID(entry))
	if errors.Is(err, depgraph.ErrNotFound) {
		return set.Paths()
	}
	for _, id := range ids {
		set.Add(g.Abs(id))
	}
	return set.Paths()
}
