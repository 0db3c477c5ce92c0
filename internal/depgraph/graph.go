package depgraph

import (
	"errors"
	"path/filepath"

	"github.com/RoaringBitmap/roaring"
)

var ErrNotFound = errors.New("node not found")

// Graph is a directed file dependency graph. Node identifiers are
// slash-separated paths relative to BaseDir. Edges may form cycles.
//
// Every node and every edge target gets a dense uint32 index so traversals
// can track visited sets in roaring bitmaps instead of string maps.
type Graph struct {
	BaseDir string

	keys  []string            // visited nodes, in discovery order
	deps  map[string][]string // node -> ordered direct dependencies
	index map[string]uint32   // id -> internal bitmap index
	ids   []string            // reverse: index -> id
}

func NewGraph(baseDir string) *Graph {
	return &Graph{
		BaseDir: filepath.Clean(baseDir),
		deps:    make(map[string][]string),
		index:   make(map[string]uint32),
	}
}

// AddNode registers id as a visited node. Adding it twice is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.deps[id]; ok {
		return
	}
	g.deps[id] = []string{}
	g.keys = append(g.keys, id)
	g.intern(id)
}

// AddEdge records that from depends on to. from is registered as a node
// when needed; to is only interned, since a target may never be visited
// (e.g. it does not exist on disk). Duplicate edges are dropped.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.intern(to)
	for _, d := range g.deps[from] {
		if d == to {
			return
		}
	}
	g.deps[from] = append(g.deps[from], to)
}

func (g *Graph) intern(id string) uint32 {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := uint32(len(g.ids))
	g.index[id] = i
	g.ids = append(g.ids, id)
	return i
}

// Nodes returns the visited nodes in discovery order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Has reports whether id is a visited node.
func (g *Graph) Has(id string) bool {
	_, ok := g.deps[id]
	return ok
}

// Deps returns the direct dependencies of id (nil for unknown ids).
func (g *Graph) Deps(id string) []string {
	d, ok := g.deps[id]
	if !ok {
		return nil
	}
	out := make([]string, len(d))
	copy(out, d)
	return out
}

// Obj returns the graph as a plain mapping of node to dependency list.
func (g *Graph) Obj() map[string][]string {
	out := make(map[string][]string, len(g.deps))
	for id := range g.deps {
		out[id] = g.Deps(id)
	}
	return out
}

// ID converts an absolute path into a node identifier relative to BaseDir.
func (g *Graph) ID(abs string) string {
	rel, err := filepath.Rel(g.BaseDir, filepath.Clean(abs))
	if err != nil {
		// Different volume: there is no relative form.
		return filepath.ToSlash(filepath.Clean(abs))
	}
	return filepath.ToSlash(rel)
}

// Abs converts a node identifier back into an absolute, cleaned path.
func (g *Graph) Abs(id string) string {
	p := filepath.FromSlash(id)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(g.BaseDir, p)
}

// Reachable lists every id reachable from start, start included,
// breadth-first in dependency order. Unknown start yields ErrNotFound.
func (g *Graph) Reachable(start string) ([]string, error) {
	if !g.Has(start) {
		return nil, ErrNotFound
	}
	seen := roaring.New()
	seen.Add(g.index[start])
	queue := []string{start}
	var out []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		for _, dep := range g.deps[id] {
			if seen.CheckedAdd(g.index[dep]) {
				queue = append(queue, dep)
			}
		}
	}
	return out, nil
}
