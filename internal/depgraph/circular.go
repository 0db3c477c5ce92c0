package depgraph

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// Circular returns every dependency cycle found by a depth-first walk over
// the nodes in discovery order. A cycle is reported as the path from the
// re-entered node to the node that closed it, without repeating the first
// element. Rotations of an already reported cycle are skipped.
func (g *Graph) Circular() [][]string {
	resolved := roaring.New()
	var (
		cycles [][]string
		seen   = make(map[string]struct{})
	)

	for _, id := range g.keys {
		onPath := roaring.New()
		var path []string
		g.resolve(id, resolved, onPath, &path, func(cycle []string) {
			key := canonical(cycle)
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
			cycles = append(cycles, cycle)
		})
	}
	return cycles
}

func (g *Graph) resolve(id string, resolved, onPath *roaring.Bitmap, path *[]string, emit func([]string)) {
	idx := g.index[id]
	onPath.Add(idx)
	*path = append(*path, id)

	for _, dep := range g.deps[id] {
		di := g.index[dep]
		if resolved.Contains(di) {
			continue
		}
		if onPath.Contains(di) {
			emit(cyclePath(*path, dep))
			continue
		}
		g.resolve(dep, resolved, onPath, path, emit)
	}

	*path = (*path)[:len(*path)-1]
	onPath.Remove(idx)
	resolved.Add(idx)
}

func cyclePath(path []string, start string) []string {
	for i, p := range path {
		if p == start {
			out := make([]string, len(path)-i)
			copy(out, path[i:])
			return out
		}
	}
	return nil
}

// canonical renders a cycle starting at its smallest member so that
// a→b→c and b→c→a compare equal.
func canonical(cycle []string) string {
	if len(cycle) == 0 {
		return ""
	}
	lo := 0
	for i, p := range cycle {
		if p < cycle[lo] {
			lo = i
		}
	}
	rotated := append(append([]string{}, cycle[lo:]...), cycle[:lo]...)
	return strings.Join(rotated, "\x00")
}
