package closure

// Set is an insertion-ordered set of file paths. It only grows.
type Set struct {
	order []string
	seen  map[string]struct{}
}

// NewSet returns a Set seeded with paths, duplicates dropped.
func NewSet(paths ...string) *Set {
	s := &Set{seen: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add appends p unless it is already present. It reports whether p was new.
func (s *Set) Add(p string) bool {
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.order = append(s.order, p)
	return true
}

func (s *Set) Contains(p string) bool {
	_, ok := s.seen[p]
	return ok
}

func (s *Set) Len() int { return len(s.order) }

// Paths returns a copy of the members in insertion order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
