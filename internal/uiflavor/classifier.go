package uiflavor

// Classifier combines heuristics: content is UI-flavored when any of them
// matches.
type Classifier struct {
	heuristics []Heuristic
}

// NewClassifier returns a Classifier over hs, or over Defaults when hs is
// empty.
func NewClassifier(hs ...Heuristic) *Classifier {
	if len(hs) == 0 {
		hs = Defaults()
	}
	return &Classifier{heuristics: hs}
}

func (c *Classifier) IsUIFlavored(content []byte) bool {
	for _, h := range c.heuristics {
		if h.Match(content) {
			return true
		}
	}
	return false
}

// Matches lists the names of every heuristic that fires on content.
func (c *Classifier) Matches(content []byte) []string {
	var names []string
	for _, h := range c.heuristics {
		if h.Match(content) {
			names = append(names, h.Name())
		}
	}
	return names
}
