package api

// Profile represents the root configuration of an extraction.
// It tells carve which files count as code, which count as assets,
// and how UI-flavored code files are recognized and renamed.
type Profile struct {
	// Version of the carve profile schema.
	Version string `yaml:"version" json:"version"`
	// Assets are glob patterns matched against sibling file names (e.g. "*.css").
	Assets []string `yaml:"assets,omitempty" json:"assets,omitempty"`
	// Flavors pair a plain code extension with its UI-flavored counterpart.
	Flavors []Flavor `yaml:"flavors,omitempty" json:"flavors,omitempty"`
	// Heuristics select the UI detectors. Empty means the built-in set.
	Heuristics []Heuristic `yaml:"heuristics,omitempty" json:"heuristics,omitempty"`
	// Rewrite is the import rewrite mode: "resolved" or "always".
	Rewrite string `yaml:"rewrite,omitempty" json:"rewrite,omitempty"`
	// Resolve configures local import resolution.
	Resolve Resolve `yaml:"resolve,omitempty" json:"resolve,omitempty"`
	// Report toggles the optional report artifacts.
	Report Report `yaml:"report,omitempty" json:"report,omitempty"`
}

// Flavor maps a plain code extension to the extension used once the
// file is known to embed UI markup.
type Flavor struct {
	Plain string `yaml:"plain" json:"plain"` // e.g. ".js"
	UI    string `yaml:"ui" json:"ui"`       // e.g. ".jsx"
}

// Heuristic names a UI detector. Pattern is optional: when empty the
// name must refer to a built-in detector.
type Heuristic struct {
	Name    string `yaml:"name" json:"name"`
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Resolve lists the extensions tried, in order, when an import
// specifier does not name an existing file.
type Resolve struct {
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// Report defines optional artifacts written next to the JSON and Markdown reports.
type Report struct {
	HTML   bool `yaml:"html,omitempty" json:"html,omitempty"`
	SQLite bool `yaml:"sqlite,omitempty" json:"sqlite,omitempty"`
}

const (
	RewriteResolved = "resolved"
	RewriteAlways   = "always"
)
