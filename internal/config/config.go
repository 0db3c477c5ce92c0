// Package config loads carve profiles and fills in their defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/carve/api"
	"github.com/agentic-research/carve/internal/assets"
	"github.com/agentic-research/carve/internal/depgraph"
	"github.com/agentic-research/carve/internal/treesync"
)

// EnvProfile names the environment variable consulted when no --config
// flag is given.
const EnvProfile = "CARVE_CONFIG"

const profileVersion = "v1"

// Default returns the built-in profile.
func Default() *api.Profile {
	p := &api.Profile{}
	ApplyDefaults(p)
	return p
}

// ApplyDefaults fills every unset field of p.
func ApplyDefaults(p *api.Profile) {
	if p.Version == "" {
		p.Version = profileVersion
	}
	if len(p.Assets) == 0 {
		p.Assets = append([]string(nil), assets.DefaultPatterns...)
	}
	if len(p.Flavors) == 0 {
		p.Flavors = append([]api.Flavor(nil), treesync.DefaultFlavors...)
	}
	if p.Rewrite == "" {
		p.Rewrite = api.RewriteResolved
	}
	if len(p.Resolve.Extensions) == 0 {
		p.Resolve.Extensions = append([]string(nil), depgraph.DefaultExtensions...)
	}
}

// Load reads a YAML profile from path and applies defaults.
func Load(path string) (*api.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML profile and applies defaults.
func Parse(data []byte) (*api.Profile, error) {
	p := &api.Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	ApplyDefaults(p)
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate rejects profiles the pipeline cannot act on.
func Validate(p *api.Profile) error {
	switch p.Rewrite {
	case api.RewriteResolved, api.RewriteAlways:
	default:
		return fmt.Errorf("invalid rewrite mode %q (want %q or %q)", p.Rewrite, api.RewriteResolved, api.RewriteAlways)
	}
	for _, f := range p.Flavors {
		if !strings.HasPrefix(f.Plain, ".") || !strings.HasPrefix(f.UI, ".") {
			return fmt.Errorf("invalid flavor %q -> %q: extensions must start with a dot", f.Plain, f.UI)
		}
		if f.Plain == f.UI {
			return fmt.Errorf("invalid flavor %q: plain and ui extensions are equal", f.Plain)
		}
	}
	for _, h := range p.Heuristics {
		if h.Name == "" {
			return errors.New("heuristic without a name")
		}
	}
	return nil
}

// ProfilePath picks the profile to load: the flag value when set, else
// the EnvProfile variable. Empty means use Default.
func ProfilePath(flagPath string, lookupEnv func(string) (string, bool)) string {
	if flagPath != "" {
		return flagPath
	}
	if lookupEnv != nil {
		if v, ok := lookupEnv(EnvProfile); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// LoadDotEnv loads dir/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
