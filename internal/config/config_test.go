package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/carve/api"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, "v1", p.Version)
	assert.Equal(t, []string{"*.css", "*.scss", "*.sass", "*.svg", "*.png", "*.jpg"}, p.Assets)
	assert.Equal(t, []api.Flavor{{Plain: ".js", UI: ".jsx"}}, p.Flavors)
	assert.Equal(t, api.RewriteResolved, p.Rewrite)
	assert.NotEmpty(t, p.Resolve.Extensions)
	assert.False(t, p.Report.HTML)
	assert.False(t, p.Report.SQLite)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: v1
assets: ["*.css", "*.woff2"]
flavors:
  - plain: .ts
    ui: .tsx
heuristics:
  - name: jsx-syntax
  - name: vue
    pattern: "<template>"
rewrite: always
report:
  html: true
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.css", "*.woff2"}, p.Assets)
	assert.Equal(t, []api.Flavor{{Plain: ".ts", UI: ".tsx"}}, p.Flavors)
	assert.Equal(t, []api.Heuristic{{Name: "jsx-syntax"}, {Name: "vue", Pattern: "<template>"}}, p.Heuristics)
	assert.Equal(t, api.RewriteAlways, p.Rewrite)
	assert.True(t, p.Report.HTML)
	assert.False(t, p.Report.SQLite)
	assert.NotEmpty(t, p.Resolve.Extensions, "unset fields get defaults")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	tests := map[string]string{
		"bad yaml":      "assets: [",
		"bad rewrite":   "rewrite: sometimes",
		"bad flavor":    "flavors: [{plain: js, ui: .jsx}]",
		"same flavor":   "flavors: [{plain: .js, ui: .js}]",
		"unnamed check": "heuristics: [{pattern: x}]",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestProfilePath(t *testing.T) {
	env := func(v string, ok bool) func(string) (string, bool) {
		return func(key string) (string, bool) {
			if key != EnvProfile {
				return "", false
			}
			return v, ok
		}
	}

	assert.Equal(t, "flag.yaml", ProfilePath("flag.yaml", env("env.yaml", true)))
	assert.Equal(t, "env.yaml", ProfilePath("", env(" env.yaml ", true)))
	assert.Equal(t, "", ProfilePath("", env("", false)))
	assert.Equal(t, "", ProfilePath("", nil))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadDotEnv(dir), "missing .env is fine")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CARVE_TEST_DOTENV=from-file\n"), 0o644))
	t.Setenv("CARVE_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("CARVE_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(dir))
	assert.Equal(t, "from-file", os.Getenv("CARVE_TEST_DOTENV"))
}
