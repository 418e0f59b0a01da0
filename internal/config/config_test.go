package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdlinkfix/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "docs", cfg.Docs.Root)
	require.Equal(t, ".md", cfg.Links.Extension)
	require.Equal(t, "relative_url", cfg.Links.Helper)
	require.Equal(t, []string{"SECURITY", "RELEASE"}, cfg.Links.Denylist)
	require.Equal(t, []string{"commands"}, cfg.Links.ScopedDirs)
	require.Equal(t, 2*time.Second, cfg.Watch.DebounceDuration())
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingDefaultPathUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitPathFails(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("nope.yaml")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "mdlinkfix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
docs:
  root: manual
  exclude:
    - "drafts/**"
links:
  extension: .md
  helper: relative_url
  denylist: [SECURITY, RELEASE, CHANGELOG]
  scoped_dirs: [commands, reference]
watch:
  debounce: 500ms
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "manual", cfg.Docs.Root)
	require.Equal(t, []string{"drafts/**"}, cfg.Docs.Exclude)
	require.Equal(t, []string{"SECURITY", "RELEASE", "CHANGELOG"}, cfg.Links.Denylist)
	require.Equal(t, []string{"commands", "reference"}, cfg.Links.ScopedDirs)
	require.Equal(t, 500*time.Millisecond, cfg.Watch.DebounceDuration())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DOCS_ROOT", "handbook")

	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("docs:\n  root: ${DOCS_ROOT}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "handbook", cfg.Docs.Root)
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty root", func(c *Config) { c.Docs.Root = "" }},
		{"extension without dot", func(c *Config) { c.Links.Extension = "md" }},
		{"empty helper", func(c *Config) { c.Links.Helper = "" }},
		{"bad debounce", func(c *Config) { c.Watch.Debounce = "soon" }},
		{"scoped dir with slash", func(c *Config) { c.Links.ScopedDirs = []string{"a/b"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}
