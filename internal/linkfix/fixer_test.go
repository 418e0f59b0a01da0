package linkfix

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdlinkfix/internal/config"
	"git.home.luguber.info/inful/mdlinkfix/internal/foundation/errors"
)

func writeDoc(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestFixTree_RewritesConventions(t *testing.T) {
	root := t.TempDir()
	index := writeDoc(t, root, "index.md",
		"[Guide](/setup) and [Jekyll]({{ '/setup' | relative_url }}#install)\n"+
			"[API](https://example.com/api) [Policy](SECURITY)\n")
	build := writeDoc(t, root, "commands/index.md", "[See](commands/build.md)\n")

	f := NewFixer(config.Default())
	result, err := f.FixTree(root)
	require.NoError(t, err)

	require.Equal(t, 2, result.Found)
	require.Equal(t, []string{"commands/index.md", "index.md"}, result.Fixed)
	require.Empty(t, result.Errors)

	require.Equal(t,
		"[Guide](setup.md) and [Jekyll](setup.md#install)\n"+
			"[API](https://example.com/api) [Policy](SECURITY)\n",
		readDoc(t, index))
	require.Equal(t, "[See](build.md)\n", readDoc(t, build))
}

func TestFixTree_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "index.md", "[Guide](/setup)\n")
	writeDoc(t, root, "commands/run.md", "[See](commands/build)#nope\n")

	f := NewFixer(config.Default())
	first, err := f.FixTree(root)
	require.NoError(t, err)
	require.NotEmpty(t, first.Fixed)

	second, err := f.FixTree(root)
	require.NoError(t, err)
	require.Equal(t, first.Found, second.Found)
	require.Empty(t, second.Fixed)
	require.Empty(t, second.Errors)
}

func TestFixTree_NoOpWriteAvoidance(t *testing.T) {
	root := t.TempDir()
	clean := writeDoc(t, root, "clean.md", "[API](https://example.com) and [Doc](doc.md)\n")

	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, os.Chtimes(clean, past, past))

	f := NewFixer(config.Default())
	result, err := f.FixTree(root)
	require.NoError(t, err)
	require.Empty(t, result.Fixed)

	info, err := os.Stat(clean)
	require.NoError(t, err)
	require.WithinDuration(t, past, info.ModTime(), time.Second,
		"unchanged document must not be rewritten")
}

func TestFixTree_MissingRootIsEnvironmentError(t *testing.T) {
	f := NewFixer(config.Default())
	_, err := f.FixTree(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryConfig))

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.True(t, classified.IsFatal())
}

func TestFixTree_PerDocumentErrorDoesNotAbort(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "broken.md", "---\ntitle: no closing delimiter\n")
	good := writeDoc(t, root, "good.md", "[Guide](/setup)\n")

	f := NewFixer(config.Default())
	result, err := f.FixTree(root)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	require.Equal(t, "broken.md", result.Errors[0].Doc)
	require.Equal(t, []string{"good.md"}, result.Fixed)
	require.Equal(t, "[Guide](setup.md)\n", readDoc(t, good))
}

func TestFixTree_ExcludeGlobs(t *testing.T) {
	cfg := config.Default()
	cfg.Docs.Exclude = []string{"drafts/**"}

	root := t.TempDir()
	draft := writeDoc(t, root, "drafts/wip.md", "[Guide](/setup)\n")
	writeDoc(t, root, "index.md", "[Guide](/setup)\n")

	result, err := NewFixer(cfg).FixTree(root)
	require.NoError(t, err)
	require.Equal(t, 1, result.Found)
	require.Equal(t, []string{"index.md"}, result.Fixed)
	require.Equal(t, "[Guide](/setup)\n", readDoc(t, draft))
}

func TestFixFile_PreservesFrontmatterAndCode(t *testing.T) {
	root := t.TempDir()
	doc := writeDoc(t, root, "page.md",
		"---\ntitle: Page\nnav_order: 3\n---\n"+
			"[Guide](/setup)\n\n"+
			"```\n[Sample](/not-rewritten)\n```\n\n"+
			"Inline `[x](/also-kept)` stays.\n")

	result, err := NewFixer(config.Default()).FixTree(root)
	require.NoError(t, err)
	require.Equal(t, []string{"page.md"}, result.Fixed)

	require.Equal(t,
		"---\ntitle: Page\nnav_order: 3\n---\n"+
			"[Guide](setup.md)\n\n"+
			"```\n[Sample](/not-rewritten)\n```\n\n"+
			"Inline `[x](/also-kept)` stays.\n",
		readDoc(t, doc))
}

func TestFixFile_DryRunReportsWithoutWriting(t *testing.T) {
	root := t.TempDir()
	doc := writeDoc(t, root, "index.md", "[Guide](/setup)\n")

	f := NewFixer(config.Default())
	f.DryRun = true

	result, err := f.FixTree(root)
	require.NoError(t, err)
	require.Equal(t, []string{"index.md"}, result.Fixed)
	require.Equal(t, "[Guide](/setup)\n", readDoc(t, doc))
}

func TestFixFile_DisplayTextNeverChanges(t *testing.T) {
	root := t.TempDir()
	doc := writeDoc(t, root, "index.md", "[See /setup for setup](/setup)\n")

	_, err := NewFixer(config.Default()).FixTree(root)
	require.NoError(t, err)
	require.Equal(t, "[See /setup for setup](setup.md)\n", readDoc(t, doc))
}

func TestScopeFor(t *testing.T) {
	f := NewFixer(config.Default())
	require.Equal(t, Scope{Subtree: "commands"}, f.scopeFor("commands/build.md"))
	require.Equal(t, Scope{Subtree: "commands"}, f.scopeFor("commands/sub/deep.md"))
	require.Equal(t, Scope{}, f.scopeFor("guide/build.md"))
	require.Equal(t, Scope{}, f.scopeFor("index.md"))
}
