package nav

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	naverrors "git.home.luguber.info/inful/rhaidoc/internal/nav/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/script"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func links(list []Entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Link
	}
	return out
}

func names(list []Entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Name
	}
	return out
}

func TestBuild_PagesSortedWithIndexPinned(t *testing.T) {
	root := t.TempDir()
	pages := filepath.Join(root, "pages")
	writeTree(t, pages, map[string]string{
		"about.md":       "# About\n",
		"guide/intro.md": "# Intro\n",
		"home.md":        "# Home\n\nWelcome.\n",
		"a.md":           "# A\n",
	})

	g, err := NewBuilder(Options{PagesDir: pages, Index: "home.md"}).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"index.html", "a.html", "about.html", "guide/intro.html"}, links(g.Pages))
	assert.Equal(t, []string{"Home", "A", "About", "Intro"}, names(g.Pages))
	assert.True(t, g.HasIndex())
	assert.Equal(t, "# Home\n\nWelcome.\n", string(g.Bodies[filepath.Join(pages, "home.md")]))
}

func TestBuild_NestedIndexLinksToRoot(t *testing.T) {
	pages := t.TempDir()
	writeTree(t, pages, map[string]string{
		"docs/start.md": "# Start\n",
		"other.md":      "# Other\n",
	})

	g, err := NewBuilder(Options{PagesDir: pages, Index: "docs/start.md"}).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"index.html", "other.html"}, links(g.Pages))
}

func TestBuild_MissingIndexLeavesOrder(t *testing.T) {
	pages := t.TempDir()
	writeTree(t, pages, map[string]string{"b.md": "# B\n", "a.md": "# A\n"})

	g, err := NewBuilder(Options{PagesDir: pages, Index: "index.md"}).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"a.html", "b.html"}, links(g.Pages))
	assert.False(t, g.HasIndex())
}

func TestBuild_HeadingGate(t *testing.T) {
	pages := t.TempDir()
	writeTree(t, pages, map[string]string{
		"no-heading.md": "Just text.\n",
		"level-two.md":  "## Section\n",
		"link.md":       "# [Linked](x.html)\n",
		"ok.md":         "# Fine\n",
		"notes.txt":     "# Not markdown\n",
	})

	g, err := NewBuilder(Options{PagesDir: pages}).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"ok.html"}, links(g.Pages))
}

func TestBuild_IndexFailingGateIsNotPromoted(t *testing.T) {
	pages := t.TempDir()
	writeTree(t, pages, map[string]string{"index.md": "no heading\n", "a.md": "# A\n"})

	g, err := NewBuilder(Options{PagesDir: pages, Index: "index.md"}).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"a.html"}, links(g.Pages))
	assert.False(t, g.HasIndex())
}

func TestBuild_FrontmatterTitleOverridesHeading(t *testing.T) {
	pages := t.TempDir()
	writeTree(t, pages, map[string]string{
		"a.md": "---\ntitle: Custom\n---\n# Heading\n",
		"b.md": "---\ntitle: [broken\n---\n# B\n",
	})

	g, err := NewBuilder(Options{PagesDir: pages}).Build()
	require.NoError(t, err)

	require.Len(t, g.Pages, 1)
	assert.Equal(t, "Custom", g.Pages[0].Name)
	assert.Equal(t, "# Heading\n", string(g.Bodies[g.Pages[0].SourcePath]))
}

func TestBuild_NamesAreNFCNormalized(t *testing.T) {
	pages := t.TempDir()
	writeTree(t, pages, map[string]string{"cafe.md": "# Cafe\u0301\n"})

	g, err := NewBuilder(Options{PagesDir: pages}).Build()
	require.NoError(t, err)

	require.Len(t, g.Pages, 1)
	assert.Equal(t, "Caf\u00e9", g.Pages[0].Name)
}

func TestBuild_Scripts(t *testing.T) {
	scripts := t.TempDir()
	writeTree(t, scripts, map[string]string{
		"math.rhai":        "/// Adds.\nfn add(a, b) { a + b }\n",
		"util/string.rhai": "fn trim(s) { s }\n",
		"empty.rhai":       "let x = 1;\n",
		"hidden.rhai":      "private fn secret() {}\n",
		"readme.md":        "# Not a script\n",
	})

	g, err := NewBuilder(Options{ScriptsDir: scripts}).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"math.html", "util/string.html"}, links(g.Scripts))
	assert.Equal(t, []string{"math", "util/string"}, names(g.Scripts))
	assert.Empty(t, g.Pages)
	assert.False(t, g.HasIndex())

	mathPath := filepath.Join(scripts, "math.rhai")
	require.Contains(t, g.Parsed, mathPath)
	fns := g.Functions(mathPath)
	require.Len(t, fns, 1)
	assert.Equal(t, "add", fns[0].Name)
	assert.NotContains(t, g.Parsed, filepath.Join(scripts, "empty.rhai"))
}

func TestBuild_ScriptClaimsIndex(t *testing.T) {
	scripts := t.TempDir()
	writeTree(t, scripts, map[string]string{
		"index.rhai": "/// Entry.\nfn main() {}\n",
	})

	g, err := NewBuilder(Options{ScriptsDir: scripts}).Build()
	require.NoError(t, err)

	assert.Empty(t, g.Pages)
	assert.Equal(t, []string{"index.html"}, links(g.Scripts))
	assert.True(t, g.HasIndex())
}

func TestBuild_IncludePrivate(t *testing.T) {
	scripts := t.TempDir()
	writeTree(t, scripts, map[string]string{"hidden.rhai": "private fn secret() {}\nfn open() {}\n"})

	g, err := NewBuilder(Options{ScriptsDir: scripts, IncludePrivate: true}).Build()
	require.NoError(t, err)
	require.Len(t, g.Scripts, 1)
	assert.Len(t, g.Functions(g.Scripts[0].SourcePath), 2)

	g, err = NewBuilder(Options{ScriptsDir: scripts}).Build()
	require.NoError(t, err)
	require.Len(t, g.Scripts, 1)
	assert.Len(t, g.Functions(g.Scripts[0].SourcePath), 1)
}

func TestBuild_ScriptExtensionOverride(t *testing.T) {
	scripts := t.TempDir()
	writeTree(t, scripts, map[string]string{
		"a.script": "fn a() {}\n",
		"b.rhai":   "fn b() {}\n",
	})

	g, err := NewBuilder(Options{ScriptsDir: scripts, ScriptExtension: "script"}).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"a.html"}, links(g.Scripts))
}

func TestBuild_ParseErrorIsFatal(t *testing.T) {
	scripts := t.TempDir()
	writeTree(t, scripts, map[string]string{"bad.rhai": "fn broken( {\n"})

	_, err := NewBuilder(Options{ScriptsDir: scripts}).Build()
	require.Error(t, err)

	assert.True(t, derrors.HasCategory(err, derrors.CategoryParse))
	var perr *script.ParseError
	assert.True(t, stderrors.As(err, &perr))
}

func TestBuild_UnreadableScriptIsSkipped(t *testing.T) {
	scripts := t.TempDir()
	writeTree(t, scripts, map[string]string{"a.rhai": "fn a() {}\n", "b.rhai": "fn b() {}\n"})
	failing := ParserFunc(func(path string) (*script.File, error) {
		if filepath.Base(path) == "a.rhai" {
			return nil, os.ErrPermission
		}
		return script.Parse(path)
	})

	g, err := NewBuilder(Options{ScriptsDir: scripts, Parser: failing}).Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"b.html"}, links(g.Scripts))
}

func TestBuild_PathCollisionAcrossLists(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pages/math.md":     "# Math\n",
		"scripts/math.rhai": "fn add(a, b) {}\n",
	})

	_, err := NewBuilder(Options{
		PagesDir:   filepath.Join(root, "pages"),
		ScriptsDir: filepath.Join(root, "scripts"),
	}).Build()
	require.Error(t, err)

	assert.ErrorIs(t, err, naverrors.ErrPathCollision)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryValidation))
	ce, ok := derrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "scripts", "math.rhai"), ce.Path())
}

func TestBuild_MissingDirectories(t *testing.T) {
	root := t.TempDir()

	g, err := NewBuilder(Options{
		PagesDir:   filepath.Join(root, "nope"),
		ScriptsDir: filepath.Join(root, "nada"),
	}).Build()
	require.NoError(t, err)

	assert.Empty(t, g.Pages)
	assert.Empty(t, g.Scripts)
}

func TestBuild_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pages/index.md": "# Home\n",
		"pages/z.md":     "# Z\n",
		"pages/m/n.md":   "# N\n",
		"s/b.rhai":       "fn b() {}\n",
		"s/a/c.rhai":     "fn c(x) {}\nfn c() {}\n",
	})
	opts := Options{PagesDir: filepath.Join(root, "pages"), ScriptsDir: filepath.Join(root, "s"), Index: "index.md"}

	first, err := NewBuilder(opts).Build()
	require.NoError(t, err)
	second, err := NewBuilder(opts).Build()
	require.NoError(t, err)

	assert.Equal(t, first.Pages, second.Pages)
	assert.Equal(t, first.Scripts, second.Scripts)
	assert.Equal(t, []string{"a/c.html", "b.html"}, links(first.Scripts))
}

func TestClone_IsDeep(t *testing.T) {
	list := []Entry{{Link: "a.html", SubLinks: []SubLink{{Name: "f()", Anchor: "f"}}}}

	cloned := Clone(list)
	cloned[0].Active = true
	cloned[0].SubLinks[0].Anchor = "changed"

	assert.False(t, list[0].Active)
	assert.Equal(t, "f", list[0].SubLinks[0].Anchor)
	assert.Nil(t, Clone(nil))
}

func TestOutputLink(t *testing.T) {
	sep := string(filepath.Separator)
	assert.Equal(t, "a/b.html", outputLink(filepath.Join("root", "a", "b.rhai"), "root"))
	assert.Equal(t, "x.html", outputLink(filepath.Join("root", "x.md"), "root"))
	assert.Equal(t, "other/y.html", outputLink("other"+sep+"y.rhai", "root"))
}
