package linkverify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestParse_CollectsLinksAndIDs(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html><head><link rel="stylesheet" href="styles.css"><script src="a.js"></script></head>
<body><a href="x.html#f">x</a><a name="legacy"></a><section id="add-2"><img src="logo.svg"></section></body></html>`))
	require.NoError(t, err)

	urls := make([]string, len(doc.Links))
	for i, l := range doc.Links {
		urls[i] = l.URL
	}
	assert.Equal(t, []string{"styles.css", "a.js", "x.html#f", "logo.svg"}, urls)
	assert.Contains(t, doc.IDs, "add-2")
	assert.Contains(t, doc.IDs, "legacy")
}

func TestIsInternal(t *testing.T) {
	tests := map[string]bool{
		"page.html":           true,
		"../styles.css":       true,
		"#anchor":             true,
		"sub/x.html#f":        true,
		"https://rhai.rs":     false,
		"//cdn.example.com/x": false,
		"/docs/index.html":    false,
		"mailto:a@b.c":        false,
		"":                    false,
	}
	for link, want := range tests {
		assert.Equal(t, want, IsInternal(link), link)
	}
}

func TestVerify_AllResolve(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.html":     `<a href="math.html#add-2">add</a><a href="sub/page.html">p</a><a href="https://rhai.rs">ext</a><link href="styles.css">`,
		"styles.css":     "",
		"math.html":      `<section id="add-2"></section><a href="#add-2">self</a><a href="index.html">home</a>`,
		"sub/page.html":  `<a href="../index.html">home</a><img src="../logo.svg"><a href="../sub/">dir</a>`,
		"sub/index.html": `ok`,
		"logo.svg":       "<svg/>",
	})

	report, err := NewVerifier(root).Verify()
	require.NoError(t, err)

	assert.True(t, report.OK(), "%v", report.Broken)
	assert.Equal(t, 4, report.Pages)
	assert.Equal(t, 8, report.Links)
}

func TestVerify_ReportsBrokenLinks(t *testing.T) {
	root := writeSite(t, map[string]string{
		"index.html": `<a href="missing.html">m</a><a href="math.html#nope">f</a><a href="#self">s</a><a href="../up.html">u</a>`,
		"math.html":  `<section id="add-2"></section>`,
	})

	report, err := NewVerifier(root).Verify()
	require.NoError(t, err)

	require.Len(t, report.Broken, 4)
	assert.Equal(t, Broken{Page: "index.html", URL: "#self", Reason: "fragment #self not found"}, report.Broken[0])
	assert.Equal(t, "points outside the site", report.Broken[1].Reason)
	assert.Equal(t, "fragment #nope not found", report.Broken[2].Reason)
	assert.Equal(t, "target not found", report.Broken[3].Reason)
	assert.Equal(t, "index.html: missing.html (target not found)", report.Broken[3].String())
}
