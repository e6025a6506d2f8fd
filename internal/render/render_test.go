package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rhaidoc/internal/config"
	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/nav"
	"git.home.luguber.info/inful/rhaidoc/internal/site"
)

func narrativePage() *site.Page {
	return &site.Page{
		Link:  "guide/intro.html",
		Title: "Docs",
		Name:  "Intro",
		Root:  "../",
		Icon:  "logo.svg",
		Body:  site.Narrative{HTML: "<p>Hello <em>world</em></p>"},
		Pages: []nav.Entry{
			{Name: "Home", Link: "index.html"},
			{Name: "Intro", Link: "guide/intro.html", Active: true},
		},
		Scripts:       []nav.Entry{{Name: "math", Link: "math.html"}},
		ExternalLinks: []config.Link{{Name: "Rhai", Link: "https://rhai.rs"}},
	}
}

func TestRenderPage_Narrative(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, narrativePage()))
	out := buf.String()

	assert.Contains(t, out, "<title>Intro | Docs</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="../styles.css">`)
	assert.Contains(t, out, `<link rel="icon" href="../logo.svg">`)
	assert.Contains(t, out, `<li class="active"><a href="../guide/intro.html">Intro</a></li>`)
	assert.Contains(t, out, `<li><a href="../index.html">Home</a></li>`)
	assert.Contains(t, out, `<a href="../math.html">math</a>`)
	assert.Contains(t, out, `<a href="https://rhai.rs">Rhai</a>`)
	assert.Contains(t, out, "<p>Hello <em>world</em></p>")
	assert.NotContains(t, out, "googletagmanager")
	assert.NotContains(t, out, "highlight.js")
	assert.NotContains(t, out, "revision")
}

func TestRenderPage_Script(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)
	page := &site.Page{
		Link: "math.html",
		Name: "math",
		Icon: "logo.png",
		Body: site.ScriptDoc{Functions: []site.Function{
			{ID: "add-2", Signature: "fn add(a, b)", Body: "<p>Adds &amp; returns.</p>"},
			{ID: "now", Signature: "private fn now()", Private: true},
		}},
		Scripts: []nav.Entry{{
			Name: "math", Link: "math.html", Active: true,
			SubLinks: []nav.SubLink{{Name: "add(a, b)", Anchor: "add-2"}, {Name: "now()", Anchor: "now"}},
		}},
		Stylesheet:      "custom.css",
		CodeTheme:       "github",
		GoogleAnalytics: "UA-123",
		Revision:        "abc1234",
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, page))
	out := buf.String()

	assert.Contains(t, out, `<section class="fn" id="add-2">`)
	assert.Contains(t, out, `<section class="fn private" id="now">`)
	assert.Contains(t, out, "<code>fn add(a, b)</code>")
	assert.Contains(t, out, "<p>Adds &amp; returns.</p>")
	assert.Contains(t, out, `<a href="#add-2"><code>add(a, b)</code></a>`)
	assert.Contains(t, out, `<link rel="stylesheet" href="custom.css">`)
	assert.Contains(t, out, "highlight.js/11.9.0/styles/github.min.css")
	assert.Contains(t, out, `gtag("config", "UA-123");`)
	assert.Contains(t, out, "<code>abc1234</code>")
}

func TestRenderPage_Deterministic(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, r.RenderPage(&a, narrativePage()))
	require.NoError(t, r.RenderPage(&b, narrativePage()))
	assert.Equal(t, a.String(), b.String())
}

func TestRenderStyles(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderStyles(&buf, config.RGB{246, 119, 2}))

	assert.Contains(t, buf.String(), "--accent: rgb(246, 119, 2);")
	assert.Contains(t, buf.String(), "--accent-soft: rgba(246, 119, 2, 0.17647059);")
}

func TestNew_OverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PageTemplate),
		[]byte(`<h1>{{.Name}}</h1>{{range .Functions}}{{template "fn-block" .}}{{end}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, StylesTemplate), []byte("a { color: {{.Color}}; }"), 0o644))

	r, err := New(dir)
	require.NoError(t, err)

	usage := r.Usage()
	assert.Equal(t, "file", usage[PageTemplate].Source)
	assert.Equal(t, "embedded", usage[FnBlockTemplate].Source)
	assert.Equal(t, "file", usage[StylesTemplate].Source)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, &site.Page{Name: "x", Body: site.ScriptDoc{Functions: []site.Function{{ID: "f", Signature: "fn f()"}}}}))
	assert.Contains(t, buf.String(), "<h1>x</h1>")
	assert.Contains(t, buf.String(), `id="f"`)

	buf.Reset()
	require.NoError(t, r.RenderStyles(&buf, config.RGB{1, 2, 3}))
	assert.Equal(t, "a { color: rgb(1, 2, 3); }", buf.String())
}

func TestNew_BrokenOverrideIsRenderError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PageTemplate)
	require.NoError(t, os.WriteFile(path, []byte("{{.Name"), 0o644))

	_, err := New(dir)
	require.Error(t, err)

	ce, ok := derrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, derrors.CategoryRender, ce.Category())
	assert.Equal(t, path, ce.Path())
}

func TestDefaultIconData(t *testing.T) {
	assert.True(t, bytes.HasPrefix(DefaultIconData(), []byte("<svg")))
}
