// Package render turns assembled pages into HTML and produces the shared
// stylesheet. Templates are embedded; files of the same name in an override
// directory replace them.
package render

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"git.home.luguber.info/inful/rhaidoc/internal/config"
	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/logfields"
	"git.home.luguber.info/inful/rhaidoc/internal/site"
)

// Template and asset names, both embedded and in an override directory.
const (
	PageTemplate    = "page.html.tmpl"
	FnBlockTemplate = "fn-block.html.tmpl"
	StylesTemplate  = "styles.tpl.css"
	DefaultIcon     = "logo.svg"
)

// stylesAlpha is the alpha, out of 255, of the soft accent color.
const stylesAlpha = 45

//go:embed assets/*
var embedded embed.FS

// TemplateInfo records where a template was loaded from.
type TemplateInfo struct {
	Source string // "file" or "embedded"
	Path   string
}

// Renderer executes the page and stylesheet templates.
type Renderer struct {
	overrideDir string
	page        *htmltemplate.Template
	styles      *texttemplate.Template
	usage       map[string]TemplateInfo
}

// New loads the templates. overrideDir may be empty.
func New(overrideDir string) (*Renderer, error) {
	r := &Renderer{overrideDir: overrideDir, usage: make(map[string]TemplateInfo)}

	page := htmltemplate.New(PageTemplate).Option("missingkey=error")
	for _, name := range []string{PageTemplate, FnBlockTemplate} {
		raw, err := r.load(name)
		if err != nil {
			return nil, err
		}
		tpl := page
		if name != PageTemplate {
			tpl = page.New(name)
		}
		if _, err := tpl.Parse(string(raw)); err != nil {
			return nil, r.parseError(name, err)
		}
	}
	r.page = page

	raw, err := r.load(StylesTemplate)
	if err != nil {
		return nil, err
	}
	styles, err := texttemplate.New(StylesTemplate).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, r.parseError(StylesTemplate, err)
	}
	r.styles = styles

	return r, nil
}

// load returns an override file when present, otherwise the embedded default.
func (r *Renderer) load(name string) ([]byte, error) {
	if r.overrideDir != "" {
		p := filepath.Join(r.overrideDir, name)
		// #nosec G304 - p is a fixed template name below the configured directory
		b, err := os.ReadFile(p)
		if err == nil && strings.TrimSpace(string(b)) != "" {
			slog.Debug("Loaded template override", logfields.Name(name), logfields.Path(p))
			r.usage[name] = TemplateInfo{Source: "file", Path: p}
			return b, nil
		}
	}
	b, err := embedded.ReadFile("assets/" + name)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "embedded template missing").
			WithContext("name", name).Build()
	}
	r.usage[name] = TemplateInfo{Source: "embedded"}
	return b, nil
}

func (r *Renderer) parseError(name string, err error) error {
	b := derrors.WrapError(err, derrors.CategoryRender, "failed to parse template").WithContext("name", name)
	if info := r.usage[name]; info.Path != "" {
		b = b.WithPath(info.Path)
	}
	return b.Fatal().Build()
}

// Usage reports where each template came from.
func (r *Renderer) Usage() map[string]TemplateInfo {
	out := make(map[string]TemplateInfo, len(r.usage))
	for k, v := range r.usage {
		out[k] = v
	}
	return out
}

// RenderPage writes the HTML for p.
func (r *Renderer) RenderPage(w io.Writer, p *site.Page) error {
	if err := r.page.ExecuteTemplate(w, PageTemplate, newPageView(p)); err != nil {
		return derrors.WrapError(err, derrors.CategoryRender, "failed to render page").
			WithContext("link", p.Link).Fatal().Build()
	}
	return nil
}

// RenderStyles writes the stylesheet for the given accent color.
func (r *Renderer) RenderStyles(w io.Writer, color config.RGB) error {
	data := map[string]string{
		"Color":      color.CSS(),
		"ColorAlpha": color.CSSAlpha(stylesAlpha),
	}
	if err := r.styles.Execute(w, data); err != nil {
		return derrors.WrapError(err, derrors.CategoryRender, "failed to render stylesheet").Fatal().Build()
	}
	return nil
}

// DefaultIconData returns the embedded default icon.
func DefaultIconData() []byte {
	b, err := embedded.ReadFile("assets/" + DefaultIcon)
	if err != nil {
		panic(fmt.Sprintf("embedded default icon missing: %v", err))
	}
	return b
}

type pageView struct {
	*site.Page
	IsScript  bool
	Markdown  htmltemplate.HTML
	Functions []functionView
}

type functionView struct {
	site.Function
	HTML htmltemplate.HTML
}

func newPageView(p *site.Page) pageView {
	v := pageView{Page: p}
	if fns, ok := p.Functions(); ok {
		v.IsScript = true
		v.Functions = make([]functionView, len(fns))
		for i, fn := range fns {
			// #nosec G203 - body is rendered markdown from the site's own sources
			v.Functions[i] = functionView{Function: fn, HTML: htmltemplate.HTML(fn.Body)}
		}
		return v
	}
	if html, ok := p.Narrative(); ok {
		// #nosec G203 - body is rendered markdown from the site's own sources
		v.Markdown = htmltemplate.HTML(html)
	}
	return v
}
