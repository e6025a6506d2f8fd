// Package site assembles the per-file render input from the navigation graph.
package site

import (
	"git.home.luguber.info/inful/rhaidoc/internal/config"
	"git.home.luguber.info/inful/rhaidoc/internal/nav"
)

// Body is the content of a page: Narrative for markdown pages, ScriptDoc for
// script pages.
type Body interface {
	isBody()
}

// Narrative is the rendered HTML of a markdown page.
type Narrative struct {
	HTML string
}

// ScriptDoc lists the documented functions of a script in canonical order.
type ScriptDoc struct {
	Functions []Function
}

func (Narrative) isBody() {}
func (ScriptDoc) isBody() {}

// Function is one documented function on a script page.
type Function struct {
	// ID is the in-page anchor, unique within the page.
	ID        string
	Signature string
	Private   bool
	// Body is the rendered HTML of the translated doc comment.
	Body string
}

// Page is everything the template needs to render one output file.
type Page struct {
	// Link is the page's own slash-separated output path.
	Link string

	Title      string
	Name       string
	Root       string
	Icon       string
	Stylesheet string
	CodeTheme  string

	Body Body

	Pages   []nav.Entry
	Scripts []nav.Entry

	ExternalLinks   []config.Link
	GoogleAnalytics string
	Revision        string
}

// Narrative returns the page HTML and true for narrative pages.
func (p *Page) Narrative() (string, bool) {
	n, ok := p.Body.(Narrative)
	return n.HTML, ok
}

// Functions returns the function list and true for script pages.
func (p *Page) Functions() ([]Function, bool) {
	d, ok := p.Body.(ScriptDoc)
	return d.Functions, ok
}
