package site

import (
	"path/filepath"

	"git.home.luguber.info/inful/rhaidoc/internal/anchor"
	"git.home.luguber.info/inful/rhaidoc/internal/comment"
	"git.home.luguber.info/inful/rhaidoc/internal/config"
	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/nav"
	"git.home.luguber.info/inful/rhaidoc/internal/script"
)

// MarkdownRenderer converts markdown to HTML.
type MarkdownRenderer interface {
	Render(src []byte) (string, error)
}

// Meta is the site-wide data shared by every page.
type Meta struct {
	Title           string
	Icon            string
	Stylesheet      string
	CodeTheme       string
	GoogleAnalytics string
	Revision        string
	Links           []config.Link
	// Root overrides the computed root prefix when set.
	Root string
}

// Renderers pairs the markdown renderer for narrative pages with the one for
// function docs. Only Functions is expected to tag untagged fences with the
// default code language.
type Renderers struct {
	Pages     MarkdownRenderer
	Functions MarkdownRenderer
}

// Assembler builds one Page per output file.
type Assembler struct {
	meta      Meta
	renderers Renderers
	destDir   string
}

// NewAssembler creates an Assembler for a site written to destDir. A relative
// destDir is made absolute so the site root above it can be resolved.
func NewAssembler(meta Meta, renderers Renderers, destDir string) *Assembler {
	dir, err := filepath.Abs(destDir)
	if err != nil {
		dir = filepath.Clean(destDir)
	}
	return &Assembler{meta: meta, renderers: renderers, destDir: dir}
}

// OutputPath maps a slash-separated link to its file under the destination.
func (a *Assembler) OutputPath(link string) string {
	return filepath.Join(a.destDir, filepath.FromSlash(link))
}

// AssemblePage builds the page for a narrative entry from its markdown body.
// The entry is active in the page list; the script list has no active entry.
func (a *Assembler) AssemblePage(entry nav.Entry, body []byte, pages, scripts []nav.Entry) (*Page, error) {
	html, err := a.renderers.Pages.Render(body)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to render page").
			WithPath(entry.SourcePath).Fatal().Build()
	}

	page := a.base(entry.Link, entry.Name)
	page.Body = Narrative{HTML: html}
	page.Pages = activate(nav.Clone(pages), entry.Link, nil)
	page.Scripts = nav.Clone(scripts)
	return page, nil
}

// AssembleScript builds the page for a script entry. fns must be the script's
// documented functions in canonical order. The entry is active in the script
// list and carries one sub-link per function; the page list has no active entry.
func (a *Assembler) AssembleScript(entry nav.Entry, fns []script.Function, scripts, pages []nav.Entry) (*Page, error) {
	refs := comment.Refs(fns)

	functions := make([]Function, 0, len(fns))
	subLinks := make([]nav.SubLink, 0, len(fns))
	for _, fn := range fns {
		id := anchor.For(fn.Name, fn.Arity())
		html, err := a.renderers.Functions.Render([]byte(comment.Translate(fn.Comments, refs)))
		if err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to render function docs").
				WithPath(entry.SourcePath).WithContext("function", fn.String()).Fatal().Build()
		}
		functions = append(functions, Function{
			ID:        id,
			Signature: fn.Signature(),
			Private:   fn.Private,
			Body:      html,
		})
		subLinks = append(subLinks, nav.SubLink{Name: fn.String(), Anchor: id})
	}

	page := a.base(entry.Link, entry.Name)
	page.Body = ScriptDoc{Functions: functions}
	page.Scripts = activate(nav.Clone(scripts), entry.Link, subLinks)
	page.Pages = nav.Clone(pages)
	return page, nil
}

// AssembleIndex builds a landing page for sites whose pages do not provide one.
// It has an empty body and no active entry.
func (a *Assembler) AssembleIndex(pages, scripts []nav.Entry) *Page {
	page := a.base(nav.IndexLink, a.meta.Title)
	page.Body = Narrative{}
	page.Pages = nav.Clone(pages)
	page.Scripts = nav.Clone(scripts)
	return page
}

func (a *Assembler) base(link, name string) *Page {
	return &Page{
		Link:            link,
		Title:           a.meta.Title,
		Name:            name,
		Root:            RootPrefix(a.OutputPath(link), filepath.Dir(a.destDir), a.meta.Root),
		Icon:            a.meta.Icon,
		Stylesheet:      a.meta.Stylesheet,
		CodeTheme:       a.meta.CodeTheme,
		ExternalLinks:   a.meta.Links,
		GoogleAnalytics: a.meta.GoogleAnalytics,
		Revision:        a.meta.Revision,
	}
}

// activate marks the entry whose link equals link. subLinks, when non-nil,
// replace that entry's sub-links.
func activate(list []nav.Entry, link string, subLinks []nav.SubLink) []nav.Entry {
	for i := range list {
		if list[i].Link != link {
			continue
		}
		list[i].Active = true
		if subLinks != nil {
			list[i].SubLinks = subLinks
		}
	}
	return list
}
