// Package nav discovers narrative pages and scripts and builds the two
// navigation lists every rendered page shares.
package nav

import (
	"slices"

	"git.home.luguber.info/inful/rhaidoc/internal/script"
)

// IndexLink is the output link of the site's landing page.
const IndexLink = "index.html"

// Entry is one navigable unit: a narrative page or a script.
type Entry struct {
	// SourcePath is the input file and identifies the entry.
	SourcePath string
	// Name is the page heading, or the script path relative to the scripts
	// root without extension.
	Name string
	// Link is the slash-separated output path relative to the site root.
	Link string
	// Active is set only on the copy of the entry embedded in its own page.
	Active bool
	// SubLinks lists the documented functions of a script, in canonical order.
	SubLinks []SubLink
}

// SubLink points at one function section inside a script page.
type SubLink struct {
	Name   string
	Anchor string
}

// Graph is the result of discovery.
type Graph struct {
	Pages   []Entry
	Scripts []Entry

	// Parsed holds the parse result of every script entry, keyed by source path.
	Parsed map[string]*script.File
	// Bodies holds each page's markdown with frontmatter removed, keyed by source path.
	Bodies map[string][]byte

	includePrivate bool
}

// Functions returns the documented functions of a script in canonical order.
func (g *Graph) Functions(sourcePath string) []script.Function {
	return script.SortCanonical(g.Parsed[sourcePath].Documented(g.includePrivate))
}

// HasIndex reports whether a narrative page or a script renders to IndexLink.
func (g *Graph) HasIndex() bool {
	claimed := func(e Entry) bool { return e.Link == IndexLink }
	return slices.ContainsFunc(g.Pages, claimed) || slices.ContainsFunc(g.Scripts, claimed)
}

// Clone returns a deep copy of list so that callers may mark entries active
// without affecting other pages.
func Clone(list []Entry) []Entry {
	if list == nil {
		return nil
	}
	out := make([]Entry, len(list))
	for i, e := range list {
		e.SubLinks = slices.Clone(e.SubLinks)
		out[i] = e
	}
	return out
}
