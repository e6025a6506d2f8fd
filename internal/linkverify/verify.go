// Package linkverify checks that relative links and fragments in a generated
// site resolve to files and element ids inside it.
package linkverify

import (
	"cmp"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/logfields"
)

// Broken is a link that does not resolve.
type Broken struct {
	Page   string // slash path of the page containing the link
	URL    string
	Reason string
}

func (b Broken) String() string {
	return fmt.Sprintf("%s: %s (%s)", b.Page, b.URL, b.Reason)
}

// Report summarizes a verification run.
type Report struct {
	Pages  int
	Links  int
	Broken []Broken
}

// OK reports whether every checked link resolved.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// Verifier checks the HTML files below a site root.
type Verifier struct {
	root string
	docs map[string]*Document
}

// NewVerifier creates a Verifier for the site in root.
func NewVerifier(root string) *Verifier {
	return &Verifier{root: root, docs: make(map[string]*Document)}
}

// Verify checks every internal link of every HTML page. External and
// root-relative links are not followed.
func (v *Verifier) Verify() (*Report, error) {
	var pages []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".html") {
			rel, err := filepath.Rel(v.root, p)
			if err != nil {
				return err
			}
			pages = append(pages, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list site files").
			WithPath(v.root).Build()
	}
	slices.Sort(pages)

	report := &Report{Pages: len(pages)}
	for _, page := range pages {
		doc, err := v.document(page)
		if err != nil {
			return nil, err
		}
		for _, link := range doc.Links {
			if !IsInternal(link.URL) {
				continue
			}
			report.Links++
			if reason := v.check(page, link.URL); reason != "" {
				report.Broken = append(report.Broken, Broken{Page: page, URL: link.URL, Reason: reason})
			}
		}
	}
	slices.SortStableFunc(report.Broken, func(a, b Broken) int {
		if c := cmp.Compare(a.Page, b.Page); c != 0 {
			return c
		}
		return cmp.Compare(a.URL, b.URL)
	})

	slog.Debug("Link verification complete", logfields.Count(report.Links), slog.Int("broken", len(report.Broken)))
	return report, nil
}

// check resolves link relative to page and returns why it is broken, or "".
func (v *Verifier) check(page, link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return "malformed URL"
	}

	target := page
	if u.Path != "" {
		target = path.Join(path.Dir(page), u.Path)
		if target == ".." || strings.HasPrefix(target, "../") {
			return "points outside the site"
		}
		info, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(target)))
		if err != nil {
			return "target not found"
		}
		if info.IsDir() {
			target = path.Join(target, "index.html")
			if _, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(target))); err != nil {
				return "directory has no index.html"
			}
		}
	}

	if u.Fragment == "" || !strings.EqualFold(path.Ext(target), ".html") {
		return ""
	}
	doc, err := v.document(target)
	if err != nil {
		return "target not parseable"
	}
	if _, ok := doc.IDs[u.Fragment]; !ok {
		return "fragment #" + u.Fragment + " not found"
	}
	return ""
}

func (v *Verifier) document(page string) (*Document, error) {
	if doc, ok := v.docs[page]; ok {
		return doc, nil
	}
	p := filepath.Join(v.root, filepath.FromSlash(page))
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithPath(p).Build()
	}
	defer func() {
		_ = f.Close() // read-only
	}()
	doc, err := Parse(f)
	if err != nil {
		return nil, err
	}
	v.docs[page] = doc
	return doc, nil
}
