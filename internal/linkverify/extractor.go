package linkverify

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
)

// Link is a reference found in an HTML document.
type Link struct {
	URL       string // the raw attribute value
	Tag       string // a, img, script, link, ...
	Attribute string // href or src
}

// Document is the link-relevant content of one HTML file.
type Document struct {
	Links []*Link
	// IDs holds every id attribute and every named anchor.
	IDs map[string]struct{}
}

// Parse extracts links and fragment targets from HTML.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	doc := &Document{IDs: make(map[string]struct{})}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			doc.collect(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return doc, nil
}

func (d *Document) collect(n *html.Node) {
	if id := getAttr(n, "id"); id != "" {
		d.IDs[id] = struct{}{}
	}

	var attr string
	switch n.Data {
	case "a":
		if name := getAttr(n, "name"); name != "" {
			d.IDs[name] = struct{}{}
		}
		attr = "href"
	case "link":
		attr = "href"
	case "img", "script", "video", "audio", "source", "iframe":
		attr = "src"
	default:
		return
	}
	if v := getAttr(n, attr); v != "" {
		d.Links = append(d.Links, &Link{URL: v, Tag: n.Data, Attribute: attr})
	}
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// IsInternal reports whether a link points into the generated site: it has no
// scheme or host and is not root-relative.
func IsInternal(link string) bool {
	if link == "" || strings.HasPrefix(link, "/") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
