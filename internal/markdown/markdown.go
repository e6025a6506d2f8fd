// Package markdown renders narrative pages and function docs to HTML with goldmark.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Options configures a Renderer.
type Options struct {
	// DefaultLanguage is attached to fenced code blocks that carry no info string.
	DefaultLanguage string
	// Sanitize runs rendered HTML through a bluemonday UGC policy.
	Sanitize bool
}

// Renderer converts markdown to HTML. It is safe for sequential reuse.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a Renderer with tables, strikethrough, autolinks, task lists and
// smart punctuation enabled. Raw HTML in the source is passed through.
func New(opts Options) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(&fenceRenderer{lang: opts.DefaultLanguage}, 100)),
		),
	)
	r := &Renderer{md: md}
	if opts.Sanitize {
		r.policy = newPolicy()
	}
	return r
}

// Render converts src to HTML.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", err
	}
	if r.policy != nil {
		return r.policy.Sanitize(buf.String()), nil
	}
	return buf.String(), nil
}

// RenderString is Render for string input.
func (r *Renderer) RenderString(src string) (string, error) {
	return r.Render([]byte(src))
}

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w.+#-]+$`)).OnElements("code")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return policy
}

// FirstHeading reports the text of the document's leading level-1 heading.
//
// ok is false when the first block is not a level-1 heading or when the
// heading does not start with plain text (for example a link or an image).
func FirstHeading(src []byte) (title string, ok bool) {
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	heading, isHeading := root.FirstChild().(*gmast.Heading)
	if !isHeading || heading.Level != 1 {
		return "", false
	}
	if _, isText := heading.FirstChild().(*gmast.Text); !isText {
		return "", false
	}
	var b strings.Builder
	inlineText(&b, heading, src)
	return strings.TrimSpace(b.String()), true
}

func inlineText(b *strings.Builder, n gmast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		default:
			inlineText(b, c, src)
		}
	}
}
