// Package inspect formats the documentation of one script for the terminal.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"git.home.luguber.info/inful/rhaidoc/internal/comment"
	"git.home.luguber.info/inful/rhaidoc/internal/script"
)

// DefaultWidth is the word-wrap column.
const DefaultWidth = 100

// StyleAuto picks a dark or light style from the terminal background.
const StyleAuto = "auto"

// Options controls terminal rendering.
type Options struct {
	// Style is a glamour standard style name ("dark", "light", "notty", ...)
	// or StyleAuto.
	Style string
	Width int
}

// Markdown returns one markdown document describing the documented functions
// of file in canonical order.
func Markdown(file *script.File, title string, includePrivate bool) string {
	fns := script.SortCanonical(file.Documented(includePrivate))
	refs := comment.Refs(fns)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	if len(fns) == 0 {
		b.WriteString("\nNo documented functions.\n")
		return b.String()
	}
	for _, fn := range fns {
		fmt.Fprintf(&b, "\n## `%s`\n", fn.Signature())
		if len(fn.Comments) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(comment.Translate(fn.Comments, refs))
	}
	return b.String()
}

// Render writes md to w styled for a terminal.
func Render(w io.Writer, md string, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	style := glamour.WithStandardStyle(opts.Style)
	if opts.Style == "" || opts.Style == StyleAuto {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.Width))
	if err != nil {
		return fmt.Errorf("create terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
