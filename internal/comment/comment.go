// Package comment turns raw doc comment lines into markdown ready for rendering.
package comment

import (
	"strings"

	"git.home.luguber.info/inful/rhaidoc/internal/anchor"
	"git.home.luguber.info/inful/rhaidoc/internal/script"
)

// Ref is one cross-reference target on a script page.
type Ref struct {
	Name   string
	Anchor string
}

// openers are the leading doc comment markers, matched by length.
var openers = []string{"///", "/**"}

const closer = "*/"

// Translate strips comment markers from lines and joins them into markdown.
//
// Line order and blank lines are kept verbatim. When refs is non-empty a blank
// line and one reference definition per ref are appended so that `name`
// mentions in the text resolve to the function's anchor. Inside a /** */
// block a leading "* " continuation marker is dropped as well.
func Translate(lines []string, refs []Ref) string {
	var b strings.Builder
	inBlock := false
	for _, line := range lines {
		opens := strings.HasPrefix(line, "/**")
		if inBlock && !opens {
			line = stripContinuation(line)
		}
		if opens {
			inBlock = true
		}
		if inBlock && closes(line) {
			inBlock = false
		}
		b.WriteString(Strip(line))
		b.WriteByte('\n')
	}
	if len(refs) > 0 {
		b.WriteByte('\n')
		for _, ref := range refs {
			b.WriteString(Definition(ref))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Strip removes a leading doc marker and a trailing block closer from one line.
func Strip(line string) string {
	for _, marker := range openers {
		if len(line) >= len(marker) && strings.HasPrefix(line, marker) {
			line = line[len(marker):]
			break
		}
	}
	if trimmed := strings.TrimRight(line, " \t"); len(trimmed) >= len(closer) && strings.HasSuffix(trimmed, closer) {
		line = trimmed[:len(trimmed)-len(closer)]
	}
	return line
}

// stripContinuation drops leading whitespace and a "*" marker followed by at
// most one space. Lines without the marker, or holding only the closer, are
// returned unchanged.
func stripContinuation(line string) string {
	rest := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(rest, "*") || strings.HasPrefix(rest, closer) {
		return line
	}
	rest = rest[1:]
	switch {
	case rest == "":
		return ""
	case rest[0] == ' ' || rest[0] == '\t':
		return rest[1:]
	default:
		return line
	}
}

func closes(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if strings.HasPrefix(trimmed, "/**") {
		trimmed = trimmed[len("/**"):]
	}
	return strings.HasSuffix(trimmed, closer)
}

// Definition renders the markdown reference-link definition for ref.
func Definition(ref Ref) string {
	return "[`" + ref.Name + "`]: #" + ref.Anchor
}

// Refs builds the cross-reference list for a page's functions.
//
// Functions are expected in canonical order. Deduplication is by name only,
// so overloads collapse onto the anchor of the first one seen.
func Refs(fns []script.Function) []Ref {
	seen := make(map[string]struct{}, len(fns))
	refs := make([]Ref, 0, len(fns))
	for _, fn := range fns {
		if _, dup := seen[fn.Name]; dup {
			continue
		}
		seen[fn.Name] = struct{}{}
		refs = append(refs, Ref{Name: fn.Name, Anchor: anchor.For(fn.Name, fn.Arity())})
	}
	return refs
}
