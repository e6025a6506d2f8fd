package script

import (
	"cmp"
	"slices"
	"strings"
)

// Function is one function definition found in a script.
type Function struct {
	Name    string
	Params  []string
	Private bool
	// Comments holds the raw doc comment lines, markers included, in source order.
	Comments []string
	Line     int
}

// Arity returns the number of declared parameters.
func (f Function) Arity() int {
	return len(f.Params)
}

// String renders the call shape, e.g. "add(a, b)".
func (f Function) String() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

// Signature renders the declaration, e.g. "fn add(a, b)" or "private fn add(a, b)".
func (f Function) Signature() string {
	if f.Private {
		return "private fn " + f.String()
	}
	return "fn " + f.String()
}

// File is the parse result for one script.
type File struct {
	Path      string
	Functions []Function
}

// Documented returns the functions in source order, dropping private ones
// unless includePrivate is set.
func (f *File) Documented(includePrivate bool) []Function {
	if f == nil {
		return nil
	}
	out := make([]Function, 0, len(f.Functions))
	for _, fn := range f.Functions {
		if fn.Private && !includePrivate {
			continue
		}
		out = append(out, fn)
	}
	return out
}

// SortCanonical returns a copy of fns ordered by name, then by parameter count.
func SortCanonical(fns []Function) []Function {
	out := slices.Clone(fns)
	slices.SortStableFunc(out, func(a, b Function) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Arity(), b.Arity())
	})
	return out
}
