package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fn(name string, params ...string) Function {
	return Function{Name: name, Params: params}
}

func TestSortCanonical(t *testing.T) {
	in := []Function{fn("b"), fn("a", "x"), fn("a")}

	got := SortCanonical(in)

	assert.Equal(t, []Function{fn("a"), fn("a", "x"), fn("b")}, got)
	// input untouched
	assert.Equal(t, "b", in[0].Name)
}

func TestDocumented(t *testing.T) {
	file := &File{Functions: []Function{
		{Name: "pub"},
		{Name: "hidden", Private: true},
		{Name: "other"},
	}}

	names := func(fns []Function) []string {
		out := make([]string, 0, len(fns))
		for _, f := range fns {
			out = append(out, f.Name)
		}
		return out
	}

	assert.Equal(t, []string{"pub", "other"}, names(file.Documented(false)))
	assert.Equal(t, []string{"pub", "hidden", "other"}, names(file.Documented(true)))

	var nilFile *File
	assert.Empty(t, nilFile.Documented(true))
}

func TestFunctionString(t *testing.T) {
	assert.Equal(t, "add(a, b)", fn("add", "a", "b").String())
	assert.Equal(t, "now()", fn("now").String())
}
