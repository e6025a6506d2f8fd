package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/rhaidoc/internal/script"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/// Adds numbers.", " Adds numbers."},
		{"///", ""},
		{"/** Block start", " Block start"},
		{"    continued */", "    continued "},
		{"/** one-liner */", " one-liner "},
		{"plain line", "plain line"},
		{"//", "//"},
		{"*/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Strip(tt.in), "Strip(%q)", tt.in)
	}
}

func TestTranslate_PreservesOrderAndBlankLines(t *testing.T) {
	lines := []string{
		"/// Adds two numbers.",
		"///",
		"/// ```",
		"/// add(1, 2)",
		"/// ```",
	}

	got := Translate(lines, nil)

	assert.Equal(t, " Adds two numbers.\n\n ```\n add(1, 2)\n ```\n", got)
}

func TestTranslate_BlockContinuationMarkers(t *testing.T) {
	lines := []string{
		"/**",
		" * Adds.",
		" *",
		" * ```",
		" * add(1, 2)",
		" * ```",
		" */",
	}

	got := Translate(lines, nil)

	assert.Equal(t, "\nAdds.\n\n```\nadd(1, 2)\n```\n \n", got)
}

func TestTranslate_ContinuationOnlyInsideBlock(t *testing.T) {
	lines := []string{
		"/** Start */",
		"/// * item",
		"/**",
		"    plain */",
	}

	got := Translate(lines, nil)

	assert.Equal(t, " Start \n * item\n\n    plain \n", got)
}

func TestTranslate_AppendsReferenceDefinitions(t *testing.T) {
	refs := []Ref{{Name: "add", Anchor: "add-2"}, {Name: "now", Anchor: "now"}}

	got := Translate([]string{"/// See `add`."}, refs)

	assert.Equal(t, " See `add`.\n\n[`add`]: #add-2\n[`now`]: #now\n", got)
}

func TestTranslate_Empty(t *testing.T) {
	assert.Equal(t, "", Translate(nil, nil))
	assert.Equal(t, "\n[`f`]: #f\n", Translate(nil, []Ref{{Name: "f", Anchor: "f"}}))
}

func TestRefs_DeduplicatesByNameFirstWins(t *testing.T) {
	fns := script.SortCanonical([]script.Function{
		{Name: "helper", Params: []string{"a", "b"}},
		{Name: "helper", Params: []string{"a"}},
		{Name: "add", Params: []string{"a", "b"}},
	})

	refs := Refs(fns)

	assert.Equal(t, []Ref{
		{Name: "add", Anchor: "add-2"},
		{Name: "helper", Anchor: "helper-1"},
	}, refs)
}
