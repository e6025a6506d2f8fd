package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource_FunctionsInSourceOrder(t *testing.T) {
	src := `
/// Adds two numbers.
///
/// ` + "```" + `
/// add(1, 2)
/// ` + "```" + `
fn add(a, b) {
    a + b
}

// plain comment, not documentation
fn hello() { print("fn fake(x) {") }

/// Internal helper.
private fn helper(x) { x * 2 }
`
	file, err := ParseSource("math.rhai", []byte(src))
	require.NoError(t, err)
	require.Len(t, file.Functions, 3)

	add := file.Functions[0]
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, []string{"a", "b"}, add.Params)
	assert.False(t, add.Private)
	assert.Equal(t, []string{
		"/// Adds two numbers.",
		"///",
		"/// ```",
		"/// add(1, 2)",
		"/// ```",
	}, add.Comments)
	assert.Equal(t, 7, add.Line)
	assert.Equal(t, "fn add(a, b)", add.Signature())

	hello := file.Functions[1]
	assert.Equal(t, "hello", hello.Name)
	assert.Empty(t, hello.Params)
	assert.Empty(t, hello.Comments)

	helper := file.Functions[2]
	assert.True(t, helper.Private)
	assert.Equal(t, []string{"/// Internal helper."}, helper.Comments)
	assert.Equal(t, "private fn helper(x)", helper.Signature())
}

func TestParseSource_BlockDocComment(t *testing.T) {
	src := "/** Multiplies.\n\n    Returns `a * b`. */\nfn mul(a, b) { a * b }\n"

	file, err := ParseSource("mul.rhai", []byte(src))
	require.NoError(t, err)
	require.Len(t, file.Functions, 1)
	assert.Equal(t, []string{"/** Multiplies.", "", "    Returns `a * b`. */"}, file.Functions[0].Comments)
}

func TestParseSource_CodeBetweenCommentAndFunctionDetachesDocs(t *testing.T) {
	src := "/// Orphaned.\nlet x = 1;\nfn f() { x }\n"

	file, err := ParseSource("f.rhai", []byte(src))
	require.NoError(t, err)
	require.Len(t, file.Functions, 1)
	assert.Empty(t, file.Functions[0].Comments)
}

func TestParseSource_IgnoresLiteralsAndNesting(t *testing.T) {
	src := `
let s = "fn nope() {";
let c = '}';
let t = ` + "`fn also_nope() ${x}`" + `;
let r = #"fn raw() { "quoted" }"#;
let m = #{ a: 1, b: [1, 2] };
/* fn commented() { /* nested */ } */
fn real(a,) {
    if a > 0 { [a] } else { #{ } }
}
`
	file, err := ParseSource("lit.rhai", []byte(src))
	require.NoError(t, err)
	require.Len(t, file.Functions, 1)
	assert.Equal(t, "real", file.Functions[0].Name)
	assert.Equal(t, []string{"a"}, file.Functions[0].Params)
}

func TestParseSource_Overloads(t *testing.T) {
	src := "fn f(a) {}\nfn f(a, b) {}\nfn f() {}\n"

	file, err := ParseSource("o.rhai", []byte(src))
	require.NoError(t, err)
	require.Len(t, file.Functions, 3)
	assert.Equal(t, 1, file.Functions[0].Arity())
	assert.Equal(t, 2, file.Functions[1].Arity())
	assert.Equal(t, 0, file.Functions[2].Arity())
}

func TestParseSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"unclosed brace", "fn f() {\n  let x = 1;\n", 1, `unclosed '{'`},
		{"unexpected close", "let x = 1;\n}\n", 2, `unexpected '}'`},
		{"mismatched close", "fn f() { (1 }\n", 1, `mismatched '}'`},
		{"unterminated string", "let s = \"abc\nfn f() {}\n", 1, "unterminated string literal"},
		{"unterminated comment", "/* never closed\nfn f() {}\n", 1, "unterminated block comment"},
		{"missing name", "fn (a) {}\n", 1, "expected function name"},
		{"missing body", "fn f(a);\n", 1, "expected `{`"},
		{"bad params", "fn f(a b) {}\n", 1, "expected `,` or `)`"},
		{"duplicate param", "fn f(a, a) {}\n", 1, `duplicate parameter "a"`},
		{"private without fn", "private let x = 1;\n", 1, "expected `fn` after `private`"},
		{"duplicate definition", "fn f(a) {}\n\nfn f(b) {}\n", 3, "already defined at line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource("bad.rhai", []byte(tt.src))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
			assert.Equal(t, "bad.rhai", perr.Path)
			assert.Equal(t, tt.line, perr.Line)
			assert.Contains(t, perr.Message, tt.msg)
		})
	}
}

func TestParse_ReadErrorIsNotParseError(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.rhai"))
	require.Error(t, err)

	var perr *ParseError
	assert.False(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.rhai")
	require.NoError(t, os.WriteFile(path, []byte("/// Doc.\r\nfn a() {}\r\n"), 0o600))

	file, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, path, file.Path)
	require.Len(t, file.Functions, 1)
	assert.Equal(t, []string{"/// Doc."}, file.Functions[0].Comments)
}
