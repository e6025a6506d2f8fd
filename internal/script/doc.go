// Package script extracts documented function signatures from Rhai scripts.
//
// It is not a full Rhai parser: it tokenizes just enough of the language
// (comments, string and character literals, bracket nesting) to find every
// top-level `fn` / `private fn` definition, its parameters, and the doc
// comments (`///` lines or a `/** */` block) written immediately above it.
// Unbalanced brackets, unterminated literals and duplicate definitions are
// reported as *ParseError.
package script
