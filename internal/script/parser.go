package script

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Parse reads and parses the script at path. Read failures are returned
// unchanged; malformed source yields a *ParseError.
func Parse(path string) (*File, error) {
	// #nosec G304 -- path comes from discovery under the configured scripts root.
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSource(path, src)
}

// ParseSource parses script source. path is only used for error reporting.
func ParseSource(path string, src []byte) (*File, error) {
	s := &scanner{path: path, src: src, line: 1, col: 1, seen: make(map[string]int)}
	if err := s.run(); err != nil {
		return nil, err
	}
	return &File{Path: path, Functions: s.fns}, nil
}

type bracket struct {
	char      byte
	line, col int
}

var closers = map[byte]byte{'}': '{', ')': '(', ']': '['}

type scanner struct {
	path      string
	src       []byte
	pos       int
	line, col int

	stack   []bracket
	pending []string       // doc comment lines waiting for a definition
	seen    map[string]int // "name/arity" -> line of first definition
	fns     []Function
}

func (s *scanner) run() error {
	for {
		s.skipSpace()
		if s.eof() {
			break
		}
		if err := s.step(); err != nil {
			return err
		}
	}
	if n := len(s.stack); n > 0 {
		open := s.stack[n-1]
		return s.errorf(open.line, open.col, "unclosed %q", open.char)
	}
	return nil
}

func (s *scanner) step() error {
	switch {
	case s.hasPrefix("///") && !s.hasPrefix("////"):
		s.pending = append(s.pending, s.readLine())
		return nil
	case s.hasPrefix("//"):
		s.readLine()
		return nil
	case s.hasPrefix("/**") && !s.hasPrefix("/***") && !s.hasPrefix("/**/"):
		text, err := s.readBlock()
		if err != nil {
			return err
		}
		s.pending = append(s.pending, splitLines(text)...)
		return nil
	case s.hasPrefix("/*"):
		_, err := s.readBlock()
		return err
	}

	// Any token other than a comment detaches pending doc comments.
	docs := s.pending
	s.pending = nil

	c := s.peek()
	switch {
	case c == '"':
		return s.readQuoted('"', "string literal")
	case c == '\'':
		return s.readQuoted('\'', "character literal")
	case c == '`':
		return s.readBacktick()
	case c == '#':
		return s.readHash()
	case c == '{' || c == '(' || c == '[':
		s.stack = append(s.stack, bracket{char: c, line: s.line, col: s.col})
		s.advance()
		return nil
	case c == '}' || c == ')' || c == ']':
		return s.closeBracket(c)
	case isIdentStart(c):
		line, col := s.line, s.col
		word := s.readIdent()
		if len(s.stack) > 0 {
			return nil
		}
		switch word {
		case "fn":
			return s.readFunction(false, docs, line, col)
		case "private":
			s.skipSpace()
			if !isIdentStart(s.peek()) || s.readIdent() != "fn" {
				return s.errorf(line, col, "expected `fn` after `private`")
			}
			return s.readFunction(true, docs, line, col)
		}
		return nil
	default:
		s.advance()
		return nil
	}
}

// readFunction parses the header of a definition whose `fn` keyword has been
// consumed. The opening brace of the body is left for the main loop.
func (s *scanner) readFunction(private bool, docs []string, line, col int) error {
	s.skipSpace()
	if !isIdentStart(s.peek()) {
		return s.errorf(s.line, s.col, "expected function name after `fn`")
	}
	name := s.readIdent()

	s.skipSpace()
	if s.peek() != '(' {
		return s.errorf(s.line, s.col, "expected `(` after function name %q", name)
	}
	s.advance()

	var params []string
	for {
		s.skipSpace()
		if s.eof() {
			return s.errorf(line, col, "unterminated parameter list of %q", name)
		}
		if s.peek() == ')' {
			s.advance()
			break
		}
		if !isIdentStart(s.peek()) {
			return s.errorf(s.line, s.col, "expected parameter name in %q", name)
		}
		pline, pcol := s.line, s.col
		param := s.readIdent()
		for _, p := range params {
			if p == param {
				return s.errorf(pline, pcol, "duplicate parameter %q in %q", param, name)
			}
		}
		params = append(params, param)

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.advance()
		case ')':
		default:
			return s.errorf(s.line, s.col, "expected `,` or `)` in parameter list of %q", name)
		}
	}

	s.skipSpace()
	if s.peek() != '{' {
		return s.errorf(s.line, s.col, "expected `{` to open the body of %q", name)
	}

	key := fmt.Sprintf("%s/%d", name, len(params))
	if first, dup := s.seen[key]; dup {
		return s.errorf(line, col, "function %q with %d parameters is already defined at line %d", name, len(params), first)
	}
	s.seen[key] = line

	s.fns = append(s.fns, Function{
		Name:     name,
		Params:   params,
		Private:  private,
		Comments: docs,
		Line:     line,
	})
	return nil
}

func (s *scanner) closeBracket(c byte) error {
	n := len(s.stack)
	if n == 0 {
		return s.errorf(s.line, s.col, "unexpected %q", c)
	}
	open := s.stack[n-1]
	if open.char != closers[c] {
		return s.errorf(s.line, s.col, "mismatched %q: %q opened at line %d", c, open.char, open.line)
	}
	s.stack = s.stack[:n-1]
	s.advance()
	return nil
}

func (s *scanner) readLine() string {
	start := s.pos
	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}
	return strings.TrimRight(string(s.src[start:s.pos]), "\r")
}

// readBlock consumes a (possibly nested) block comment and returns its text.
func (s *scanner) readBlock() (string, error) {
	start, line, col := s.pos, s.line, s.col
	s.advanceN(2)
	depth := 1
	for depth > 0 {
		switch {
		case s.eof():
			return "", s.errorf(line, col, "unterminated block comment")
		case s.hasPrefix("/*"):
			depth++
			s.advanceN(2)
		case s.hasPrefix("*/"):
			depth--
			s.advanceN(2)
		default:
			s.advance()
		}
	}
	return string(s.src[start:s.pos]), nil
}

func (s *scanner) readQuoted(quote byte, what string) error {
	line, col := s.line, s.col
	s.advance()
	for {
		if s.eof() || s.peek() == '\n' {
			return s.errorf(line, col, "unterminated %s", what)
		}
		switch s.peek() {
		case '\\':
			s.advance()
			if !s.eof() {
				s.advance()
			}
		case quote:
			s.advance()
			return nil
		default:
			s.advance()
		}
	}
}

// readBacktick consumes an interpolated string; a doubled backtick is a literal one.
func (s *scanner) readBacktick() error {
	line, col := s.line, s.col
	s.advance()
	for {
		switch {
		case s.eof():
			return s.errorf(line, col, "unterminated string literal")
		case s.hasPrefix("``"):
			s.advanceN(2)
		case s.peek() == '`':
			s.advance()
			return nil
		default:
			s.advance()
		}
	}
}

// readHash handles raw strings (#"..."#, ##"..."##); any other '#' is punctuation.
func (s *scanner) readHash() error {
	n := 0
	for s.peekAt(n) == '#' {
		n++
	}
	if s.peekAt(n) != '"' {
		s.advance()
		return nil
	}
	line, col := s.line, s.col
	s.advanceN(n + 1)
	closing := "\"" + strings.Repeat("#", n)
	for !s.hasPrefix(closing) {
		if s.eof() {
			return s.errorf(line, col, "unterminated raw string literal")
		}
		s.advance()
	}
	s.advanceN(len(closing))
	return nil
}

func (s *scanner) readIdent() string {
	start := s.pos
	for !s.eof() && isIdentPart(s.peek()) {
		s.advance()
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.advance()
		default:
			return
		}
	}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte { return s.peekAt(0) }

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func (s *scanner) hasPrefix(p string) bool {
	return bytes.HasPrefix(s.src[s.pos:], []byte(p))
}

func (s *scanner) advance() {
	if s.src[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

func (s *scanner) advanceN(n int) {
	for i := 0; i < n && !s.eof(); i++ {
		s.advance()
	}
}

func (s *scanner) errorf(line, col int, format string, args ...any) error {
	return &ParseError{Path: s.path, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
