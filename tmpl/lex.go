package tmpl

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// parser holds the parser state.
type parser struct {
	source string
	input  []byte
	pos    int
	line   int
	col    int
	depth  int
	opts   options
}

func newParser(source string, opts options) *parser {
	return &parser{
		source: source,
		input:  []byte(source),
		line:   1,
		col:    1,
		opts:   opts,
	}
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

// peekAt returns the rune starting n bytes past the current position.
func (p *parser) peekAt(n int) rune {
	if p.pos+n >= len(p.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos+n:])

	return r
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

// fail builds a positioned parse error.
func (p *parser) fail(pos Position, reason string, expected ...string) error {
	return &ParseError{
		Pos:      pos,
		Reason:   reason,
		Expected: expected,
		Source:   p.source,
	}
}

// skipWhitespace consumes one or more whitespace runes.
// It reports false, consuming nothing, if the next rune is not whitespace.
func (p *parser) skipWhitespace() bool {
	if p.eof() || !unicode.IsSpace(p.peek()) {
		return false
	}

	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}

	return true
}

// skipLineComment consumes "//" through the end of the line.
func (p *parser) skipLineComment() bool {
	if p.peekN(2) != "//" {
		return false
	}

	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}

	if !p.eof() {
		p.advance() // skip '\n'
	}

	return true
}

// skipBlockComment consumes "/*" through the first "*/".
func (p *parser) skipBlockComment() (bool, error) {
	if p.peekN(2) != "/*" {
		return false, nil
	}

	start := p.position()

	p.advance() // skip '/'
	p.advance() // skip '*'

	for !p.eof() {
		if p.peekN(2) == "*/" {
			p.advance() // skip '*'
			p.advance() // skip '/'

			return true, nil
		}

		p.advance()
	}

	return false, p.fail(start, "unterminated block comment", "*/")
}

// skipIgnored consumes whitespace and comments in any order until an attempt
// makes no progress. It reports whether anything was consumed.
func (p *parser) skipIgnored() (bool, error) {
	start := p.pos

	for !p.eof() {
		if p.skipWhitespace() || p.skipLineComment() {
			continue
		}

		ok, err := p.skipBlockComment()
		if err != nil {
			return false, err
		}

		if !ok {
			break
		}
	}

	return p.pos > start, nil
}

// parseIdentifier parses an identifier token.
func (p *parser) parseIdentifier() (string, error) {
	start := p.pos

	if !isIdentifierStart(p.peek()) {
		return "", p.fail(p.position(), "invalid identifier", "identifier")
	}

	p.advance()

	// Continue with identifier chars
	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return string(p.input[start:p.pos]), nil
}

// parseSegment parses a path segment following a '.', which may also be a
// decimal array index.
func (p *parser) parseSegment() (string, error) {
	start := p.pos

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	if p.pos == start {
		return "", p.fail(p.position(), "invalid path segment", "identifier", "index")
	}

	return string(p.input[start:p.pos]), nil
}

// parsePath parses: Identifier ('.' Segment)*.
func (p *parser) parsePath() (Path, error) {
	head, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	path := Path{head}

	for p.peek() == '.' {
		p.advance()

		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}

		path = append(path, seg)
	}

	return path, nil
}

// parseString parses a double-quoted string literal with escapes.
func (p *parser) parseString() (string, error) {
	start := p.position()

	if !p.expect('"') {
		return "", p.fail(start, "invalid string literal", `"`)
	}

	var buf strings.Builder

	for !p.eof() {
		ch := p.peek()

		switch ch {
		case '"':
			p.advance() // skip closing quote

			return buf.String(), nil

		case '\\':
			esc := p.position()

			p.advance() // skip backslash

			if p.eof() {
				return "", p.fail(start, "unterminated string literal", `"`)
			}

			switch p.peek() {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case '\\':
				buf.WriteByte('\\')
			case '"':
				buf.WriteByte('"')
			default:
				return "", p.fail(esc, "invalid escape sequence",
					`\n`, `\t`, `\\`, `\"`)
			}

			p.advance()

		default:
			buf.WriteRune(ch)
			p.advance()
		}
	}

	return "", p.fail(start, "unterminated string literal", `"`)
}

// keyword reports whether the input continues with word at a word boundary,
// consuming it if so.
func (p *parser) keyword(word string) bool {
	if p.peekN(len(word)) != word {
		return false
	}

	next := p.peekAt(len(word))
	if isIdentifierContinue(next) || isIdentifierStart(next) || next == '.' {
		return false
	}

	for range word {
		p.advance()
	}

	return true
}

// Character classification

// isIdentifierStart reports whether r may begin an identifier.
func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '-'
}

// isIdentifierContinue reports whether r may follow the first rune of an
// identifier. Only letters and digits continue one, so "a_b" is the
// identifier "a" followed by "_b".
func isIdentifierContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
