// Package lexer splits markup source into words: text literals, tag opens
// and tag closes.
//
//	{ "Hello there. " }
//	<i> { "I'm italic now! " } </i>
//	<b color = "#ff0000" click = { handler }> { "Click me" } </b>
package lexer

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/riverfjs/htmllite-go/internal/logging"
	"github.com/riverfjs/htmllite-go/internal/types"
)

// Options controls lexing.
type Options struct {
	// AllowTrailing stops lexing quietly at the first token that cannot start
	// a word instead of failing with an unterminated-input error.
	AllowTrailing bool
	// Logger overrides the component logger.
	Logger *zerolog.Logger
}

// Lexer is a single-pass scanner over markup source.
type Lexer struct {
	src  string
	off  int
	line int
	col  int
	opts Options
	log  zerolog.Logger

	// stopped is set once AllowTrailing swallowed the rest of the input.
	stopped bool
	rest    string
}

// New creates a Lexer over src.
func New(src string, opts Options) *Lexer {
	logger := logging.GetLogger("lexer")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Lexer{src: src, line: 1, col: 1, opts: opts, log: logger}
}

// Tokenize lexes the whole of src. It stops at the first error.
func Tokenize(src string, opts Options) ([]types.Word, error) {
	l := New(src, opts)
	words := make([]types.Word, 0)
	for {
		w, err := l.Next()
		if err == io.EOF {
			return words, nil
		}
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
}

// Stopped reports whether lexing ended early on unrecognized input, and
// returns that remaining input.
func (l *Lexer) Stopped() (bool, string) {
	return l.stopped, l.rest
}

// Next returns the next word, or io.EOF when the input is exhausted.
func (l *Lexer) Next() (types.Word, error) {
	if l.stopped {
		return nil, io.EOF
	}
	l.skipSpace()
	if l.eof() {
		return nil, io.EOF
	}

	switch l.peek() {
	case '{':
		return l.lexText()
	case '<':
		return l.lexTag()
	}

	if l.opts.AllowTrailing {
		l.stopped = true
		l.rest = l.src[l.off:]
		return nil, io.EOF
	}
	return nil, types.NewError(types.CodeUnterminatedInput, l.pos(),
		"unexpected %q: input does not form a text, tag-open or tag-close word", l.snippet())
}

// --- words ---

func (l *Lexer) lexText() (types.Word, error) {
	start := l.pos()
	l.advance() // {
	l.skipSpace()
	if l.eof() || l.peek() != '"' {
		return nil, l.errorf("expected string literal after '{'")
	}
	value, err := l.lexString()
	if err != nil {
		return nil, err
	}
	l.skipSpace()
	if l.eof() || l.peek() != '}' {
		return nil, l.errorf("expected '}' to close text literal")
	}
	l.advance()
	return types.Text{Value: value, Pos: start}, nil
}

func (l *Lexer) lexTag() (types.Word, error) {
	start := l.pos()
	l.advance() // <
	l.skipSpace()
	if !l.eof() && l.peek() == '/' {
		l.advance()
		l.skipSpace()
		name, ok := l.lexIdent()
		if !ok {
			return nil, l.errorf("expected tag name after '</'")
		}
		l.skipSpace()
		if l.eof() || l.peek() != '>' {
			return nil, l.errorf("expected '>' to close </%s", name)
		}
		l.advance()
		return types.TagClose{Name: name, Pos: start}, nil
	}

	name, ok := l.lexIdent()
	if !ok {
		return nil, l.errorf("expected tag name after '<'")
	}
	attrs := make(map[string]any)
	for {
		l.skipSpace()
		if l.eof() {
			return nil, l.errorf("missing '>' for tag <%s", name)
		}
		if l.peek() == '>' {
			l.advance()
			return types.TagOpen{Name: name, Attrs: attrs, Pos: start}, nil
		}
		key, ok := l.lexIdent()
		if !ok {
			return nil, l.errorf("unexpected %q in tag <%s", l.snippet(), name)
		}
		l.skipSpace()
		if l.eof() || l.peek() != '=' {
			return nil, l.errorf("missing '=' after attribute %q", key)
		}
		l.advance()
		l.skipSpace()
		value, err := l.lexValue()
		if err != nil {
			return nil, err
		}
		// Last one wins within a single tag.
		if _, dup := attrs[key]; dup {
			l.log.Debug().
				Str("tag", name).
				Str("attribute", key).
				Stringer("pos", value.Pos).
				Msg("Duplicate attribute, keeping the last value")
		}
		attrs[key] = value
	}
}

// --- values ---

func (l *Lexer) lexValue() (types.Expr, error) {
	start := l.pos()
	if l.eof() {
		return types.Expr{}, l.errorf("missing attribute value")
	}
	r := l.peek()
	switch {
	case r == '"':
		s, err := l.lexString()
		if err != nil {
			return types.Expr{}, err
		}
		return types.Expr{Kind: types.ExprString, Raw: s, Pos: start}, nil
	case r == '-' || isDigit(r):
		return l.lexNumber()
	case r == '{':
		body, err := l.lexBraced()
		if err != nil {
			return types.Expr{}, err
		}
		return types.Expr{Kind: types.ExprInline, Raw: body, Pos: start}, nil
	case isIdentStart(r):
		id, _ := l.lexIdent()
		return types.Expr{Kind: types.ExprRef, Raw: id, Pos: start}, nil
	}
	return types.Expr{}, l.errorf("malformed attribute value %q", l.snippet())
}

// lexString reads a double-quoted literal. There is no escape syntax.
func (l *Lexer) lexString() (string, error) {
	start := l.pos()
	l.advance() // opening quote
	begin := l.off
	for !l.eof() {
		if l.peek() == '"' {
			s := l.src[begin:l.off]
			l.advance()
			return s, nil
		}
		l.advance()
	}
	return "", types.NewError(types.CodeGrammar, start, "unterminated string literal")
}

func (l *Lexer) lexNumber() (types.Expr, error) {
	start := l.pos()
	begin := l.off
	if l.peek() == '-' {
		l.advance()
	}
	if l.eof() || !isDigit(l.peek()) {
		return types.Expr{}, l.errorf("malformed number")
	}
	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}
	kind := types.ExprInt
	if !l.eof() && l.peek() == '.' {
		l.advance()
		if l.eof() || !isDigit(l.peek()) {
			return types.Expr{}, l.errorf("malformed number")
		}
		for !l.eof() && isDigit(l.peek()) {
			l.advance()
		}
		kind = types.ExprFloat
	}
	if !l.eof() && isIdentPart(l.peek()) {
		return types.Expr{}, l.errorf("malformed number")
	}
	return types.Expr{Kind: kind, Raw: l.src[begin:l.off], Pos: start}, nil
}

// lexBraced reads a balanced { ... } expression and returns its trimmed body.
// String literals inside are skipped so braces in them do not count.
func (l *Lexer) lexBraced() (string, error) {
	start := l.pos()
	l.advance() // {
	begin := l.off
	depth := 1
	for !l.eof() {
		switch l.peek() {
		case '"':
			if _, err := l.lexString(); err != nil {
				return "", err
			}
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				body := l.src[begin:l.off]
				l.advance()
				return strings.TrimSpace(body), nil
			}
		}
		l.advance()
	}
	return "", types.NewError(types.CodeGrammar, start, "unterminated '{' in attribute value")
}

func (l *Lexer) lexIdent() (string, bool) {
	if l.eof() || !isIdentStart(l.peek()) {
		return "", false
	}
	begin := l.off
	for !l.eof() && isIdentPart(l.peek()) {
		l.advance()
	}
	return l.src[begin:l.off], true
}

// --- scanning helpers ---

func (l *Lexer) eof() bool {
	return l.off >= len(l.src)
}

func (l *Lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	return r
}

func (l *Lexer) advance() {
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) skipSpace() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) pos() types.Pos {
	return types.Pos{Line: l.line, Column: l.col, Offset: l.off}
}

func (l *Lexer) errorf(format string, args ...any) *types.Error {
	return types.NewError(types.CodeGrammar, l.pos(), format, args...)
}

// snippet returns a short excerpt at the cursor for error messages.
func (l *Lexer) snippet() string {
	rest := l.src[l.off:]
	if i := strings.IndexAny(rest, " \t\r\n"); i >= 0 {
		rest = rest[:i]
	}
	if utf8.RuneCountInString(rest) > 16 {
		rest = string([]rune(rest)[:16]) + "..."
	}
	return rest
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '-'
}
