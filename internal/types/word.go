package types

import "fmt"

// Pos is a line/column location in the markup source. Line and Column are
// 1-based; the zero Pos means "unknown" (words built by hand).
type Pos struct {
	Line   int
	Column int
	Offset int
}

// IsValid reports whether the position was recorded by the lexer.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// WordKind identifies the shape of a Word.
type WordKind int

const (
	WordText WordKind = iota
	WordTagOpen
	WordTagClose
)

func (k WordKind) String() string {
	switch k {
	case WordText:
		return "text"
	case WordTagOpen:
		return "tag_open"
	case WordTagClose:
		return "tag_close"
	default:
		return "unknown"
	}
}

// Word is one classified unit of the input stream.
type Word interface {
	Kind() WordKind
	Position() Pos
}

// Text is a literal value to be rendered.
type Text struct {
	Value string
	Pos   Pos
}

func (Text) Kind() WordKind { return WordText }
func (t Text) Position() Pos { return t.Pos }
func (t Text) String() string { return fmt.Sprintf("{%q}", t.Value) }

// TagOpen begins a scope. Attribute values are opaque: an Expr captured by
// the lexer, a Factory, or any caller supplied value.
type TagOpen struct {
	Name  string
	Attrs map[string]any
	Pos   Pos
}

func (TagOpen) Kind() WordKind { return WordTagOpen }
func (t TagOpen) Position() Pos { return t.Pos }
func (t TagOpen) String() string {
	return fmt.Sprintf("<%s %d attrs>", t.Name, len(t.Attrs))
}

// TagClose ends the innermost open scope.
type TagClose struct {
	Name string
	Pos  Pos
}

func (TagClose) Kind() WordKind { return WordTagClose }
func (t TagClose) Position() Pos { return t.Pos }
func (t TagClose) String() string { return fmt.Sprintf("</%s>", t.Name) }
