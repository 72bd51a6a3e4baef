package types

// ExprKind is the syntactic category of an attribute value as written in
// markup.
type ExprKind int

const (
	ExprString ExprKind = iota
	ExprInt
	ExprFloat
	ExprRef
	ExprInline
)

func (k ExprKind) String() string {
	switch k {
	case ExprString:
		return "string"
	case ExprInt:
		return "int"
	case ExprFloat:
		return "float"
	case ExprRef:
		return "ref"
	case ExprInline:
		return "inline"
	default:
		return "unknown"
	}
}

// Expr is an attribute value captured by the lexer but not evaluated. Raw
// holds the literal contents (string without quotes, number text, identifier,
// or the trimmed body of a braced expression).
type Expr struct {
	Kind ExprKind
	Raw  string
	Pos  Pos
}

// Factory builds a fresh attribute value. The compiler calls it once per
// emitted span, so each span owns its own instance.
type Factory func(args []string) (any, error)
