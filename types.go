package htmllite

import "github.com/riverfjs/htmllite-go/internal/types"

// Words
type (
	Word     = types.Word
	WordKind = types.WordKind
	Text     = types.Text
	TagOpen  = types.TagOpen
	TagClose = types.TagClose
	Pos      = types.Pos
	Expr     = types.Expr
	ExprKind = types.ExprKind
	Factory  = types.Factory
)

// Output
type (
	Span        = types.Span
	Sections    = types.Sections
	Bag         = types.Bag
	MoveOnly    = types.MoveOnly
	Handler     = types.Handler
	HandlerFunc = types.HandlerFunc
	Event       = types.Event
)

// Errors
type (
	Error     = types.Error
	ErrorCode = types.ErrorCode
)

const (
	WordText     = types.WordText
	WordTagOpen  = types.WordTagOpen
	WordTagClose = types.WordTagClose

	TagBold   = types.TagBold
	TagItalic = types.TagItalic
)

var (
	ErrGrammar             = types.ErrGrammar
	ErrUnterminatedInput   = types.ErrUnterminatedInput
	ErrUnresolvedReference = types.ErrUnresolvedReference
	ErrUnstartedTag        = types.ErrUnstartedTag
	ErrMismatchedTag       = types.ErrMismatchedTag
	ErrUnclosedTag         = types.ErrUnclosedTag
	ErrDuplicatedResource  = types.ErrDuplicatedResource
	ErrConfigLoad          = types.ErrConfigLoad
	ErrConfigParse         = types.ErrConfigParse
	ErrHandlerConsumed     = types.ErrHandlerConsumed
)

// NewBag creates an empty attribute bag.
func NewBag() *Bag { return types.NewBag() }

// NewHandler wraps fn as a move-only handler resource.
func NewHandler(name string, fn HandlerFunc) *Handler { return types.NewHandler(name, fn) }

// NewOneShotHandler wraps fn as a handler that fires at most once.
func NewOneShotHandler(name string, fn HandlerFunc) *Handler {
	return types.NewOneShotHandler(name, fn)
}

// CodeOf returns the error code carried by err, if any.
func CodeOf(err error) ErrorCode { return types.CodeOf(err) }
