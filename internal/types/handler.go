package types

import "errors"

// ErrHandlerConsumed is returned when a one-shot handler is called twice.
var ErrHandlerConsumed = errors.New("handler already consumed")

// Event is delivered to a Handler by the consumer that owns it.
type Event struct {
	Kind  string
	Index int
	Text  string
}

// HandlerFunc is the callback carried by a Handler.
type HandlerFunc func(Event) error

// Handler is a callback resource attached to spans through attributes such
// as click or over. It is move-only: it lives in exactly one bag until a
// consumer takes it.
type Handler struct {
	Name    string
	fn      HandlerFunc
	oneShot bool
	fired   bool
}

// NewHandler wraps fn as a reusable handler resource.
func NewHandler(name string, fn HandlerFunc) *Handler {
	return &Handler{Name: name, fn: fn}
}

// NewOneShotHandler wraps fn so it may fire only once.
func NewOneShotHandler(name string, fn HandlerFunc) *Handler {
	return &Handler{Name: name, fn: fn, oneShot: true}
}

// MoveOnly implements MoveOnly.
func (*Handler) MoveOnly() {}

// Call invokes the callback.
func (h *Handler) Call(ev Event) error {
	if h.oneShot && h.fired {
		return ErrHandlerConsumed
	}
	h.fired = true
	if h.fn == nil {
		return nil
	}
	return h.fn(ev)
}

// Fired reports whether Call has run at least once.
func (h *Handler) Fired() bool {
	return h.fired
}
