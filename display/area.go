// Package display is a reference consumer of compiled spans. An Area turns
// spans into nodes the way a text UI would: it picks a font face from the
// reserved bold/italic tags, resolves colour and size attributes against
// configured defaults, and takes ownership of handler resources.
package display

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/rs/zerolog"

	"github.com/riverfjs/htmllite-go/internal/logging"
	"github.com/riverfjs/htmllite-go/internal/types"
)

var (
	// ErrNoNode is returned by Trigger for an out-of-range index.
	ErrNoNode = errors.New("no such node")
	// ErrNoHandler is returned by Trigger when the node has no handler for
	// the event.
	ErrNoHandler = errors.New("no handler for event")
)

// Node is one displayed span.
type Node struct {
	Text     string
	Tags     []string
	Font     string
	Bold     bool
	Italic   bool
	Color    color.RGBA
	FontSize float64

	handlers map[string]*types.Handler
}

// Handler returns the handler attached for event.
func (n *Node) Handler(event string) (*types.Handler, bool) {
	h, ok := n.handlers[event]
	return h, ok
}

// Events lists the events this node reacts to.
func (n *Node) Events() []string {
	events := make([]string, 0, len(n.handlers))
	for e := range n.handlers {
		events = append(events, e)
	}
	return events
}

// Area is a dialogue area: spans pushed into it become nodes until cleared.
type Area struct {
	cfg          *types.RenderConfig
	defaultColor color.RGBA
	nodes        []*Node
	log          zerolog.Logger
}

// NewArea creates an Area. A nil cfg uses the built-in defaults.
func NewArea(cfg *types.RenderConfig) (*Area, error) {
	if cfg == nil {
		cfg = types.DefaultRenderConfig()
	}
	c, err := ParseColor(cfg.DefaultTextColor)
	if err != nil {
		return nil, fmt.Errorf("default text colour: %w", err)
	}
	return &Area{
		cfg:          cfg,
		defaultColor: c,
		nodes:        make([]*Node, 0),
		log:          logging.GetLogger("display"),
	}, nil
}

// Push appends one node per span. Handler attributes are taken out of each
// span's bag, so pushing the same sections twice attaches no handlers the
// second time. Nothing is appended, and no handler is taken, if any span
// fails to convert.
func (a *Area) Push(sections types.Sections) error {
	nodes := make([]*Node, 0, len(sections))
	for i := range sections {
		node, err := a.node(&sections[i])
		if err != nil {
			return fmt.Errorf("span %d (%q): %w", i, sections[i].Text, err)
		}
		nodes = append(nodes, node)
	}
	for i, node := range nodes {
		a.takeHandlers(node, &sections[i])
	}
	a.nodes = append(a.nodes, nodes...)
	a.log.Debug().Int("pushed", len(nodes)).Int("total", len(a.nodes)).Msg("Pushed sections")
	return nil
}

// Clear removes every node.
func (a *Area) Clear() {
	a.nodes = a.nodes[:0]
	a.log.Debug().Msg("Cleared area")
}

// Nodes returns the current nodes.
func (a *Area) Nodes() []*Node {
	return a.nodes
}

// Trigger delivers event to the handler of node index.
func (a *Area) Trigger(index int, event string) error {
	if index < 0 || index >= len(a.nodes) {
		return fmt.Errorf("%w: %d", ErrNoNode, index)
	}
	node := a.nodes[index]
	h, ok := node.handlers[event]
	if !ok {
		return fmt.Errorf("%w: %s on node %d", ErrNoHandler, event, index)
	}
	return h.Call(types.Event{Kind: event, Index: index, Text: node.Text})
}

func (a *Area) node(span *types.Span) (*Node, error) {
	n := &Node{
		Text:     span.Text,
		Tags:     span.Tags,
		Bold:     span.Has(a.cfg.BoldTag),
		Italic:   span.Has(a.cfg.ItalicTag),
		Color:    a.defaultColor,
		FontSize: a.cfg.DefaultFontSize,
	}
	n.Font = a.font(n.Bold, n.Italic)

	if c, ok, err := spanColor(span.Attrs, a.cfg.ColorAttr); err != nil {
		return nil, err
	} else if ok {
		n.Color = c
	}
	if size, ok := spanFontSize(span.Attrs, a.cfg.FontSizeAttr); ok {
		n.FontSize = size
	}
	return n, nil
}

func (a *Area) takeHandlers(n *Node, span *types.Span) {
	for _, event := range a.cfg.HandlerAttrs {
		h, ok := types.Take[*types.Handler](span.Attrs, event)
		if !ok {
			continue
		}
		if n.handlers == nil {
			n.handlers = make(map[string]*types.Handler)
		}
		n.handlers[event] = h
	}
}

func (a *Area) font(bold, italic bool) string {
	switch {
	case bold && italic:
		return a.cfg.Fonts.BoldItalic
	case italic:
		return a.cfg.Fonts.Italic
	case bold:
		return a.cfg.Fonts.Bold
	default:
		return a.cfg.Fonts.Regular
	}
}

func spanColor(bag *types.Bag, attr string) (color.RGBA, bool, error) {
	if s, ok := types.Get[string](bag, attr); ok {
		c, err := ParseColor(s)
		if err != nil {
			return color.RGBA{}, false, err
		}
		return c, true, nil
	}
	if c, ok := types.Get[color.Color](bag, attr); ok {
		r, g, b, alpha := c.RGBA()
		return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(alpha >> 8)}, true, nil
	}
	return color.RGBA{}, false, nil
}

func spanFontSize(bag *types.Bag, attr string) (float64, bool) {
	if f, ok := types.Get[float64](bag, attr); ok {
		return f, true
	}
	if n, ok := types.Get[int](bag, attr); ok {
		return float64(n), true
	}
	return 0, false
}
