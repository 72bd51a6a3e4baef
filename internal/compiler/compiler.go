// Package compiler turns a word stream into an ordered list of spans. It
// drives a scope stack: tag opens push, tag closes pop, and every text word
// emits a span carrying the open tag names and the flattened attributes.
package compiler

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/riverfjs/htmllite-go/internal/logging"
	"github.com/riverfjs/htmllite-go/internal/scope"
	"github.com/riverfjs/htmllite-go/internal/types"
)

// State is the driver state.
type State int

const (
	// Ready means no tag is open.
	Ready State = iota
	// InScope means one or more tags are open.
	InScope
	// Failed is terminal; the first error is kept.
	Failed
	// Done is terminal success.
	Done
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case InScope:
		return "in_scope"
	case Failed:
		return "failed"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Options configures attribute resolution.
type Options struct {
	// Refs resolves identifier values such as `color = accent`.
	Refs map[string]any
	// Factories builds inline values such as `click = { Observer(tada) }`.
	Factories map[string]types.Factory
	// Logger overrides the component logger.
	Logger *zerolog.Logger
}

// Compiler is a single-use driver. Create one per compilation.
type Compiler struct {
	stack    *scope.Stack
	resolver *resolver
	state    State
	spans    types.Sections
	err      error
	log      zerolog.Logger

	// owned maps each move-only value that was handed in rather than built
	// per span to the index of the span holding it.
	owned map[any]int
	// fed counts the words accepted so far.
	fed int
}

// New creates a Compiler in the Ready state.
func New(opts Options) *Compiler {
	logger := logging.GetLogger("compiler")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Compiler{
		stack:    scope.New(),
		resolver: newResolver(opts.Refs, opts.Factories),
		state:    Ready,
		spans:    make(types.Sections, 0),
		log:      logger,
		owned:    make(map[any]int),
	}
}

// Compile runs a fresh Compiler over words.
func Compile(words []types.Word, opts Options) (types.Sections, error) {
	c := New(opts)
	start := time.Now()
	for _, w := range words {
		if err := c.Feed(w); err != nil {
			return nil, err
		}
	}
	spans, err := c.Finish()
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Int("words", len(words)).
		Int("spans", len(spans)).
		Dur("duration", time.Since(start)).
		Msg("Compiled word stream")
	return spans, nil
}

// State returns the current driver state.
func (c *Compiler) State() State {
	return c.state
}

// Depth returns the number of open tags.
func (c *Compiler) Depth() int {
	return c.stack.Depth()
}

// Feed processes one word.
func (c *Compiler) Feed(w types.Word) error {
	switch c.state {
	case Failed:
		return c.err
	case Done:
		return types.NewError(types.CodeGrammar, wordPos(w), "compiler already finished")
	}
	if isNilWord(w) {
		return c.fail(types.NewError(types.CodeGrammar, types.Pos{}, "nil word at index %d of the stream", c.fed))
	}
	c.fed++

	switch p := w.(type) {
	case *types.TagOpen:
		w = *p
	case *types.TagClose:
		w = *p
	case *types.Text:
		w = *p
	}

	switch w := w.(type) {
	case types.TagOpen:
		c.stack.Push(w.Name, w.Attrs, w.Pos)
		c.log.Trace().Str("tag", w.Name).Int("depth", c.stack.Depth()).Msg("push")
	case types.TagClose:
		if err := c.stack.Pop(w.Name, w.Pos); err != nil {
			return c.fail(err)
		}
		c.log.Trace().Str("tag", w.Name).Int("depth", c.stack.Depth()).Msg("pop")
	case types.Text:
		span, err := c.emit(w)
		if err != nil {
			return c.fail(err)
		}
		c.spans = append(c.spans, span)
	default:
		return c.fail(types.NewError(types.CodeGrammar, w.Position(), "unknown word kind %s", w.Kind()))
	}

	if c.stack.Depth() == 0 {
		c.state = Ready
	} else {
		c.state = InScope
	}
	return nil
}

// Finish ends the stream. It fails if tags are still open.
func (c *Compiler) Finish() (types.Sections, error) {
	switch c.state {
	case Failed:
		return nil, c.err
	case Done:
		return c.spans, nil
	}
	if top, ok := c.stack.Top(); ok {
		return nil, c.fail(types.NewError(types.CodeUnclosedTag, top.Pos,
			"input ended with %d open tag(s), innermost <%s>", c.stack.Depth(), top.Name))
	}
	c.state = Done
	return c.spans, nil
}

func (c *Compiler) emit(w types.Text) (types.Span, error) {
	span := types.NewSpan(w.Value, c.stack.Tags())
	attrs := c.stack.Attributes()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r, err := c.resolver.resolve(name, attrs[name])
		if err != nil {
			return types.Span{}, err
		}
		if _, ok := r.value.(types.MoveOnly); ok && !r.fresh {
			if err := c.claim(name, r, w.Pos); err != nil {
				return types.Span{}, err
			}
		}
		span.Attrs.Set(name, r.value)
	}
	return span, nil
}

func (c *Compiler) fail(err error) error {
	c.state = Failed
	c.err = err
	c.log.Debug().Err(err).Int("depth", c.stack.Depth()).Msg("Compilation failed")
	return err
}
