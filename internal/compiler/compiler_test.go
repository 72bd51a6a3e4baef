package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/htmllite-go/internal/lexer"
	"github.com/riverfjs/htmllite-go/internal/types"
)

func compileSrc(t *testing.T, src string, opts Options) (types.Sections, error) {
	t.Helper()
	words, err := lexer.Tokenize(src, lexer.Options{})
	require.NoError(t, err)
	return Compile(words, opts)
}

func open(name string, attrs map[string]any) types.TagOpen {
	return types.TagOpen{Name: name, Attrs: attrs}
}

func text(v string) types.Text { return types.Text{Value: v} }

func closeTag(name string) types.TagClose { return types.TagClose{Name: name} }

func TestCompile_Empty(t *testing.T) {
	spans, err := Compile(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestCompile_TagsOutermostFirst(t *testing.T) {
	spans, err := Compile([]types.Word{
		text("a"),
		open("x", nil),
		text("b"),
		open("y", nil),
		open("x", nil),
		text("c"),
		closeTag("x"),
		closeTag("y"),
		text("d"),
		closeTag("x"),
		text("e"),
	}, Options{})
	require.NoError(t, err)
	require.Len(t, spans, 5)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, spans.Texts())
	assert.Empty(t, spans[0].Tags)
	assert.Equal(t, []string{"x"}, spans[1].Tags)
	assert.Equal(t, []string{"x", "y", "x"}, spans[2].Tags)
	assert.Equal(t, []string{"x"}, spans[3].Tags)
	assert.Empty(t, spans[4].Tags)
}

func TestCompile_InnermostWins(t *testing.T) {
	spans, err := compileSrc(t, `<a x="1"> <b x="2"> {"t"} </b> </a>`, Options{})
	require.NoError(t, err)
	require.Len(t, spans, 1)

	x, ok := types.Get[string](spans[0].Attrs, "x")
	require.True(t, ok)
	assert.Equal(t, "2", x)
}

func TestCompile_NoSiblingLeak(t *testing.T) {
	spans, err := compileSrc(t, `<a x="1"> {"t1"} <b x="2" y="only-b"> {"t2"} </b> {"t3"} <c> {"t4"} </c> </a>`, Options{})
	require.NoError(t, err)
	require.Len(t, spans, 4)

	want := []string{"1", "2", "1", "1"}
	for i, span := range spans {
		x, ok := types.Get[string](span.Attrs, "x")
		require.True(t, ok, span.Text)
		assert.Equal(t, want[i], x, span.Text)
	}
	assert.True(t, spans[1].Attrs.Contains("y"))
	assert.False(t, spans[2].Attrs.Contains("y"))
	assert.False(t, spans[3].Attrs.Contains("y"))
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		words []types.Word
		want  error
	}{
		{"mismatched", []types.Word{open("a", nil), text("t"), closeTag("b")}, types.ErrMismatchedTag},
		{"unstarted", []types.Word{closeTag("a")}, types.ErrUnstartedTag},
		{"unclosed", []types.Word{open("a", nil), text("t")}, types.ErrUnclosedTag},
		{"crossing", []types.Word{open("a", nil), open("b", nil), closeTag("a"), closeTag("b")}, types.ErrMismatchedTag},
		{"nil word", []types.Word{nil}, types.ErrGrammar},
		{"nil tag open", []types.Word{(*types.TagOpen)(nil)}, types.ErrGrammar},
		{"nil tag close", []types.Word{open("a", nil), (*types.TagClose)(nil)}, types.ErrGrammar},
		{"nil text", []types.Word{text("t"), (*types.Text)(nil)}, types.ErrGrammar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, err := Compile(tt.words, Options{})
			assert.Nil(t, spans)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompiler_StateMachine(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, Ready, c.State())

	require.NoError(t, c.Feed(open("a", nil)))
	assert.Equal(t, InScope, c.State())
	assert.Equal(t, 1, c.Depth())

	require.NoError(t, c.Feed(text("t")))
	assert.Equal(t, InScope, c.State())

	require.NoError(t, c.Feed(closeTag("a")))
	assert.Equal(t, Ready, c.State())

	err := c.Feed(closeTag("a"))
	assert.ErrorIs(t, err, types.ErrUnstartedTag)
	assert.Equal(t, Failed, c.State())

	// Failed is terminal and keeps the first error.
	err = c.Feed(text("more"))
	assert.ErrorIs(t, err, types.ErrUnstartedTag)
	_, err = c.Finish()
	assert.ErrorIs(t, err, types.ErrUnstartedTag)
}

func TestCompiler_FinishIsTerminal(t *testing.T) {
	c := New(Options{})
	require.NoError(t, c.Feed(text("t")))
	spans, err := c.Finish()
	require.NoError(t, err)
	assert.Len(t, spans, 1)
	assert.Equal(t, Done, c.State())

	assert.Error(t, c.Feed(text("late")))
}

func TestCompile_PointerWords(t *testing.T) {
	spans, err := Compile([]types.Word{
		&types.TagOpen{Name: "a"},
		&types.Text{Value: "t"},
		&types.TagClose{Name: "a"},
	}, Options{})
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, []string{"a"}, spans[0].Tags)
}

func TestCompile_ValueKinds(t *testing.T) {
	spans, err := compileSrc(t, `<a s="str" n=12 f=1.5 r=accent> {"t"} </a>`, Options{
		Refs: map[string]any{"accent": "#00ff00"},
	})
	require.NoError(t, err)
	bag := spans[0].Attrs

	s, ok := types.Get[string](bag, "s")
	assert.True(t, ok)
	assert.Equal(t, "str", s)

	n, ok := types.Get[int](bag, "n")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	f, ok := types.Get[float64](bag, "f")
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	r, ok := types.Get[string](bag, "r")
	assert.True(t, ok)
	assert.Equal(t, "#00ff00", r)

	// Type mismatch is a miss.
	_, ok = types.Get[string](bag, "n")
	assert.False(t, ok)
}

func TestCompile_UnresolvedReference(t *testing.T) {
	_, err := compileSrc(t, `<a r=missing> {"t"} </a>`, Options{})
	assert.ErrorIs(t, err, types.ErrUnresolvedReference)

	_, err = compileSrc(t, `<a r={ Observer(x) }> {"t"} </a>`, Options{})
	assert.ErrorIs(t, err, types.ErrUnresolvedReference)
}

func TestCompile_UnusedAttributesAreNotResolved(t *testing.T) {
	// No text inside the tag means nothing is materialized.
	spans, err := compileSrc(t, `<a r=missing> </a>`, Options{})
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestCompile_FactoryRunsPerSpan(t *testing.T) {
	calls := 0
	factories := map[string]types.Factory{
		"Observer": func(args []string) (any, error) {
			calls++
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return types.NewHandler(name, nil), nil
		},
	}
	spans, err := compileSrc(t, `<b click={ Observer(tada, "x") }> {"one"} {"two"} </b>`, Options{Factories: factories})
	require.NoError(t, err)
	require.Len(t, spans, 2)
	assert.Equal(t, 2, calls)

	h1, ok := types.Take[*types.Handler](spans[0].Attrs, "click")
	require.True(t, ok)
	h2, ok := types.Take[*types.Handler](spans[1].Attrs, "click")
	require.True(t, ok)
	assert.NotSame(t, h1, h2)
	assert.Equal(t, "tada", h1.Name)
}

func TestCompile_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	factories := map[string]types.Factory{
		"Broken": func([]string) (any, error) { return nil, boom },
	}
	_, err := compileSrc(t, `<a v={Broken()}> {"t"} </a>`, Options{Factories: factories})
	assert.ErrorIs(t, err, types.ErrUnresolvedReference)
	assert.ErrorIs(t, err, boom)
}

func TestCompile_DirectFactoryValue(t *testing.T) {
	var f types.Factory = func([]string) (any, error) {
		return types.NewHandler("direct", nil), nil
	}
	spans, err := Compile([]types.Word{
		open("b", map[string]any{"click": f}),
		text("one"),
		text("two"),
		closeTag("b"),
	}, Options{})
	require.NoError(t, err)

	h1, ok1 := types.Take[*types.Handler](spans[0].Attrs, "click")
	h2, ok2 := types.Take[*types.Handler](spans[1].Attrs, "click")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.NotSame(t, h1, h2)
}

func TestParseCall(t *testing.T) {
	tests := []struct {
		src    string
		callee string
		args   []string
		ok     bool
	}{
		{"tada", "tada", nil, true},
		{"Observer()", "Observer", []string{}, true},
		{`Observer(tada, "a, b")`, "Observer", []string{"tada", "a, b"}, true},
		{"Observer::new(tada)", "", nil, false},
		{"f(g(1, 2), 3)", "f", []string{"g(1, 2)", "3"}, true},
		{"1abc", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			callee, args, ok := parseCall(tt.src)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.callee, callee)
			assert.Equal(t, tt.args, args)
		})
	}
}

// moveOnlyBox is a move-only value that cannot be used as a map key.
type moveOnlyBox struct {
	ids []int
}

func (moveOnlyBox) MoveOnly() {}

func TestCompile_SuppliedResourceHeldByOneSpan(t *testing.T) {
	h := types.NewOneShotHandler("tada", nil)

	spans, err := compileSrc(t, `<b click = h> {"one"} </b> {"two"}`, Options{
		Refs: map[string]any{"h": h},
	})
	require.NoError(t, err)
	require.Len(t, spans, 2)

	got, ok := types.Take[*types.Handler](spans[0].Attrs, "click")
	require.True(t, ok)
	assert.Same(t, h, got)
	assert.False(t, spans[1].Attrs.Contains("click"))
}

func TestCompile_DuplicatedResource(t *testing.T) {
	h := types.NewOneShotHandler("tada", nil)

	tests := []struct {
		name  string
		words []types.Word
		refs  map[string]any
	}{
		{
			name:  "ref shared by two spans in one scope",
			words: []types.Word{open("b", map[string]any{"click": types.Expr{Kind: types.ExprRef, Raw: "h"}}), text("one"), text("two"), closeTag("b")},
			refs:  map[string]any{"h": h},
		},
		{
			name: "ref used by two tags",
			words: []types.Word{
				open("b", map[string]any{"click": types.Expr{Kind: types.ExprRef, Raw: "h"}}), text("one"), closeTag("b"),
				open("i", map[string]any{"over": types.Expr{Kind: types.ExprInline, Raw: "h"}}), text("two"), closeTag("i"),
			},
			refs: map[string]any{"h": h},
		},
		{
			name:  "raw value in tag attributes",
			words: []types.Word{open("b", map[string]any{"click": h}), text("one"), text("two"), closeTag("b")},
		},
		{
			name:  "same value under two names",
			words: []types.Word{open("b", map[string]any{"click": h, "over": h}), text("one"), closeTag("b")},
		},
		{
			name:  "non-comparable value",
			words: []types.Word{open("b", map[string]any{"box": moveOnlyBox{ids: []int{1}}}), text("one"), text("two"), closeTag("b")},
		},
		{
			name: "non-comparable ref",
			words: []types.Word{
				open("b", map[string]any{"box": types.Expr{Kind: types.ExprRef, Raw: "box"}}), text("one"), closeTag("b"),
				open("i", map[string]any{"box": types.Expr{Kind: types.ExprRef, Raw: "box"}}), text("two"), closeTag("i"),
			},
			refs: map[string]any{"box": moveOnlyBox{ids: []int{1}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, err := Compile(tt.words, Options{Refs: tt.refs})
			assert.Nil(t, spans)
			assert.ErrorIs(t, err, types.ErrDuplicatedResource)
		})
	}
}

func TestCompile_NonComparableResourcePerTag(t *testing.T) {
	// Two tags each supplying their own value is not a duplicate.
	spans, err := Compile([]types.Word{
		open("b", map[string]any{"box": moveOnlyBox{ids: []int{1}}}), text("one"), closeTag("b"),
		open("b", map[string]any{"box": moveOnlyBox{ids: []int{2}}}), text("two"), closeTag("b"),
	}, Options{})
	require.NoError(t, err)
	require.Len(t, spans, 2)

	first, ok := types.Take[moveOnlyBox](spans[0].Attrs, "box")
	require.True(t, ok)
	second, ok := types.Take[moveOnlyBox](spans[1].Attrs, "box")
	require.True(t, ok)
	assert.Equal(t, []int{1}, first.ids)
	assert.Equal(t, []int{2}, second.ids)
}

func TestCompile_FactoryResourcesAreNotDuplicates(t *testing.T) {
	spans, err := compileSrc(t, `<b click = { Observer(tada) }> {"one"} {"two"} </b>`, Options{
		Factories: map[string]types.Factory{
			"Observer": func(args []string) (any, error) {
				return types.NewOneShotHandler(args[0], nil), nil
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, spans, 2)

	a, ok := types.Take[*types.Handler](spans[0].Attrs, "click")
	require.True(t, ok)
	b, ok := types.Take[*types.Handler](spans[1].Attrs, "click")
	require.True(t, ok)
	assert.NotSame(t, a, b)
}
