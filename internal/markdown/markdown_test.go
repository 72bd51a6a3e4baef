package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/htmllite-go/internal/compiler"
	"github.com/riverfjs/htmllite-go/internal/types"
)

func compileMarkdown(t *testing.T, md string) types.Sections {
	t.Helper()
	spans, err := compiler.Compile(Parse(md), compiler.Options{})
	require.NoError(t, err)
	return spans
}

func findSpan(spans types.Sections, text string) *types.Span {
	for i := range spans {
		if spans[i].Text == text {
			return &spans[i]
		}
	}
	return nil
}

func TestParse_Emphasis(t *testing.T) {
	words := Parse("**hello** *world*")
	require.Len(t, words, 7)
	assert.Equal(t, types.TagOpen{Name: "b"}, words[0])
	assert.Equal(t, types.Text{Value: "hello"}, words[1])
	assert.Equal(t, types.TagClose{Name: "b"}, words[2])
	assert.Equal(t, types.Text{Value: " "}, words[3])
	assert.Equal(t, types.TagOpen{Name: "i"}, words[4])
}

func TestParse_NestedEmphasis(t *testing.T) {
	spans := compileMarkdown(t, "**bold *both* bold**")
	both := findSpan(spans, "both")
	require.NotNil(t, both)
	assert.Equal(t, []string{"b", "i"}, both.Tags)
	assert.True(t, both.Bold())
	assert.True(t, both.Italic())
}

func TestParse_Link(t *testing.T) {
	spans := compileMarkdown(t, `see [docs](https://example.com "Docs")`)
	link := findSpan(spans, "docs")
	require.NotNil(t, link)
	assert.Equal(t, []string{TagLink}, link.Tags)

	href, ok := types.Get[string](link.Attrs, "href")
	require.True(t, ok)
	assert.Equal(t, "https://example.com", href)
	title, _ := types.Get[string](link.Attrs, "title")
	assert.Equal(t, "Docs", title)

	plain := findSpan(spans, "see ")
	require.NotNil(t, plain)
	assert.False(t, plain.Attrs.Contains("href"))
}

func TestParse_Heading(t *testing.T) {
	spans := compileMarkdown(t, "## Title\n\nbody")
	title := findSpan(spans, "Title")
	require.NotNil(t, title)
	assert.Equal(t, []string{TagHeading, "b"}, title.Tags)
	level, ok := types.Get[int](title.Attrs, "level")
	require.True(t, ok)
	assert.Equal(t, 2, level)

	assert.NotNil(t, findSpan(spans, "\n\n"))
	assert.NotNil(t, findSpan(spans, "body"))
}

func TestParse_CodeSpanAndStrike(t *testing.T) {
	spans := compileMarkdown(t, "run `go test` ~~never~~")
	code := findSpan(spans, "go test")
	require.NotNil(t, code)
	assert.Equal(t, []string{TagCode}, code.Tags)

	strike := findSpan(spans, "never")
	require.NotNil(t, strike)
	assert.Equal(t, []string{TagStrike}, strike.Tags)
}

func TestParse_FencedCode(t *testing.T) {
	spans := compileMarkdown(t, "```go\nfmt.Println(1)\n```\n")
	code := findSpan(spans, "fmt.Println(1)")
	require.NotNil(t, code)
	assert.Equal(t, []string{TagPre}, code.Tags)
	lang, _ := types.Get[string](code.Attrs, "lang")
	assert.Equal(t, "go", lang)
}

func TestParse_Lists(t *testing.T) {
	spans := compileMarkdown(t, "- one\n- two\n\n1. first\n2. second\n")
	assert.NotNil(t, findSpan(spans, "• "))
	assert.NotNil(t, findSpan(spans, "1. "))
	assert.NotNil(t, findSpan(spans, "2. "))
	assert.NotNil(t, findSpan(spans, "second"))
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
}
