// Package markdown turns Markdown into a markup word stream, so Markdown
// documents compile to the same spans as hand-written markup.
//
//	**bold**      -> <b> ... </b>
//	*italic*      -> <i> ... </i>
//	~~strike~~    -> <s> ... </s>
//	`code`        -> <code> ... </code>
//	[text](url)   -> <a href=url> ... </a>
//	# Heading     -> <h level=1><b> ... </b></h>
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/htmllite-go/internal/types"
)

// StandardOptions goldmark extensions enabled for parsing.
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM, // tables, strikethrough, task lists, autolinks
	),
}

// Tags emitted for Markdown constructs.
const (
	TagStrike     = "s"
	TagCode       = "code"
	TagLink       = "a"
	TagImage      = "img"
	TagHeading    = "h"
	TagBlockquote = "blockquote"
	TagPre        = "pre"
)

// Parse converts markdown into words. The result is always well nested.
func Parse(markdown string) []types.Word {
	source := []byte(markdown)
	md := goldmark.New(StandardOptions...)
	node := md.Parser().Parse(text.NewReader(source))

	w := NewWalker(source)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return w.Walk(n, entering)
	})
	return w.Words()
}

// ParseAST only parses markdown, without walking it.
func ParseAST(markdown string) ast.Node {
	md := goldmark.New(StandardOptions...)
	return md.Parser().Parse(text.NewReader([]byte(markdown)))
}
