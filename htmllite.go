// Package htmllite compiles a small HTML-like markup into an ordered list of
// text spans, each carrying the tags that enclose it and a snapshot of the
// attributes those tags define.
//
// Markup is a sequence of words:
//
//	{ "Hello there. " }
//	<i> { "I'm italic now! " } </i>
//	<b color = "#ff0000" click = { Observer(tada) }> { "You should click on me" } </b>
//
// Attributes resolve innermost-first and vanish when their tag closes. Values
// that must not be duplicated (such as handlers) are built once per span and
// can only leave a span's bag through Take.
//
// Main API:
//   - Compile(): markup text -> Sections
//   - CompileWords(): an already tokenized word stream -> Sections
//   - CompileMarkdown(): Markdown -> Sections
//   - Flatten(): Sections -> (plain text, UTF-16 entities)
//
// Example:
//
//	sections, err := htmllite.Compile(`<b> { "hi" } </b>`)
//	if err != nil {
//	    return err
//	}
//	for _, s := range sections {
//	    fmt.Println(s.Text, s.Bold())
//	}
package htmllite

import (
	"fmt"

	"github.com/riverfjs/htmllite-go/internal/compiler"
	"github.com/riverfjs/htmllite-go/internal/lexer"
	"github.com/riverfjs/htmllite-go/internal/logging"
	"github.com/riverfjs/htmllite-go/internal/markdown"
	"github.com/riverfjs/htmllite-go/internal/types"
)

// Tokenize splits markup into words without compiling them.
func Tokenize(markup string, opts ...Option) ([]Word, error) {
	options := applyOptions(opts...)
	return lexer.Tokenize(markup, options.lexerOptions())
}

// Compile tokenizes and compiles markup. The first error aborts the whole
// compilation; no partial result is returned.
func Compile(markup string, opts ...Option) (Sections, error) {
	options := applyOptions(opts...)
	done := logging.LogOperationStart(options.logger(), "compile")
	defer done()

	words, err := lexer.Tokenize(markup, options.lexerOptions())
	if err != nil {
		return nil, err
	}
	return compiler.Compile(words, options.compilerOptions())
}

// CompileWords compiles an already tokenized word stream.
func CompileWords(words []Word, opts ...Option) (Sections, error) {
	options := applyOptions(opts...)
	return compiler.Compile(words, options.compilerOptions())
}

// CompileMarkdown converts Markdown to words and compiles them. Emphasis maps
// to <b>/<i>, links to <a href=...>, and so on.
func CompileMarkdown(md string, opts ...Option) (Sections, error) {
	options := applyOptions(opts...)
	done := logging.LogOperationStart(options.logger(), "compile_markdown")
	defer done()

	return compiler.Compile(markdown.Parse(md), options.compilerOptions())
}

// MustCompile is like Compile but panics on error. It is meant for markup
// literals in code.
func MustCompile(markup string, opts ...Option) Sections {
	sections, err := Compile(markup, opts...)
	if err != nil {
		panic(fmt.Sprintf("htmllite: Compile(%q): %v", markup, err))
	}
	return sections
}

// Get returns the value stored under name if its dynamic type is V.
// Move-only values are never returned; use Take.
func Get[V any](b *Bag, name string) (V, bool) {
	return types.Get[V](b, name)
}

// Take removes and returns the value stored under name if its dynamic type
// is V. A second Take of the same name yields nothing.
func Take[V any](b *Bag, name string) (V, bool) {
	return types.Take[V](b, name)
}
