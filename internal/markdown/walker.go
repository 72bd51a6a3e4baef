package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/riverfjs/htmllite-go/internal/types"
)

// Walker visits a goldmark AST and records the equivalent words.
type Walker struct {
	source []byte
	words  []types.Word

	// Block-level state
	blockCount int
	listStack  []int // -1 = unordered, otherwise next ordinal
	itemCount  []int
}

// NewWalker creates a Walker over source.
func NewWalker(source []byte) *Walker {
	return &Walker{
		source:    source,
		words:     make([]types.Word, 0),
		listStack: make([]int, 0),
		itemCount: make([]int, 0),
	}
}

// Words returns the recorded words.
func (w *Walker) Words() []types.Word {
	return w.words
}

// Walk visits one node.
func (w *Walker) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	// --- Inline elements ---
	case *ast.Text:
		if entering {
			value := string(n.Segment.Value(w.source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				value += "\n"
			}
			w.text(value)
		}

	case *ast.String:
		if entering {
			w.text(string(n.Value))
		}

	case *ast.CodeSpan:
		if entering {
			w.open(TagCode, nil)
			w.text(codeSpanText(n, w.source))
			w.close(TagCode)
			return ast.WalkSkipChildren, nil
		}

	case *ast.Emphasis:
		tag := types.TagItalic
		if n.Level == 2 {
			tag = types.TagBold
		}
		w.toggle(entering, tag, nil)

	case *east.Strikethrough:
		w.toggle(entering, TagStrike, nil)

	case *ast.Link:
		attrs := map[string]any{"href": string(n.Destination)}
		if len(n.Title) > 0 {
			attrs["title"] = string(n.Title)
		}
		w.toggle(entering, TagLink, attrs)

	case *ast.AutoLink:
		if entering {
			url := string(n.URL(w.source))
			w.open(TagLink, map[string]any{"href": url})
			w.text(url)
			w.close(TagLink)
			return ast.WalkSkipChildren, nil
		}

	case *ast.Image:
		w.toggle(entering, TagImage, map[string]any{"src": string(n.Destination)})

	case *east.TaskCheckBox:
		if entering {
			if n.IsChecked {
				w.text("[x] ")
			} else {
				w.text("[ ] ")
			}
		}

	// --- Block elements ---
	case *ast.Paragraph:
		if entering {
			if !firstInItem(n) {
				w.ensureBlockSpacing()
			}
		} else {
			w.blockCount++
		}

	case *ast.Heading:
		if entering {
			w.ensureBlockSpacing()
			w.open(TagHeading, map[string]any{"level": n.Level})
			w.open(types.TagBold, nil)
		} else {
			w.close(types.TagBold)
			w.close(TagHeading)
			w.blockCount++
		}

	case *ast.Blockquote:
		if entering {
			w.ensureBlockSpacing()
			w.open(TagBlockquote, nil)
		} else {
			w.close(TagBlockquote)
			w.blockCount++
		}

	case *ast.List:
		if entering {
			w.ensureBlockSpacing()
			next := -1
			if n.IsOrdered() {
				next = n.Start
			}
			w.listStack = append(w.listStack, next)
			w.itemCount = append(w.itemCount, 0)
		} else {
			w.listStack = w.listStack[:len(w.listStack)-1]
			w.itemCount = w.itemCount[:len(w.itemCount)-1]
			w.blockCount++
		}

	case *ast.ListItem:
		if entering {
			w.onStartItem()
		}

	case *ast.FencedCodeBlock:
		if entering {
			var attrs map[string]any
			if lang := string(n.Language(w.source)); lang != "" {
				attrs = map[string]any{"lang": lang}
			}
			w.codeBlock(n, attrs)
			return ast.WalkSkipChildren, nil
		}

	case *ast.CodeBlock:
		if entering {
			w.codeBlock(n, nil)
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			w.ensureBlockSpacing()
			w.text("————————")
			w.blockCount++
		}

	case *ast.HTMLBlock, *ast.RawHTML:
		// Raw HTML is not markup
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

func (w *Walker) onStartItem() {
	depth := len(w.listStack) - 1
	if depth < 0 {
		return
	}
	if w.itemCount[depth] > 0 {
		w.text("\n")
	}
	w.itemCount[depth]++

	indent := strings.Repeat("  ", depth)
	if next := w.listStack[depth]; next >= 0 {
		w.text(indent + strconv.Itoa(next) + ". ")
		w.listStack[depth] = next + 1
	} else {
		w.text(indent + "• ")
	}
}

func (w *Walker) codeBlock(n ast.Node, attrs map[string]any) {
	w.ensureBlockSpacing()
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
	w.open(TagPre, attrs)
	w.text(strings.TrimRight(sb.String(), "\n"))
	w.close(TagPre)
	w.blockCount++
}

// ensureBlockSpacing separates consecutive top-level blocks by a blank line.
func (w *Walker) ensureBlockSpacing() {
	if w.blockCount > 0 && len(w.listStack) == 0 {
		w.text("\n\n")
	} else if w.blockCount > 0 && len(w.listStack) > 0 {
		w.text("\n")
	}
	w.blockCount = 0
}

func (w *Walker) toggle(entering bool, tag string, attrs map[string]any) {
	if entering {
		w.open(tag, attrs)
	} else {
		w.close(tag)
	}
}

func (w *Walker) open(tag string, attrs map[string]any) {
	w.words = append(w.words, types.TagOpen{Name: tag, Attrs: attrs})
}

func (w *Walker) close(tag string) {
	w.words = append(w.words, types.TagClose{Name: tag})
}

func (w *Walker) text(value string) {
	if value == "" {
		return
	}
	w.words = append(w.words, types.Text{Value: value})
}

func firstInItem(n ast.Node) bool {
	_, ok := n.Parent().(*ast.ListItem)
	return ok && n.PreviousSibling() == nil
}

func codeSpanText(n *ast.CodeSpan, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}
