package display

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Renderer turns nodes into terminal text.
type Renderer struct {
	r *lipgloss.Renderer
}

// NewRenderer creates a Renderer for w. The colour profile is detected from
// w by lipgloss.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{r: lipgloss.NewRenderer(w)}
}

// NewPlainRenderer creates a Renderer that emits no escape sequences.
func NewPlainRenderer() *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return &Renderer{r: r}
}

// SetColorProfile overrides the detected profile.
func (r *Renderer) SetColorProfile(p termenv.Profile) {
	r.r.SetColorProfile(p)
}

// Render concatenates the styled text of every node.
func (r *Renderer) Render(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		style := r.r.NewStyle().
			Bold(n.Bold).
			Italic(n.Italic).
			Foreground(lipgloss.Color(Hex(n.Color)))
		sb.WriteString(renderPreservingNewlines(style, n.Text))
	}
	return sb.String()
}

// renderPreservingNewlines styles each line on its own; lipgloss would
// otherwise pad multi-line text into a block.
func renderPreservingNewlines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// ColorEnabled reports whether f is a terminal that should receive colour.
// NO_COLOR disables colour regardless.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
