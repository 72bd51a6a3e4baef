package types

// Reserved presentation tags. The compiler treats them like any other tag;
// only consumers give them meaning.
const (
	TagBold   = "b"
	TagItalic = "i"
)

// Span is one compiled unit of text plus the tags enclosing it (outermost
// first) and the flattened attribute snapshot taken when it was emitted.
type Span struct {
	Text  string   `json:"text" yaml:"text"`
	Tags  []string `json:"tags" yaml:"tags"`
	Attrs *Bag     `json:"attributes" yaml:"-"`
}

// NewSpan creates a span with an empty bag.
func NewSpan(text string, tags []string) Span {
	return Span{Text: text, Tags: tags, Attrs: NewBag()}
}

// Has reports whether tag encloses the span.
func (s Span) Has(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Bold reports whether the span sits inside a <b> tag.
func (s Span) Bold() bool { return s.Has(TagBold) }

// Italic reports whether the span sits inside an <i> tag.
func (s Span) Italic() bool { return s.Has(TagItalic) }

// Depth returns the number of enclosing tags.
func (s Span) Depth() int { return len(s.Tags) }

// Sections is the ordered output of one compilation.
type Sections []Span

// Texts returns the text of every span in order.
func (s Sections) Texts() []string {
	out := make([]string, len(s))
	for i, sp := range s {
		out[i] = sp.Text
	}
	return out
}

// String concatenates the span texts.
func (s Sections) String() string {
	n := 0
	for _, sp := range s {
		n += len(sp.Text)
	}
	buf := make([]byte, 0, n)
	for _, sp := range s {
		buf = append(buf, sp.Text...)
	}
	return string(buf)
}
