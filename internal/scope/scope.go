// Package scope tracks the nesting of open tags while a word stream is
// compiled. Each open tag is one frame holding its name and its own
// attributes; the flattened view resolves names innermost-first.
package scope

import (
	"github.com/riverfjs/htmllite-go/internal/types"
)

// Frame is the context contributed by one open tag.
type Frame struct {
	// ID is unique among the frames pushed on one Stack.
	ID    int
	Name  string
	Attrs map[string]any
	Pos   types.Pos
}

// Stack is a stack of frames, index 0 outermost. The zero value is ready to
// use.
type Stack struct {
	frames []Frame
	serial int

	// flat caches the flattened attributes; nil when stale.
	flat map[string]any
}

// New creates an empty Stack.
func New() *Stack {
	return &Stack{frames: make([]Frame, 0, 8)}
}

// Push opens a scope. attrs may be nil or empty; a frame is pushed either
// way so names and attributes stay in lockstep.
func (s *Stack) Push(name string, attrs map[string]any, pos types.Pos) {
	s.serial++
	s.frames = append(s.frames, Frame{ID: s.serial, Name: name, Attrs: attrs, Pos: pos})
	if s.flat != nil {
		for k, v := range attrs {
			s.flat[k] = v
		}
	}
}

// Pop closes the innermost scope, which must be named name.
func (s *Stack) Pop(name string, pos types.Pos) error {
	if len(s.frames) == 0 {
		return types.NewError(types.CodeUnstartedTag, pos, "</%s> closes a tag that was never opened", name)
	}
	top := s.frames[len(s.frames)-1]
	if top.Name != name {
		return types.NewError(types.CodeMismatchedTag, pos, "</%s> does not match open <%s> at %s", name, top.Name, top.Pos)
	}
	s.frames[len(s.frames)-1] = Frame{}
	s.frames = s.frames[:len(s.frames)-1]
	// Attributes of the closed scope must disappear, not merely be shadowed,
	// so the cache is rebuilt from the remaining frames on next use.
	s.flat = nil
	return nil
}

// Depth returns the number of open scopes.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Top returns the innermost frame.
func (s *Stack) Top() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Tags returns a copy of the open tag names, outermost first.
func (s *Stack) Tags() []string {
	tags := make([]string, len(s.frames))
	for i, f := range s.frames {
		tags[i] = f.Name
	}
	return tags
}

// Attributes returns the flattened attribute view: frames are applied from
// outermost to innermost so a deeper definition of a name overwrites a
// shallower one. The returned map is a copy.
func (s *Stack) Attributes() map[string]any {
	if s.flat == nil {
		s.flat = make(map[string]any)
		for _, f := range s.frames {
			for k, v := range f.Attrs {
				s.flat[k] = v
			}
		}
	}
	out := make(map[string]any, len(s.flat))
	for k, v := range s.flat {
		out[k] = v
	}
	return out
}

// Owner returns the innermost frame that defines name, the one whose value
// the flattened view shows.
func (s *Stack) Owner(name string) (Frame, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].Attrs[name]; ok {
			return s.frames[i], true
		}
	}
	return Frame{}, false
}

// Frames returns a copy of the open frames, outermost first.
func (s *Stack) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Reset drops every frame.
func (s *Stack) Reset() {
	s.frames = s.frames[:0]
	s.flat = nil
}
