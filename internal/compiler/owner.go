package compiler

import (
	"reflect"

	"github.com/riverfjs/htmllite-go/internal/types"
)

type (
	refKey   string
	frameKey struct {
		frame int
		name  string
	}
)

// claim records that the span being emitted now holds a move-only value that
// was not built for it. A value can be held by one span only; use a Factory
// to give every span its own.
func (c *Compiler) claim(name string, r resolved, pos types.Pos) error {
	key := c.resourceKey(name, r)
	if prev, taken := c.owned[key]; taken {
		return types.NewError(types.CodeDuplicatedResource, pos,
			"move-only %T in attribute %s already belongs to span %d", r.value, name, prev)
	}
	c.owned[key] = len(c.spans)
	return nil
}

// resourceKey identifies a move-only value. Comparable values are their own
// identity; anything else is identified by where it was supplied.
func (c *Compiler) resourceKey(name string, r resolved) any {
	if reflect.ValueOf(r.value).Comparable() {
		return r.value
	}
	if r.ref != "" {
		return refKey(r.ref)
	}
	owner, _ := c.stack.Owner(name)
	return frameKey{frame: owner.ID, name: name}
}

func isNilWord(w types.Word) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func wordPos(w types.Word) types.Pos {
	if isNilWord(w) {
		return types.Pos{}
	}
	return w.Position()
}
