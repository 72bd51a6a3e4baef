package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MoveOnly marks attribute values that must not be duplicated. The bag never
// hands them out through Get or Peek; Take is the only way to obtain one, and
// it removes the entry in the same step.
type MoveOnly interface {
	MoveOnly()
}

// Bag is a type-erased attribute store keyed by attribute name. It performs
// no locking; a single consumer is expected to drain it.
type Bag struct {
	values map[string]any
}

// NewBag creates an empty Bag.
func NewBag() *Bag {
	return &Bag{values: make(map[string]any)}
}

// Set inserts or overwrites the value stored under name.
func (b *Bag) Set(name string, value any) {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	b.values[name] = value
}

// Contains reports whether an entry exists under name, whatever its type.
func (b *Bag) Contains(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.values[name]
	return ok
}

// Peek returns the untyped value under name. Move-only values are reported
// as absent.
func (b *Bag) Peek(name string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[name]
	if !ok {
		return nil, false
	}
	if _, moveOnly := v.(MoveOnly); moveOnly {
		return nil, false
	}
	return v, true
}

// Len returns the number of entries, move-only ones included.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.values)
}

// Keys returns the entry names in sorted order.
func (b *Bag) Keys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON renders plain values as-is and move-only values as a
// placeholder naming their type.
func (b *Bag) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Describe())
}

// Describe returns a copy of the bag suitable for printing. Move-only values
// are replaced by a "<resource T>" string.
func (b *Bag) Describe() map[string]any {
	out := make(map[string]any, b.Len())
	if b == nil {
		return out
	}
	for k, v := range b.values {
		if _, moveOnly := v.(MoveOnly); moveOnly {
			out[k] = fmt.Sprintf("<resource %T>", v)
			continue
		}
		out[k] = v
	}
	return out
}

// Get returns the value stored under name if its dynamic type is V. A type
// mismatch is a miss, not an error. Move-only values are never returned.
func Get[V any](b *Bag, name string) (V, bool) {
	var zero V
	v, ok := b.Peek(name)
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Take removes the value stored under name and returns it, provided its
// dynamic type is V. On a miss the bag is left unchanged.
func Take[V any](b *Bag, name string) (V, bool) {
	var zero V
	if b == nil {
		return zero, false
	}
	v, ok := b.values[name]
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	if !ok {
		return zero, false
	}
	delete(b.values, name)
	return typed, true
}
