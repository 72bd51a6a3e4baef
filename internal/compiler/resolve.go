package compiler

import (
	"strconv"
	"strings"

	"github.com/riverfjs/htmllite-go/internal/types"
)

// resolver materializes raw attribute values into the values stored in a
// span's bag. It runs once per span so factories produce a fresh value for
// every span.
type resolver struct {
	refs      map[string]any
	factories map[string]types.Factory
}

func newResolver(refs map[string]any, factories map[string]types.Factory) *resolver {
	return &resolver{refs: refs, factories: factories}
}

// resolved is a materialized attribute value and where it came from.
type resolved struct {
	value any
	// fresh is set when the value was built for this span alone.
	fresh bool
	// ref names the reference the value was looked up under, if any.
	ref string
}

func (r *resolver) resolve(name string, value any) (resolved, error) {
	switch v := value.(type) {
	case types.Expr:
		return r.resolveExpr(name, v)
	case types.Factory:
		return r.call(name, v, nil, types.Pos{})
	case func() any:
		return resolved{value: v(), fresh: true}, nil
	default:
		return resolved{value: v}, nil
	}
}

func (r *resolver) resolveExpr(name string, e types.Expr) (resolved, error) {
	switch e.Kind {
	case types.ExprString:
		return resolved{value: e.Raw, fresh: true}, nil
	case types.ExprInt:
		n, err := strconv.Atoi(e.Raw)
		if err != nil {
			return resolved{}, &types.Error{Code: types.CodeGrammar, Pos: e.Pos, Message: "integer out of range for " + name, Wrapped: err}
		}
		return resolved{value: n, fresh: true}, nil
	case types.ExprFloat:
		f, err := strconv.ParseFloat(e.Raw, 64)
		if err != nil {
			return resolved{}, &types.Error{Code: types.CodeGrammar, Pos: e.Pos, Message: "bad float for " + name, Wrapped: err}
		}
		return resolved{value: f, fresh: true}, nil
	case types.ExprRef:
		return r.lookupRef(name, e.Raw, e.Pos)
	case types.ExprInline:
		callee, args, ok := parseCall(e.Raw)
		if !ok {
			return resolved{}, types.NewError(types.CodeGrammar, e.Pos, "cannot parse inline value %q for %s", e.Raw, name)
		}
		if f, ok := r.factories[callee]; ok {
			return r.call(name, f, args, e.Pos)
		}
		if args == nil {
			return r.lookupRef(name, callee, e.Pos)
		}
		return resolved{}, types.NewError(types.CodeUnresolvedReference, e.Pos, "no factory %q for attribute %s", callee, name)
	}
	return resolved{}, types.NewError(types.CodeGrammar, e.Pos, "unknown value kind %s", e.Kind)
}

func (r *resolver) lookupRef(name, ref string, pos types.Pos) (resolved, error) {
	v, ok := r.refs[ref]
	if !ok {
		return resolved{}, types.NewError(types.CodeUnresolvedReference, pos, "unknown reference %q for attribute %s", ref, name)
	}
	// A factory behind a reference still yields one value per span.
	if f, ok := v.(types.Factory); ok {
		return r.call(name, f, nil, pos)
	}
	return resolved{value: v, ref: ref}, nil
}

func (r *resolver) call(name string, f types.Factory, args []string, pos types.Pos) (resolved, error) {
	v, err := f(args)
	if err != nil {
		return resolved{}, &types.Error{Code: types.CodeUnresolvedReference, Pos: pos, Message: "factory failed for attribute " + name, Wrapped: err}
	}
	return resolved{value: v, fresh: true}, nil
}

// parseCall splits `name` or `name(a, "b", c)` into the callee and its
// arguments. String arguments lose their quotes. args is nil when there are
// no parentheses.
func parseCall(src string) (string, []string, bool) {
	src = strings.TrimSpace(src)
	open := strings.IndexByte(src, '(')
	if open < 0 {
		if !isIdent(src) {
			return "", nil, false
		}
		return src, nil, true
	}
	callee := strings.TrimSpace(src[:open])
	if !isIdent(callee) || !strings.HasSuffix(src, ")") {
		return "", nil, false
	}
	body := src[open+1 : len(src)-1]
	args := make([]string, 0)
	if strings.TrimSpace(body) == "" {
		return callee, args, true
	}
	for _, part := range splitArgs(body) {
		part = strings.TrimSpace(part)
		if len(part) >= 2 && part[0] == '"' && part[len(part)-1] == '"' {
			part = part[1 : len(part)-1]
		}
		args = append(args, part)
	}
	return callee, args, true
}

// splitArgs splits on top-level commas, ignoring commas inside quotes or
// nested brackets.
func splitArgs(s string) []string {
	var parts []string
	depth := 0
	inString := false
	last := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inString = !inString
		case inString:
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c == '.' && i > 0:
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		case c == '-' && i > 0:
		default:
			return false
		}
	}
	return true
}
