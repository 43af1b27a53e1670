// Package pattern implements the e-class-aware pattern matcher: single
// patterns, multi-patterns, and the substitutions they produce over an
// e-graph.
package pattern

import "github.com/latticecell/synthmap/pkg/egraph"

// Subst binds pattern-variable names (without the leading '?') to the
// e-class ids they matched. A Subst is immutable once returned by Search;
// callers that need to extend one (e.g. when combining multi-pattern
// sub-matches) should use Extend, which never mutates the receiver.
type Subst map[string]egraph.ClassID

// Extend returns a new Subst equal to s plus the given binding, or
// (s, false) if name is already bound in s to a different class — the
// two partial matches are inconsistent and must not be combined.
func (s Subst) Extend(name string, class egraph.ClassID) (Subst, bool) {
	if existing, ok := s[name]; ok {
		return s, existing == class
	}
	out := make(Subst, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[name] = class
	return out, true
}

// merge combines two substitutions, returning (nil, false) if they
// disagree on any shared variable.
func merge(a, b Subst) (Subst, bool) {
	out := make(Subst, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if existing, ok := out[k]; ok && existing != v {
			return nil, false
		}
		out[k] = v
	}
	return out, true
}
