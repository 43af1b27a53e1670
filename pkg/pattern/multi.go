package pattern

import "github.com/latticecell/synthmap/pkg/egraph"

// Anchor names one leg of a multi-pattern: Var is the pattern variable
// that names the class the leg matches at (its "anchor" class), and
// Pattern is what must match there.
type Anchor struct {
	Var     string
	Pattern *Pattern
}

// MultiPattern is a list of anchors that must all hold simultaneously,
// with pattern variables shared across anchors required to agree. It is
// how rules that cross structural boundaries — e.g. relating a `let`
// anywhere in the graph to an unrelated `and` anywhere else — are
// expressed.
type MultiPattern struct {
	Anchors []Anchor
}

// NewMulti builds a MultiPattern from the given anchors.
func NewMulti(anchors ...Anchor) *MultiPattern {
	return &MultiPattern{Anchors: anchors}
}

// Search enumerates every consistent combination of matches across all
// anchors. Each anchor's own pattern variables, plus its own Var bound to
// the class it matched, are merged into one substitution per combination;
// combinations whose merges disagree are discarded rather than reported.
func (mp *MultiPattern) Search(g *egraph.Graph) []Subst {
	if len(mp.Anchors) == 0 {
		return nil
	}
	combos := []Subst{{}}
	for _, a := range mp.Anchors {
		var next []Subst
		for _, class := range g.Classes() {
			legSubsts := a.Pattern.SearchInClass(g, class)
			for _, legSubst := range legSubsts {
				withAnchor, ok := legSubst.Extend(a.Var, class)
				if !ok {
					continue
				}
				for _, combo := range combos {
					merged, ok := merge(combo, withAnchor)
					if !ok {
						continue
					}
					next = append(next, merged)
				}
			}
		}
		combos = next
		if len(combos) == 0 {
			return nil
		}
	}
	return dedupe(combos)
}

func dedupe(substs []Subst) []Subst {
	seen := make(map[string]bool, len(substs))
	var out []Subst
	for _, s := range substs {
		k := substKey(s)
		if !seen[k] {
			seen[k] = true
			out = append(out, s)
		}
	}
	return out
}
