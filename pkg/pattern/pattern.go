package pattern

import (
	"sort"
	"strconv"
	"strings"

	"github.com/latticecell/synthmap/pkg/egraph"
	"github.com/latticecell/synthmap/pkg/langterm"
)

// Pattern is a term, possibly containing Var nodes, matched against an
// e-graph. It owns its own *langterm.Expr so a pattern can be built with
// the same parser and builders as any other term.
type Pattern struct {
	expr *langterm.Expr
	root langterm.NodeID
}

// New wraps expr's term rooted at root as a pattern.
func New(expr *langterm.Expr, root langterm.NodeID) *Pattern {
	return &Pattern{expr: expr, root: root}
}

// Parse parses src as a pattern, accepting the '?var' syntax anywhere a
// term is expected.
func Parse(src string) (*Pattern, error) {
	e, err := langterm.Parse(src)
	if err != nil {
		return nil, err
	}
	return New(e, e.Root()), nil
}

// Match is one way the pattern was found to hold: Class is the e-class the
// pattern's root matched, and Subst is the binding of pattern variables
// that made it so.
type Match struct {
	Class egraph.ClassID
	Subst Subst
}

// Search enumerates every match of the pattern anywhere in g, one Match
// per (root class, substitution) pair. It is total: every matching class
// and every distinct substitution for that class is reported exactly
// once.
func (p *Pattern) Search(g *egraph.Graph) []Match {
	var out []Match
	for _, class := range g.Classes() {
		for _, s := range p.SearchInClass(g, class) {
			out = append(out, Match{Class: class, Subst: s})
		}
	}
	return out
}

// SearchInClass enumerates every substitution that matches the pattern
// against the given e-class specifically, deduplicated.
func (p *Pattern) SearchInClass(g *egraph.Graph, class egraph.ClassID) []Subst {
	var out []Subst
	seen := make(map[string]bool)
	for _, s := range p.matchNode(g, p.root, g.Find(class), Subst{}) {
		key := substKey(s)
		if !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}

// matchNode attempts to match the pattern subtree rooted at patID against
// class, given the bindings accumulated so far, returning every consistent
// extension. A Var pattern node matches any class, binding the variable;
// any other node kind must find a structurally compatible e-node in the
// class's node list, in which case the match recurses into children
// pairwise, taking the cross product of per-child matches.
func (p *Pattern) matchNode(g *egraph.Graph, patID langterm.NodeID, class egraph.ClassID, s Subst) []Subst {
	n := p.expr.Node(patID)

	if n.Kind == langterm.Var {
		if bound, ok := s[n.Name]; ok {
			if bound == class {
				return []Subst{s}
			}
			return nil
		}
		extended, ok := s.Extend(n.Name, class)
		if !ok {
			return nil
		}
		return []Subst{extended}
	}

	var out []Subst
	for _, enode := range g.IterClass(class) {
		if !compatible(n, enode) {
			continue
		}
		out = append(out, p.matchChildren(g, n.Children, enode.Children, s)...)
	}
	return out
}

// compatible reports whether a pattern node and an e-node could possibly
// match: same kind, same literal payload, same arity. Children are
// checked separately since each may bind differently across e-nodes in
// the class.
func compatible(pat langterm.Node, enode egraph.ENode) bool {
	if pat.Kind != enode.Kind {
		return false
	}
	if len(pat.Children) != len(enode.Children) {
		return false
	}
	switch pat.Kind {
	case langterm.Symbol, langterm.Gate:
		return pat.Name == enode.Name
	case langterm.Num:
		return pat.Num == enode.Num
	default:
		return true
	}
}

// matchChildren matches pattern children against e-node children
// positionally, threading the substitution through so later children see
// bindings made by earlier ones, and taking the cross product of
// per-position ambiguity.
func (p *Pattern) matchChildren(g *egraph.Graph, patChildren []langterm.NodeID, classChildren []egraph.ClassID, s Subst) []Subst {
	if len(patChildren) == 0 {
		return []Subst{s}
	}
	heads := p.matchNode(g, patChildren[0], g.Find(classChildren[0]), s)
	if len(heads) == 0 {
		return nil
	}
	var out []Subst
	for _, head := range heads {
		out = append(out, p.matchChildren(g, patChildren[1:], classChildren[1:], head)...)
	}
	return out
}

// substKey returns a deterministic, order-independent string encoding of
// a Subst, used only to deduplicate matches; it is never exposed to
// callers.
func substKey(s Subst) string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(int(s[n])))
		b.WriteByte(';')
	}
	return b.String()
}
