package rewrite

import (
	"github.com/latticecell/synthmap/pkg/egraph"
	"github.com/latticecell/synthmap/pkg/langterm"
	"github.com/latticecell/synthmap/pkg/pattern"
)

// Applier is a term template, possibly referencing pattern variables,
// that a rule instantiates against a match's substitution to produce a
// new e-node sequence in the e-graph. The last instantiated node — the
// template's root — is what gets merged with the match's anchor class.
type Applier struct {
	expr *langterm.Expr
	root langterm.NodeID
}

// NewApplier wraps expr's term rooted at root as an applier template.
func NewApplier(expr *langterm.Expr, root langterm.NodeID) *Applier {
	return &Applier{expr: expr, root: root}
}

// ParseApplier parses src as an applier template.
func ParseApplier(src string) (*Applier, error) {
	e, err := langterm.Parse(src)
	if err != nil {
		return nil, err
	}
	return NewApplier(e, e.Root()), nil
}

// Apply instantiates the template under subst, adding any new e-nodes to
// g, and returns the class of the instantiated root. A Var node whose
// name is absent from subst is a programming-contract violation and
// panics via ErrUnboundVariable, carrying the owning rule's name for
// diagnosis.
func (a *Applier) Apply(g *egraph.Graph, ruleName string, subst pattern.Subst) egraph.ClassID {
	memo := make(map[langterm.NodeID]egraph.ClassID, a.expr.Len())
	var walk func(langterm.NodeID) egraph.ClassID
	walk = func(id langterm.NodeID) egraph.ClassID {
		if cid, ok := memo[id]; ok {
			return cid
		}
		n := a.expr.Node(id)
		if n.Kind == langterm.Var {
			cls, ok := subst[n.Name]
			if !ok {
				panic(&ErrUnboundVariable{Rule: ruleName, Variable: n.Name})
			}
			memo[id] = cls
			return cls
		}
		children := make([]egraph.ClassID, len(n.Children))
		for i, c := range n.Children {
			children[i] = walk(c)
		}
		cid := g.Add(egraph.ENode{Kind: n.Kind, Children: children, Num: n.Num, Name: n.Name})
		memo[id] = cid
		return cid
	}
	return walk(a.root)
}
