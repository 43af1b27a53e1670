// Package rewrite implements the rule set and saturation runner: named
// (searcher, applier) rules, the built-in algebraic axioms,
// library-derived gate rules, and the phase-separated fixpoint loop
// that drives an e-graph to saturation (or a budget limit).
package rewrite

import (
	"fmt"

	"github.com/latticecell/synthmap/pkg/egraph"
	"github.com/latticecell/synthmap/pkg/pattern"
)

// AnchoredMatch is one match found by a Searcher: Anchor is the e-class
// the rule's applier result will be merged with, and Subst is the
// variable binding that produced the match.
type AnchoredMatch struct {
	Anchor egraph.ClassID
	Subst  pattern.Subst
}

// Searcher finds every match of a rule's left-hand side in an e-graph.
// Both single patterns and multi-patterns implement this interface via
// the adapters below, so Rule does not need to distinguish them.
type Searcher interface {
	Search(g *egraph.Graph) []AnchoredMatch
}

// single adapts a *pattern.Pattern into a Searcher: the anchor of each
// match is the class the pattern's own root matched.
type single struct {
	p *pattern.Pattern
}

func (s single) Search(g *egraph.Graph) []AnchoredMatch {
	matches := s.p.Search(g)
	out := make([]AnchoredMatch, len(matches))
	for i, m := range matches {
		out[i] = AnchoredMatch{Anchor: m.Class, Subst: m.Subst}
	}
	return out
}

// SingleSearcher wraps p as a Searcher whose anchor is the pattern's own
// match class.
func SingleSearcher(p *pattern.Pattern) Searcher {
	return single{p: p}
}

// multi adapts a *pattern.MultiPattern into a Searcher: the anchor of
// each match is whichever anchor leg is named anchorVar. This is how a
// cross-structural rule like inline-let-and anchors on the `and`
// occurrence rather than the `let` it references.
type multi struct {
	mp        *pattern.MultiPattern
	anchorVar string
}

func (s multi) Search(g *egraph.Graph) []AnchoredMatch {
	substs := s.mp.Search(g)
	out := make([]AnchoredMatch, 0, len(substs))
	for _, subst := range substs {
		anchor, ok := subst[s.anchorVar]
		if !ok {
			continue
		}
		out = append(out, AnchoredMatch{Anchor: anchor, Subst: subst})
	}
	return out
}

// MultiSearcher wraps mp as a Searcher anchored on the leg named
// anchorVar.
func MultiSearcher(mp *pattern.MultiPattern, anchorVar string) Searcher {
	return multi{mp: mp, anchorVar: anchorVar}
}

// Rule is a named (searcher, applier) pair. Applying a rule's match
// instantiates its Applier under the match's substitution and merges
// the result with the match's anchor class.
type Rule struct {
	Name    string
	Search  Searcher
	Applier *Applier
}

// pendingApply is the per-rule, per-match unit of work the saturation
// loop performs once all searches for an iteration have completed.
type pendingApply struct {
	rule   string
	anchor egraph.ClassID
	subst  pattern.Subst
}

// ErrUnboundVariable reports an applier referencing a pattern variable
// the match never bound — a programming-contract failure, fatal rather
// than recoverable.
type ErrUnboundVariable struct {
	Rule     string
	Variable string
}

func (e *ErrUnboundVariable) Error() string {
	return fmt.Sprintf("rewrite: rule %q applier references unbound variable ?%s", e.Rule, e.Variable)
}
