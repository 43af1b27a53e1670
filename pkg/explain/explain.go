// Package explain implements the explanation builder: it records, as
// first-class data, why each merge happened, and reconstructs a flat
// equivalence proof between two classes on demand.
package explain

import (
	"fmt"

	"github.com/latticecell/synthmap/pkg/egraph"
)

// Step is one edge of a reconstructed proof: From and To are the two
// classes a single merge unified, Rule names the rule that caused it (or
// "congruence" for a rebuild-driven merge), and NodeA/NodeB are the
// concrete e-nodes recorded at the time, offered as illustrative evidence
// of the merge rather than as a thread of one literal term rewritten
// end-to-end.
type Step struct {
	From  egraph.ClassID
	To    egraph.ClassID
	Rule  string
	NodeA egraph.ENode
	NodeB egraph.ENode
}

// ErrNotEquivalent is returned when a proof is requested between two
// classes the e-graph has never merged.
type ErrNotEquivalent struct {
	A, B egraph.ClassID
}

func (e *ErrNotEquivalent) Error() string {
	return fmt.Sprintf("explain: classes %d and %d are not proven equivalent", e.A, e.B)
}

// ErrProofNotFound is returned when two classes are equivalent (their
// union-find leaders agree) but no recorded chain of justifications
// connects them — e.g. because explanations were enabled only partway
// through a run.
type ErrProofNotFound struct {
	A, B egraph.ClassID
}

func (e *ErrProofNotFound) Error() string {
	return fmt.Sprintf("explain: no recorded proof connects classes %d and %d", e.A, e.B)
}

type logEntry struct {
	other egraph.ClassID
	just  egraph.Justification
}

// Builder implements egraph.Recorder, logging every merge it is told
// about, and answers equivalence-proof queries over that log. A Builder
// never mutates the e-graph it observes.
type Builder struct {
	adjacency map[egraph.ClassID][]logEntry
}

// NewBuilder returns an empty explanation log. Install it on a graph with
// (*egraph.Graph).EnableExplanations before running any rewrites whose
// provenance should be explainable.
func NewBuilder() *Builder {
	return &Builder{adjacency: make(map[egraph.ClassID][]logEntry)}
}

// Record implements egraph.Recorder.
func (b *Builder) Record(a, c egraph.ClassID, just egraph.Justification) {
	b.adjacency[a] = append(b.adjacency[a], logEntry{other: c, just: just})
	b.adjacency[c] = append(b.adjacency[c], logEntry{other: a, just: just})
}

// Explain reconstructs a flat proof that a and b are equivalent in g: an
// ordered sequence of Steps, each one recorded merge, connecting a to b.
// It rejects the query if g does not currently consider a and b
// equivalent, and errors if they are equivalent but the log (e.g. because
// explanations were not enabled throughout) contains no connecting chain.
// Some proof is returned, not necessarily the shortest one.
func (b *Builder) Explain(g *egraph.Graph, a, to egraph.ClassID) ([]Step, error) {
	if g.Find(a) != g.Find(to) {
		return nil, &ErrNotEquivalent{A: a, B: to}
	}
	if a == to {
		return nil, nil
	}

	type frame struct {
		class egraph.ClassID
		path  []Step
	}
	visited := map[egraph.ClassID]bool{a: true}
	queue := []frame{{class: a}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, edge := range b.adjacency[cur.class] {
			if visited[edge.other] {
				continue
			}
			visited[edge.other] = true
			step := Step{
				From:  cur.class,
				To:    edge.other,
				Rule:  edge.just.Rule,
				NodeA: edge.just.NodeA,
				NodeB: edge.just.NodeB,
			}
			path := append(append([]Step(nil), cur.path...), step)
			if edge.other == to {
				return path, nil
			}
			queue = append(queue, frame{class: edge.other, path: path})
		}
	}
	return nil, &ErrProofNotFound{A: a, B: to}
}
