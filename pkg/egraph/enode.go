// Package egraph implements the e-graph: e-classes, e-nodes, the
// union-find table, the hash-cons index, and the invariant-restoring
// rebuild operation. An e-graph owns every id it has ever allocated; it
// is never shrunk, only merged and (between mutations) temporarily
// incanonical.
package egraph

import (
	"strconv"
	"strings"

	"github.com/latticecell/synthmap/internal/ids"
	"github.com/latticecell/synthmap/pkg/langterm"
)

// ClassID addresses an e-class. Ids are dense in [0, N) for the owning
// Graph and stable only up to the next rebuild — callers that hold onto
// an id across a mutation must re-canonicalize through Find.
type ClassID = ids.ID

// ENode is a node kind together with the e-class ids of its children.
// Two e-nodes are structurally identical iff they have the same kind,
// name/literal payload, and child-class sequence, once the children
// have been canonicalized.
type ENode struct {
	Kind     langterm.Kind
	Children []ClassID
	Num      int32
	Name     string
}

// key returns a canonical string encoding used as the hash-cons index's
// map key. A string key (rather than a fixed-size array) is the simplest
// way to make a variable-arity node comparable in Go without reflection;
// it is only ever used as an internal map key, never surfaced to callers.
func (n ENode) key() string {
	var b strings.Builder
	b.WriteString(n.Kind.String())
	b.WriteByte('\x00')
	b.WriteString(n.Name)
	b.WriteByte('\x00')
	b.WriteString(strconv.Itoa(int(n.Num)))
	for _, c := range n.Children {
		b.WriteByte('\x00')
		b.WriteString(strconv.Itoa(int(c)))
	}
	return b.String()
}

// canonicalize returns a copy of n with every child replaced by its
// current union-find leader.
func (n ENode) canonicalize(g *Graph) ENode {
	if len(n.Children) == 0 {
		return n
	}
	out := n
	out.Children = make([]ClassID, len(n.Children))
	for i, c := range n.Children {
		out.Children[i] = g.Find(c)
	}
	return out
}
