package egraph

import (
	"errors"

	"github.com/latticecell/synthmap/internal/ids"
	"github.com/latticecell/synthmap/pkg/langterm"
)

// ErrUnboundClass is a programming-contract error: an operation was
// asked to act on a class id that does not belong to this graph (never
// allocated, or allocated by a different Graph instance).
var ErrUnboundClass = errors.New("egraph: class id does not belong to this graph")

// Justification records why a merge happened, for the explanation
// builder (Component F). Rule is a rewrite rule name, or the sentinel
// "congruence" for merges rebuild performs on its own to restore
// congruence closure rather than ones a rewrite rule requested. Subst is
// the pattern-variable substitution that produced the merge, present only
// for rule-driven merges.
type Justification struct {
	Rule  string
	Subst map[string]ClassID
	NodeA ENode
	NodeB ENode
}

// Recorder receives a Justification every time two classes merge. It is
// the seam pkg/explain hooks into; a Graph with no Recorder installed
// runs normally and simply skips the bookkeeping, so explanation
// storage is only paid for when a caller actually wants proofs.
type Recorder interface {
	Record(a, b ClassID, just Justification)
}

// hcEntry is the hash-cons index's value: the owning class together with
// the canonical node itself, so Rebuild can resynchronize EClass.Nodes
// from this authoritative table once congruence closure converges.
type hcEntry struct {
	class ClassID
	node  ENode
}

// Graph is the e-graph: a union-find over e-classes plus a hash-cons
// index over the e-nodes each class contains.
type Graph struct {
	alloc    ids.Allocator
	uf       []ClassID
	size     []int
	classes  []*EClass // nil at indices that have been merged away
	hashcons map[string]hcEntry
	worklist []ClassID
	live     int
	rec      Recorder
}

// New returns an empty e-graph.
func New() *Graph {
	return &Graph{hashcons: make(map[string]hcEntry)}
}

// EnableExplanations installs r so every future merge is recorded.
func (g *Graph) EnableExplanations(r Recorder) {
	g.rec = r
}

// Find returns the union-find leader of id, with path compression.
func (g *Graph) Find(id ClassID) ClassID {
	root := id
	for g.uf[root] != root {
		root = g.uf[root]
	}
	// Path compression.
	for g.uf[id] != root {
		next := g.uf[id]
		g.uf[id] = root
		id = next
	}
	return root
}

// valid reports whether id was ever allocated by this graph.
func (g *Graph) valid(id ClassID) bool {
	return id >= 0 && int(id) < len(g.uf)
}

// Add canonicalizes enode's children and either returns the id of an
// already-equivalent e-node's class, or allocates a fresh class holding
// it.
func (g *Graph) Add(n ENode) ClassID {
	canon := n.canonicalize(g)
	key := canon.key()
	if e, ok := g.hashcons[key]; ok {
		return e.class
	}

	id := g.alloc.Next()
	g.uf = append(g.uf, id)
	g.size = append(g.size, 1)
	ec := &EClass{ID: id, Nodes: []ENode{canon}}
	g.classes = append(g.classes, ec)
	g.live++
	g.hashcons[key] = hcEntry{class: id, node: canon}

	for _, c := range canon.Children {
		cl := g.classes[g.Find(c)]
		cl.Parents = append(cl.Parents, Parent{Node: canon, Class: id})
	}
	return id
}

// AddExpr recursively adds every node of expr reachable from root, in
// topological (children-first) order, and returns the root's class id.
// Shared sub-expressions (the same langterm.NodeID reached through two
// paths) are only added once, matching expr's own DAG sharing.
func (g *Graph) AddExpr(expr *langterm.Expr, root langterm.NodeID) ClassID {
	memo := make(map[langterm.NodeID]ClassID, expr.Len())
	var walk func(langterm.NodeID) ClassID
	walk = func(id langterm.NodeID) ClassID {
		if cid, ok := memo[id]; ok {
			return cid
		}
		n := expr.Node(id)
		children := make([]ClassID, len(n.Children))
		for i, c := range n.Children {
			children[i] = walk(c)
		}
		cid := g.Add(ENode{Kind: n.Kind, Children: children, Num: n.Num, Name: n.Name})
		memo[id] = cid
		return cid
	}
	return walk(root)
}

// Merge unions the classes containing a and b. The larger class (by
// union-find size) is chosen as the new leader. If a and b are already
// in the same class, no change is reported. just is forwarded to the
// installed Recorder, if any. Merge does not perform congruence closure
// itself; call Rebuild to batch that in.
func (g *Graph) Merge(a, b ClassID, just Justification) (ClassID, bool) {
	leader, changed := g.union(a, b)
	if changed && g.rec != nil {
		g.rec.Record(a, b, just)
	}
	return leader, changed
}

func (g *Graph) union(a, b ClassID) (ClassID, bool) {
	a, b = g.Find(a), g.Find(b)
	if a == b {
		return a, false
	}
	bigger, smaller := a, b
	if g.size[b] > g.size[a] {
		bigger, smaller = b, a
	}
	g.uf[smaller] = bigger
	g.size[bigger] += g.size[smaller]

	ecBig, ecSmall := g.classes[bigger], g.classes[smaller]
	ecBig.Nodes = append(ecBig.Nodes, ecSmall.Nodes...)
	ecBig.Parents = append(ecBig.Parents, ecSmall.Parents...)
	g.classes[smaller] = nil
	g.live--

	g.worklist = append(g.worklist, bigger)
	return bigger, true
}

// ClassCount returns the number of live e-classes.
func (g *Graph) ClassCount() int { return g.live }

// NodeCount returns the number of distinct canonical e-nodes currently
// indexed by the hash-cons table.
func (g *Graph) NodeCount() int { return len(g.hashcons) }

// TotalSize is an alias for NodeCount: both report the number of entries
// in the hash-cons index. Between a Merge and the next Rebuild that index
// can still hold entries whose children are not yet canonical.
func (g *Graph) TotalSize() int { return g.NodeCount() }

// IterClass returns the e-nodes belonging to the class id currently
// canonicalizes to. The returned slice is owned by the graph and must
// not be mutated by the caller.
func (g *Graph) IterClass(id ClassID) []ENode {
	return g.classes[g.Find(id)].Nodes
}

// Parents returns the parent back-references of the class id
// canonicalizes to.
func (g *Graph) Parents(id ClassID) []Parent {
	return g.classes[g.Find(id)].Parents
}

// Classes returns every currently live class id, one per e-class, in
// ascending order — a deterministic enumeration used by the pattern
// matcher.
func (g *Graph) Classes() []ClassID {
	out := make([]ClassID, 0, g.live)
	for i, ec := range g.classes {
		if ec != nil {
			out = append(out, ClassID(i))
		}
	}
	return out
}
