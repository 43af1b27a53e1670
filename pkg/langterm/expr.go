package langterm

import "github.com/latticecell/synthmap/internal/ids"

// Expr is a standalone acyclic DAG of nodes, addressed by dense local
// ids. Its root is always the last node added, so construction is
// bottom-up: build every sub-expression before the node that references
// it, and the final call produces the whole result.
type Expr struct {
	alloc ids.Allocator
	nodes []Node
}

// NewExpr returns an empty expression DAG.
func NewExpr() *Expr {
	return &Expr{}
}

func (e *Expr) push(n Node) NodeID {
	id := e.alloc.Next()
	e.nodes = append(e.nodes, n)
	return id
}

// Len returns the number of nodes in the DAG.
func (e *Expr) Len() int { return len(e.nodes) }

// Root returns the id of the most recently added node, or ids.Invalid if
// the expression is empty.
func (e *Expr) Root() NodeID {
	if len(e.nodes) == 0 {
		return ids.Invalid
	}
	return NodeID(len(e.nodes) - 1)
}

// Node returns the node stored at id. It panics on an out-of-range id,
// since mixing ids across expressions is a programming-contract error
// that should fail loudly rather than silently misbehave.
func (e *Expr) Node(id NodeID) Node {
	return e.nodes[id]
}

// Kind reports the kind of the node at id; a convenience wrapper used
// heavily by callers that only care about the node's kind (e.g. the
// inspection interface in pkg/construct).
func (e *Expr) Kind(id NodeID) Kind {
	return e.nodes[id].Kind
}

// AddModule appends a Module node wrapping the given statement ids, in
// order, and returns its id.
func (e *Expr) AddModule(stmts []NodeID) NodeID {
	cs := append([]NodeID(nil), stmts...)
	return e.push(Node{Kind: Module, Children: cs})
}

// AddLet appends a Let node. name must be the id of a Symbol node
// previously added to this same Expr.
func (e *Expr) AddLet(name, body NodeID) NodeID {
	return e.push(Node{Kind: Let, Children: []NodeID{name, body}})
}

// AddAnd appends an And node over a, b.
func (e *Expr) AddAnd(a, b NodeID) NodeID {
	return e.push(Node{Kind: And, Children: []NodeID{a, b}})
}

// AddOr appends an Or node over a, b.
func (e *Expr) AddOr(a, b NodeID) NodeID {
	return e.push(Node{Kind: Or, Children: []NodeID{a, b}})
}

// AddNot appends a Not node over a.
func (e *Expr) AddNot(a NodeID) NodeID {
	return e.push(Node{Kind: Not, Children: []NodeID{a}})
}

// AddNum appends a Num literal node.
func (e *Expr) AddNum(v int32) NodeID {
	return e.push(Node{Kind: Num, Num: v})
}

// AddSymbol appends a Symbol node referencing the interned string name.
func (e *Expr) AddSymbol(name string) NodeID {
	return e.push(Node{Kind: Symbol, Name: name})
}

// AddVar appends a pattern-variable node named name (without its leading
// '?'). Only meaningful inside a pattern; see pkg/pattern.
func (e *Expr) AddVar(name string) NodeID {
	return e.push(Node{Kind: Var, Name: name})
}

// AddGate appends a Gate node instantiating the library cell named name,
// wired to the given ordered pin ids (Input/Output nodes).
func (e *Expr) AddGate(name string, pins []NodeID) NodeID {
	cs := append([]NodeID(nil), pins...)
	return e.push(Node{Kind: Gate, Name: name, Children: cs})
}

// AddInput appends an Input pin descriptor. port must be the id of a
// Symbol node naming the port (e.g. "A"); driver is the expression that
// drives it.
func (e *Expr) AddInput(port, driver NodeID) NodeID {
	return e.push(Node{Kind: Input, Children: []NodeID{port, driver}})
}

// AddOutput appends an Output pin descriptor. port must be the id of a
// Symbol node naming the port (e.g. "Y").
func (e *Expr) AddOutput(port NodeID) NodeID {
	return e.push(Node{Kind: Output, Children: []NodeID{port}})
}

// PortName returns the port symbol name of an Input or Output node,
// looking through its Symbol child. It panics if id is not an Input or
// Output node — a programming-contract violation.
func (e *Expr) PortName(id NodeID) string {
	n := e.nodes[id]
	switch n.Kind {
	case Input, Output:
		return e.nodes[n.Children[0]].Name
	default:
		panic("langterm: PortName called on non-pin node kind " + n.Kind.String())
	}
}

// Driver returns the driver sub-expression id of an Input node. It
// panics if id is not an Input node.
func (e *Expr) Driver(id NodeID) NodeID {
	n := e.nodes[id]
	if n.Kind != Input {
		panic("langterm: Driver called on non-Input node kind " + n.Kind.String())
	}
	return n.Children[1]
}

// CopySubtree deep-copies the subtree rooted at root into a fresh Expr,
// preserving internal sharing (a node reachable through two different
// paths is copied once and referenced twice in the result, just as it was
// in the source). The returned Expr's root is the copy of root.
func (e *Expr) CopySubtree(root NodeID) *Expr {
	out := NewExpr()
	memo := make(map[NodeID]NodeID, e.Len())
	var walk func(NodeID) NodeID
	walk = func(id NodeID) NodeID {
		if nid, ok := memo[id]; ok {
			return nid
		}
		n := e.nodes[id]
		cs := make([]NodeID, len(n.Children))
		for i, c := range n.Children {
			cs[i] = walk(c)
		}
		nid := out.push(Node{Kind: n.Kind, Children: cs, Num: n.Num, Name: n.Name})
		memo[id] = nid
		return nid
	}
	walk(root)
	return out
}

// Clone deep-copies the whole expression, preserving its root.
func (e *Expr) Clone() *Expr {
	if len(e.nodes) == 0 {
		return NewExpr()
	}
	return e.CopySubtree(e.Root())
}
