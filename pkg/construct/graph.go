// Package construct is the opaque construction and inspection API
// collaborators use to drive the engine: plain Go methods on an opaque
// handle pair. Callers never see e-graph internals, only NodeID values
// bound to the Graph that produced them.
package construct

import (
	"errors"

	"github.com/latticecell/synthmap/pkg/egraph"
	"github.com/latticecell/synthmap/pkg/langterm"
)

// ErrCrossGraph reports that a NodeID produced by one Graph was passed
// to a build call on a different Graph — a programming-contract
// violation, always fatal.
var ErrCrossGraph = errors.New("construct: node id belongs to a different graph")

// Graph is the opaque handle collaborators build expressions into. It
// wraps an e-graph; NodeID values it hands out are only ever valid
// against the Graph that produced them.
type Graph struct {
	eg *egraph.Graph
}

// NewEGraph returns a fresh, empty graph.
func NewEGraph() *Graph {
	return &Graph{eg: egraph.New()}
}

// EGraph exposes the underlying e-graph, for collaborators (pkg/synth)
// that need to hand it to the rewrite runner or extractor. Construction
// callers never need this.
func (g *Graph) EGraph() *egraph.Graph {
	return g.eg
}

// NodeID is an opaque reference to a node bound to the Graph that built
// it. Its zero value is never valid.
type NodeID struct {
	graph *Graph
	class egraph.ClassID
}

// Class returns the e-class id a NodeID is bound to. Only pkg/synth,
// which orchestrates the e-graph directly, needs this; ordinary
// collaborators should treat NodeID as opaque.
func (n NodeID) Class() egraph.ClassID {
	return n.class
}

// Wrap binds an e-class id already present in g as a NodeID, for
// collaborators that loaded an expression wholesale via
// g.EGraph().AddExpr (e.g. a CLI parsing a whole s-expression from the
// command line) instead of the statement-by-statement Build* calls.
func (g *Graph) Wrap(class egraph.ClassID) NodeID {
	return NodeID{graph: g, class: class}
}

func (g *Graph) own(ids ...NodeID) error {
	for _, id := range ids {
		if id.graph != g {
			return ErrCrossGraph
		}
	}
	return nil
}

func (g *Graph) add(n egraph.ENode) NodeID {
	return NodeID{graph: g, class: g.eg.Add(n)}
}

// BuildSymbol returns a node id for the wire/variable reference name.
func (g *Graph) BuildSymbol(name string) NodeID {
	return g.add(egraph.ENode{Kind: langterm.Symbol, Name: name})
}

// BuildNum returns a node id for the Boolean literal v.
func (g *Graph) BuildNum(v int32) NodeID {
	return g.add(egraph.ENode{Kind: langterm.Num, Num: v})
}

// BuildAnd returns a node id for the conjunction of lhs and rhs. Both
// must have been built against g.
func (g *Graph) BuildAnd(lhs, rhs NodeID) (NodeID, error) {
	if err := g.own(lhs, rhs); err != nil {
		return NodeID{}, err
	}
	return g.add(egraph.ENode{Kind: langterm.And, Children: []egraph.ClassID{lhs.class, rhs.class}}), nil
}

// BuildOr returns a node id for the disjunction of lhs and rhs.
func (g *Graph) BuildOr(lhs, rhs NodeID) (NodeID, error) {
	if err := g.own(lhs, rhs); err != nil {
		return NodeID{}, err
	}
	return g.add(egraph.ENode{Kind: langterm.Or, Children: []egraph.ClassID{lhs.class, rhs.class}}), nil
}

// BuildNot returns a node id for the negation of expr.
func (g *Graph) BuildNot(expr NodeID) (NodeID, error) {
	if err := g.own(expr); err != nil {
		return NodeID{}, err
	}
	return g.add(egraph.ENode{Kind: langterm.Not, Children: []egraph.ClassID{expr.class}}), nil
}

// BuildLet returns a node id for a let-binding of the symbol name to
// expr. name must itself be a symbol node built against g (typically via
// BuildSymbol).
func (g *Graph) BuildLet(name, expr NodeID) (NodeID, error) {
	if err := g.own(name, expr); err != nil {
		return NodeID{}, err
	}
	return g.add(egraph.ENode{Kind: langterm.Let, Children: []egraph.ClassID{name.class, expr.class}}), nil
}

// BuildInput returns a node id for a gate's input pin descriptor: port
// must be a symbol node naming the port, driver the expression driving
// it.
func (g *Graph) BuildInput(port, driver NodeID) (NodeID, error) {
	if err := g.own(port, driver); err != nil {
		return NodeID{}, err
	}
	return g.add(egraph.ENode{Kind: langterm.Input, Children: []egraph.ClassID{port.class, driver.class}}), nil
}

// BuildOutput returns a node id for a gate's output pin descriptor.
func (g *Graph) BuildOutput(port NodeID) (NodeID, error) {
	if err := g.own(port); err != nil {
		return NodeID{}, err
	}
	return g.add(egraph.ENode{Kind: langterm.Output, Children: []egraph.ClassID{port.class}}), nil
}

// BuildGate returns a node id instantiating the library cell named name,
// wired to the given ordered pin ids (Input/Output nodes built via
// BuildInput/BuildOutput).
func (g *Graph) BuildGate(name string, pins []NodeID) (NodeID, error) {
	if err := g.own(pins...); err != nil {
		return NodeID{}, err
	}
	classes := make([]egraph.ClassID, len(pins))
	for i, p := range pins {
		classes[i] = p.class
	}
	return g.add(egraph.ENode{Kind: langterm.Gate, Name: name, Children: classes}), nil
}

// ModuleBuilder accumulates statements into a Module node for sequential
// module construction.
type ModuleBuilder struct {
	g     *Graph
	stmts []NodeID
}

// NewModuleBuilder returns an empty ModuleBuilder bound to g.
func (g *Graph) NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{g: g}
}

// Append adds stmt as the next statement. stmt must have been built
// against the same Graph as the builder.
func (m *ModuleBuilder) Append(stmt NodeID) error {
	if err := m.g.own(stmt); err != nil {
		return err
	}
	m.stmts = append(m.stmts, stmt)
	return nil
}

// Build returns a node id for the Module containing every appended
// statement, in append order.
func (m *ModuleBuilder) Build() NodeID {
	classes := make([]egraph.ClassID, len(m.stmts))
	for i, s := range m.stmts {
		classes[i] = s.class
	}
	return m.g.add(egraph.ENode{Kind: langterm.Module, Children: classes})
}
