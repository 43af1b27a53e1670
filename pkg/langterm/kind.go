// Package langterm implements the term language: the node kinds of
// Boolean and gate expressions, acyclic expression DAGs built from them,
// and the s-expression grammar used to parse and print them. Everything
// here is pure data — no e-graph, no rewriting.
package langterm

// Kind distinguishes the node kinds of the term language. A Var node is
// not part of the term language proper; it represents a pattern
// variable (the "?name" extension searchers/appliers add on top of the
// base grammar) and only appears in patterns, never in a
// fully-instantiated expression.
type Kind int

const (
	// Module is the top-level statement container; child order is the
	// output ordering.
	Module Kind = iota
	// Let names a sub-expression. Children are [name, body]; name
	// references a Symbol node holding the binding name.
	Let
	// And is binary and commutative in semantics, not in node identity.
	And
	// Or is binary and commutative in semantics, not in node identity.
	Or
	// Not is unary negation.
	Not
	// Num is a Boolean literal (0/1 expected; other values are permitted
	// but semantically opaque).
	Num
	// Symbol is an interned wire/variable reference.
	Symbol
	// Gate is an instance of a library cell. Name holds the cell name;
	// Children holds the ordered pin list (Input/Output nodes).
	Gate
	// Input is a gate pin descriptor. Children is [port, driver]; port
	// references a Symbol node holding the port name.
	Input
	// Output is a gate pin descriptor with no driver. Children is
	// [port]; port references a Symbol node holding the port name.
	Output
	// Var is a pattern variable (the "?name" sigil). Name holds the
	// variable name without its leading '?'.
	Var
)

// String names a Kind for diagnostics and deterministic tie-breaking.
func (k Kind) String() string {
	switch k {
	case Module:
		return "Module"
	case Let:
		return "Let"
	case And:
		return "And"
	case Or:
		return "Or"
	case Not:
		return "Not"
	case Num:
		return "Num"
	case Symbol:
		return "Symbol"
	case Gate:
		return "Gate"
	case Input:
		return "Input"
	case Output:
		return "Output"
	case Var:
		return "Var"
	default:
		return "Kind(?)"
	}
}
