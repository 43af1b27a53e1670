package construct

import (
	"fmt"

	"github.com/latticecell/synthmap/pkg/langterm"
)

// Inspected wraps an already-extracted expression (the independent deep
// copy pkg/synth's Run returns) with a read-only query surface for
// walking it by structure. It never touches an e-graph.
type Inspected struct {
	expr *langterm.Expr
	root langterm.NodeID
}

// Inspect wraps expr's node at root for inspection.
func Inspect(expr *langterm.Expr, root langterm.NodeID) Inspected {
	return Inspected{expr: expr, root: root}
}

// ErrWrongKind reports a query made against a node of the wrong kind,
// e.g. asking for let fields on a non-let expression — a
// programming-contract violation, fatal.
type ErrWrongKind struct {
	Query string
	Kind  langterm.Kind
}

func (e *ErrWrongKind) Error() string {
	return fmt.Sprintf("construct: %s is not valid on a %s node", e.Query, e.Kind)
}

func (v Inspected) kind() langterm.Kind {
	return v.expr.Kind(v.root)
}

// IsSymbol reports whether the root is a Symbol node.
func (v Inspected) IsSymbol() bool { return v.kind() == langterm.Symbol }

// IsModule reports whether the root is a Module node.
func (v Inspected) IsModule() bool { return v.kind() == langterm.Module }

// IsLet reports whether the root is a Let node.
func (v Inspected) IsLet() bool { return v.kind() == langterm.Let }

// IsGate reports whether the root is a Gate node.
func (v Inspected) IsGate() bool { return v.kind() == langterm.Gate }

// SymbolName returns a Symbol node's interned name. It panics via
// ErrWrongKind if the root is not a Symbol.
func (v Inspected) SymbolName() string {
	if !v.IsSymbol() {
		panic(&ErrWrongKind{Query: "SymbolName", Kind: v.kind()})
	}
	return v.expr.Node(v.root).Name
}

// ModuleChildren returns a Module's statement children, each ready for
// further inspection. It panics via ErrWrongKind if the root is not a
// Module.
func (v Inspected) ModuleChildren() []Inspected {
	if !v.IsModule() {
		panic(&ErrWrongKind{Query: "ModuleChildren", Kind: v.kind()})
	}
	children := v.expr.Node(v.root).Children
	out := make([]Inspected, len(children))
	for i, c := range children {
		out[i] = Inspected{expr: v.expr, root: c}
	}
	return out
}

// LetParts returns a Let node's bound symbol name and body. It panics
// via ErrWrongKind if the root is not a Let.
func (v Inspected) LetParts() (name string, body Inspected) {
	if !v.IsLet() {
		panic(&ErrWrongKind{Query: "LetParts", Kind: v.kind()})
	}
	n := v.expr.Node(v.root)
	return v.expr.Node(n.Children[0]).Name, Inspected{expr: v.expr, root: n.Children[1]}
}

// GateCellName returns a Gate node's library cell name. It panics via
// ErrWrongKind if the root is not a Gate.
func (v Inspected) GateCellName() string {
	if !v.IsGate() {
		panic(&ErrWrongKind{Query: "GateCellName", Kind: v.kind()})
	}
	return v.expr.Node(v.root).Name
}

// GateInputs returns a Gate node's input pins as (port name, driving
// sub-expression) pairs, in pin order, skipping the output pin. It
// panics via ErrWrongKind if the root is not a Gate.
func (v Inspected) GateInputs() []struct {
	Port   string
	Driver Inspected
} {
	if !v.IsGate() {
		panic(&ErrWrongKind{Query: "GateInputs", Kind: v.kind()})
	}
	var out []struct {
		Port   string
		Driver Inspected
	}
	for _, pin := range v.expr.Node(v.root).Children {
		if v.expr.Kind(pin) != langterm.Input {
			continue
		}
		out = append(out, struct {
			Port   string
			Driver Inspected
		}{
			Port:   v.expr.PortName(pin),
			Driver: Inspected{expr: v.expr, root: v.expr.Driver(pin)},
		})
	}
	return out
}

// GateOutputPort returns a Gate node's output port name. It panics via
// ErrWrongKind if the root is not a Gate, or if the gate has no Output
// pin among its children.
func (v Inspected) GateOutputPort() string {
	if !v.IsGate() {
		panic(&ErrWrongKind{Query: "GateOutputPort", Kind: v.kind()})
	}
	for _, pin := range v.expr.Node(v.root).Children {
		if v.expr.Kind(pin) == langterm.Output {
			return v.expr.PortName(pin)
		}
	}
	panic(&ErrWrongKind{Query: "GateOutputPort (no Output pin present)", Kind: v.kind()})
}
