// Package extract implements the cost-directed extractor: a
// Bellman-Ford-style fixed point over the e-graph's DAG-of-classes cost
// structure, selecting one e-node per reachable class so that summed
// cost is minimal, with deterministic tie-breaking.
package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/latticecell/synthmap/pkg/egraph"
	"github.com/latticecell/synthmap/pkg/langterm"
)

// unmappedPenalty is the huge per-node cost assigned to any surviving
// And, Or, or Not e-node, so extraction strongly prefers a fully
// mapped-to-gates result.
const unmappedPenalty = 1e9

// CostModel supplies the one piece of domain knowledge the extractor
// needs beyond the e-graph itself: how much a named gate instance costs
// under the metric fixed at construction.
type CostModel interface {
	// GateCost returns the per-instance cost of the named cell and
	// whether the library recognizes that name. An unrecognized gate
	// name reaching the extractor is a programming-contract violation —
	// it means an e-graph was extracted against a different library than
	// the one its gate rules were compiled from.
	GateCost(name string) (float64, bool)
}

// ErrUnknownGate reports a Gate e-node whose cell name the cost model
// does not recognize — a programming-contract violation, fatal.
type ErrUnknownGate struct {
	Name string
}

func (e *ErrUnknownGate) Error() string {
	return fmt.Sprintf("extract: gate %q is not present in the cost model's library", e.Name)
}

// classState is the extractor's running best-known solution for one
// e-class: its cost, the winning e-node, and that node's printed form
// (computed from its children's own printed forms) used only to break
// cost ties deterministically.
type classState struct {
	cost    float64
	node    egraph.ENode
	printed string
	known   bool
}

// Extractor runs the fixed-point cost solver against a particular
// e-graph and cost model.
type Extractor struct {
	g     *egraph.Graph
	model CostModel
}

// New returns an Extractor over g using model to price Gate instances.
func New(g *egraph.Graph, model CostModel) *Extractor {
	return &Extractor{g: g, model: model}
}

// Extract selects a minimal-cost representative for root and every class
// it transitively depends on, and builds a fresh expression DAG
// containing exactly one node per selected class. It panics with
// *ErrUnknownGate if any Gate e-node in the graph, chosen or not, names a
// cell the cost model does not know — a contract violation, not a
// recoverable error.
func (ex *Extractor) Extract(root egraph.ClassID) (*langterm.Expr, langterm.NodeID, error) {
	states, err := ex.solve()
	if err != nil {
		return nil, 0, err
	}

	out := langterm.NewExpr()
	memo := make(map[egraph.ClassID]langterm.NodeID)
	var build func(egraph.ClassID) langterm.NodeID
	build = func(class egraph.ClassID) langterm.NodeID {
		class = ex.g.Find(class)
		if id, ok := memo[class]; ok {
			return id
		}
		st := states[class]
		children := make([]langterm.NodeID, len(st.node.Children))
		for i, c := range st.node.Children {
			children[i] = build(c)
		}
		id := appendNode(out, st.node, children)
		memo[class] = id
		return id
	}
	rootID := build(root)
	return out, rootID, nil
}

// solve runs the Bellman-Ford-style fixed point to convergence: every
// pass re-evaluates every e-node of every live class against the current
// best costs of its children, improving a class's chosen node whenever a
// strictly lower cost is found, or the same cost with a lexicographically
// smaller printed form. Because every class's cost is bounded below and
// every improving step strictly lowers a monotone potential, the loop
// converges in at most ClassCount passes.
func (ex *Extractor) solve() (map[egraph.ClassID]classState, error) {
	classes := ex.g.Classes()
	states := make(map[egraph.ClassID]classState, len(classes))
	for _, c := range classes {
		states[c] = classState{cost: math.Inf(1)}
	}

	limit := len(classes) + 1
	for pass := 0; pass < limit; pass++ {
		changed := false
		for _, c := range classes {
			for _, n := range ex.g.IterClass(c) {
				cost, printed, ok := ex.evalNode(n, states)
				if !ok {
					continue
				}
				cur := states[c]
				if !cur.known || cost < cur.cost || (cost == cur.cost && printed < cur.printed) {
					states[c] = classState{cost: cost, node: n, printed: printed, known: true}
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	var unresolved []string
	for _, c := range classes {
		if !states[c].known {
			unresolved = append(unresolved, fmt.Sprintf("class %d", c))
		}
	}
	if len(unresolved) > 0 {
		return nil, fmt.Errorf("extract: could not resolve a finite cost for %s", strings.Join(unresolved, ", "))
	}
	return states, nil
}

// evalNode computes n's candidate cost and printed form given the
// current best known states of its children, returning ok=false if any
// child is not yet resolved.
func (ex *Extractor) evalNode(n egraph.ENode, states map[egraph.ClassID]classState) (float64, string, bool) {
	own, err := ex.ownCost(n)
	if err != nil {
		panic(err)
	}

	total := own
	printedChildren := make([]string, len(n.Children))
	for i, c := range n.Children {
		c = ex.g.Find(c)
		st, ok := states[c]
		if !ok || !st.known {
			return 0, "", false
		}
		total += st.cost
		printedChildren[i] = st.printed
	}
	return total, printNode(n, printedChildren), true
}

// ownCost computes a single e-node's own cost, excluding children.
func (ex *Extractor) ownCost(n egraph.ENode) (float64, error) {
	switch n.Kind {
	case langterm.Gate:
		cost, ok := ex.model.GateCost(n.Name)
		if !ok {
			return 0, &ErrUnknownGate{Name: n.Name}
		}
		return cost, nil
	case langterm.And, langterm.Or, langterm.Not:
		return unmappedPenalty, nil
	default:
		return 0, nil
	}
}

// printNode renders n's own syntax with its children already rendered,
// solely to give the fixed point a deterministic tie-break key: ties are
// broken by lexicographic comparison of this printed form. It is never
// shown to a user.
func printNode(n egraph.ENode, children []string) string {
	switch n.Kind {
	case langterm.And:
		return "(& " + children[0] + " " + children[1] + ")"
	case langterm.Or:
		return "(| " + children[0] + " " + children[1] + ")"
	case langterm.Not:
		return "(! " + children[0] + ")"
	case langterm.Gate:
		return "(" + n.Name + " " + strings.Join(children, " ") + ")"
	case langterm.Symbol:
		return n.Name
	case langterm.Var:
		return "?" + n.Name
	case langterm.Num:
		return strconv.Itoa(int(n.Num))
	case langterm.Let:
		return "(let " + children[0] + " " + children[1] + ")"
	case langterm.Input:
		return "(input " + children[0] + " " + children[1] + ")"
	case langterm.Output:
		return "(output " + children[0] + ")"
	case langterm.Module:
		return "(module " + strings.Join(children, " ") + ")"
	default:
		return n.Kind.String()
	}
}

// appendNode appends a node structurally equal to n, with children
// rebound to the given ids, to out, and returns its id. It mirrors the
// builder methods on *langterm.Expr one kind at a time because n's
// children are already-extracted node ids, not a fresh construction
// call's arguments.
func appendNode(out *langterm.Expr, n egraph.ENode, children []langterm.NodeID) langterm.NodeID {
	switch n.Kind {
	case langterm.And:
		return out.AddAnd(children[0], children[1])
	case langterm.Or:
		return out.AddOr(children[0], children[1])
	case langterm.Not:
		return out.AddNot(children[0])
	case langterm.Gate:
		return out.AddGate(n.Name, children)
	case langterm.Symbol:
		return out.AddSymbol(n.Name)
	case langterm.Var:
		return out.AddVar(n.Name)
	case langterm.Num:
		return out.AddNum(n.Num)
	case langterm.Let:
		return out.AddLet(children[0], children[1])
	case langterm.Input:
		return out.AddInput(children[0], children[1])
	case langterm.Output:
		return out.AddOutput(children[0])
	case langterm.Module:
		return out.AddModule(children)
	default:
		panic("extract: unreachable node kind " + n.Kind.String())
	}
}
