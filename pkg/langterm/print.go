package langterm

import (
	"strconv"
	"strings"
)

// Pretty renders the expression rooted at e.Root() back into the
// s-expression grammar. Lines are wrapped to width when a
// sub-expression's flat rendering would exceed it; width <= 0 disables
// wrapping.
func (e *Expr) Pretty(width int) string {
	if e.Len() == 0 {
		return ""
	}
	return e.prettyAt(e.Root(), 0, width)
}

// flat renders the subtree rooted at id with no line wrapping; used both
// as the fast path and to decide whether wrapping is needed.
func (e *Expr) flat(id NodeID) string {
	n := e.nodes[id]
	switch n.Kind {
	case Num:
		return strconv.FormatInt(int64(n.Num), 10)
	case Symbol, Var:
		if n.Kind == Var {
			return "?" + n.Name
		}
		return n.Name
	case And:
		return "(& " + e.flat(n.Children[0]) + " " + e.flat(n.Children[1]) + ")"
	case Or:
		return "(| " + e.flat(n.Children[0]) + " " + e.flat(n.Children[1]) + ")"
	case Not:
		return "(! " + e.flat(n.Children[0]) + ")"
	case Let:
		return "(let " + e.flat(n.Children[0]) + " " + e.flat(n.Children[1]) + ")"
	case Input:
		return "(input " + e.flat(n.Children[0]) + " " + e.flat(n.Children[1]) + ")"
	case Output:
		return "(output " + e.flat(n.Children[0]) + ")"
	case Module:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = e.flat(c)
		}
		return "(module " + strings.Join(parts, " ") + ")"
	case Gate:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = e.flat(c)
		}
		if len(parts) == 0 {
			return "(" + n.Name + ")"
		}
		return "(" + n.Name + " " + strings.Join(parts, " ") + ")"
	default:
		return "?"
	}
}

func (e *Expr) prettyAt(id NodeID, indent, width int) string {
	flat := e.flat(id)
	if width <= 0 || len(flat)+indent <= width {
		return flat
	}
	n := e.nodes[id]
	if len(n.Children) == 0 {
		return flat
	}
	pad := strings.Repeat(" ", indent+2)
	head := headWord(n)
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(head)
	for _, c := range n.Children {
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString(e.prettyAt(c, indent+2, width))
	}
	b.WriteString(")")
	return b.String()
}

func headWord(n Node) string {
	switch n.Kind {
	case And:
		return "&"
	case Or:
		return "|"
	case Not:
		return "!"
	case Let:
		return "let"
	case Input:
		return "input"
	case Output:
		return "output"
	case Module:
		return "module"
	case Gate:
		return n.Name
	default:
		return ""
	}
}

// String renders with no width limit (single line), convenient for
// deterministic tie-breaking and log messages.
func (e *Expr) String() string {
	return e.Pretty(0)
}
