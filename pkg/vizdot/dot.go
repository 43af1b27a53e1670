// Package vizdot renders an e-graph snapshot as Graphviz DOT text, an
// optional side output conventionally named `egraph.svg`, and can shell
// out to the system `dot` binary to turn that text into an SVG.
package vizdot

import (
	"fmt"
	"strings"

	"github.com/latticecell/synthmap/pkg/egraph"
)

// WriteDOT renders g as DOT text: one cluster subgraph per e-class, one
// node per e-node inside it, and a dashed edge from each e-node to every
// e-class it has as a child — grounded on the hand-written
// fmt.Fprintf-based DOT emission style used throughout the example pack
// rather than a graphviz-generation library (none of the pack's repos
// import one for this).
func WriteDOT(g *egraph.Graph) string {
	var b strings.Builder
	b.WriteString("digraph egraph {\n")
	b.WriteString("  compound=true;\n")

	classes := g.Classes()
	for _, cls := range classes {
		fmt.Fprintf(&b, "  subgraph cluster_%d {\n", cls)
		fmt.Fprintf(&b, "    label=%q;\n", fmt.Sprintf("class %d", cls))
		for i, n := range g.IterClass(cls) {
			fmt.Fprintf(&b, "    n%d_%d [label=%q];\n", cls, i, nodeLabel(n))
		}
		b.WriteString("  }\n")
	}

	for _, cls := range classes {
		for i, n := range g.IterClass(cls) {
			for _, child := range n.Children {
				fmt.Fprintf(&b, "  n%d_%d -> n%d_0 [style=dashed, lhead=cluster_%d];\n", cls, i, g.Find(child), g.Find(child))
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// nodeLabel renders a single e-node's own syntax (not its children, which
// are drawn as edges to their e-class clusters instead).
func nodeLabel(n egraph.ENode) string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Name)
	}
	return n.Kind.String()
}
