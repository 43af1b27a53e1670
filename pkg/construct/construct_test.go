package construct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecell/synthmap/pkg/langterm"
)

func TestBuildAndProducesDistinctNodeIDs(t *testing.T) {
	g := NewEGraph()
	a := g.BuildSymbol("a")
	b := g.BuildSymbol("b")
	and, err := g.BuildAnd(a, b)
	require.NoError(t, err)
	require.NotEqual(t, a.Class(), and.Class())
}

func TestBuildRejectsCrossGraphChildren(t *testing.T) {
	g1 := NewEGraph()
	g2 := NewEGraph()
	a := g1.BuildSymbol("a")
	b := g2.BuildSymbol("b")

	_, err := g1.BuildAnd(a, b)
	require.ErrorIs(t, err, ErrCrossGraph)
}

func TestModuleBuilderRejectsForeignStatement(t *testing.T) {
	g1 := NewEGraph()
	g2 := NewEGraph()
	mb := g1.NewModuleBuilder()
	foreign := g2.BuildSymbol("x")
	require.ErrorIs(t, mb.Append(foreign), ErrCrossGraph)
}

func TestModuleBuilderAccumulatesInOrder(t *testing.T) {
	g := NewEGraph()
	mb := g.NewModuleBuilder()
	a := g.BuildSymbol("a")
	b := g.BuildSymbol("b")
	require.NoError(t, mb.Append(a))
	require.NoError(t, mb.Append(b))
	mod := mb.Build()
	require.NotEqual(t, a.Class(), mod.Class())

	nodes := g.EGraph().IterClass(mod.Class())
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 2)
	require.Equal(t, a.Class(), nodes[0].Children[0])
	require.Equal(t, b.Class(), nodes[0].Children[1])
}

func TestInspectGateReportsPortsAndCellName(t *testing.T) {
	e := langterm.NewExpr()
	aSym := e.AddSymbol("a")
	bSym := e.AddSymbol("b")
	ySym := e.AddSymbol("Y")
	aPort := e.AddSymbol("A")
	bPort := e.AddSymbol("B")
	in1 := e.AddInput(aPort, aSym)
	in2 := e.AddInput(bPort, bSym)
	out := e.AddOutput(ySym)
	gate := e.AddGate("nand2", []langterm.NodeID{in1, in2, out})

	v := Inspect(e, gate)
	require.True(t, v.IsGate())
	require.Equal(t, "nand2", v.GateCellName())
	require.Equal(t, "Y", v.GateOutputPort())

	inputs := v.GateInputs()
	require.Len(t, inputs, 2)
	require.Equal(t, "A", inputs[0].Port)
	require.Equal(t, "a", inputs[0].Driver.SymbolName())
}

func TestInspectLetReportsNameAndBody(t *testing.T) {
	e := langterm.NewExpr()
	name := e.AddSymbol("x")
	body := e.AddSymbol("y")
	letID := e.AddLet(name, body)

	v := Inspect(e, letID)
	require.True(t, v.IsLet())
	n, b := v.LetParts()
	require.Equal(t, "x", n)
	require.Equal(t, "y", b.SymbolName())
}

func TestInspectPanicsOnWrongKind(t *testing.T) {
	e := langterm.NewExpr()
	sym := e.AddSymbol("a")
	v := Inspect(e, sym)
	require.Panics(t, func() { v.LetParts() })
}
