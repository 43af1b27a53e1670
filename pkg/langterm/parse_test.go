package langterm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAtoms(t *testing.T) {
	e, err := Parse("a")
	require.NoError(t, err)
	require.Equal(t, Symbol, e.Kind(e.Root()))
	require.Equal(t, "a", e.Node(e.Root()).Name)

	e, err = Parse("42")
	require.NoError(t, err)
	require.Equal(t, Num, e.Kind(e.Root()))
	require.Equal(t, int32(42), e.Node(e.Root()).Num)
}

func TestParseBooleanOps(t *testing.T) {
	e, err := Parse("(! (& a b))")
	require.NoError(t, err)
	root := e.Root()
	require.Equal(t, Not, e.Kind(root))
	and := e.Node(root).Children[0]
	require.Equal(t, And, e.Kind(and))
	require.Equal(t, "a", e.Node(e.Node(and).Children[0]).Name)
	require.Equal(t, "b", e.Node(e.Node(and).Children[1]).Name)
}

func TestParseLet(t *testing.T) {
	e, err := Parse("(module (let t (! a)) (& t b))")
	require.NoError(t, err)
	require.Equal(t, Module, e.Kind(e.Root()))
	stmts := e.Node(e.Root()).Children
	require.Len(t, stmts, 2)
	require.Equal(t, Let, e.Kind(stmts[0]))
}

func TestParseGate(t *testing.T) {
	e, err := Parse("(nand2 (input A a) (input B b) (output Y))")
	require.NoError(t, err)
	require.Equal(t, Gate, e.Kind(e.Root()))
	require.Equal(t, "nand2", e.Node(e.Root()).Name)
	pins := e.Node(e.Root()).Children
	require.Len(t, pins, 3)
	require.Equal(t, Input, e.Kind(pins[0]))
	require.Equal(t, "A", e.PortName(pins[0]))
	require.Equal(t, Output, e.Kind(pins[2]))
	require.Equal(t, "Y", e.PortName(pins[2]))
}

func TestParsePatternVariable(t *testing.T) {
	e, err := Parse("(| (! ?x) (! ?y))")
	require.NoError(t, err)
	notX := e.Node(e.Root()).Children[0]
	v := e.Node(notX).Children[0]
	require.Equal(t, Var, e.Kind(v))
	require.Equal(t, "x", e.Node(v).Name)
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"(",
		"(& a)",
		"(& a b c)",
		"(! a b)",
		"(let 1 a)",
		"a b",
		")",
	}
	for _, src := range cases {
		_, err := Parse(src)
		require.Errorf(t, err, "expected parse error for %q", src)
	}
}

func TestParsePrintRoundTrip(t *testing.T) {
	srcs := []string{
		"a",
		"42",
		"(! a)",
		"(& a b)",
		"(| (! a) (! b))",
		"(module (let t (! a)) (& t b))",
		"(nand2 (input A a) (input B b) (output Y))",
	}
	for _, src := range srcs {
		e, err := Parse(src)
		require.NoError(t, err)
		printed := e.Pretty(0)

		e2, err := Parse(printed)
		require.NoError(t, err)
		require.Equal(t, e.flat(e.Root()), e2.flat(e2.Root()), "round trip mismatch for %q", src)
	}
}

func TestCopySubtreePreservesSharing(t *testing.T) {
	e, err := Parse("(& a a)")
	require.NoError(t, err)
	cp := e.CopySubtree(e.Root())
	require.Equal(t, e.flat(e.Root()), cp.flat(cp.Root()))

	// The parser does not share nodes, so build a DAG whose And node
	// references one Symbol node twice.
	shared := NewExpr()
	s := shared.AddSymbol("a")
	shared.AddAnd(s, s)
	scp := shared.CopySubtree(shared.Root())
	require.Equal(t, 2, scp.Len())
	n := scp.Node(scp.Root())
	require.Equal(t, n.Children[0], n.Children[1])
}
