package explain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecell/synthmap/pkg/egraph"
	"github.com/latticecell/synthmap/pkg/langterm"
)

func addSrc(t *testing.T, g *egraph.Graph, src string) egraph.ClassID {
	t.Helper()
	e, err := langterm.Parse(src)
	require.NoError(t, err)
	return g.AddExpr(e, e.Root())
}

func TestExplainDirectMerge(t *testing.T) {
	g := egraph.New()
	b := NewBuilder()
	g.EnableExplanations(b)

	a := addSrc(t, g, "a")
	c := addSrc(t, g, "b")
	g.Merge(a, c, egraph.Justification{Rule: "test-rule"})

	steps, err := b.Explain(g, a, c)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	require.Equal(t, "test-rule", steps[0].Rule)
}

func TestExplainMultiHopChain(t *testing.T) {
	g := egraph.New()
	b := NewBuilder()
	g.EnableExplanations(b)

	x := addSrc(t, g, "x")
	y := addSrc(t, g, "y")
	z := addSrc(t, g, "z")
	g.Merge(x, y, egraph.Justification{Rule: "r1"})
	g.Merge(y, z, egraph.Justification{Rule: "r2"})

	steps, err := b.Explain(g, x, z)
	require.NoError(t, err)
	require.NotEmpty(t, steps)
	require.Equal(t, z, steps[len(steps)-1].To)
}

func TestExplainRejectsUnrelatedClasses(t *testing.T) {
	g := egraph.New()
	b := NewBuilder()
	g.EnableExplanations(b)

	x := addSrc(t, g, "x")
	y := addSrc(t, g, "y")

	_, err := b.Explain(g, x, y)
	require.Error(t, err)
	require.IsType(t, &ErrNotEquivalent{}, err)
}

func TestExplainErrorsWhenLogIncomplete(t *testing.T) {
	g := egraph.New()
	b := NewBuilder()
	// Explanations not enabled: merges happen with no recorder installed.
	x := addSrc(t, g, "x")
	y := addSrc(t, g, "y")
	g.Merge(x, y, egraph.Justification{Rule: "r1"})

	_, err := b.Explain(g, x, y)
	require.Error(t, err)
	require.IsType(t, &ErrProofNotFound{}, err)
}

func TestExplainSameClassIsTrivial(t *testing.T) {
	g := egraph.New()
	b := NewBuilder()
	g.EnableExplanations(b)
	a := addSrc(t, g, "a")

	steps, err := b.Explain(g, a, a)
	require.NoError(t, err)
	require.Empty(t, steps)
}
