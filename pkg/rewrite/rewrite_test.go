package rewrite

import (
	"context"
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

func TestCommuteAndMergesSwappedForm(t *testing.T) {
	g := egraph.New()
	ab := addSrc(t, g, "(& a b)")
	ba := addSrc(t, g, "(& b a)")
	require.NotEqual(t, g.Find(ab), g.Find(ba))

	r := NewRunner([]Rule{Builtins()[0]}) // commute-and
	report := r.Run(context.Background(), g, DefaultBudget())

	require.Equal(t, StopSaturated, report.StopReason)
	require.Equal(t, g.Find(ab), g.Find(ba))
}

func TestDemorganAndMergesEquivalentForm(t *testing.T) {
	g := egraph.New()
	lhs := addSrc(t, g, "(! (& a b))")
	rhs := addSrc(t, g, "(| (! a) (! b))")
	require.NotEqual(t, g.Find(lhs), g.Find(rhs))

	r := NewRunner(Builtins())
	r.Run(context.Background(), g, DefaultBudget())

	require.Equal(t, g.Find(lhs), g.Find(rhs))
}

func TestInlineLetAndMergesSubstitutedForm(t *testing.T) {
	g := egraph.New()
	letExpr, err := langterm.Parse("(let x (| p q))")
	require.NoError(t, err)
	g.AddExpr(letExpr, letExpr.Root())

	occurrence := addSrc(t, g, "(& x z)")
	expected := addSrc(t, g, "(& (| p q) z)")
	require.NotEqual(t, g.Find(occurrence), g.Find(expected))

	r := NewRunner(Builtins())
	r.Run(context.Background(), g, DefaultBudget())

	require.Equal(t, g.Find(occurrence), g.Find(expected))
}

func TestRunStopsAtIterationLimit(t *testing.T) {
	g := egraph.New()
	addSrc(t, g, "(& a b)")

	r := NewRunner(Builtins())
	report := r.Run(context.Background(), g, Budget{IterationLimit: 1, NodeLimit: 10000})
	require.Equal(t, StopIterLimit, report.StopReason)
	require.Equal(t, 1, report.Iterations)
}

func TestApplyPanicsOnUnboundVariable(t *testing.T) {
	g := egraph.New()
	a, err := ParseApplier("?ghost")
	require.NoError(t, err)

	require.Panics(t, func() {
		a.Apply(g, "bad-rule", map[string]egraph.ClassID{})
	})
}

func TestCompileLibraryRuleRejectsBadSearcher(t *testing.T) {
	_, err := CompileLibraryRule("nand2", "(& ?a", "(nand2 ?a ?b)")
	require.Error(t, err)
}

func TestCompileLibraryRuleMatchesAnd(t *testing.T) {
	g := egraph.New()
	andCls := addSrc(t, g, "(& a b)")

	rule, err := CompileLibraryRule("and2", "(& ?a ?b)", "(and2 ?a ?b)")
	require.NoError(t, err)

	r := NewRunner([]Rule{rule})
	r.Run(context.Background(), g, DefaultBudget())

	found := false
	for _, n := range g.IterClass(andCls) {
		if n.Kind == langterm.Gate && n.Name == "and2" {
			found = true
		}
	}
	require.True(t, found, "expected a gate node in the and-class after applying the library rule")
}
