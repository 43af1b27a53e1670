package pattern

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

func TestSearchMatchesVariable(t *testing.T) {
	g := egraph.New()
	cls := addSrc(t, g, "a")

	p, err := Parse("?x")
	require.NoError(t, err)

	matches := p.Search(g)
	require.Len(t, matches, 1)
	require.Equal(t, cls, matches[0].Class)
	require.Equal(t, cls, matches[0].Subst["x"])
}

func TestSearchMatchesStructurally(t *testing.T) {
	g := egraph.New()
	andCls := addSrc(t, g, "(& a b)")

	p, err := Parse("(& ?x ?y)")
	require.NoError(t, err)

	matches := p.Search(g)
	require.Len(t, matches, 1)
	require.Equal(t, andCls, matches[0].Class)
	require.NotEqual(t, matches[0].Subst["x"], matches[0].Subst["y"])
}

func TestSearchRejectsMismatchedArity(t *testing.T) {
	g := egraph.New()
	addSrc(t, g, "(! a)")

	p, err := Parse("(& ?x ?y)")
	require.NoError(t, err)
	require.Empty(t, p.Search(g))
}

func TestSearchRepeatedVariableRequiresEquality(t *testing.T) {
	g := egraph.New()
	addSrc(t, g, "(& a b)")
	eqCls := addSrc(t, g, "(& a a)")

	p, err := Parse("(& ?x ?x)")
	require.NoError(t, err)

	matches := p.Search(g)
	require.Len(t, matches, 1)
	require.Equal(t, eqCls, matches[0].Class)
}

func TestSearchBindsAcrossEquivalentSubterms(t *testing.T) {
	g := egraph.New()
	a := addSrc(t, g, "a")
	b := addSrc(t, g, "b")
	andCls := addSrc(t, g, "(& a c)")
	g.Merge(a, b, egraph.Justification{Rule: "test"})
	g.Rebuild()

	p, err := Parse("(& ?x ?y)")
	require.NoError(t, err)

	matches := p.Search(g)
	require.Len(t, matches, 1)
	require.Equal(t, andCls, matches[0].Class)
	require.Equal(t, g.Find(a), matches[0].Subst["x"])
}

func TestMultiPatternRequiresConsistentBinding(t *testing.T) {
	g := egraph.New()
	x := addSrc(t, g, "x")
	addSrc(t, g, "y")
	letExpr, err := langterm.Parse("(let x y)")
	require.NoError(t, err)
	g.AddExpr(letExpr, letExpr.Root())
	andCls := addSrc(t, g, "(& x z)")

	letPat, err := Parse("(let ?x ?y)")
	require.NoError(t, err)
	andPat, err := Parse("(& ?x ?z)")
	require.NoError(t, err)

	mp := NewMulti(
		Anchor{Var: "a", Pattern: letPat},
		Anchor{Var: "b", Pattern: andPat},
	)

	substs := mp.Search(g)
	require.NotEmpty(t, substs)
	for _, s := range substs {
		require.Equal(t, g.Find(x), s["x"])
		require.Equal(t, andCls, s["b"])
	}
}

func TestMultiPatternEmptyWhenInconsistent(t *testing.T) {
	g := egraph.New()
	addSrc(t, g, "x")
	addSrc(t, g, "y")
	letExpr, err := langterm.Parse("(let x y)")
	require.NoError(t, err)
	g.AddExpr(letExpr, letExpr.Root())
	addSrc(t, g, "(& w z)")

	letPat, err := Parse("(let ?x ?y)")
	require.NoError(t, err)
	andPat, err := Parse("(& ?x ?z)")
	require.NoError(t, err)

	mp := NewMulti(
		Anchor{Var: "a", Pattern: letPat},
		Anchor{Var: "b", Pattern: andPat},
	)
	require.Empty(t, mp.Search(g))
}
