package egraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecell/synthmap/pkg/langterm"
)

func mustParse(t *testing.T, src string) *langterm.Expr {
	t.Helper()
	e, err := langterm.Parse(src)
	require.NoError(t, err)
	return e
}

func TestAddExprIsIdempotent(t *testing.T) {
	g := New()
	e := mustParse(t, "(! (& a b))")

	id1 := g.AddExpr(e, e.Root())
	id2 := g.AddExpr(e, e.Root())
	require.Equal(t, id1, id2, "adding the same expression twice must return the same class")
}

func TestAddDedupesStructurallyIdenticalNodes(t *testing.T) {
	g := New()
	e := mustParse(t, "(& a a)")
	// (& a a): both operands are the same Symbol "a", so there should be
	// exactly 2 classes: one for "a", one for the And node.
	g.AddExpr(e, e.Root())
	require.Equal(t, 2, g.ClassCount())
}

func TestMergeThenFindAgree(t *testing.T) {
	g := New()
	e1 := mustParse(t, "a")
	e2 := mustParse(t, "b")
	a := g.AddExpr(e1, e1.Root())
	b := g.AddExpr(e2, e2.Root())
	require.NotEqual(t, g.Find(a), g.Find(b))

	g.Merge(a, b, Justification{Rule: "test"})
	g.Rebuild()
	require.Equal(t, g.Find(a), g.Find(b))
}

func TestMergeNoopWhenAlreadyEqual(t *testing.T) {
	g := New()
	e := mustParse(t, "a")
	a := g.AddExpr(e, e.Root())
	_, changed := g.Merge(a, a, Justification{Rule: "test"})
	require.False(t, changed)
}

func TestRebuildRestoresCongruence(t *testing.T) {
	// (& a c) and (& b c): merging a and b should force the two And
	// e-nodes into the same class once rebuilt, since they become
	// structurally identical after canonicalization.
	g := New()
	eAC := mustParse(t, "(& a c)")
	eBC := mustParse(t, "(& b c)")
	andAC := g.AddExpr(eAC, eAC.Root())
	andBC := g.AddExpr(eBC, eBC.Root())
	require.NotEqual(t, g.Find(andAC), g.Find(andBC))

	eA := mustParse(t, "a")
	eB := mustParse(t, "b")
	a := g.AddExpr(eA, eA.Root())
	b := g.AddExpr(eB, eB.Root())

	g.Merge(a, b, Justification{Rule: "test"})
	g.Rebuild()

	require.Equal(t, g.Find(andAC), g.Find(andBC), "congruence closure must merge (& a c) and (& b c) once a = b")
}

func TestRebuildCanonicalizesChildren(t *testing.T) {
	g := New()
	eA := mustParse(t, "a")
	eB := mustParse(t, "b")
	a := g.AddExpr(eA, eA.Root())
	b := g.AddExpr(eB, eB.Root())
	g.Merge(a, b, Justification{Rule: "test"})
	g.Rebuild()

	for _, id := range []ClassID{a, b} {
		for _, n := range g.IterClass(id) {
			for _, c := range n.Children {
				require.Equal(t, g.Find(c), c, "child ids must be union-find leaders after rebuild")
			}
		}
	}
}

type recordingRecorder struct {
	calls []Justification
}

func (r *recordingRecorder) Record(a, b ClassID, just Justification) {
	r.calls = append(r.calls, just)
}

func TestMergeRecordsJustification(t *testing.T) {
	g := New()
	rec := &recordingRecorder{}
	g.EnableExplanations(rec)

	eA := mustParse(t, "a")
	eB := mustParse(t, "b")
	a := g.AddExpr(eA, eA.Root())
	b := g.AddExpr(eB, eB.Root())
	g.Merge(a, b, Justification{Rule: "commute-and"})

	require.Len(t, rec.calls, 1)
	require.Equal(t, "commute-and", rec.calls[0].Rule)
}
