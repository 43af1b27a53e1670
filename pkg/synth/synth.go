// Package synth is the Synthesizer facade: it owns a compiled rule set
// and cost model for one library and metric, and drives an e-graph
// through saturation, extraction, and explanation for a given root
// expression.
package synth

import (
	"context"

	"github.com/latticecell/synthmap/pkg/cell"
	"github.com/latticecell/synthmap/pkg/construct"
	"github.com/latticecell/synthmap/pkg/explain"
	"github.com/latticecell/synthmap/pkg/extract"
	"github.com/latticecell/synthmap/pkg/langterm"
	"github.com/latticecell/synthmap/pkg/rewrite"
)

// Synthesizer holds everything derived once from a library and a metric:
// the full rule set (built-in axioms plus one rule per cell) and a cost
// model fixed to that metric.
type Synthesizer struct {
	library *cell.Library
	metric  cell.Metric
	rules   []rewrite.Rule
	budget  rewrite.Budget
}

// NewSynthesizer loads libraryPath and compiles it against the named
// metric ("Area", "Power", or "Timing"), fatal on any parse failure.
func NewSynthesizer(libraryPath, metricName string) (*Synthesizer, error) {
	lib, err := cell.Load(libraryPath)
	if err != nil {
		return nil, err
	}
	metric, err := cell.ParseMetric(metricName)
	if err != nil {
		return nil, err
	}
	return newSynthesizer(lib, metric), nil
}

func newSynthesizer(lib *cell.Library, metric cell.Metric) *Synthesizer {
	rules := append(rewrite.Builtins(), lib.Rules()...)
	return &Synthesizer{library: lib, metric: metric, rules: rules, budget: rewrite.DefaultBudget()}
}

// WithBudget overrides the default saturation budget (30 iterations,
// 10 000 nodes, 5 seconds) and returns the receiver for chaining.
func (s *Synthesizer) WithBudget(b rewrite.Budget) *Synthesizer {
	s.budget = b
	return s
}

// Result is everything Run produces: the extracted expression with its
// root node id, and the saturation report. It carries no proof; an
// explanation is obtained afterward from the explain.Builder passed to
// Run.
type Result struct {
	Expr   *langterm.Expr
	Root   langterm.NodeID
	Report rewrite.Report
}

// Run consumes g and the root expression it already holds, drives g to
// saturation against
// the synthesizer's rule set, and returns the minimal-cost expression
// extracted from the resulting root class. If explainer is non-nil, it is
// installed on g before saturation so that the caller's builder can
// answer equivalence queries between the original root class and the
// extracted one afterward.
func (s *Synthesizer) Run(ctx context.Context, g *construct.Graph, root construct.NodeID, explainer *explain.Builder) (Result, error) {
	eg := g.EGraph()
	if explainer != nil {
		eg.EnableExplanations(explainer)
	}
	eg.Rebuild()

	runner := rewrite.NewRunner(s.rules)
	report := runner.Run(ctx, eg, s.budget)

	model := s.library.CostModel(s.metric)
	extracted, extractedRoot, err := extract.New(eg, model).Extract(root.Class())
	if err != nil {
		return Result{}, err
	}

	return Result{Expr: extracted, Root: extractedRoot, Report: report}, nil
}

// Library exposes the synthesizer's parsed cell library, e.g. for a CLI
// that wants to print which cells are available.
func (s *Synthesizer) Library() *cell.Library {
	return s.library
}
