package rewrite

import (
	"context"
	"time"

	"github.com/latticecell/synthmap/pkg/egraph"
)

// Budget bounds a saturation run. The zero Budget is not valid; use
// DefaultBudget for the standard defaults.
type Budget struct {
	IterationLimit int
	NodeLimit      int
	TimeLimit      time.Duration
}

// DefaultBudget returns the standard default budget: 30 iterations,
// 10 000 nodes, 5 seconds.
func DefaultBudget() Budget {
	return Budget{IterationLimit: 30, NodeLimit: 10000, TimeLimit: 5 * time.Second}
}

// StopReason explains why a saturation run ended, for the run report.
type StopReason string

const (
	StopSaturated StopReason = "saturated"
	StopNodeLimit StopReason = "node-limited"
	StopIterLimit StopReason = "iter-limited"
	StopTimeLimit StopReason = "time-limited"
)

// Report summarizes one saturation run: how many iterations ran, the
// e-graph's final size, and why the loop stopped.
type Report struct {
	Iterations int
	ClassCount int
	NodeCount  int
	StopReason StopReason
}

// Runner owns a rule set and drives it to saturation over an e-graph.
type Runner struct {
	rules []Rule
}

// NewRunner builds a Runner over the given rules, in declaration order —
// rule-firing order within an iteration follows this order, then
// match-enumeration order within each rule, both deterministic.
func NewRunner(rules []Rule) *Runner {
	return &Runner{rules: append([]Rule(nil), rules...)}
}

// Run drives g to saturation or until budget is exceeded: searches for
// every rule run first against a stable snapshot, then every match is
// applied and merged, then the graph is rebuilt once per iteration.
// Searches and applies within one iteration never observe each other's
// effects. ctx is polled only at iteration boundaries, never
// mid-iteration — cancellation is cooperative, not preemptive; a
// cancelled ctx stops the run with StopTimeLimit and leaves the e-graph
// in a valid, extractable state.
func (r *Runner) Run(ctx context.Context, g *egraph.Graph, budget Budget) Report {
	start := time.Now()
	iteration := 0

	for {
		if err := ctx.Err(); err != nil {
			return r.report(g, iteration, StopTimeLimit)
		}
		if budget.TimeLimit > 0 && time.Since(start) >= budget.TimeLimit {
			return r.report(g, iteration, StopTimeLimit)
		}
		if iteration >= budget.IterationLimit {
			return r.report(g, iteration, StopIterLimit)
		}
		if budget.NodeLimit > 0 && g.NodeCount() > budget.NodeLimit {
			return r.report(g, iteration, StopNodeLimit)
		}

		iteration++

		var pending []pendingApply
		for _, rule := range r.rules {
			for _, m := range rule.Search.Search(g) {
				pending = append(pending, pendingApply{rule: rule.Name, anchor: m.Anchor, subst: m.Subst})
			}
		}

		nodesBefore := g.NodeCount()
		anyMergeChanged := false
		for _, p := range pending {
			rule := r.ruleByName(p.rule)
			instantiated := rule.Applier.Apply(g, rule.Name, p.subst)
			_, changed := g.Merge(p.anchor, instantiated, egraph.Justification{
				Rule:  p.rule,
				Subst: toClassSubst(p.subst),
			})
			anyMergeChanged = anyMergeChanged || changed
		}
		g.Rebuild()

		if !anyMergeChanged && g.NodeCount() == nodesBefore {
			return r.report(g, iteration, StopSaturated)
		}
		if budget.NodeLimit > 0 && g.NodeCount() > budget.NodeLimit {
			return r.report(g, iteration, StopNodeLimit)
		}
	}
}

func (r *Runner) ruleByName(name string) Rule {
	for _, rule := range r.rules {
		if rule.Name == name {
			return rule
		}
	}
	panic("rewrite: internal error, unknown rule " + name)
}

func (r *Runner) report(g *egraph.Graph, iteration int, reason StopReason) Report {
	return Report{
		Iterations: iteration,
		ClassCount: g.ClassCount(),
		NodeCount:  g.NodeCount(),
		StopReason: reason,
	}
}

func toClassSubst(s map[string]egraph.ClassID) map[string]egraph.ClassID {
	out := make(map[string]egraph.ClassID, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
