// Package cell holds the standard-cell library model: the Cell record,
// a JSON loader for the library file, and the metric selection that
// fixes which physical quantity a synthesis run optimizes.
package cell

import (
	"fmt"

	"github.com/latticecell/synthmap/pkg/langterm"
)

// Cell is one standard-cell library entry: an immutable record naming a
// searcher pattern that recognizes where the cell applies, an applier
// template that instantiates it, and its area/power/timing cost.
type Cell struct {
	Name     string
	Area     float64
	Power    float64
	Timing   float64
	Searcher string
	Applier  string

	// Inputs is the ordered list of port names inferred from Searcher's
	// pattern variables, in first-occurrence order.
	Inputs []string
}

// Metric selects which of a Cell's three costs a synthesis run
// minimizes: one of "Area", "Power", or "Timing".
type Metric int

const (
	Area Metric = iota
	Power
	Timing
)

// ParseMetric maps the external metric name to a Metric, or reports
// ErrUnknownMetric — any value outside the three named ones is fatal at
// setup.
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "Area":
		return Area, nil
	case "Power":
		return Power, nil
	case "Timing":
		return Timing, nil
	default:
		return 0, &ErrUnknownMetric{Name: name}
	}
}

// ErrUnknownMetric reports a metric name outside {"Area","Power","Timing"}.
type ErrUnknownMetric struct {
	Name string
}

func (e *ErrUnknownMetric) Error() string {
	return fmt.Sprintf("cell: unknown metric %q, expected Area, Power, or Timing", e.Name)
}

// Cost returns the Cell's cost under m.
func (c Cell) Cost(m Metric) float64 {
	switch m {
	case Area:
		return c.Area
	case Power:
		return c.Power
	default:
		return c.Timing
	}
}

// inferInputs walks searcher's pattern tree left to right and returns
// every distinct Var name in first-occurrence order: the ordered port
// names a gate's inputs are inferred to have.
func inferInputs(expr *langterm.Expr, root langterm.NodeID) []string {
	seen := make(map[string]bool)
	var order []string
	var walk func(langterm.NodeID)
	walk = func(id langterm.NodeID) {
		n := expr.Node(id)
		if n.Kind == langterm.Var {
			if !seen[n.Name] {
				seen[n.Name] = true
				order = append(order, n.Name)
			}
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return order
}
