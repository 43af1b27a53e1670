package cell

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/latticecell/synthmap/pkg/langterm"
	"github.com/latticecell/synthmap/pkg/rewrite"
)

// wireCell is the on-disk JSON shape of one library entry: a flat
// record array, field names matching Cell's, with Searcher/Applier
// carried as their textual s-expression form.
type wireCell struct {
	Name     string  `json:"name"`
	Area     float64 `json:"area"`
	Power    float64 `json:"power"`
	Timing   float64 `json:"timing"`
	Searcher string  `json:"searcher"`
	Applier  string  `json:"applier"`
}

// Library is an immutable, parsed standard-cell library: every cell's
// searcher and applier have already been parsed successfully. A
// malformed rule is an input-parse error, fatal at setup, so it is
// caught here rather than deferred to the first saturation run.
type Library struct {
	cells  []Cell
	rules  []rewrite.Rule
	byName map[string]Cell
}

// Load reads and parses a library file at path: a JSON array of cell
// records. Any unreadable file, malformed JSON, or unparseable
// searcher/applier string is reported with the offending cell's name.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cell: reading library %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a library from raw JSON bytes, the same format Load
// reads from disk — split out so collaborators embedding the engine can
// supply a library from memory (e.g. a test fixture) without a temp file.
func Parse(data []byte) (*Library, error) {
	var wire []wireCell
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("cell: malformed library JSON: %w", err)
	}

	lib := &Library{byName: make(map[string]Cell, len(wire))}
	for _, w := range wire {
		searcherExpr, err := langterm.Parse(w.Searcher)
		if err != nil {
			return nil, fmt.Errorf("cell: cell %q: bad searcher %q: %w", w.Name, w.Searcher, err)
		}
		rule, err := rewrite.CompileLibraryRule(w.Name, w.Searcher, w.Applier)
		if err != nil {
			return nil, err
		}

		c := Cell{
			Name:     w.Name,
			Area:     w.Area,
			Power:    w.Power,
			Timing:   w.Timing,
			Searcher: w.Searcher,
			Applier:  w.Applier,
			Inputs:   inferInputs(searcherExpr, searcherExpr.Root()),
		}
		if _, dup := lib.byName[c.Name]; dup {
			return nil, fmt.Errorf("cell: duplicate cell name %q", c.Name)
		}
		lib.byName[c.Name] = c
		lib.cells = append(lib.cells, c)
		lib.rules = append(lib.rules, rule)
	}
	return lib, nil
}

// Cells returns every cell in the library, in library-file order.
func (l *Library) Cells() []Cell {
	return append([]Cell(nil), l.cells...)
}

// Rules returns the library-derived rewrite rules, one per cell, in
// library-file order — to be combined with rewrite.Builtins() when
// constructing a Runner.
func (l *Library) Rules() []rewrite.Rule {
	return append([]rewrite.Rule(nil), l.rules...)
}

// CostModel returns an extract.CostModel that prices gate instances under
// metric using this library — the seam the extractor (Component E) uses
// without importing pkg/cell directly.
func (l *Library) CostModel(metric Metric) *metricModel {
	return &metricModel{lib: l, metric: metric}
}

// metricModel adapts a Library fixed to one Metric into the shape
// pkg/extract.CostModel expects.
type metricModel struct {
	lib    *Library
	metric Metric
}

// GateCost implements extract.CostModel.
func (m *metricModel) GateCost(name string) (float64, bool) {
	c, ok := m.lib.byName[name]
	if !ok {
		return 0, false
	}
	return c.Cost(m.metric), true
}
