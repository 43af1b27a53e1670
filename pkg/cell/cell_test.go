package cell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleLibrary = `[
	{"name": "nand2", "area": 2.0, "power": 1.5, "timing": 0.3, "searcher": "(! (& ?a ?b))", "applier": "(nand2 ?a ?b)"},
	{"name": "and2", "area": 3.0, "power": 2.0, "timing": 0.4, "searcher": "(& ?a ?b)", "applier": "(and2 ?a ?b)"}
]`

func TestParseLoadsCellsAndInfersInputs(t *testing.T) {
	lib, err := Parse([]byte(sampleLibrary))
	require.NoError(t, err)
	require.Len(t, lib.Cells(), 2)

	nand2 := lib.Cells()[0]
	require.Equal(t, "nand2", nand2.Name)
	require.Equal(t, []string{"a", "b"}, nand2.Inputs)
}

func TestParseCompilesOneRulePerCell(t *testing.T) {
	lib, err := Parse([]byte(sampleLibrary))
	require.NoError(t, err)
	require.Len(t, lib.Rules(), 2)
}

func TestParseRejectsMalformedSearcher(t *testing.T) {
	_, err := Parse([]byte(`[{"name": "bad", "searcher": "(& ?a", "applier": "(bad ?a)"}]`))
	require.Error(t, err)
}

func TestParseRejectsDuplicateNames(t *testing.T) {
	_, err := Parse([]byte(`[
		{"name": "and2", "searcher": "(& ?a ?b)", "applier": "(and2 ?a ?b)"},
		{"name": "and2", "searcher": "(& ?x ?y)", "applier": "(and2 ?x ?y)"}
	]`))
	require.Error(t, err)
}

func TestCostModelReportsKnownAndUnknownGates(t *testing.T) {
	lib, err := Parse([]byte(sampleLibrary))
	require.NoError(t, err)

	model := lib.CostModel(Area)
	cost, ok := model.GateCost("nand2")
	require.True(t, ok)
	require.Equal(t, 2.0, cost)

	_, ok = model.GateCost("nope")
	require.False(t, ok)
}

func TestParseMetricRejectsUnknownName(t *testing.T) {
	_, err := ParseMetric("Speed")
	require.Error(t, err)
}

func TestParseMetricAcceptsAllThree(t *testing.T) {
	for _, name := range []string{"Area", "Power", "Timing"} {
		_, err := ParseMetric(name)
		require.NoError(t, err)
	}
}
