package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lsparrow/domain/table"
	"lsparrow/internal/config"
)

func newTestAnalyzer() *Analyzer {
	return New(config.DefaultAnalysis())
}

func surveyTable() *table.Table {
	return table.New(
		[]string{"Email", "Dob", "Q1", "Q2", "Iskustvo"},
		[][]string{
			{"a@x.com", "18-25", "4", "2", "junior"},
			{"b@x.com", "18-25", "5", "1", "junior"},
			{"c@x.com", "26-35", "3", "3", "senior"},
			{"d@x.com", "26-35", "2", "4", "senior"},
			{"e@x.com", "36-45", "1", "5", "junior"},
		},
	)
}

func TestAnalyze_OverallStatistics(t *testing.T) {
	a := newTestAnalyzer()

	result := a.Analyze(surveyTable(), nil)

	require.True(t, result.HasData())
	require.Len(t, result.Overall, 2)
	assert.Equal(t, "Q1", result.Overall[0].Question)
	assert.Equal(t, "Q2", result.Overall[1].Question)
	assert.Equal(t, 5, result.Overall[0].N)
	assert.Equal(t, 3.0, result.Overall[0].Mean.Value)
	assert.Empty(t, result.Grouped)
	assert.Empty(t, result.Groupings)
}

func TestAnalyze_GroupedStatistics(t *testing.T) {
	a := newTestAnalyzer()

	tbl := table.New(
		[]string{"Grad", "Q1", "Q2"},
		[][]string{
			{"A", "4", "2"},
			{"A", "5", "1"},
			{"B", "3", "3"},
		},
	)

	result := a.Analyze(tbl, []string{"Grad"})

	require.Contains(t, result.Grouped, "group_0")
	groups := result.Grouped["group_0"]
	require.Contains(t, groups, "A")
	require.Contains(t, groups, "B")

	// "A" records come only from the two A rows.
	aRecords := groups["A"]
	require.Len(t, aRecords, 2)
	assert.Equal(t, "Q1", aRecords[0].Question)
	assert.Equal(t, 2, aRecords[0].N)
	assert.Equal(t, 4.5, aRecords[0].Mean.Value)
	assert.Equal(t, 2, aRecords[1].N)
	assert.Equal(t, 1.5, aRecords[1].Mean.Value)

	bRecords := groups["B"]
	require.Len(t, bRecords, 2)
	assert.Equal(t, 1, bRecords[0].N)

	info := result.Groupings["group_0"]
	assert.Equal(t, "Grad", info.Label)
	assert.Equal(t, "Grad", info.Column)
	assert.Equal(t, []string{"A", "B"}, info.Values)
}

func TestAnalyze_GroupingKeysArePositional(t *testing.T) {
	a := newTestAnalyzer()

	result := a.Analyze(surveyTable(), []string{"Dob", "Iskustvo"})

	assert.Contains(t, result.Groupings, "group_0")
	assert.Contains(t, result.Groupings, "group_1")
	assert.Equal(t, "Dob", result.Groupings["group_0"].Column)
	assert.Equal(t, "Iskustvo", result.Groupings["group_1"].Column)
}

func TestAnalyze_MissingGroupingColumnSkipped(t *testing.T) {
	a := newTestAnalyzer()

	// The absent column is skipped but keeps its positional index, so the
	// surviving column still maps to its caller-given position.
	result := a.Analyze(surveyTable(), []string{"Nepostojeca", "Dob"})

	assert.NotContains(t, result.Groupings, "group_0")
	assert.Contains(t, result.Groupings, "group_1")
	assert.Equal(t, "Dob", result.Groupings["group_1"].Column)
}

func TestAnalyze_DescriptorValuesSorted(t *testing.T) {
	a := newTestAnalyzer()

	tbl := table.New(
		[]string{"Grad", "Q1"},
		[][]string{
			{"Zagreb", "4"},
			{"Ankara", "5"},
			{"Mostar", "3"},
		},
	)

	result := a.Analyze(tbl, []string{"Grad"})
	assert.Equal(t, []string{"Ankara", "Mostar", "Zagreb"}, result.Groupings["group_0"].Values)
}

func TestAnalyze_EmptyPartitionOmittedFromGrouped(t *testing.T) {
	a := newTestAnalyzer()

	// The "C" respondent left every question blank, so its partition yields
	// no records: it stays in the descriptor but not in the group map.
	tbl := table.New(
		[]string{"Grad", "Q1"},
		[][]string{
			{"A", "4"},
			{"A", "5"},
			{"C", ""},
		},
	)

	result := a.Analyze(tbl, []string{"Grad"})

	assert.Equal(t, []string{"A", "C"}, result.Groupings["group_0"].Values)
	assert.Contains(t, result.Grouped["group_0"], "A")
	assert.NotContains(t, result.Grouped["group_0"], "C")
}

func TestAnalyze_AllMissingGroupColumnSkipped(t *testing.T) {
	a := newTestAnalyzer()

	tbl := table.New(
		[]string{"Grad", "Q1"},
		[][]string{
			{"", "4"},
			{"", "5"},
		},
	)

	result := a.Analyze(tbl, []string{"Grad"})
	assert.Empty(t, result.Groupings)
	assert.Empty(t, result.Grouped)
}

func TestAnalyze_NoLikertColumns(t *testing.T) {
	a := newTestAnalyzer()

	tbl := table.New(
		[]string{"Ime", "Grad"},
		[][]string{
			{"Ana", "Zagreb"},
			{"Ivan", "Split"},
		},
	)

	result := a.Analyze(tbl, []string{"Grad"})

	// No Likert data is an empty result, not an error; the boundary decides
	// how to surface it.
	assert.False(t, result.HasData())
	assert.Empty(t, result.Overall)
}

func TestDetectGroupableColumns(t *testing.T) {
	a := newTestAnalyzer()

	columns := a.DetectGroupableColumns(surveyTable())

	// Email is near-unique, Q1/Q2 are Likert; order follows the table.
	assert.Equal(t, []string{"Dob", "Iskustvo"}, columns)
}

func TestDetectGroupableColumns_SingleRow(t *testing.T) {
	a := newTestAnalyzer()

	tbl := table.New(
		[]string{"Dob", "Q1"},
		[][]string{{"18-25", "4"}},
	)

	assert.Empty(t, a.DetectGroupableColumns(tbl))
}
