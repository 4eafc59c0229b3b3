// Package analyzer orchestrates classification and statistics into the
// survey analysis result.
package analyzer

import (
	"fmt"
	"sort"

	"lsparrow/domain/survey"
	"lsparrow/domain/table"
	"lsparrow/internal/classify"
	"lsparrow/internal/config"
	"lsparrow/internal/statistics"
)

// Analyzer produces overall and group-partitioned statistics for the Likert
// questions of one survey table. It holds no per-request state, so one
// instance serves concurrent requests.
type Analyzer struct {
	classifier *classify.Classifier
	engine     *statistics.Engine
}

// New creates an analyzer from analysis configuration.
func New(cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{
		classifier: classify.NewClassifier(cfg),
		engine:     statistics.NewEngine(cfg),
	}
}

// Analyze computes overall statistics for every Likert question, plus
// per-group statistics for each selected grouping column. Grouping columns
// keep their caller-given order and are assigned positional keys
// ("group_0", "group_1", ...). A table without Likert columns yields an
// empty overall list, not an error; the boundary decides how to surface it.
func (a *Analyzer) Analyze(tbl *table.Table, groupingColumns []string) survey.Result {
	likertColumns := a.classifier.LikertColumns(tbl)

	result := survey.Result{
		Overall:   a.computeRecords(likertColumns),
		Grouped:   make(map[string]map[string][]survey.StatsRecord),
		Groupings: make(map[string]survey.GroupingInfo),
	}

	for idx, name := range groupingColumns {
		groupCol, ok := tbl.Lookup(name)
		if !ok {
			continue
		}

		distinct := groupCol.DistinctNonMissing()
		if len(distinct) == 0 {
			continue
		}

		key := fmt.Sprintf("group_%d", idx)
		result.Groupings[key] = survey.GroupingInfo{
			Label:  name,
			Column: name,
			Values: sortedCopy(distinct),
		}
		result.Grouped[key] = a.computeGroupRecords(groupCol, distinct, likertColumns)
	}

	return result
}

// DetectGroupableColumns returns the columns usable for grouping, preserving
// table column order. This is the column-discovery mode used when the caller
// has not selected grouping columns.
func (a *Analyzer) DetectGroupableColumns(tbl *table.Table) []string {
	columns := []string{}
	for _, col := range tbl.Columns() {
		if a.classifier.IsGroupable(tbl, col) {
			columns = append(columns, col.Name)
		}
	}
	return columns
}

// computeRecords runs the engine over full question columns, keeping only
// questions that produced a record.
func (a *Analyzer) computeRecords(likertColumns []table.Column) []survey.StatsRecord {
	records := []survey.StatsRecord{}
	for _, col := range likertColumns {
		if record, ok := a.engine.Compute(col.Name, col.Numeric()); ok {
			records = append(records, record)
		}
	}
	return records
}

// computeGroupRecords partitions rows by exact value equality on the
// grouping column and computes per-question records for each partition.
// Group values whose partition yields no records at all are left out of the
// map; they still appear in the grouping descriptor.
func (a *Analyzer) computeGroupRecords(groupCol table.Column, values []string, likertColumns []table.Column) map[string][]survey.StatsRecord {
	groups := make(map[string][]survey.StatsRecord)

	for _, value := range values {
		rows := rowsEqual(groupCol, value)

		records := []survey.StatsRecord{}
		for _, col := range likertColumns {
			sample := col.Select(rows).Numeric()
			if record, ok := a.engine.Compute(col.Name, sample); ok {
				records = append(records, record)
			}
		}

		if len(records) > 0 {
			groups[value] = records
		}
	}

	return groups
}

// rowsEqual returns the indices of rows whose cell equals the group value.
func rowsEqual(col table.Column, value string) []int {
	var rows []int
	for r, cell := range col.Cells {
		if cell == value {
			rows = append(rows, r)
		}
	}
	return rows
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
