// Package classify tags survey table columns as Likert questions or
// grouping candidates.
package classify

import (
	"math"
	"strconv"
	"strings"

	"lsparrow/domain/table"
	"lsparrow/internal/config"
)

// multiselectSeparator marks answers where a respondent picked several
// options in one cell; such columns are useless for partitioning.
const multiselectSeparator = ";"

// Classifier applies the column heuristics with configured thresholds.
type Classifier struct {
	likertMin            float64
	likertMax            float64
	maxLikertDistinct    int
	multiselectThreshold float64
	uniqueRatioThreshold float64
}

// NewClassifier creates a classifier from analysis configuration.
func NewClassifier(cfg config.AnalysisConfig) *Classifier {
	return &Classifier{
		likertMin:            1,
		likertMax:            5,
		maxLikertDistinct:    5,
		multiselectThreshold: cfg.MultiselectThreshold,
		uniqueRatioThreshold: cfg.UniqueRatioThreshold,
	}
}

// IsLikert reports whether a column holds 1-5 scale responses: at least one
// numeric value, every distinct numeric value inside the scale range, and no
// more distinct values than scale points.
func (c *Classifier) IsLikert(col table.Column) bool {
	distinct := make(map[float64]bool)
	for _, v := range col.Numeric() {
		if math.IsNaN(v) {
			continue
		}
		if v < c.likertMin || v > c.likertMax {
			return false
		}
		distinct[v] = true
	}
	return len(distinct) > 0 && len(distinct) <= c.maxLikertDistinct
}

// LikertColumns returns the Likert columns in table order.
func (c *Classifier) LikertColumns(tbl *table.Table) []table.Column {
	var out []table.Column
	for _, col := range tbl.Columns() {
		if c.IsLikert(col) {
			out = append(out, col)
		}
	}
	return out
}

// IsGroupable reports whether a column can partition respondents. It is used
// in column-discovery mode, when the caller has not picked grouping columns
// explicitly. A single-row table has no groupable columns at all.
func (c *Classifier) IsGroupable(tbl *table.Table, col table.Column) bool {
	if tbl.RowCount() <= 1 {
		return false
	}
	if c.IsLikert(col) {
		return false
	}
	// Uniformly numeric columns are excluded even at low cardinality, so a
	// score column never masquerades as a respondent group.
	if isNumericColumn(col) {
		return false
	}
	if c.isMultiselect(col) {
		return false
	}
	if c.isNearUnique(col) {
		return false
	}
	return true
}

// isNumericColumn reports whether every non-missing cell parses as a number.
// A column with no values at all counts as numeric, matching how a fully
// blank column would be typed on ingestion.
func isNumericColumn(col table.Column) bool {
	for _, cell := range col.Cells {
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return true
}

// isMultiselect reports whether more than the configured fraction of
// non-missing cells contain the multi-select separator.
func (c *Classifier) isMultiselect(col table.Column) bool {
	nonMissing := col.NonMissing()
	if len(nonMissing) == 0 {
		return false
	}
	withSeparator := 0
	for _, cell := range nonMissing {
		if strings.Contains(cell, multiselectSeparator) {
			withSeparator++
		}
	}
	return float64(withSeparator)/float64(len(nonMissing)) > c.multiselectThreshold
}

// isNearUnique reports whether the column looks ID-like: the ratio of
// distinct values to non-missing values meets the threshold. This only trips
// on high-cardinality columns; a column with one repeated value stays
// groupable.
func (c *Classifier) isNearUnique(col table.Column) bool {
	nonMissing := col.NonMissing()
	if len(nonMissing) == 0 {
		return true
	}
	distinct := len(col.DistinctNonMissing())
	return float64(distinct)/float64(len(nonMissing)) >= c.uniqueRatioThreshold
}
