package table

import (
	"math"
	"strconv"
	"strings"
)

// Column is a single named column of raw cell text. An empty (or
// whitespace-only) cell is a missing value.
type Column struct {
	Name  string
	Cells []string
}

// Table is an immutable, request-scoped columnar view of one uploaded CSV.
// All columns have the same length.
type Table struct {
	columns []Column
}

// New builds a table from a header row and aligned data rows.
func New(headers []string, rows [][]string) *Table {
	columns := make([]Column, len(headers))
	for i, name := range headers {
		cells := make([]string, len(rows))
		for r, row := range rows {
			if i < len(row) {
				cells[r] = strings.TrimSpace(row[i])
			}
		}
		columns[i] = Column{Name: name, Cells: cells}
	}
	return &Table{columns: columns}
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0].Cells)
}

// ColumnNames returns column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns the columns in table order.
func (t *Table) Columns() []Column {
	return t.columns
}

// Lookup returns the column with the given name, or false if absent.
func (t *Table) Lookup(name string) (Column, bool) {
	for _, col := range t.columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Select returns the subset of a column's cells at the given row indices.
func (c Column) Select(rows []int) Column {
	cells := make([]string, len(rows))
	for i, r := range rows {
		cells[i] = c.Cells[r]
	}
	return Column{Name: c.Name, Cells: cells}
}

// IsMissing reports whether the cell at row r holds no value.
func (c Column) IsMissing(r int) bool {
	return c.Cells[r] == ""
}

// Numeric coerces every cell to a float64. Missing and non-numeric cells
// become NaN, so callers filter with math.IsNaN instead of tracking a
// separate validity mask.
func (c Column) Numeric() []float64 {
	out := make([]float64, len(c.Cells))
	for i, cell := range c.Cells {
		if cell == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}

// NonMissing returns the cell text of every non-missing cell, in row order.
func (c Column) NonMissing() []string {
	var out []string
	for _, cell := range c.Cells {
		if cell != "" {
			out = append(out, cell)
		}
	}
	return out
}

// DistinctNonMissing returns the distinct non-missing cell values in order of
// first appearance.
func (c Column) DistinctNonMissing() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cell := range c.Cells {
		if cell == "" || seen[cell] {
			continue
		}
		seen[cell] = true
		out = append(out, cell)
	}
	return out
}
