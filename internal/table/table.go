package table

import "fmt"

// Table is an in-memory columnar dataset: an ordered set of column names,
// each mapped to a row-aligned slice of raw cell values.
type Table struct {
	Columns []string
	Cells   map[string][]string
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	t := &Table{
		Columns: append([]string{}, columns...),
		Cells:   make(map[string][]string, len(columns)),
	}
	for _, c := range columns {
		t.Cells[c] = nil
	}
	return t
}

// RowCount returns the number of rows, taken from the first column.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Cells[t.Columns[0]])
}

// Column returns the values of the named column, or nil if absent.
func (t *Table) Column(name string) []string {
	return t.Cells[name]
}

// Cell returns the value at (row, column). Missing cells read as "".
func (t *Table) Cell(row int, column string) string {
	values, ok := t.Cells[column]
	if !ok || row < 0 || row >= len(values) {
		return ""
	}
	return values[row]
}

// AppendRow adds one row. The record must align with the column order.
func (t *Table) AppendRow(record []string) error {
	if len(record) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(record), len(t.Columns))
	}
	for i, c := range t.Columns {
		t.Cells[c] = append(t.Cells[c], record[i])
	}
	return nil
}
