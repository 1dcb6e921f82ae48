// Package table loads delimited product exports of uncertain formatting
// into an in-memory table of string cells. The loader detects the header
// row, field delimiter and character encoding; rows and columns keep their
// original order throughout.
package table

// Row maps a column name to a string cell. Cells are literal strings;
// absent values are the empty string, never a null marker.
type Row map[string]string

// Table is an ordered set of uniquely named columns plus ordered rows.
// Every row holds exactly one cell per column, even if empty.
type Table struct {
	Columns []string
	Rows    []Row
}

// Column returns the cell values of the named column in row order.
func (t *Table) Column(name string) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[name]
	}
	return out
}

// SetColumn replaces the cell values of the named column in row order.
// The values slice must have one entry per row.
func (t *Table) SetColumn(name string, values []string) {
	for i, r := range t.Rows {
		r[name] = values[i]
	}
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
