package table

import "strings"

// CategoryColumn is the column the category filter matches against.
const CategoryColumn = "Categories"

// Filter narrows the table to a row subset. When categoryContains is
// non-empty and a Categories column exists, only rows whose cell contains
// the substring (case-insensitive) are kept; without that column the
// predicate is a no-op. A positive limit then caps the result to the first
// limit rows. Original row order is preserved; the receiver is unchanged.
func (t *Table) Filter(categoryContains string, limit int) *Table {
	rows := t.Rows

	if categoryContains != "" && t.HasColumn(CategoryColumn) {
		needle := strings.ToLower(categoryContains)
		kept := make([]Row, 0, len(rows))
		for _, r := range rows {
			if strings.Contains(strings.ToLower(r[CategoryColumn]), needle) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return &Table{Columns: t.Columns, Rows: rows}
}
