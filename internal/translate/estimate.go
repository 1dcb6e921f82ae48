package translate

import (
	"unicode/utf8"

	"csvlate/cli/internal/table"
)

// ColumnEstimate is the character cost of translating one column.
type ColumnEstimate struct {
	Column string
	Chars  int
}

// Estimate counts the characters the translator would be sent for the
// given columns, per column and in total, without any network traffic.
// Counts are runes, matching how the provider bills characters.
func Estimate(t *table.Table, cols []string) ([]ColumnEstimate, int) {
	out := make([]ColumnEstimate, 0, len(cols))
	total := 0
	for _, col := range cols {
		n := 0
		for _, cell := range t.Column(col) {
			n += utf8.RuneCountInString(cell)
		}
		out = append(out, ColumnEstimate{Column: col, Chars: n})
		total += n
	}
	return out, total
}
