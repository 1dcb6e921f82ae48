package table

import (
	"bufio"
	"encoding/csv"
	"os"
)

// Write serializes the table to path as comma-delimited UTF-8 with a byte
// order mark, matching what spreadsheet tools expect from product exports.
// Column and row order mirror the table exactly.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(f)
	if _, err := buf.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		f.Close()
		return err
	}

	w := csv.NewWriter(buf)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return err
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			rec[i] = row[c]
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
