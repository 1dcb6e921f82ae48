package table

import (
	"testing"
)

func sampleTable() *Table {
	return &Table{
		Columns: []string{"Name", "Categories"},
		Rows: []Row{
			{"Name": "Lavender soap", "Categories": "Soaps > Floral"},
			{"Name": "Shampoo", "Categories": "Hair"},
			{"Name": "Rose soap", "Categories": "soaps > floral"},
			{"Name": "Conditioner", "Categories": "Hair"},
		},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		contains  string
		limit     int
		wantNames []string
	}{
		{
			name:      "no filters keeps everything",
			wantNames: []string{"Lavender soap", "Shampoo", "Rose soap", "Conditioner"},
		},
		{
			name:      "category filter is case-insensitive",
			contains:  "SOAPS",
			wantNames: []string{"Lavender soap", "Rose soap"},
		},
		{
			name:      "limit caps rows",
			limit:     2,
			wantNames: []string{"Lavender soap", "Shampoo"},
		},
		{
			name:      "category filter applies before limit",
			contains:  "hair",
			limit:     1,
			wantNames: []string{"Shampoo"},
		},
		{
			name:      "limit larger than table is a no-op",
			limit:     99,
			wantNames: []string{"Lavender soap", "Shampoo", "Rose soap", "Conditioner"},
		},
		{
			name:      "no match keeps nothing",
			contains:  "candles",
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleTable().Filter(tt.contains, tt.limit)
			if len(got.Rows) != len(tt.wantNames) {
				t.Fatalf("rows = %d, want %d", len(got.Rows), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got.Rows[i]["Name"] != want {
					t.Errorf("row %d = %q, want %q", i, got.Rows[i]["Name"], want)
				}
			}
		})
	}
}

func TestFilterWithoutCategoryColumn(t *testing.T) {
	tab := &Table{
		Columns: []string{"Name"},
		Rows:    []Row{{"Name": "Soap"}, {"Name": "Shampoo"}},
	}
	got := tab.Filter("soaps", 0)
	if len(got.Rows) != 2 {
		t.Errorf("missing Categories column must make the filter a no-op, rows = %d", len(got.Rows))
	}
}

func TestColumnRoundTrip(t *testing.T) {
	tab := sampleTable()
	vals := tab.Column("Name")
	if len(vals) != 4 || vals[2] != "Rose soap" {
		t.Fatalf("Column() = %v", vals)
	}
	vals[2] = "Ruža szappan"
	tab.SetColumn("Name", vals)
	if tab.Rows[2]["Name"] != "Ruža szappan" {
		t.Errorf("SetColumn did not update row 2")
	}
}
