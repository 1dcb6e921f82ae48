package classify

import (
	"fmt"
	"reflect"
	"testing"

	"csvlate/cli/internal/table"
)

func tableWith(cols []string, rows ...table.Row) *table.Table {
	return &table.Table{Columns: cols, Rows: rows}
}

func TestClassifyByName(t *testing.T) {
	tests := []struct {
		name string
		col  string
		want outcome
	}{
		{name: "sku skips", col: "SKU", want: skip},
		{name: "regular price skips", col: "Regular price", want: skip},
		{name: "categories skip", col: "Categories", want: skip},
		{name: "tags skip", col: "Tags", want: skip},
		{name: "name translates", col: "Name", want: translate},
		{name: "description translates", col: "Description", want: translate},
		{name: "short description translates", col: "Short description", want: translate},
		{name: "seo meta translates", col: "Meta: rank_math_title", want: translate},
		{name: "attribute label skips", col: "Attribute 1 name", want: skip},
		{name: "attribute values translate", col: "Attribute 1 value(s)", want: translate},
		{name: "ingredients translate by default", col: "Ingredients", want: translate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := tableWith([]string{tt.col}, table.Row{tt.col: "some value"})
			res := Classify(tab, false, nil)

			got := skip
			if len(res.Translate) == 1 {
				got = translate
			}
			if got != tt.want {
				t.Errorf("Classify(%q) outcome = %v, want %v", tt.col, got, tt.want)
			}
		})
	}
}

func TestClassifyWooCommerceHeader(t *testing.T) {
	tab := tableWith(
		[]string{"Name", "SKU", "Regular price", "Description"},
		table.Row{"Name": "Soap", "SKU": "S-1", "Regular price": "4.99", "Description": "<p>Nice</p>"},
	)
	res := Classify(tab, false, nil)

	if !reflect.DeepEqual(res.Translate, []string{"Name", "Description"}) {
		t.Errorf("Translate = %v", res.Translate)
	}
	if !reflect.DeepEqual(res.Markup, []string{"Description"}) {
		t.Errorf("Markup = %v", res.Markup)
	}
	if !reflect.DeepEqual(res.Skip, []string{"SKU", "Regular price"}) {
		t.Errorf("Skip = %v", res.Skip)
	}
}

func TestClassifyIngredientExclusion(t *testing.T) {
	tab := tableWith([]string{"Ingredienti"}, table.Row{"Ingredienti": "aqua, glycerin"})

	res := Classify(tab, false, nil)
	if len(res.Translate) != 1 {
		t.Errorf("excludeIngredients=false: Translate = %v, want [Ingredienti]", res.Translate)
	}

	res = Classify(tab, true, nil)
	if len(res.Skip) != 1 {
		t.Errorf("excludeIngredients=true: Skip = %v, want [Ingredienti]", res.Skip)
	}
}

func TestClassifyByContent(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  outcome
	}{
		{
			name:  "prose cells translate",
			cells: []string{"hand made soap", "gentle on skin", "lavender scent"},
			want:  translate,
		},
		{
			name:  "numeric cells skip",
			cells: []string{"12.5", "99", "1 000", "17,5"},
			want:  skip,
		},
		{
			name:  "all empty skips",
			cells: []string{"", "", ""},
			want:  skip,
		},
		{
			name:  "mostly numeric below threshold skips",
			cells: []string{"100", "200", "300", "400", "500", "600", "700", "some text"},
			want:  skip,
		},
		{
			name:  "mixed above threshold translates",
			cells: []string{"100", "gentle", "mild"},
			want:  translate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const col = "Custom field"
			rows := make([]table.Row, len(tt.cells))
			for i, c := range tt.cells {
				rows[i] = table.Row{col: c}
			}
			res := Classify(tableWith([]string{col}, rows...), false, nil)

			got := skip
			if len(res.Translate) == 1 {
				got = translate
			}
			if got != tt.want {
				t.Errorf("outcome = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyContentSampleCap(t *testing.T) {
	// First 50 non-empty cells are numeric; prose beyond the sample window
	// must not change the outcome.
	const col = "Custom field"
	rows := make([]table.Row, 0, 60)
	for i := 0; i < 50; i++ {
		rows = append(rows, table.Row{col: fmt.Sprintf("%d", i)})
	}
	for i := 0; i < 10; i++ {
		rows = append(rows, table.Row{col: "plenty of prose here"})
	}
	res := Classify(tableWith([]string{col}, rows...), false, nil)
	if len(res.Skip) != 1 {
		t.Errorf("sample cap ignored, Translate = %v", res.Translate)
	}
}

func TestClassifyOnlyColumnsOverride(t *testing.T) {
	tab := tableWith(
		[]string{"Name", "SKU", "Description"},
		table.Row{"Name": "Soap", "SKU": "S-1", "Description": "<p>x</p>"},
	)
	only := map[string]bool{"SKU": true, "Description": true}
	res := Classify(tab, false, only)

	// The override beats every heuristic, including never-translate.
	if !reflect.DeepEqual(res.Translate, []string{"SKU", "Description"}) {
		t.Errorf("Translate = %v", res.Translate)
	}
	if !reflect.DeepEqual(res.Markup, []string{"Description"}) {
		t.Errorf("Markup = %v", res.Markup)
	}
	if !reflect.DeepEqual(res.Skip, []string{"Name"}) {
		t.Errorf("Skip = %v", res.Skip)
	}
}

func TestClassifyInvariants(t *testing.T) {
	tab := tableWith(
		[]string{"Name", "SKU", "Description", "Ingredients", "Custom field"},
		table.Row{"Name": "Soap", "SKU": "S-1", "Description": "<p>x</p>", "Ingredients": "aqua", "Custom field": "text here"},
	)
	res := Classify(tab, false, nil)

	// markup subset of translate
	for _, m := range res.Markup {
		found := false
		for _, c := range res.Translate {
			if c == m {
				found = true
			}
		}
		if !found {
			t.Errorf("markup column %q not in translate set", m)
		}
	}

	// every column in exactly one of translate/skip
	counts := map[string]int{}
	for _, c := range res.Translate {
		counts[c]++
	}
	for _, c := range res.Skip {
		counts[c]++
	}
	for _, c := range tab.Columns {
		if counts[c] != 1 {
			t.Errorf("column %q appears %d times across translate/skip, want 1", c, counts[c])
		}
	}

	// idempotence
	again := Classify(tab, false, nil)
	if !reflect.DeepEqual(res, again) {
		t.Errorf("classification not idempotent: %v vs %v", res, again)
	}
}
