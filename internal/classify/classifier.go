// Package classify partitions table columns into translate, markup and
// skip sets. Classification is a pure function of column names and cell
// content: name-based vocabularies decide most columns, and a content
// sample catches free-text columns no vocabulary names.
package classify

import (
	"strings"
	"unicode"

	"csvlate/cli/internal/table"
)

// Result is the column partition. Markup is the subset of Translate whose
// content carries HTML that must be preserved as structure; every column
// of the source table appears in exactly one of Translate or Skip.
type Result struct {
	Translate []string
	Markup    []string
	Skip      []string
}

// IsMarkup reports whether the named column is in the markup subset.
func (r Result) IsMarkup(col string) bool {
	for _, c := range r.Markup {
		if c == col {
			return true
		}
	}
	return false
}

// contentSampleSize caps how many non-empty cells the content heuristic reads.
const contentSampleSize = 50

// alphaRatioThreshold is the minimum fraction of sampled cells containing
// at least one letter for a column to count as textual.
const alphaRatioThreshold = 0.3

// outcome is what a matched rule assigns to a column.
type outcome int

const (
	translate outcome = iota
	skip
)

// rule is one predicate/outcome pair in the classification chain.
// Rules are evaluated in priority order; the first match wins.
type rule struct {
	name    string
	match   func(col string, cells func() []string) bool
	outcome outcome
}

// rules is the ordered decision chain for one column. excludeIngredients
// toggles the opt-in ingredient exclusion rule.
func rules(excludeIngredients bool) []rule {
	return []rule{
		{
			name:    "never-translate by name",
			match:   func(col string, _ func() []string) bool { return isNeverTranslate(col) },
			outcome: skip,
		},
		{
			name: "ingredient exclusion",
			match: func(col string, _ func() []string) bool {
				return excludeIngredients && isIngredient(col)
			},
			outcome: skip,
		},
		{
			name: "textual by name",
			match: func(col string, _ func() []string) bool {
				return isTextualByName(col) || isIngredient(col)
			},
			outcome: translate,
		},
		{
			name: "textual by content",
			match: func(_ string, cells func() []string) bool {
				return looksTextual(cells())
			},
			outcome: translate,
		},
	}
}

// Classify partitions the table's columns. A non-empty only set is an
// authoritative override: named columns translate, all others skip, and
// every heuristic rule is bypassed.
func Classify(t *table.Table, excludeIngredients bool, only map[string]bool) Result {
	var res Result

	if len(only) > 0 {
		for _, col := range t.Columns {
			if only[col] {
				res.Translate = append(res.Translate, col)
				if isHTMLLike(col) {
					res.Markup = append(res.Markup, col)
				}
			} else {
				res.Skip = append(res.Skip, col)
			}
		}
		return res
	}

	chain := rules(excludeIngredients)
	for _, col := range t.Columns {
		out := classifyColumn(chain, col, t)
		if out == translate {
			res.Translate = append(res.Translate, col)
			if isHTMLLike(col) {
				res.Markup = append(res.Markup, col)
			}
		} else {
			res.Skip = append(res.Skip, col)
		}
	}
	return res
}

// classifyColumn runs the rule chain; an unmatched column skips.
func classifyColumn(chain []rule, col string, t *table.Table) outcome {
	cells := func() []string { return t.Column(col) }
	for _, r := range chain {
		if r.match(col, cells) {
			return r.outcome
		}
	}
	return skip
}

func isNeverTranslate(col string) bool {
	c := strings.ToLower(col)
	if containsAny(c, neverTranslateKeys) {
		return true
	}
	// Attribute labels are controlled vocabulary, not prose.
	if strings.Contains(c, attributeNameKey) && strings.Contains(c, attributeNameSuffix) {
		return true
	}
	return false
}

func isIngredient(col string) bool {
	return containsAny(strings.ToLower(col), ingredientsKeys)
}

func isTextualByName(col string) bool {
	c := strings.ToLower(col)
	if strings.Contains(c, attributeNameKey) && strings.Contains(c, attributeValueSuffix) {
		return true
	}
	return containsAny(c, textualKeys)
}

func isHTMLLike(col string) bool {
	return containsAny(strings.ToLower(col), htmlLikeKeys)
}

// looksTextual samples the first contentSampleSize non-empty cells and
// tests whether enough of them contain a letter. An all-empty column is
// not textual.
func looksTextual(cells []string) bool {
	sampled, alpha := 0, 0
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if hasLetter(cell) {
			alpha++
		}
		sampled++
		if sampled == contentSampleSize {
			break
		}
	}
	if sampled == 0 {
		return false
	}
	return float64(alpha)/float64(sampled) >= alphaRatioThreshold
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
