package app

import "legumedash/domain/nutrient"

// DistinctCategories returns the unique non-empty categories in first-seen
// order. The order only depends on the table, so it is stable across calls.
func DistinctCategories(table *nutrient.Table) []string {
	seen := make(map[string]bool)
	var out []string
	for row := 0; row < table.RowCount(); row++ {
		c := table.Category(row)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
