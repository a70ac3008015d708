package stats

import (
	"sort"

	"finanze/internal/core"
)

const (
	unknownCategoryName  = "Unknown"
	unknownCategoryColor = "#9e9e9e"
)

// CategoryBreakdown sums expense amounts per category over the inclusive
// calendar-day window and decorates each entry with the reference
// category's name and color, or a neutral "Unknown" label when the
// reference is absent. Entries are sorted descending by value; ties keep
// their first-appearance order. The entry values sum exactly to the
// window's expense total.
func CategoryBreakdown(txs []core.Transaction, cats []core.Category, start, end core.Date) []core.CategoryTotal {
	sums := make(map[string]int64)
	var order []string
	for _, tx := range txs {
		if tx.Type != core.Expense || !inWindow(tx.Date, start, end) {
			continue
		}
		if _, seen := sums[tx.CategoryID]; !seen {
			order = append(order, tx.CategoryID)
		}
		sums[tx.CategoryID] += tx.Amount.Cents
	}

	byID := make(map[string]core.Category, len(cats))
	for _, cat := range cats {
		byID[cat.ID] = cat
	}

	totals := make([]core.CategoryTotal, 0, len(order))
	for _, id := range order {
		entry := core.CategoryTotal{
			CategoryID: id,
			Name:       unknownCategoryName,
			Color:      unknownCategoryColor,
			Value:      core.Money{Cents: sums[id]},
		}
		if cat, ok := byID[id]; ok {
			entry.Name = cat.Name
			entry.Color = cat.Color
		}
		totals = append(totals, entry)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Value.Cents > totals[j].Value.Cents
	})
	return totals
}
