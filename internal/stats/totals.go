// Package stats reconstructs running balances, categorized totals and a
// 30-day cash-flow projection from an unordered transaction log plus a set
// of pending future obligations.
//
// All functions are pure: they read the slices the caller passes in,
// mutate nothing, and never fail. Transactions with a zero or otherwise
// unusable date are treated as non-matching and excluded from sums.
// Comparisons only ever look at the calendar-day component of a date; any
// time-of-day or zone offset a timestamp carries is stripped first.
package stats

import (
	"finanze/internal/core"
)

// PeriodTotals sums income and expense over the inclusive calendar-day
// window [start, end]. An empty or fully filtered input yields zeros,
// never an error.
func PeriodTotals(txs []core.Transaction, start, end core.Date) core.PeriodTotals {
	var income, expense, fixed int64
	for _, tx := range txs {
		if !inWindow(tx.Date, start, end) {
			continue
		}
		switch tx.Type {
		case core.Income:
			income += tx.Amount.Cents
		case core.Expense:
			expense += tx.Amount.Cents
			if tx.Fixed {
				fixed += tx.Amount.Cents
			}
		}
	}
	return core.PeriodTotals{
		Income:          core.Money{Cents: income},
		Expense:         core.Money{Cents: expense},
		FixedExpense:    core.Money{Cents: fixed},
		VariableExpense: core.Money{Cents: expense - fixed},
		Balance:         core.Money{Cents: income - expense},
	}
}

// inWindow reports whether the transaction day falls inside the inclusive
// [start, end] day window. Zero dates never match.
func inWindow(d core.Date, start, end core.Date) bool {
	if d.IsZero() {
		return false
	}
	day := d.CalendarDay().Time
	lo := start.CalendarDay().Time
	hi := end.CalendarDay().Time
	return !day.Before(lo) && !day.After(hi)
}
