package stats

import (
	"finanze/internal/core"
)

// DailyBalance emits one point per calendar day in the inclusive window
// [start, end]. The running balance is not reset at the period start: it
// is seeded with the net of every transaction dated strictly before start,
// so the series continues an ongoing balance rather than starting at zero.
//
// A single-day window gets a synthetic origin point prepended, carrying
// the balance before that day with zero income and expense, so a
// renderable two-point trend always exists.
func DailyBalance(txs []core.Transaction, start, end core.Date) []core.DayBalancePoint {
	lo := start.CalendarDay()
	hi := end.CalendarDay()
	if hi.Time.Before(lo.Time) {
		return nil
	}

	// Seed with everything strictly before the window.
	var running int64
	perDay := make(map[core.Date][2]int64) // income, expense
	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		day := tx.Date.CalendarDay()
		if day.Time.Before(lo.Time) {
			running += tx.Net()
			continue
		}
		if day.Time.After(hi.Time) {
			continue
		}
		sums := perDay[day]
		switch tx.Type {
		case core.Income:
			sums[0] += tx.Amount.Cents
		case core.Expense:
			sums[1] += tx.Amount.Cents
		}
		perDay[day] = sums
	}

	var series []core.DayBalancePoint
	if lo.Time.Equal(hi.Time) {
		series = append(series, core.DayBalancePoint{
			Date:    lo.AddDays(-1),
			Balance: core.Money{Cents: running},
		})
	}

	for day := lo; !day.Time.After(hi.Time); day = day.AddDays(1) {
		sums := perDay[day]
		running += sums[0] - sums[1]
		series = append(series, core.DayBalancePoint{
			Date:    day,
			Balance: core.Money{Cents: running},
			Income:  core.Money{Cents: sums[0]},
			Expense: core.Money{Cents: sums[1]},
		})
	}
	return series
}
