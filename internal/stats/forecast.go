package stats

import (
	"math"

	"finanze/internal/core"
)

const (
	// ForecastDays is the fixed projection horizon.
	ForecastDays = 30
	// trailingWindowCap bounds the income-trend lookback.
	trailingWindowCap = 90
)

// Forecast projects the balance for the next 30 calendar days, one point
// per day starting tomorrow relative to now. The projection starts from
// the net of the entire transaction history, adds a daily income trend
// derived from the trailing window, and subtracts PENDING obligations on
// their exact due day. Each point is rounded to cent precision. now must
// be sampled once by the caller and threaded through; the function never
// reads a clock.
func Forecast(txs []core.Transaction, obligations []core.Obligation, now core.Date) []core.ForecastPoint {
	today := now.CalendarDay()

	var balance int64
	earliest := core.Date{}
	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		balance += tx.Net()
		day := tx.Date.CalendarDay()
		if earliest.IsZero() || day.Time.Before(earliest.Time) {
			earliest = day
		}
	}

	avgDailyIncome := averageDailyIncome(txs, earliest, today)

	// Index pending obligations by due day.
	dueByDay := make(map[core.Date]int64)
	for _, o := range obligations {
		if o.Status != core.ObligationPending || o.DueDate.IsZero() {
			continue
		}
		dueByDay[o.DueDate.CalendarDay()] += o.Amount.Cents
	}

	points := make([]core.ForecastPoint, 0, ForecastDays)
	running := float64(balance)
	for i := 1; i <= ForecastDays; i++ {
		day := today.AddDays(i)
		running += avgDailyIncome
		running -= float64(dueByDay[day])
		running = math.Round(running)
		points = append(points, core.ForecastPoint{
			Date:    day,
			Balance: core.Money{Cents: int64(running)},
		})
	}
	return points
}

// averageDailyIncome computes the income trend over the trailing window:
// min(90, max(1, days elapsed since the earliest transaction)). The
// numerator only includes income rows, so the result is never negative.
func averageDailyIncome(txs []core.Transaction, earliest, today core.Date) float64 {
	windowDays := 1
	if !earliest.IsZero() {
		elapsed := int(today.Time.Sub(earliest.Time).Hours() / 24)
		if elapsed > windowDays {
			windowDays = elapsed
		}
		if windowDays > trailingWindowCap {
			windowDays = trailingWindowCap
		}
	}

	windowStart := today.AddDays(-windowDays)
	var income int64
	for _, tx := range txs {
		if tx.Type != core.Income || tx.Date.IsZero() {
			continue
		}
		day := tx.Date.CalendarDay()
		if day.Time.Before(windowStart.Time) || day.Time.After(today.Time) {
			continue
		}
		income += tx.Amount.Cents
	}
	return float64(income) / float64(windowDays)
}
