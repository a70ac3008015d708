package stats

import (
	"testing"

	"finanze/internal/core"
)

func TestDailyBalanceSeedsFromHistory(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, 100000, core.NewDate(2025, 2, 1)), // before window
		tx(core.Expense, 20000, core.NewDate(2025, 2, 15)), // before window
		tx(core.Expense, 5000, core.NewDate(2025, 3, 2)),
		tx(core.Income, 30000, core.NewDate(2025, 3, 3)),
	}

	series := DailyBalance(txs, core.NewDate(2025, 3, 1), core.NewDate(2025, 3, 3))
	if len(series) != 3 {
		t.Fatalf("len = %d, want 3", len(series))
	}

	// Day 1 carries the pre-window net of 80000, untouched.
	if series[0].Balance.Cents != 80000 {
		t.Fatalf("day 1 balance = %d, want 80000", series[0].Balance.Cents)
	}
	if series[1].Balance.Cents != 75000 {
		t.Fatalf("day 2 balance = %d, want 75000", series[1].Balance.Cents)
	}
	if series[2].Balance.Cents != 105000 {
		t.Fatalf("day 3 balance = %d, want 105000", series[2].Balance.Cents)
	}
	if series[1].Expense.Cents != 5000 || series[2].Income.Cents != 30000 {
		t.Fatalf("per-day sums wrong: %+v", series)
	}
}

func TestDailyBalanceSingleDayPrependsOrigin(t *testing.T) {
	day := core.NewDate(2025, 3, 10)
	txs := []core.Transaction{
		tx(core.Income, 100000, day),
	}

	series := DailyBalance(txs, day, day)
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2 (synthetic origin + day)", len(series))
	}
	origin := series[0]
	if origin.Balance.Cents != 0 || origin.Income.Cents != 0 || origin.Expense.Cents != 0 {
		t.Fatalf("origin = %+v, want zero balance and sums", origin)
	}
	if !origin.Date.Equal(day.AddDays(-1).Time) {
		t.Fatalf("origin date = %v, want day before %v", origin.Date, day)
	}
	if series[1].Balance.Cents != 100000 {
		t.Fatalf("day balance = %d, want 100000", series[1].Balance.Cents)
	}
}

func TestDailyBalanceTelescopes(t *testing.T) {
	// The sum of per-day nets equals last balance minus first balance.
	txs := []core.Transaction{
		tx(core.Income, 12345, core.NewDate(2025, 1, 2)),
		tx(core.Expense, 2345, core.NewDate(2025, 1, 4)),
		tx(core.Income, 999, core.NewDate(2025, 1, 4)),
		tx(core.Expense, 7000, core.NewDate(2025, 1, 7)),
		tx(core.Income, 400, core.NewDate(2024, 12, 20)), // seed only
	}

	series := DailyBalance(txs, core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 8))
	if len(series) != 8 {
		t.Fatalf("len = %d, want 8", len(series))
	}

	var net int64
	for _, p := range series {
		net += p.Income.Cents - p.Expense.Cents
	}
	// First point already includes day 1 activity, so compare against the
	// series span plus the first day's own net.
	span := series[len(series)-1].Balance.Cents - series[0].Balance.Cents
	firstDayNet := series[0].Income.Cents - series[0].Expense.Cents
	if net != span+firstDayNet {
		t.Fatalf("telescoping broken: net %d, span %d, first-day %d", net, span, firstDayNet)
	}
}

func TestDailyBalanceEmptyInput(t *testing.T) {
	series := DailyBalance(nil, core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 3))
	if len(series) != 3 {
		t.Fatalf("len = %d, want 3", len(series))
	}
	for _, p := range series {
		if p.Balance.Cents != 0 {
			t.Fatalf("expected flat zero series, got %+v", p)
		}
	}
}

func TestDailyBalanceInvertedWindow(t *testing.T) {
	series := DailyBalance(nil, core.NewDate(2025, 1, 3), core.NewDate(2025, 1, 1))
	if series != nil {
		t.Fatalf("expected nil for inverted window, got %v", series)
	}
}
