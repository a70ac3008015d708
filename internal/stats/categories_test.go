package stats

import (
	"testing"

	"finanze/internal/core"
)

func catTx(cents int64, date core.Date, categoryID string) core.Transaction {
	e := tx(core.Expense, cents, date)
	e.CategoryID = categoryID
	return e
}

func TestCategoryBreakdown(t *testing.T) {
	cats := []core.Category{
		{ID: "food", Name: "Food", Type: core.CategoryExpense, Color: "#e53935"},
		{ID: "rent", Name: "Housing", Type: core.CategoryExpense, Color: "#1e88e5"},
	}
	start := core.NewDate(2025, 3, 1)
	end := core.NewDate(2025, 3, 31)
	txs := []core.Transaction{
		catTx(5000, core.NewDate(2025, 3, 2), "food"),
		catTx(80000, core.NewDate(2025, 3, 1), "rent"),
		catTx(3000, core.NewDate(2025, 3, 9), "food"),
		catTx(1000, core.NewDate(2025, 3, 9), "ghost"), // no reference
		catTx(7777, core.NewDate(2025, 4, 2), "food"),  // outside window
		{Type: core.Income, Amount: core.Money{Cents: 999}, Date: core.NewDate(2025, 3, 5), CategoryID: "food"},
	}

	got := CategoryBreakdown(txs, cats, start, end)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	// Sorted descending by value.
	if got[0].CategoryID != "rent" || got[0].Value.Cents != 80000 {
		t.Fatalf("first = %+v, want rent/80000", got[0])
	}
	if got[1].CategoryID != "food" || got[1].Value.Cents != 8000 {
		t.Fatalf("second = %+v, want food/8000", got[1])
	}
	if got[2].CategoryID != "ghost" {
		t.Fatalf("third = %+v, want ghost", got[2])
	}
	if got[2].Name != "Unknown" || got[2].Color == "" {
		t.Fatalf("missing reference should get a neutral label, got %+v", got[2])
	}
	if got[0].Name != "Housing" || got[0].Color != "#1e88e5" {
		t.Fatalf("reference decoration wrong: %+v", got[0])
	}
}

func TestCategoryBreakdownSumsToExpenseTotal(t *testing.T) {
	start := core.NewDate(2025, 3, 1)
	end := core.NewDate(2025, 3, 31)
	txs := []core.Transaction{
		catTx(1234, core.NewDate(2025, 3, 2), "a"),
		catTx(5678, core.NewDate(2025, 3, 3), "b"),
		catTx(910, core.NewDate(2025, 3, 4), "a"),
		tx(core.Income, 5000, core.NewDate(2025, 3, 5)),
	}

	breakdown := CategoryBreakdown(txs, nil, start, end)
	var sum int64
	for _, entry := range breakdown {
		sum += entry.Value.Cents
	}

	totals := PeriodTotals(txs, start, end)
	if sum != totals.Expense.Cents {
		t.Fatalf("breakdown sum %d != expense total %d", sum, totals.Expense.Cents)
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	got := CategoryBreakdown(nil, nil, core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 31))
	if len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %v", got)
	}
}

func TestCategoryBreakdownStableTieOrder(t *testing.T) {
	start := core.NewDate(2025, 3, 1)
	end := core.NewDate(2025, 3, 31)
	txs := []core.Transaction{
		catTx(500, core.NewDate(2025, 3, 2), "b"),
		catTx(500, core.NewDate(2025, 3, 3), "a"),
	}

	got := CategoryBreakdown(txs, nil, start, end)
	if got[0].CategoryID != "b" || got[1].CategoryID != "a" {
		t.Fatalf("tie order not stable by first appearance: %+v", got)
	}
}
