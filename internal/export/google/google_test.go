package google

import (
	"testing"

	"finanze/internal/core"
)

func TestTransactionRow(t *testing.T) {
	tx := core.Transaction{
		ID:          42,
		Type:        core.Expense,
		Description: "Bread",
		Amount:      core.Money{Cents: 5000},
		Date:        core.NewDate(2025, 3, 15),
		CategoryID:  "cat-food",
		PaymentID:   "pm-cash",
	}

	row := transactionRow(tx)
	if len(row) != 8 {
		t.Fatalf("expected 8 columns, got %d", len(row))
	}
	if row[0] != "42" {
		t.Errorf("expected id column %q, got %v", "42", row[0])
	}
	if row[1] != "2025-03-15" {
		t.Errorf("expected date column %q, got %v", "2025-03-15", row[1])
	}
	if row[4] != 50.0 {
		t.Errorf("expected amount column 50.0, got %v", row[4])
	}
}

func TestTransactionRowEmptyDate(t *testing.T) {
	tx := core.Transaction{ID: 1, Type: core.Expense, Description: "x", Amount: core.Money{Cents: 100}}
	row := transactionRow(tx)
	if row[1] != "" {
		t.Errorf("expected empty date column, got %v", row[1])
	}
}

func TestFindRowByID(t *testing.T) {
	values := [][]any{
		{"ID"},
		{"7", "2025-01-01"},
		{},
		{" 42 "},
		{"13"},
	}

	tests := []struct {
		name string
		id   int64
		want int
	}{
		{"first data row", 7, 1},
		{"whitespace around id", 42, 3},
		{"missing id", 99, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findRowByID(values, tt.id); got != tt.want {
				t.Errorf("findRowByID(%d) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}
