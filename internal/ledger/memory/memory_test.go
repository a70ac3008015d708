package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"finanze/internal/core"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	s := New(
		[]core.Category{{ID: "c1", Name: "Food", Type: core.CategoryExpense}},
		[]core.PaymentMethod{{ID: "p1", Name: "Cash"}},
		nil,
	)

	id, err := s.Append(context.Background(), core.Transaction{
		Type:        core.Expense,
		Date:        core.NewDate(2025, 1, 1),
		Description: "t",
		Amount:      core.Money{Cents: 123},
		CategoryID:  "c1",
	})
	if err != nil || id != 1 {
		t.Fatalf("unexpected append: id=%d err=%v", id, err)
	}

	txs, err := s.ListTransactions(context.Background())
	if err != nil || len(txs) != 1 || txs[0].ID != 1 {
		t.Fatalf("unexpected list: txs=%v err=%v", txs, err)
	}
}

func TestMemoryStoreAppendValidates(t *testing.T) {
	s := New(nil, nil, nil)
	_, err := s.Append(context.Background(), core.Transaction{Type: core.Expense})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := New(nil, nil, nil)
	id, _ := s.Append(context.Background(), core.Transaction{
		Type: core.Income, Date: core.NewDate(2025, 1, 1), Description: "x", Amount: core.Money{Cents: 1},
	})
	if err := s.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	txs, _ := s.ListTransactions(context.Background())
	if len(txs) != 0 {
		t.Fatalf("expected empty store, got %v", txs)
	}
	// Unknown id is a no-op.
	if err := s.Delete(context.Background(), 999); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
}

func TestMemoryStoreObligations(t *testing.T) {
	s := New(nil, nil, nil)
	_, err := s.AddObligation(context.Background(), core.Obligation{
		Amount: core.Money{Cents: 5000}, DueDate: core.NewDate(2025, 6, 1), Status: core.ObligationPending,
	})
	if err != nil {
		t.Fatalf("add obligation: %v", err)
	}
	obs, err := s.ListObligations(context.Background())
	if err != nil || len(obs) != 1 {
		t.Fatalf("unexpected obligations: %v err=%v", obs, err)
	}
}

func TestNewFromFilesSeedsAndDedupe(t *testing.T) {
	dir := t.TempDir()
	// No files -> defaults
	s := NewFromFiles(dir)
	cats, _ := s.ListCategories(context.Background())
	methods, _ := s.ListPaymentMethods(context.Background())
	if len(cats) == 0 || len(methods) == 0 {
		t.Fatalf("expected defaults when files missing")
	}

	mustWrite := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite("seed_categories.txt", "# header\nFood\nRent\nFood\n\n")
	mustWrite("seed_payment_methods.txt", "Cash\nCash\nVisa\n")

	s = NewFromFiles(dir)
	cats, _ = s.ListCategories(context.Background())
	methods, _ = s.ListPaymentMethods(context.Background())
	if len(cats) != 2 || cats[0].Name != "Food" || cats[1].Name != "Rent" {
		t.Fatalf("unexpected cats: %v", cats)
	}
	if len(methods) != 2 || methods[0].Name != "Cash" || methods[1].Name != "Visa" {
		t.Fatalf("unexpected methods: %v", methods)
	}
}
