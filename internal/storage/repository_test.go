package storage

import (
	"context"
	"path/filepath"
	"testing"

	"finanze/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Append(ctx, core.Transaction{
		Type:        core.Expense,
		Description: "Bread",
		Amount:      core.Money{Cents: 5000},
		Date:        core.NewDate(2025, 3, 15),
		CategoryID:  "cat-food",
		PaymentID:   "pm-cash",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	got := txs[0]
	if got.Type != core.Expense || got.Amount.Cents != 5000 {
		t.Errorf("unexpected transaction %+v", got)
	}
	if got.Date.Year() != 2025 || got.Date.Month() != 3 || got.Date.Day() != 15 {
		t.Errorf("date round trip failed: %v", got.Date)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Append(context.Background(), core.Transaction{
		Type:        core.Expense,
		Description: "x",
		Amount:      core.Money{Cents: 0},
		Date:        core.NewDate(2025, 3, 15),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSoftDeleteHidesFromList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Append(ctx, core.Transaction{
		Type:        core.Expense,
		Description: "Snack",
		Amount:      core.Money{Cents: 300},
		Date:        core.NewDate(2025, 3, 15),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	txs, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("soft-deleted row visible in list: %+v", txs)
	}

	// GetTransaction still sees it, flagged as deleted.
	tx, deleted, err := repo.GetTransaction(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !deleted {
		t.Error("expected deleted flag")
	}
	if tx.Description != "Snack" {
		t.Errorf("unexpected description %q", tx.Description)
	}
}

func TestSyncStatusLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Append(ctx, core.Transaction{
		Type:        core.Income,
		Description: "Salary",
		Amount:      core.Money{Cents: 200000},
		Date:        core.NewDate(2025, 3, 1),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("expected row %d pending, got %+v", id, pending)
	}

	if err := repo.MarkSynced(ctx, id); err != nil {
		t.Fatalf("mark synced: %v", err)
	}

	pending, err = repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending after sync: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected empty pending set, got %+v", pending)
	}
}

func TestObligationLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.AddObligation(ctx, core.Obligation{
		Amount:  core.Money{Cents: 20000},
		DueDate: core.NewDate(2025, 4, 1),
		Status:  core.ObligationPending,
	})
	if err != nil {
		t.Fatalf("add obligation: %v", err)
	}

	obs, err := repo.ListObligations(ctx)
	if err != nil {
		t.Fatalf("list obligations: %v", err)
	}
	if len(obs) != 1 || obs[0].Status != core.ObligationPending {
		t.Fatalf("unexpected obligations %+v", obs)
	}

	if err := repo.SettleObligation(ctx, id); err != nil {
		t.Fatalf("settle: %v", err)
	}

	obs, _ = repo.ListObligations(ctx)
	if obs[0].Status != core.ObligationSettled {
		t.Errorf("expected settled, got %s", obs[0].Status)
	}
}

func TestSeededReferences(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("expected seeded categories")
	}
	if cats[0].ID != "cat-food" {
		t.Errorf("expected cat-food first by position, got %q", cats[0].ID)
	}

	methods, err := repo.ListPaymentMethods(ctx)
	if err != nil {
		t.Fatalf("list payment methods: %v", err)
	}
	if len(methods) == 0 || methods[0].ID != "pm-cash" {
		t.Errorf("expected pm-cash first by position, got %+v", methods)
	}
}
