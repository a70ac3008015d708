package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"finanze/internal/amqp"
	"finanze/internal/core"
	"finanze/internal/storage"
)

type fakeExporter struct {
	exported []core.Transaction
	removed  []int64
	fail     bool
}

func (f *fakeExporter) ExportTransaction(_ context.Context, tx core.Transaction) error {
	if f.fail {
		return errors.New("archive unavailable")
	}
	f.exported = append(f.exported, tx)
	return nil
}

func (f *fakeExporter) RemoveTransaction(_ context.Context, id int64) error {
	if f.fail {
		return errors.New("archive unavailable")
	}
	f.removed = append(f.removed, id)
	return nil
}

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedTransaction(t *testing.T, repo *storage.SQLiteRepository) int64 {
	t.Helper()
	id, err := repo.Append(context.Background(), core.Transaction{
		Type:        core.Expense,
		Description: "Groceries",
		Amount:      core.Money{Cents: 4200},
		Date:        core.NewDate(2025, 3, 15),
		CategoryID:  "cat-food",
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return id
}

func TestHandleSyncMessageExports(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	w := NewSyncWorker(repo, exporter, 10)
	ctx := context.Background()

	id := seedTransaction(t, repo)

	msg := amqp.NewTransactionSyncMessage(id, 1)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("handle sync: %v", err)
	}

	if len(exporter.exported) != 1 {
		t.Fatalf("expected 1 exported transaction, got %d", len(exporter.exported))
	}
	if exporter.exported[0].Description != "Groceries" {
		t.Errorf("unexpected exported description %q", exporter.exported[0].Description)
	}

	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("get pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending rows after sync, got %d", len(pending))
	}
}

func TestHandleSyncMessageSkipsDeleted(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	w := NewSyncWorker(repo, exporter, 10)
	ctx := context.Background()

	id := seedTransaction(t, repo)
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(id, 1)); err != nil {
		t.Fatalf("handle sync: %v", err)
	}
	if len(exporter.exported) != 0 {
		t.Errorf("deleted transaction must not be exported")
	}
}

func TestHandleSyncMessageMarksErrorOnFailure(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{fail: true}
	w := NewSyncWorker(repo, exporter, 10)
	ctx := context.Background()

	id := seedTransaction(t, repo)

	if err := w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(id, 1)); err == nil {
		t.Fatal("expected error when archive is unavailable")
	}

	// Row stays out of the pending set; error state needs manual attention.
	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("get pending: %v", err)
	}
	for _, p := range pending {
		if p.ID == id {
			t.Errorf("failed transaction should not be pending, got %+v", p)
		}
	}
}

func TestHandleDeleteMessage(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	w := NewSyncWorker(repo, exporter, 10)
	ctx := context.Background()

	id := seedTransaction(t, repo)
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := w.HandleDeleteMessage(ctx, amqp.NewTransactionDeleteMessage(id)); err != nil {
		t.Fatalf("handle delete: %v", err)
	}
	if len(exporter.removed) != 1 || exporter.removed[0] != id {
		t.Errorf("expected removal of id %d, got %v", id, exporter.removed)
	}
}

func TestProcessPendingTransactions(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	w := NewSyncWorker(repo, exporter, 10)
	ctx := context.Background()

	seedTransaction(t, repo)
	seedTransaction(t, repo)

	if err := w.ProcessPendingTransactions(ctx); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(exporter.exported) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(exporter.exported))
	}

	// Second pass finds nothing left.
	exporter.exported = nil
	if err := w.ProcessPendingTransactions(ctx); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(exporter.exported) != 0 {
		t.Errorf("expected no re-exports, got %d", len(exporter.exported))
	}
}
