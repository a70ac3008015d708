// Package worker replays locally stored transactions into the external
// Google Sheets archive, driven by AMQP messages with a periodic scan
// as backup.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finanze/internal/amqp"
	"finanze/internal/core"
	"finanze/internal/storage"
)

// TransactionExporter is the outbound archive surface. The Google
// Sheets client satisfies it.
type TransactionExporter interface {
	ExportTransaction(ctx context.Context, tx core.Transaction) error
	RemoveTransaction(ctx context.Context, id int64) error
}

// SyncWorker handles synchronization of transactions from SQLite to the
// external archive.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	exporter  TransactionExporter
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, exporter TransactionExporter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	tx, deleted, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if deleted {
		// A delete raced the sync message; nothing to export.
		slog.InfoContext(ctx, "Transaction deleted before sync, skipping", "id", msg.ID)
		return w.storage.MarkSynced(ctx, msg.ID)
	}

	if err := w.exportTransaction(ctx, tx.ID, tx); err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}

	return nil
}

// HandleDeleteMessage processes a single transaction delete message from AMQP
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.TransactionDeleteMessage) error {
	slog.InfoContext(ctx, "Processing delete message",
		"id", msg.ID)

	if w.exporter == nil {
		slog.WarnContext(ctx, "No exporter configured, skipping archive deletion",
			"id", msg.ID)
		return nil
	}

	if err := w.exporter.RemoveTransaction(ctx, msg.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to remove transaction from archive",
			"id", msg.ID,
			"error", err,
			"timestamp", msg.Timestamp)
		return fmt.Errorf("remove transaction from archive: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, msg.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark delete as synced", "id", msg.ID, "error", err)
	}

	slog.InfoContext(ctx, "Successfully removed transaction from archive",
		"id", msg.ID,
		"timestamp", msg.Timestamp)

	return nil
}

// ProcessPendingTransactions processes any transactions that haven't been
// synced yet. This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingTransactions(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		tx, deleted, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get transaction", "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}

		if deleted {
			if err := w.removeFromArchive(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to propagate deletion", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.exportTransaction(ctx, p.ID, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains the pending backlog at worker startup. Useful
// to recover from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		tx, deleted, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get transaction for startup sync",
				"id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			errorCount++
			continue
		}

		if deleted {
			if err := w.removeFromArchive(ctx, p.ID); err != nil {
				errorCount++
				continue
			}
			successCount++
			continue
		}

		if err := w.exportTransaction(ctx, p.ID, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}

		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) exportTransaction(ctx context.Context, id int64, tx core.Transaction) error {
	if err := w.exporter.ExportTransaction(ctx, tx); err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to archive: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
		// Don't return error here - the sync actually worked
	}

	slog.InfoContext(ctx, "Successfully synced transaction",
		"id", id,
		"description", tx.Description,
		"amount_cents", tx.Amount.Cents)

	return nil
}

func (w *SyncWorker) removeFromArchive(ctx context.Context, id int64) error {
	if err := w.exporter.RemoveTransaction(ctx, id); err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return err
	}
	return w.storage.MarkSynced(ctx, id)
}
