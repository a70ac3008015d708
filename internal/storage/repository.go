package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finanze/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Sync states for the worker's bookkeeping.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.TransactionWriter.
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (type, description, amount_cents, tx_date, category_id, payment_id, supplier_id, fixed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(tx.Type), tx.Description, tx.Amount.Cents,
		tx.Date.CalendarDay().Format(dateLayout),
		tx.CategoryID, tx.PaymentID, tx.SupplierID, boolToInt(tx.Fixed))
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"type", tx.Type,
		"description", tx.Description,
		"amount_cents", tx.Amount.Cents,
		"date", tx.Date.CalendarDay().Format(dateLayout))

	return id, nil
}

// Delete implements ledger.TransactionDeleter as a soft delete, so the
// sync worker can still propagate the removal downstream.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted = 1, sync_status = ?, version = version + 1 WHERE id = ?`,
		SyncPending, id)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	return nil
}

// ListTransactions implements ledger.TransactionLister.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, description, amount_cents, tx_date, category_id, payment_id, supplier_id, fixed
		FROM transactions WHERE deleted = 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx      core.Transaction
			txType  string
			rawDate string
			fixed   int
		)
		if err := rows.Scan(&tx.ID, &txType, &tx.Description, &tx.Amount.Cents,
			&rawDate, &tx.CategoryID, &tx.PaymentID, &tx.SupplierID, &fixed); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.TransactionType(txType)
		tx.Fixed = fixed != 0
		// Rows with a malformed date keep a zero Date and drop out of the
		// aggregation windows instead of failing the whole listing.
		if parsed, err := time.Parse(dateLayout, rawDate); err == nil {
			tx.Date = core.Date{Time: parsed}
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// GetTransaction retrieves a single row by id, including soft-deleted
// ones: the sync worker needs those to propagate deletions.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, bool, error) {
	var (
		tx      core.Transaction
		txType  string
		rawDate string
		fixed   int
		deleted int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, type, description, amount_cents, tx_date, category_id, payment_id, supplier_id, fixed, deleted
		FROM transactions WHERE id = ?`, id).
		Scan(&tx.ID, &txType, &tx.Description, &tx.Amount.Cents,
			&rawDate, &tx.CategoryID, &tx.PaymentID, &tx.SupplierID, &fixed, &deleted)
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("get transaction %d: %w", id, err)
	}
	tx.Type = core.TransactionType(txType)
	tx.Fixed = fixed != 0
	if parsed, err := time.Parse(dateLayout, rawDate); err == nil {
		tx.Date = core.Date{Time: parsed}
	}
	return tx, deleted != 0, nil
}

// AddObligation stores a pending obligation.
func (r *SQLiteRepository) AddObligation(ctx context.Context, o core.Obligation) (int64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO obligations (amount_cents, due_date, status) VALUES (?, ?, ?)`,
		o.Amount.Cents, o.DueDate.CalendarDay().Format(dateLayout), string(o.Status))
	if err != nil {
		return 0, fmt.Errorf("insert obligation: %w", err)
	}
	return res.LastInsertId()
}

// SettleObligation flips an obligation to SETTLED.
func (r *SQLiteRepository) SettleObligation(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE obligations SET status = ? WHERE id = ?`, string(core.ObligationSettled), id)
	if err != nil {
		return fmt.Errorf("settle obligation: %w", err)
	}
	return nil
}

// ListObligations implements ledger.ObligationLister.
func (r *SQLiteRepository) ListObligations(ctx context.Context) ([]core.Obligation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, due_date, status FROM obligations ORDER BY due_date`)
	if err != nil {
		return nil, fmt.Errorf("list obligations: %w", err)
	}
	defer rows.Close()

	var obs []core.Obligation
	for rows.Next() {
		var (
			o       core.Obligation
			rawDate string
			status  string
		)
		if err := rows.Scan(&o.ID, &o.Amount.Cents, &rawDate, &status); err != nil {
			return nil, fmt.Errorf("scan obligation: %w", err)
		}
		o.Status = core.ObligationStatus(status)
		if parsed, err := time.Parse(dateLayout, rawDate); err == nil {
			o.DueDate = core.Date{Time: parsed}
		}
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

// ListCategories implements ledger.ReferenceReader. Position order is
// preserved: the extractor's fallback rules depend on it.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, color FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		var ct string
		if err := rows.Scan(&c.ID, &c.Name, &ct, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Type = core.CategoryType(ct)
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *SQLiteRepository) ListPaymentMethods(ctx context.Context) ([]core.PaymentMethod, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color FROM payment_methods ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	var methods []core.PaymentMethod
	for rows.Next() {
		var pm core.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.Name, &pm.Color); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		methods = append(methods, pm)
	}
	return methods, rows.Err()
}

func (r *SQLiteRepository) ListSuppliers(ctx context.Context) ([]core.Supplier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM suppliers ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []core.Supplier
	for rows.Next() {
		var s core.Supplier
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

// PendingSyncTransaction is the minimal row the worker needs to replay a
// missed sync.
type PendingSyncTransaction struct {
	ID      int64
	Version int64
}

// GetPendingSync returns transactions that have not reached the export
// yet. Backup path for lost AMQP messages.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, version FROM transactions WHERE sync_status = ? ORDER BY id LIMIT ?`,
		SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		if err := rows.Scan(&p.ID, &p.Version); err != nil {
			return nil, fmt.Errorf("scan pending sync: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// MarkSynced marks a transaction as successfully exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ? WHERE id = ?`, SyncDone, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a transaction as having export errors.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ? WHERE id = ?`, SyncError, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
