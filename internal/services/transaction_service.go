package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"finanze/internal/amqp"
	"finanze/internal/core"
	"finanze/internal/extract"
	"finanze/internal/ledger"
)

// Store is the persistence surface the service needs. Both the SQLite
// repository and the in-memory store satisfy it.
type Store interface {
	ledger.TransactionWriter
	ledger.TransactionDeleter
	ledger.TransactionLister
	ledger.ObligationLister
	ledger.ReferenceReader
	io.Closer
}

// TransactionService orchestrates capture across the store and AMQP.
type TransactionService struct {
	store      Store
	amqpClient *amqp.Client
}

func NewTransactionService(store Store, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// Extract analyzes an utterance against the current reference lists and
// returns a scored candidate. Nothing is persisted.
func (s *TransactionService) Extract(ctx context.Context, utterance string) (core.Candidate, error) {
	return s.ExtractAt(ctx, utterance, core.DateOf(time.Now()))
}

// ExtractAt is Extract with an explicit reference day for relative date
// words.
func (s *TransactionService) ExtractAt(ctx context.Context, utterance string, now core.Date) (core.Candidate, error) {
	refs, err := s.references(ctx)
	if err != nil {
		return core.Candidate{}, fmt.Errorf("load references: %w", err)
	}
	return extract.Extract(utterance, refs, now), nil
}

// Capture extracts a candidate and, when it clears the auto-accept
// threshold, persists it as a transaction. The returned id is zero when
// the candidate was not accepted.
func (s *TransactionService) Capture(ctx context.Context, utterance string) (core.Candidate, int64, error) {
	return s.CaptureAt(ctx, utterance, core.DateOf(time.Now()))
}

// CaptureAt is Capture with an explicit reference day, so clients can
// resolve "yesterday" against their own clock.
func (s *TransactionService) CaptureAt(ctx context.Context, utterance string, now core.Date) (core.Candidate, int64, error) {
	cand, err := s.ExtractAt(ctx, utterance, now)
	if err != nil {
		return core.Candidate{}, 0, err
	}

	if !cand.Actionable() || cand.Confidence < extract.AutoAcceptThreshold {
		slog.InfoContext(ctx, "Candidate below auto-accept threshold",
			"confidence", cand.Confidence,
			"needs_clarification", cand.NeedsClarification)
		return cand, 0, nil
	}

	id, err := s.SaveTransaction(ctx, cand.Transaction())
	if err != nil {
		return cand, 0, err
	}
	return cand, id, nil
}

// SaveTransaction saves a transaction locally and publishes a sync message.
func (s *TransactionService) SaveTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	// Local store first (fast, reliable)
	id, err := s.store.Append(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	// Publish async sync message (version 1 for a new transaction)
	if err := s.publishSyncMessage(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
		// Don't fail the request - transaction is saved locally
	}

	return id, nil
}

// DeleteTransaction soft deletes locally and publishes a delete message.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.publishDeleteMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
		// Don't fail the request - transaction is deleted locally
	}

	return nil
}

// ListTransactions exposes the full history for aggregation.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// ListObligations exposes scheduled payments for forecasting.
func (s *TransactionService) ListObligations(ctx context.Context) ([]core.Obligation, error) {
	return s.store.ListObligations(ctx)
}

// References returns the current reference lists.
func (s *TransactionService) References(ctx context.Context) (extract.ReferenceSet, error) {
	return s.references(ctx)
}

func (s *TransactionService) references(ctx context.Context) (extract.ReferenceSet, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return extract.ReferenceSet{}, err
	}
	payments, err := s.store.ListPaymentMethods(ctx)
	if err != nil {
		return extract.ReferenceSet{}, err
	}
	suppliers, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return extract.ReferenceSet{}, err
	}
	return extract.ReferenceSet{
		Categories:     categories,
		PaymentMethods: payments,
		Suppliers:      suppliers,
	}, nil
}

func (s *TransactionService) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}

	return s.amqpClient.PublishTransactionSync(ctx, id, version)
}

func (s *TransactionService) publishDeleteMessage(ctx context.Context, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}

	return s.amqpClient.PublishTransactionDelete(ctx, id)
}

// Close closes both store and AMQP connections
func (s *TransactionService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %v", errs)
	}

	return nil
}
