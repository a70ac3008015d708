package ledger

import (
	"context"

	"finanze/internal/core"
)

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		Append(ctx context.Context, tx core.Transaction) (id int64, err error)
	}

	TransactionDeleter interface {
		Delete(ctx context.Context, id int64) error
	}

	// TransactionLister returns the full transaction history. Aggregation
	// filters by calendar day in memory, so adapters do not need windowed
	// queries.
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	ObligationLister interface {
		ListObligations(ctx context.Context) ([]core.Obligation, error)
	}

	// ReferenceReader provides the read-only reference lists owned by
	// external collaborators.
	ReferenceReader interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		ListPaymentMethods(ctx context.Context) ([]core.PaymentMethod, error)
		ListSuppliers(ctx context.Context) ([]core.Supplier, error)
	}
)
