package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"finanze/internal/core"
)

// Store is a seedable in-memory ledger backend used by tests and the
// default deployment.
type Store struct {
	mu          sync.Mutex
	nextID      int64
	txs         []core.Transaction
	obligations []core.Obligation
	cats        []core.Category
	methods     []core.PaymentMethod
	suppliers   []core.Supplier
}

func New(cats []core.Category, methods []core.PaymentMethod, suppliers []core.Supplier) *Store {
	return &Store{
		nextID:    1,
		cats:      cats,
		methods:   methods,
		suppliers: suppliers,
	}
}

// NewFromFiles seeds reference data from plain-text files under base, one
// name per line, falling back to a small default set.
func NewFromFiles(base string) *Store {
	catNames := readLines(filepath.Join(base, "seed_categories.txt"))
	methodNames := readLines(filepath.Join(base, "seed_payment_methods.txt"))
	supplierNames := readLines(filepath.Join(base, "seed_suppliers.txt"))
	if len(catNames) == 0 {
		catNames = []string{"Food", "Transport", "Housing", "Salary"}
	}
	if len(methodNames) == 0 {
		methodNames = []string{"Cash", "Credit Card", "Debit Card"}
	}

	cats := make([]core.Category, 0, len(catNames))
	for i, name := range catNames {
		ct := core.CategoryExpense
		if strings.EqualFold(name, "salary") || strings.EqualFold(name, "sales") {
			ct = core.CategoryIncome
		}
		cats = append(cats, core.Category{
			ID:   fmt.Sprintf("cat-%d", i+1),
			Name: name,
			Type: ct,
		})
	}
	methods := make([]core.PaymentMethod, 0, len(methodNames))
	for i, name := range methodNames {
		methods = append(methods, core.PaymentMethod{ID: fmt.Sprintf("pm-%d", i+1), Name: name})
	}
	suppliers := make([]core.Supplier, 0, len(supplierNames))
	for i, name := range supplierNames {
		suppliers = append(suppliers, core.Supplier{ID: fmt.Sprintf("sup-%d", i+1), Name: name})
	}
	return New(cats, methods, suppliers)
}

// Append stores the transaction and returns a synthetic id.
func (s *Store) Append(_ context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = s.nextID
	s.nextID++
	s.txs = append(s.txs, tx)
	return tx.ID, nil
}

// Delete removes a transaction by id. Unknown ids are a no-op.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return nil
}

// AddObligation registers a pending obligation.
func (s *Store) AddObligation(_ context.Context, o core.Obligation) (int64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextID
	s.nextID++
	s.obligations = append(s.obligations, o)
	return o.ID, nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...), nil
}

func (s *Store) ListObligations(_ context.Context) ([]core.Obligation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Obligation(nil), s.obligations...), nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats...), nil
}

func (s *Store) ListPaymentMethods(_ context.Context) ([]core.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.PaymentMethod(nil), s.methods...), nil
}

func (s *Store) ListSuppliers(_ context.Context) ([]core.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Supplier(nil), s.suppliers...), nil
}

// Close satisfies the service's store contract; nothing to release.
func (s *Store) Close() error {
	return nil
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	// Preserve input order; it feeds the extractor's direct-match fallbacks.
	return out
}
