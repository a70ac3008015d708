package core

// Candidate is a tentative transaction derived from free text, pending
// human confirmation. It is transient: the caller presents it, auto-accepts
// it above its own confidence threshold, or discards it.
type Candidate struct {
	Type        TransactionType
	Description string
	Amount      Money
	Date        Date
	CategoryID  string
	PaymentID   string
	SupplierID  string

	// Confidence is a heuristic scalar in [0,1], not a calibrated
	// probability.
	Confidence            float64
	NeedsClarification    bool
	ClarificationQuestion string
}

// Actionable reports whether the candidate can be persisted as-is.
func (c Candidate) Actionable() bool {
	return c.Amount.Cents > 0 && !c.NeedsClarification
}

// Transaction converts an actionable candidate into a ledger entry.
func (c Candidate) Transaction() Transaction {
	return Transaction{
		Type:        c.Type,
		Description: c.Description,
		Amount:      c.Amount,
		Date:        c.Date,
		CategoryID:  c.CategoryID,
		PaymentID:   c.PaymentID,
		SupplierID:  c.SupplierID,
	}
}
