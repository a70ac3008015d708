package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"

	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
	// CategoryBoth marks a category usable for both transaction types.
	CategoryBoth CategoryType = "BOTH"

	ObligationPending ObligationStatus = "PENDING"
	ObligationSettled ObligationStatus = "SETTLED"
)

type (
	TransactionType  string
	CategoryType     string
	ObligationStatus string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Category is reference data owned by an external collaborator.
	Category struct {
		ID    string
		Name  string
		Type  CategoryType
		Color string
	}

	PaymentMethod struct {
		ID    string
		Name  string
		Color string
	}

	Supplier struct {
		ID   string
		Name string
	}

	// Transaction is a single ledger entry. Date may carry a full
	// timestamp; aggregation only looks at the calendar-day component.
	Transaction struct {
		ID          int64 // Database ID for operations
		Type        TransactionType
		Description string
		Amount      Money
		Date        Date
		CategoryID  string
		PaymentID   string
		SupplierID  string
		Fixed       bool // expense-only flag
	}

	// Obligation is a scheduled future payment not yet settled.
	Obligation struct {
		ID      int64
		Amount  Money
		DueDate Date
		Status  ObligationStatus
	}
)

var (
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// CalendarDay strips any time-of-day and zone offset, keeping the day.
func (d Date) CalendarDay() Date {
	return DateOf(d.Time)
}

// AddDays returns the date shifted by the given number of calendar days.
func (d Date) AddDays(days int) Date {
	return Date{Time: d.Time.AddDate(0, 0, days)}
}

// IsEmpty returns true if the date is zero (for optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

// Compatible reports whether a category of type ct can hold a
// transaction of type tt. CategoryBoth matches either type.
func (ct CategoryType) Compatible(tt TransactionType) bool {
	return ct == CategoryBoth || string(ct) == string(tt)
}

func (tx Transaction) Validate() error {
	if err := tx.Type.Validate(); err != nil {
		return err
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// Net returns the signed cent value: positive for income, negative for
// expense.
func (tx Transaction) Net() int64 {
	if tx.Type == Income {
		return tx.Amount.Cents
	}
	return -tx.Amount.Cents
}

func (o Obligation) Validate() error {
	if err := o.Amount.Validate(); err != nil {
		return err
	}
	if err := o.DueDate.Validate(); err != nil {
		return errors.New("invalid due date: " + err.Error())
	}
	switch o.Status {
	case ObligationPending, ObligationSettled:
	default:
		return errors.New("invalid obligation status")
	}
	return nil
}
