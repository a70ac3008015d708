package core

// PeriodTotals is a compact summary of a calendar-day window.
type PeriodTotals struct {
	Income          Money
	Expense         Money
	FixedExpense    Money
	VariableExpense Money
	Balance         Money
}

// DayBalancePoint is one day of a running-balance series.
type DayBalancePoint struct {
	Date    Date
	Balance Money
	Income  Money
	Expense Money
}

// CategoryTotal is an expense amount aggregated by category.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Value      Money
	Color      string
}

// ForecastPoint is a projected balance for one future calendar day.
type ForecastPoint struct {
	Date    Date
	Balance Money
}
