package http

import (
	"log/slog"
	"net/http"
	"time"

	"finanze/internal/core"
	applog "finanze/internal/log"
	"finanze/internal/stats"
)

type summaryResponse struct {
	From                 string `json:"from"`
	To                   string `json:"to"`
	IncomeCents          int64  `json:"income_cents"`
	ExpenseCents         int64  `json:"expense_cents"`
	FixedExpenseCents    int64  `json:"fixed_expense_cents"`
	VariableExpenseCents int64  `json:"variable_expense_cents"`
	BalanceCents         int64  `json:"balance_cents"`
}

// handleSummary returns income/expense totals for a calendar-day window.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	key := windowKey(from, to)
	totals, found := s.summaryCache.Get(key)
	if !found {
		txs, err := s.svc.ListTransactions(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Summary aggregation failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "aggregation failed")
			return
		}
		totals = stats.PeriodTotals(txs, from, to)
		s.summaryCache.Set(key, totals)
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		From:                 from.CalendarDay().Format(dateLayout),
		To:                   to.CalendarDay().Format(dateLayout),
		IncomeCents:          totals.Income.Cents,
		ExpenseCents:         totals.Expense.Cents,
		FixedExpenseCents:    totals.FixedExpense.Cents,
		VariableExpenseCents: totals.VariableExpense.Cents,
		BalanceCents:         totals.Balance.Cents,
	})
}

type dayBalanceResponse struct {
	Date         string `json:"date"`
	BalanceCents int64  `json:"balance_cents"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
}

// handleDailyBalance returns the running-balance series for a window.
func (s *Server) handleDailyBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	key := windowKey(from, to)
	series, found := s.dailyCache.Get(key)
	if !found {
		txs, err := s.svc.ListTransactions(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Daily balance aggregation failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "aggregation failed")
			return
		}
		series = stats.DailyBalance(txs, from, to)
		s.dailyCache.Set(key, series)
	}

	out := make([]dayBalanceResponse, 0, len(series))
	for _, p := range series {
		out = append(out, dayBalanceResponse{
			Date:         p.Date.CalendarDay().Format(dateLayout),
			BalanceCents: p.Balance.Cents,
			IncomeCents:  p.Income.Cents,
			ExpenseCents: p.Expense.Cents,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type categoryTotalResponse struct {
	CategoryID string `json:"category_id,omitempty"`
	Name       string `json:"name"`
	ValueCents int64  `json:"value_cents"`
	Color      string `json:"color"`
}

// handleCategoryBreakdown returns expense totals grouped by category.
func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, to, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	key := windowKey(from, to)
	breakdown, found := s.categoryCache.Get(key)
	if !found {
		txs, err := s.svc.ListTransactions(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Category aggregation failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "aggregation failed")
			return
		}
		refs, err := s.svc.References(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Category references failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "aggregation failed")
			return
		}
		breakdown = stats.CategoryBreakdown(txs, refs.Categories, from, to)
		s.categoryCache.Set(key, breakdown)
	}

	out := make([]categoryTotalResponse, 0, len(breakdown))
	for _, c := range breakdown {
		out = append(out, categoryTotalResponse{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			ValueCents: c.Value.Cents,
			Color:      c.Color,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type forecastPointResponse struct {
	Date         string `json:"date"`
	BalanceCents int64  `json:"balance_cents"`
}

// handleForecast projects the balance thirty days forward.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	today := core.DateOf(time.Now())
	key := today.Format(dateLayout)

	points, found := s.forecastCache.Get(key)
	if !found {
		txs, err := s.svc.ListTransactions(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Forecast aggregation failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "aggregation failed")
			return
		}
		obligations, err := s.svc.ListObligations(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Forecast obligations failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "aggregation failed")
			return
		}
		points = stats.Forecast(txs, obligations, today)
		s.forecastCache.Set(key, points)
	}

	out := make([]forecastPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, forecastPointResponse{
			Date:         p.Date.CalendarDay().Format(dateLayout),
			BalanceCents: p.Balance.Cents,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
