package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"finanze/internal/core"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseWindow extracts the from/to query parameters. Missing bounds
// default to the current calendar month up to today.
func parseWindow(r *http.Request) (from, to core.Date, err error) {
	now := time.Now()
	from = core.NewDate(now.Year(), int(now.Month()), 1)
	to = core.DateOf(now)

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		from, err = parseDate(v)
		if err != nil {
			return core.Date{}, core.Date{}, err
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		to, err = parseDate(v)
		if err != nil {
			return core.Date{}, core.Date{}, err
		}
	}
	return from, to, nil
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func windowKey(from, to core.Date) string {
	return from.CalendarDay().Format(dateLayout) + "_" + to.CalendarDay().Format(dateLayout)
}
