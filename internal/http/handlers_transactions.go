package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"finanze/internal/core"
	applog "finanze/internal/log"
)

type transactionRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
	CategoryID  string `json:"category_id,omitempty"`
	PaymentID   string `json:"payment_id,omitempty"`
	SupplierID  string `json:"supplier_id,omitempty"`
	Fixed       bool   `json:"fixed,omitempty"`
}

type transactionResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
	CategoryID  string `json:"category_id,omitempty"`
	PaymentID   string `json:"payment_id,omitempty"`
	SupplierID  string `json:"supplier_id,omitempty"`
	Fixed       bool   `json:"fixed,omitempty"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Description: tx.Description,
		AmountCents: tx.Amount.Cents,
		Date:        tx.Date.CalendarDay().Format(dateLayout),
		CategoryID:  tx.CategoryID,
		PaymentID:   tx.PaymentID,
		SupplierID:  tx.SupplierID,
		Fixed:       tx.Fixed,
	}
}

// handleTransactions lists the history or saves a confirmed transaction.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
		return
	}

	tx := core.Transaction{
		Type:        core.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: req.AmountCents},
		Date:        date,
		CategoryID:  req.CategoryID,
		PaymentID:   req.PaymentID,
		SupplierID:  req.SupplierID,
		Fixed:       req.Fixed,
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.svc.SaveTransaction(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Save transaction failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}

	s.invalidateStats()
	tx.ID = id
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

// handleTransactionByID deletes a single transaction.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.svc.DeleteTransaction(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction failed", "id", id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}

type referencesResponse struct {
	Categories     []categoryResponse `json:"categories"`
	PaymentMethods []paymentResponse  `json:"payment_methods"`
	Suppliers      []supplierResponse `json:"suppliers"`
}

type categoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
}

type paymentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type supplierResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// handleReferences returns the reference lists the extractor matches
// against.
func (s *Server) handleReferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	refs, err := s.svc.References(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List references failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "references failed")
		return
	}

	out := referencesResponse{
		Categories:     make([]categoryResponse, 0, len(refs.Categories)),
		PaymentMethods: make([]paymentResponse, 0, len(refs.PaymentMethods)),
		Suppliers:      make([]supplierResponse, 0, len(refs.Suppliers)),
	}
	for _, c := range refs.Categories {
		out.Categories = append(out.Categories, categoryResponse{ID: c.ID, Name: c.Name, Type: string(c.Type), Color: c.Color})
	}
	for _, p := range refs.PaymentMethods {
		out.PaymentMethods = append(out.PaymentMethods, paymentResponse{ID: p.ID, Name: p.Name, Color: p.Color})
	}
	for _, sup := range refs.Suppliers {
		out.Suppliers = append(out.Suppliers, supplierResponse{ID: sup.ID, Name: sup.Name})
	}
	writeJSON(w, http.StatusOK, out)
}
