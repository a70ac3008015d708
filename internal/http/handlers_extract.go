package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"finanze/internal/core"
	applog "finanze/internal/log"
)

type extractRequest struct {
	Utterance string `json:"utterance"`
	Accept    string `json:"accept,omitempty"`
	// Now overrides the reference day used to resolve words like
	// "yesterday"; mostly for clients in other time zones.
	Now string `json:"now,omitempty"`
}

type candidateResponse struct {
	Type                  string  `json:"type"`
	Description           string  `json:"description"`
	AmountCents           int64   `json:"amount_cents"`
	Date                  string  `json:"date"`
	CategoryID            string  `json:"category_id,omitempty"`
	PaymentID             string  `json:"payment_id,omitempty"`
	SupplierID            string  `json:"supplier_id,omitempty"`
	Confidence            float64 `json:"confidence"`
	NeedsClarification    bool    `json:"needs_clarification"`
	ClarificationQuestion string  `json:"clarification_question,omitempty"`
}

type extractResponse struct {
	Candidate     candidateResponse `json:"candidate"`
	Accepted      bool              `json:"accepted"`
	TransactionID int64             `json:"transaction_id,omitempty"`
}

func toCandidateResponse(c core.Candidate) candidateResponse {
	return candidateResponse{
		Type:                  string(c.Type),
		Description:           c.Description,
		AmountCents:           c.Amount.Cents,
		Date:                  c.Date.CalendarDay().Format(dateLayout),
		CategoryID:            c.CategoryID,
		PaymentID:             c.PaymentID,
		SupplierID:            c.SupplierID,
		Confidence:            c.Confidence,
		NeedsClarification:    c.NeedsClarification,
		ClarificationQuestion: c.ClarificationQuestion,
	}
}

// handleExtract analyzes an utterance. With accept=auto the candidate is
// persisted when it clears the confidence threshold.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Utterance = sanitizeInput(req.Utterance)

	ctx := r.Context()

	now := core.DateOf(time.Now())
	if req.Now != "" {
		parsed, err := parseDate(req.Now)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid now, want YYYY-MM-DD")
			return
		}
		now = parsed
	}

	if req.Accept == "auto" {
		cand, id, err := s.svc.CaptureAt(ctx, req.Utterance, now)
		if err != nil {
			slog.ErrorContext(ctx, "Capture failed", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "capture failed")
			return
		}
		if id != 0 {
			s.invalidateStats()
		}
		logCandidate(ctx, req.Utterance, cand)
		writeJSON(w, http.StatusOK, extractResponse{
			Candidate:     toCandidateResponse(cand),
			Accepted:      id != 0,
			TransactionID: id,
		})
		return
	}

	cand, err := s.svc.ExtractAt(ctx, req.Utterance, now)
	if err != nil {
		slog.ErrorContext(ctx, "Extract failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "extract failed")
		return
	}
	logCandidate(ctx, req.Utterance, cand)
	writeJSON(w, http.StatusOK, extractResponse{Candidate: toCandidateResponse(cand)})
}

func logCandidate(ctx context.Context, utterance string, cand core.Candidate) {
	slog.InfoContext(ctx, "Utterance analyzed",
		applog.FieldUtterance, utterance,
		applog.FieldConfidence, cand.Confidence,
		applog.FieldAmountCents, cand.Amount.Cents,
		applog.FieldCategory, cand.CategoryID)
}
