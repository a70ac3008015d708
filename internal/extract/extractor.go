// Package extract turns a free-form spoken or typed utterance into a
// confidence-scored candidate transaction.
//
// Extraction is a fixed heuristic pipeline, not a trained model: each
// stage may add a constant confidence delta and the accumulated score is
// clamped to [0,1] once at the end. The pipeline is pure and
// deterministic; "today" is the caller-supplied reference instant, never a
// live clock read, so identical inputs always produce identical output.
package extract

import (
	"strings"

	"finanze/internal/core"
)

// Per-stage confidence deltas and the auto-accept threshold. The values
// are empirical and have no documented derivation; they still need product
// validation and are kept in one place so tuning does not touch the
// pipeline.
const (
	baseConfidence       = 0.30
	deltaIncomeKeyword   = 0.10
	deltaAmountFound     = 0.30
	deltaCategoryKeyword = 0.20
	deltaCategoryDirect  = 0.10
	deltaPaymentKeyword  = 0.10
	deltaPaymentDirect   = 0.05
	deltaSupplierMatch   = 0.05

	// AutoAcceptThreshold is the confidence above which callers may
	// persist a candidate without human confirmation.
	AutoAcceptThreshold = 0.75
)

const clarificationQuestion = "I couldn't catch the amount. How much was it?"

// ReferenceSet holds the read-only reference lists owned by external
// collaborators. Slice order matters for the direct-match fallbacks.
type ReferenceSet struct {
	Categories     []core.Category
	PaymentMethods []core.PaymentMethod
	Suppliers      []core.Supplier
}

// Extract runs the full pipeline over one utterance. It never fails: when
// recognition degrades it returns defaults and asks for clarification
// instead. now supplies the reference "today" for relative dates.
func Extract(utterance string, refs ReferenceSet, now core.Date) core.Candidate {
	lower := strings.ToLower(utterance)
	tokens := strings.Fields(utterance)
	today := now.CalendarDay()

	confidence := baseConfidence
	candidate := core.Candidate{Type: core.Expense}

	// Type inference: any income keyword flips the default.
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			candidate.Type = core.Income
			confidence += deltaIncomeKeyword
			break
		}
	}

	// Amount: numeric tokens first, spelled-out numbers second. Zero means
	// the utterance needs clarification, decided at the end.
	amount, found := findAmount(tokens)
	if found {
		candidate.Amount = core.Money{Cents: amount.cents}
		confidence += deltaAmountFound
	}

	candidate.Date = resolveDate(lower, tokens, today)

	categoryID, categoryDelta := inferCategory(lower, candidate.Type, refs.Categories)
	candidate.CategoryID = categoryID
	confidence += categoryDelta

	paymentID, paymentDelta := inferPayment(lower, refs.PaymentMethods)
	candidate.PaymentID = paymentID
	confidence += paymentDelta

	// Suppliers match directly or not at all.
	for _, s := range refs.Suppliers {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name != "" && strings.Contains(lower, name) {
			candidate.SupplierID = s.ID
			confidence += deltaSupplierMatch
			break
		}
	}

	candidate.Description = buildDescription(tokens, amount.consumed)

	if candidate.Amount.Cents == 0 {
		candidate.NeedsClarification = true
		candidate.ClarificationQuestion = clarificationQuestion
	}

	candidate.Confidence = clamp01(confidence)
	return candidate
}

// inferCategory applies the category stages in order: the ordered keyword
// dictionary, then a verbatim reference-name match, then the first
// type-compatible reference as a no-delta default.
func inferCategory(lower string, tt core.TransactionType, cats []core.Category) (string, float64) {
	for _, rule := range categoryRules {
		if !ruleMatches(rule, lower) {
			continue
		}
		if cat, ok := categoryByLabel(rule.Label, tt, cats); ok {
			return cat.ID, deltaCategoryKeyword
		}
		// Keyword hit without a usable reference: later rules may still
		// resolve.
	}

	for _, cat := range cats {
		name := strings.ToLower(strings.TrimSpace(cat.Name))
		if name != "" && strings.Contains(lower, name) && cat.Type.Compatible(tt) {
			return cat.ID, deltaCategoryDirect
		}
	}

	for _, cat := range cats {
		if cat.Type.Compatible(tt) {
			return cat.ID, 0
		}
	}
	return "", 0
}

// inferPayment mirrors the category strategy over brand keywords, but
// never fails: the first configured method is the default.
func inferPayment(lower string, methods []core.PaymentMethod) (string, float64) {
	for _, rule := range paymentRules {
		if !ruleMatches(rule, lower) {
			continue
		}
		for _, pm := range methods {
			if namesOverlap(pm.Name, rule.Label) {
				return pm.ID, deltaPaymentKeyword
			}
		}
	}

	for _, pm := range methods {
		name := strings.ToLower(strings.TrimSpace(pm.Name))
		if name != "" && strings.Contains(lower, name) {
			return pm.ID, deltaPaymentDirect
		}
	}

	if len(methods) > 0 {
		return methods[0].ID, 0
	}
	return "", 0
}

func ruleMatches(rule KeywordRule, lower string) bool {
	for _, kw := range rule.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// categoryByLabel finds a reference category whose name overlaps the rule
// label and whose type is compatible with the inferred transaction type.
func categoryByLabel(label string, tt core.TransactionType, cats []core.Category) (core.Category, bool) {
	for _, cat := range cats {
		if cat.Type.Compatible(tt) && namesOverlap(cat.Name, label) {
			return cat, true
		}
	}
	return core.Category{}, false
}

// namesOverlap does a case-insensitive containment check in either
// direction, so "Food" overlaps both "Food & Drink" and "food".
func namesOverlap(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
