package extract

import (
	"strings"
	"unicode"

	"finanze/internal/core"
)

// maxAmountCents bounds accepted amounts to values below one million
// currency units. Zero and out-of-range values are rejected.
const maxAmountCents = 1_000_000 * 100

// amountMatch is the result of amount extraction: the cent value plus the
// token indexes consumed, so description building can drop them.
type amountMatch struct {
	cents    int64
	consumed []int
}

// findAmount applies the amount rules in strict priority order over the
// whitespace tokens of the utterance: first a numeric-token scan, then a
// spelled-out number scan. The first rule that produces a valid value
// wins; ok is false when neither does.
func findAmount(tokens []string) (amountMatch, bool) {
	if m, ok := findNumericAmount(tokens); ok {
		return m, true
	}
	return findSpelledAmount(tokens)
}

// findNumericAmount scans left to right for the first numeric token whose
// value lies in (0, 1,000,000) units. Out-of-range tokens are skipped, so
// a later in-range token can still match; once a token matches, the rest
// of the utterance is ignored.
func findNumericAmount(tokens []string) (amountMatch, bool) {
	for i, tok := range tokens {
		raw := stripCurrencyMarker(trimPunct(strings.ToLower(tok)))
		if raw == "" || !isNumericToken(raw) {
			continue
		}
		cents, err := core.ParseDecimalToCents(raw)
		if err != nil || cents >= maxAmountCents {
			continue
		}
		return amountMatch{cents: cents, consumed: []int{i}}, true
	}
	return amountMatch{}, false
}

// findSpelledAmount scans for runs of spelled-out number words. A run only
// qualifies when its last word is immediately followed by a currency unit
// word or sits at the end of the utterance.
func findSpelledAmount(tokens []string) (amountMatch, bool) {
	for i := 0; i < len(tokens); i++ {
		word := trimPunct(strings.ToLower(tokens[i]))
		if _, ok := numberWords[word]; !ok {
			continue
		}

		// Extend the run over consecutive number words.
		end := i
		for end+1 < len(tokens) {
			next := trimPunct(strings.ToLower(tokens[end+1]))
			if _, ok := numberWords[next]; !ok {
				break
			}
			end++
		}

		qualified := end == len(tokens)-1
		if !qualified && end+1 < len(tokens) {
			next := trimPunct(strings.ToLower(tokens[end+1]))
			qualified = currencyWords[next]
		}
		if !qualified {
			i = end
			continue
		}

		value := spelledRunValue(tokens[i : end+1])
		if value <= 0 || value >= 1_000_000 {
			i = end
			continue
		}

		consumed := make([]int, 0, end-i+1)
		for j := i; j <= end; j++ {
			consumed = append(consumed, j)
		}
		return amountMatch{cents: value * 100, consumed: consumed}, true
	}
	return amountMatch{}, false
}

// spelledRunValue folds a run of number words into an integer value,
// treating "hundred" and "thousand" as multipliers of the running group.
func spelledRunValue(run []string) int64 {
	var total, current int64
	for _, tok := range run {
		entry := numberWords[trimPunct(strings.ToLower(tok))]
		if !entry.mult {
			current += entry.value
			continue
		}
		if current == 0 {
			current = 1
		}
		if entry.value == 1000 {
			total += current * 1000
			current = 0
		} else {
			current *= entry.value
		}
	}
	return total + current
}

// isNumericToken reports whether s looks like an integer or decimal with a
// single dot or comma separator.
func isNumericToken(s string) bool {
	seps := 0
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
			seps++
		default:
			return false
		}
	}
	return digits > 0 && seps <= 1
}

// stripCurrencyMarker removes a leading currency symbol, if any.
func stripCurrencyMarker(s string) string {
	for _, marker := range currencyMarkers {
		if strings.HasPrefix(s, marker) {
			return s[len(marker):]
		}
	}
	return s
}

// trimPunct removes sentence punctuation stuck to a token's edges,
// preserving interior separators like the decimal comma in "12,50".
func trimPunct(s string) string {
	return strings.Trim(s, ".,;:!?\"'()")
}
