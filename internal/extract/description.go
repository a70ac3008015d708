package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	descriptionMaxTokens = 5
	fallbackMaxTokens    = 4

	// defaultDescription is the last resort when the utterance carries no
	// usable tokens at all.
	defaultDescription = "New entry"
)

// buildDescription assembles a short description from the original-case
// tokens. It drops stop words, currency words, the token(s) consumed as
// the amount, any remaining purely numeric tokens and single-character
// tokens, keeps the first five survivors and capitalizes the result. When
// nothing survives it falls back to the first four raw tokens, so the
// description is never empty.
func buildDescription(tokens []string, consumed []int) string {
	skip := make(map[int]bool, len(consumed))
	for _, i := range consumed {
		skip[i] = true
	}

	var kept []string
	for i, tok := range tokens {
		if skip[i] {
			continue
		}
		clean := trimPunct(tok)
		if clean == "" {
			continue
		}
		lower := strings.ToLower(clean)
		if stopWords[lower] || currencyWords[lower] {
			continue
		}
		if isNumericToken(stripCurrencyMarker(lower)) {
			continue
		}
		if utf8.RuneCountInString(clean) == 1 {
			continue
		}
		kept = append(kept, clean)
		if len(kept) == descriptionMaxTokens {
			break
		}
	}

	if len(kept) == 0 {
		// Fall back to the raw head of the utterance.
		n := len(tokens)
		if n > fallbackMaxTokens {
			n = fallbackMaxTokens
		}
		kept = tokens[:n]
	}
	if len(kept) == 0 {
		return defaultDescription
	}
	return capitalize(strings.Join(kept, " "))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
