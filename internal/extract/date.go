package extract

import (
	"strconv"
	"strings"

	"finanze/internal/core"
)

// resolveDate maps the small fixed set of relative-date expressions onto a
// calendar day, relative to the caller-supplied reference instant. Rules
// apply in fixed priority; the first hit short-circuits the rest:
//
//  1. "day before yesterday"  -> now - 2 days
//  2. "yesterday"             -> now - 1 day
//  3. "day N" with N in 1..31 -> day N of now's month and year
//  4. otherwise               -> today
func resolveDate(lower string, tokens []string, now core.Date) core.Date {
	if strings.Contains(lower, "day before yesterday") {
		return now.AddDays(-2)
	}
	if strings.Contains(lower, "yesterday") {
		return now.AddDays(-1)
	}
	for i, tok := range tokens {
		if trimPunct(strings.ToLower(tok)) != "day" || i+1 >= len(tokens) {
			continue
		}
		n, err := strconv.Atoi(trimPunct(tokens[i+1]))
		if err != nil || n < 1 || n > 31 {
			continue
		}
		return core.NewDate(now.Year(), now.Month(), n)
	}
	return now
}
