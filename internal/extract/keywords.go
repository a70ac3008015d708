package extract

// KeywordRule maps a set of trigger keywords to a category or payment
// method label. Rules live in ordered slices: iteration order decides
// which rule wins when several keywords match the same utterance, so the
// order below is part of the observable contract, not an implementation
// detail.
type KeywordRule struct {
	Label    string
	Keywords []string
}

// incomeKeywords flip the inferred type to INCOME on a substring match.
var incomeKeywords = []string{
	"received",
	"earned",
	"salary",
	"paycheck",
	"sale",
	"sold",
	"income",
	"refund",
}

// categoryRules is the ordered keyword dictionary for category inference.
var categoryRules = []KeywordRule{
	{Label: "Food", Keywords: []string{"bread", "grocer", "supermarket", "market", "lunch", "dinner", "breakfast", "pizza", "restaurant", "snack", "coffee", "food"}},
	{Label: "Transport", Keywords: []string{"uber", "taxi", "bus", "subway", "train", "fuel", "gas station", "parking", "toll"}},
	{Label: "Housing", Keywords: []string{"rent", "mortgage", "condo fee"}},
	{Label: "Utilities", Keywords: []string{"electricity", "water bill", "internet", "phone bill", "light bill"}},
	{Label: "Health", Keywords: []string{"pharmacy", "medicine", "doctor", "dentist", "hospital"}},
	{Label: "Leisure", Keywords: []string{"cinema", "movie", "netflix", "spotify", "concert", "game", "bar"}},
	{Label: "Education", Keywords: []string{"course", "book", "tuition", "school"}},
	{Label: "Salary", Keywords: []string{"salary", "wage", "paycheck"}},
	{Label: "Sales", Keywords: []string{"sale", "client", "invoice", "customer"}},
}

// paymentRules is the ordered keyword dictionary for payment-method
// inference.
var paymentRules = []KeywordRule{
	{Label: "Credit Card", Keywords: []string{"credit card", "credit", "visa", "mastercard"}},
	{Label: "Debit Card", Keywords: []string{"debit card", "debit"}},
	{Label: "Cash", Keywords: []string{"cash"}},
	{Label: "Transfer", Keywords: []string{"transfer", "wire", "deposit"}},
	{Label: "PayPal", Keywords: []string{"paypal"}},
}

// currencyWords are unit words that may follow an amount. They also count
// as stop words for description building.
var currencyWords = map[string]bool{
	"euro":    true,
	"euros":   true,
	"eur":     true,
	"dollar":  true,
	"dollars": true,
	"usd":     true,
	"buck":    true,
	"bucks":   true,
}

// currencyMarkers are symbols that may prefix a numeric token.
var currencyMarkers = []string{"€", "$", "£"}

// numberWords is the fixed spelled-out number lexicon: ones, teens, tens,
// hundred and thousand. mult marks multiplier words.
var numberWords = map[string]struct {
	value int64
	mult  bool
}{
	"one": {1, false}, "two": {2, false}, "three": {3, false},
	"four": {4, false}, "five": {5, false}, "six": {6, false},
	"seven": {7, false}, "eight": {8, false}, "nine": {9, false},
	"ten": {10, false}, "eleven": {11, false}, "twelve": {12, false},
	"thirteen": {13, false}, "fourteen": {14, false}, "fifteen": {15, false},
	"sixteen": {16, false}, "seventeen": {17, false}, "eighteen": {18, false},
	"nineteen": {19, false},
	"twenty":   {20, false}, "thirty": {30, false}, "forty": {40, false},
	"fifty": {50, false}, "sixty": {60, false}, "seventy": {70, false},
	"eighty": {80, false}, "ninety": {90, false},
	"hundred": {100, true}, "thousand": {1000, true},
}

// stopWords are dropped when building the description: prepositions,
// conjunctions, common verbs, temporal words and pronouns. Currency words
// are dropped too (see currencyWords).
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"of": true, "in": true, "on": true, "at": true, "for": true,
	"to": true, "from": true, "with": true, "by": true,
	"and": true, "or": true, "but": true,
	"i": true, "we": true, "my": true, "our": true, "it": true, "that": true,
	"paid": true, "pay": true, "paying": true,
	"bought": true, "buy": true, "buying": true,
	"spent": true, "spend": true,
	"received": true, "earned": true, "got": true, "made": true,
	"today": true, "yesterday": true, "tomorrow": true,
	"day": true, "before": true, "last": true, "this": true,
	"was": true, "is": true, "were": true,
}
