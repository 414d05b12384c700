package categorize

import "strings"

// DefaultPaymentMethod is used when no method keyword matches.
const DefaultPaymentMethod = "Bank Transfer"

// paymentRules are checked in order; first keyword hit wins.
var paymentRules = []struct {
	method   string
	keywords []string
}{
	{"Credit Card", []string{"credit crd", "credit card", "crd epay", "card payment"}},
	{"ATM", []string{"atm"}},
	{"Venmo", []string{"venmo"}},
	{"Zelle", []string{"zelle"}},
	{"Direct Deposit", []string{"dir dep", "direct dep", "payroll"}},
	{"Online Payment", []string{"online pmt", "online payment", "web pmt"}},
	{"Mobile Deposit", []string{"mobile deposit", "mobile check deposit"}},
}

// InferPaymentMethod guesses how a transaction was made from its
// description. Never fails; unmatched descriptions get DefaultPaymentMethod.
func InferPaymentMethod(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range paymentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.method
			}
		}
	}
	return DefaultPaymentMethod
}
