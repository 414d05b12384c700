package categorize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryIncome is assigned to every inflow regardless of description.
const CategoryIncome = "Income"

// CategoryOther is the fallback when no rule matches an outflow.
const CategoryOther = "Other"

// Rule maps a set of description keywords to one category.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Categorizer assigns categories from an ordered rule table.
type Categorizer struct {
	rules []Rule
}

// New creates a Categorizer. Empty rules means the built-in table.
func New(rules []Rule) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Categorizer{rules: rules}
}

// Categorize returns exactly one category for a cleaned description and
// signed amount. A positive amount is Income unconditionally; the sign
// check short-circuits every keyword rule. Otherwise rules are evaluated
// in table order and the first keyword hit wins.
func (c *Categorizer) Categorize(description string, amount decimal.Decimal) string {
	if amount.IsPositive() {
		return CategoryIncome
	}

	desc := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Category
			}
		}
	}
	return CategoryOther
}

// DefaultRules returns the built-in rule table. Order matters: earlier
// rules win, so narrow keywords ("uber eats") must sit ahead of the
// broader rules that would otherwise claim them.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "Credit Card Payments", Keywords: []string{
			"credit crd", "credit card", "crd epay", "card payment", "autopay",
			"chase card", "amex epayment", "capital one", "discover e-payment",
		}},
		{Category: "Rent & Housing", Keywords: []string{
			"rent", "mortgage", "property mgmt", "apartment", "hoa dues", "landlord",
		}},
		{Category: "Money Transfers", Keywords: []string{
			"venmo", "zelle", "paypal", "cash app", "wire transfer",
			"transfer to", "transfer from", "wise inc",
		}},
		{Category: "Bill Payments", Keywords: []string{
			"bill pay", "billpay", "utility", "electric", "water dist",
			"comcast", "verizon", "t-mobile", "at&t",
		}},
		{Category: "Insurance", Keywords: []string{
			"insurance", "ins prem", "geico", "state farm", "allstate",
		}},
		{Category: "Subscriptions", Keywords: []string{
			"subscription", "netflix", "spotify", "hulu", "prime video",
			"apple.com/bill", "youtube premium", "patreon",
		}},
		{Category: "Groceries", Keywords: []string{
			"grocery", "supermarket", "safeway", "trader joe", "whole foods",
			"kroger", "costco whse", "aldi",
		}},
		{Category: "Food & Dining", Keywords: []string{
			"uber eats", "ubereats", "doordash", "grubhub", "restaurant",
			"starbucks", "cafe", "pizza", "chipotle", "mcdonald",
		}},
		{Category: "Transportation", Keywords: []string{
			"uber trip", "lyft", "shell oil", "chevron", "gas station",
			"parking", "transit", "metro", "fastrak", "amtrak",
		}},
		{Category: "Healthcare", Keywords: []string{
			"pharmacy", "cvs", "walgreens", "medical", "dental", "clinic", "kaiser",
		}},
		{Category: "Entertainment", Keywords: []string{
			"cinema", "theatre", "ticketmaster", "amc ", "steam games", "concert",
		}},
		{Category: "Shopping", Keywords: []string{
			"amazon", "target", "walmart", "best buy", "pos debit",
			"purchase", "ebay", "etsy",
		}},
		{Category: "ATM & Cash", Keywords: []string{
			"atm", "cash withdrawal", "cash deposit",
		}},
		{Category: "Fees & Charges", Keywords: []string{
			"fee", "service charge", "overdraft", "interest charge", "penalty",
		}},
	}
}
