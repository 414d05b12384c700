package categorize

import (
	"regexp"
	"strings"
)

// stateCodes are the two-letter USPS abbreviations recognized after a
// place name, the 50 states plus DC.
var stateCodes = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

var (
	// Up to three capitalized words followed by a two-letter code,
	// e.g. "SAN FRANCISCO CA" or "Mountain View CA".
	placeStateRe = regexp.MustCompile(`(?:^|\s)((?:[A-Z][A-Za-z.'-]*\s+){1,3})([A-Z]{2})(?:\s|$)`)

	// Numeric fragment plus capitalized words after "ATM",
	// e.g. "ATM WITHDRAWAL 00123 450 Main St".
	atmSiteRe = regexp.MustCompile(`ATM.*?(\d+\s+(?:[A-Z][A-Za-z.'-]*\s*)+)`)
)

// ExtractLocation pulls a best-effort location out of a bank description:
// a capitalized place name before a US state code, or the machine site
// fragment after "ATM". Returns "" when nothing matches; location is
// optional metadata and never required for a row to be valid.
func ExtractLocation(description string) string {
	for _, m := range placeStateRe.FindAllStringSubmatch(description, -1) {
		if stateCodes[m[2]] {
			return strings.TrimSpace(m[1]) + " " + m[2]
		}
	}

	if m := atmSiteRe.FindStringSubmatch(description); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
