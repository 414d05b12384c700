package ingest

import (
	"fmt"
	"strings"
	"time"
)

// refPrefixLen caps the description fragment in a reference.
const refPrefixLen = 10

// MakeReference creates a stable reference like feed_20250821_VENMOPAYME
// from a transaction's date and description.
func MakeReference(date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > refPrefixLen {
		prefix = prefix[:refPrefixLen]
	}
	return fmt.Sprintf("feed_%s_%s", date.Format("20060102"), prefix)
}
