package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried first, in order.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

var (
	slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dashDateRe  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

// ParseDate parses a statement date. Known layouts are tried first, then
// pattern fallbacks in priority order: MM/DD/YYYY, DD/MM/YYYY (only when
// the first group cannot be a month), YYYY-MM-DD, MM-DD-YYYY. Returns
// ok=false when nothing matches; the fallback policy belongs to the
// caller, not here.
func ParseDate(s string) (time.Time, bool) {
	cleaned := strings.Trim(strings.TrimSpace(s), `"`)
	if cleaned == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}

	if m := slashDateRe.FindStringSubmatch(cleaned); m != nil {
		first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if t, ok := makeDate(year, first, second); ok {
			return t, true
		}
		// First group is not a valid month; try day-first.
		if t, ok := makeDate(year, second, first); ok {
			return t, true
		}
	}

	if m := isoDateRe.FindStringSubmatch(cleaned); m != nil {
		if t, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return t, true
		}
	}

	if m := dashDateRe.FindStringSubmatch(cleaned); m != nil {
		if t, ok := makeDate(atoi(m[3]), atoi(m[1]), atoi(m[2])); ok {
			return t, true
		}
	}

	return time.Time{}, false
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject that.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
