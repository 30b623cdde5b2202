package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var slashDate = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

// longDateFormats are tried in order against a raw date token. Slash dates
// are ambiguous; ToLongDate prefers day-first when the first component
// cannot be a month.
var longDateFormats = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"1/2/2006",
	"2/1/2006",
}

// ToLongDate normalizes a date token such as "14/09/2025", "2025-09-14" or
// "Sep 14, 2025" to the site's long form "September 14, 2025". It returns
// the empty string when the token does not parse; callers must treat that
// as "no date", never substitute a guess.
func ToLongDate(token string) string {
	t := strings.TrimSpace(token)
	if t == "" {
		return ""
	}

	formats := longDateFormats
	if slashDate.MatchString(t) {
		if first, _ := strconv.Atoi(t[:strings.Index(t, "/")]); first > 12 {
			formats = append([]string{"2/1/2006"}, formats...)
		}
	}

	for _, f := range formats {
		if d, err := time.Parse(f, t); err == nil {
			return d.Format("January 2, 2006")
		}
	}
	return ""
}
