// Package parser extracts admission records from the listing and detail
// pages of the survey site. The listing markup is irregular: one logical
// result spans one to three physical table rows, so extraction works over
// a two-row context window rather than a single row.
package parser

import (
	"regexp"
	"strings"
)

// Canonical status labels written to the output file.
const (
	StatusAccepted   = "Accepted"
	StatusRejected   = "Rejected"
	StatusWaitlisted = "Wait listed"
	StatusInterview  = "Interview"
)

// Patterns holds the compiled expressions shared by the list and detail
// parsers. Build it once with NewPatterns and pass it by reference; nothing
// in this package keeps package-level mutable state.
type Patterns struct {
	Status     *regexp.Regexp
	Date       *regexp.Regexp
	StartTerm  *regexp.Regexp
	University *regexp.Regexp
	ResultPath *regexp.Regexp
	Quoted     *regexp.Regexp
}

// NewPatterns compiles the pattern set used for record extraction.
func NewPatterns() *Patterns {
	return &Patterns{
		Status: regexp.MustCompile(`(?i)\b(accept\w*|reject\w*|wait[\s-]*list\w*|interview\w*)\b`),
		Date: regexp.MustCompile(`(?i)\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|` +
			`Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{1,2},\s*\d{4}\b` +
			`|\b\d{4}-\d{2}-\d{2}\b` +
			`|\b\d{1,2}/\d{1,2}/\d{4}\b`),
		StartTerm:  regexp.MustCompile(`(?i)\b(Fall|Spring|Summer|Winter)\s+\d{4}\b`),
		University: regexp.MustCompile(`\b([A-Z][A-Za-z.&'\- ]{2,}(?:University|College|Institute|Polytechnic|Tech|State University))\b`),
		ResultPath: regexp.MustCompile(`/result/(\d+)`),
		Quoted:     regexp.MustCompile(`"([^"]{3,})"`),
	}
}

// NormalizeStatus maps a free-text status token to its canonical label.
// Unrecognized tokens are title-cased as-is; empty input stays empty.
func NormalizeStatus(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case t == "":
		return ""
	case strings.HasPrefix(t, "accept"):
		return StatusAccepted
	case strings.HasPrefix(t, "reject"):
		return StatusRejected
	case strings.HasPrefix(t, "wait"):
		return StatusWaitlisted
	case strings.HasPrefix(t, "interview"):
		return StatusInterview
	}
	return strings.Title(t) //nolint:staticcheck // single-word tokens only
}

// collapseSpace trims and squeezes runs of whitespace to single spaces,
// matching how row text is flattened for pattern search.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
