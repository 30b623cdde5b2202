package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DetailFields holds the structured fields parsed from a /result/<id>
// detail page. Every field is optional; a page that carries none of the
// recognized labels yields the zero value without error.
type DetailFields struct {
	University      Field
	Program         Field
	Degree          Field
	CountryOfOrigin Field
	Decision        Field
	NotificationOn  Field // normalized to "Month DD, YYYY"
	Notes           Field
	GPA             Field
	GRE             Field
	GREVerbal       Field
	GREAW           Field
}

// DetailParser extracts structured fields from detail pages.
type DetailParser struct {
	pats *Patterns
}

// NewDetailParser creates a detail-page parser using the shared pattern set.
func NewDetailParser(pats *Patterns) *DetailParser {
	return &DetailParser{pats: pats}
}

// Parse reads the label/value blocks of a detail page. The main facts sit
// in dl>div blocks as dt/dd pairs; the three GRE scores are rendered as a
// list instead and are matched by label. Unrecognized labels are ignored.
func (p *DetailParser) Parse(htmlBody []byte) (DetailFields, error) {
	var out DetailFields

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return out, fmt.Errorf("failed to parse detail HTML: %w", err)
	}

	doc.Find("dl > div").Each(func(_ int, box *goquery.Selection) {
		label := collapseSpace(box.Find("dt").First().Text())
		value := collapseSpace(box.Find("dd").First().Text())
		if label == "" || value == "" {
			return
		}
		switch label {
		case "Institution":
			out.University = FoundField(value)
		case "Program":
			out.Program = FoundField(value)
		case "Degree Type":
			out.Degree = FoundField(value)
		case "Undergrad GPA":
			out.GPA = FoundField(value)
		case "Degree's Country of Origin":
			out.CountryOfOrigin = FoundField(value)
		case "Decision":
			out.Decision = FoundField(value)
		case "Notification":
			// Rendered as "on 14/09/2025 via Email".
			out.NotificationOn = FoundField(ToLongDate(p.pats.Date.FindString(value)))
		}
	})

	doc.Find("dl li").Each(func(_ int, li *goquery.Selection) {
		spans := li.Find("span")
		if spans.Length() < 2 {
			return
		}
		label := strings.TrimSuffix(collapseSpace(li.Find("span.tw-font-medium").First().Text()), ":")
		value := collapseSpace(spans.Last().Text())
		if value == "" {
			return
		}
		switch {
		case strings.HasPrefix(label, "GRE General"):
			out.GRE = FoundField(value)
		case strings.HasPrefix(label, "GRE Verbal"):
			out.GREVerbal = FoundField(value)
		case strings.HasPrefix(label, "Analytical Writing"):
			out.GREAW = FoundField(value)
		}
	})

	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if !strings.EqualFold(collapseSpace(dt.Text()), "Notes") {
			return true
		}
		dd := dt.NextAllFiltered("dd").First()
		if dd.Length() == 0 {
			dd = dt.Parent().Find("dd").First()
		}
		if dd.Length() > 0 {
			out.Notes = FoundField(collapseSpace(dd.Text()))
		}
		return false
	})

	return out, nil
}
