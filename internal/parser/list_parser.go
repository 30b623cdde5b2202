package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field is an optional string value. The zero value means "not found";
// a Found field may still carry an empty string when the source element
// existed but had no text. Both render as "" in the output file, but the
// distinction stays observable here.
type Field struct {
	Value string
	Found bool
}

// FoundField wraps a value that was located in the markup.
func FoundField(v string) Field { return Field{Value: v, Found: true} }

// Or returns f when it holds a non-empty value, otherwise other. An empty
// value never wins over a non-empty one, regardless of Found.
func (f Field) Or(other Field) Field {
	if f.Value != "" {
		return f
	}
	return other
}

func (f Field) String() string { return f.Value }

// RecordStub is the partial record read from a single listing row (plus its
// one-row lookback window). EntryURL is the deduplication identity; a stub
// that cannot derive one is dropped by the parser. All other fields are
// best-effort and independent.
type RecordStub struct {
	EntryURL    string
	Program     Field
	Degree      Field
	Status      Field
	PostedDate  Field
	StartTerm   Field
	University  Field
	Comments    Field
	ContextDate Field // first date token in the two-row window, date-routing fallback
}

// ListParser extracts record stubs from survey listing pages.
type ListParser struct {
	pats *Patterns
}

// NewListParser creates a list-page parser using the shared pattern set.
func NewListParser(pats *Patterns) *ListParser {
	return &ListParser{pats: pats}
}

// Parse walks the table rows of one listing page and returns the record
// stubs found on it, in document order. A row is a candidate when it holds
// a recognizable status token. One logical result
// can span up to three physical rows, so pattern fields are searched over
// the row's own text concatenated with the previous row's text.
func (p *ListParser) Parse(htmlBody []byte, pageURL string) ([]RecordStub, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	var stubs []RecordStub
	var prev *goquery.Selection

	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		defer func() { prev = tr }()

		rowText := collapseSpace(tr.Text())
		if !p.pats.Status.MatchString(rowText) {
			return
		}

		prevText := ""
		if prev != nil {
			prevText = collapseSpace(prev.Text())
		}
		ctx := strings.TrimSpace(prevText + " " + rowText)

		link := tr.Find(`a[href^="/result/"]`).First()
		if link.Length() == 0 && prev != nil {
			link = prev.Find(`a[href^="/result/"]`).First()
		}

		entryURL, ok := p.resolveEntryURL(base, pageURL, link)
		if !ok {
			// No usable identity means no safe dedup; drop the stub.
			return
		}

		stub := RecordStub{EntryURL: entryURL}

		if m := p.pats.Status.FindStringSubmatch(rowText); m != nil {
			stub.Status = FoundField(m[1])
		}
		if m := p.pats.Date.FindString(ctx); m != "" {
			stub.ContextDate = FoundField(m)
		}
		if m := p.pats.StartTerm.FindString(ctx); m != "" {
			stub.StartTerm = FoundField(m)
		}
		if m := p.pats.Quoted.FindStringSubmatch(ctx); m != nil {
			stub.Comments = FoundField(m[1])
		}

		tds := tr.Find("td")
		if tds.Length() >= 3 {
			if m := p.pats.Date.FindString(collapseSpace(tds.Eq(2).Text())); m != "" {
				stub.PostedDate = FoundField(m)
			}
		}
		if tds.Length() >= 2 {
			stub.Program, stub.Degree = p.programAndDegree(tds.Eq(1))
		}
		stub.University = p.university(tr, ctx)

		stubs = append(stubs, stub)
	})

	return stubs, nil
}

// resolveEntryURL derives the stub identity from its detail link. Rows
// without any detail link fall back to the page URL plus a marker; such
// identities collide on purpose and only the first survives dedup — the
// stub is effectively unidentifiable and we do not pretend otherwise.
func (p *ListParser) resolveEntryURL(base *url.URL, pageURL string, link *goquery.Selection) (string, bool) {
	href, exists := link.Attr("href")
	if !exists || href == "" {
		return pageURL + "#row", true
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

// programAndDegree reads the middle cell: the first span carries the
// program name, the gray secondary span (or failing that the last span)
// carries the degree.
func (p *ListParser) programAndDegree(mid *goquery.Selection) (program, degree Field) {
	spans := mid.Find("div span")
	if spans.Length() == 0 {
		return program, degree
	}
	program = FoundField(collapseSpace(spans.First().Text()))

	if gray := mid.Find("span.tw-text-gray-500").First(); gray.Length() > 0 {
		degree = FoundField(collapseSpace(gray.Text()))
	} else if spans.Length() >= 2 {
		degree = FoundField(collapseSpace(spans.Last().Text()))
	}
	return program, degree
}

func (p *ListParser) university(tr *goquery.Selection, ctx string) Field {
	var out Field
	tr.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := collapseSpace(a.Text())
		if p.pats.University.MatchString(text) {
			out = FoundField(text)
			return false
		}
		return true
	})
	if out.Found {
		return out
	}
	if m := p.pats.University.FindStringSubmatch(ctx); m != nil {
		return FoundField(m[1])
	}
	return out
}
