package crawler

import "time"

// Record is the final persisted unit: the union of a listing stub and its
// detail-page fields, with detail values taking precedence. The JSON key
// set is the interface consumed by the downstream standardization step and
// must not change: the core keys are always present (empty string when
// unknown), the metric keys are emitted only when present.
type Record struct {
	Status          string `json:"status"`
	DateAdded       string `json:"date_added"`
	AcceptanceDate  string `json:"acceptance_date"`
	RejectionDate   string `json:"rejection_date"`
	StartTerm       string `json:"start_term"`
	Degree          string `json:"degree"`
	Program         string `json:"program"`
	University      string `json:"university"`
	Comments        string `json:"comments"`
	EntryURL        string `json:"entry_url"`
	CountryOfOrigin string `json:"US/International,omitempty"`
	GRE             string `json:"GRE,omitempty"`
	GREVerbal       string `json:"GRE V,omitempty"`
	GPA             string `json:"GPA,omitempty"`
	GREAW           string `json:"GRE AW,omitempty"`
}

// CrawlStats summarizes one crawler run.
type CrawlStats struct {
	PagesFetched  int
	RecordsBefore int
	RecordsAfter  int
	StartTime     time.Time
	Duration      time.Duration
}

// NewRecords reports how many records this run added.
func (s CrawlStats) NewRecords() int {
	return s.RecordsAfter - s.RecordsBefore
}

// crawlState is the pagination controller's loop state. It is owned
// exclusively by the controller and mutated once per page.
type crawlState struct {
	page         int
	totalRecords int
	targetSize   int
}
