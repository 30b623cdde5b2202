package crawler

import (
	"github.com/masahif/admitcrawl/internal/parser"
)

// AssembleRecord merges a listing stub with its detail-page fields into the
// final record. For every overlapping field a non-empty detail value wins;
// an empty detail value never erases stub data. The final status prefers
// the detail page's Decision over the listing's status token.
//
// The notification date is routed by status: to acceptance_date for
// Accepted, to rejection_date for Rejected, and discarded otherwise —
// Interview and Wait listed records carry no settlement date. When the
// detail page has no notification date, the first date token from the
// stub's row-context is routed the same way; if neither yields a parseable
// date, both fields stay empty. No date is ever guessed.
func AssembleRecord(stub parser.RecordStub, detail parser.DetailFields) Record {
	status := parser.NormalizeStatus(detail.Decision.Or(stub.Status).Value)

	noteDate := detail.NotificationOn.Value
	if noteDate == "" {
		noteDate = parser.ToLongDate(stub.ContextDate.Value)
	}

	var acceptanceDate, rejectionDate string
	switch status {
	case parser.StatusAccepted:
		acceptanceDate = noteDate
	case parser.StatusRejected:
		rejectionDate = noteDate
	}

	return Record{
		Status:          status,
		DateAdded:       stub.PostedDate.Value,
		AcceptanceDate:  acceptanceDate,
		RejectionDate:   rejectionDate,
		StartTerm:       stub.StartTerm.Value,
		Degree:          detail.Degree.Or(stub.Degree).Value,
		Program:         detail.Program.Or(stub.Program).Value,
		University:      detail.University.Or(stub.University).Value,
		Comments:        detail.Notes.Or(stub.Comments).Value,
		EntryURL:        stub.EntryURL,
		CountryOfOrigin: detail.CountryOfOrigin.Value,
		GRE:             detail.GRE.Value,
		GREVerbal:       detail.GREVerbal.Value,
		GPA:             detail.GPA.Value,
		GREAW:           detail.GREAW.Value,
	}
}
