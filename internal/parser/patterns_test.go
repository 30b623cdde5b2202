package parser

import "testing"

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"accepted stem", "Accepted", StatusAccepted},
		{"accept short", "accept", StatusAccepted},
		{"acceptance variant", "acceptances", StatusAccepted},
		{"rejected stem", "rejected", StatusRejected},
		{"reject upper", "REJECT", StatusRejected},
		{"waitlisted", "waitlisted", StatusWaitlisted},
		{"wait listed spaced", "wait listed", StatusWaitlisted},
		{"interview", "interview", StatusInterview},
		{"interviewing", "Interviewing", StatusInterview},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"unknown token", "deferred", "Deferred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeStatus(tt.input); got != tt.expected {
				t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStatusPattern(t *testing.T) {
	pats := NewPatterns()

	tests := []struct {
		text  string
		token string
	}{
		{"Accepted on 1 Mar", "Accepted"},
		{"Decision: rejected via email", "rejected"},
		{"Wait-listed for Fall", "Wait-listed"},
		{"wait listed until May", "wait listed"},
		{"Interview scheduled", "Interview"},
		{"no decision yet", ""},
	}

	for _, tt := range tests {
		m := pats.Status.FindStringSubmatch(tt.text)
		got := ""
		if m != nil {
			got = m[1]
		}
		if got != tt.token {
			t.Errorf("Status token in %q = %q, want %q", tt.text, got, tt.token)
		}
	}
}

func TestDatePattern(t *testing.T) {
	pats := NewPatterns()

	tests := []struct {
		text string
		want string
	}{
		{"Added on September 14, 2025", "September 14, 2025"},
		{"Sep 4, 2025 something", "Sep 4, 2025"},
		{"notified 2025-09-14 ok", "2025-09-14"},
		{"on 14/09/2025 via Email", "14/09/2025"},
		{"Fall 2026", ""},
	}

	for _, tt := range tests {
		if got := pats.Date.FindString(tt.text); got != tt.want {
			t.Errorf("Date in %q = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestStartTermAndUniversityPatterns(t *testing.T) {
	pats := NewPatterns()

	if got := pats.StartTerm.FindString("applying for Fall 2026 entry"); got != "Fall 2026" {
		t.Errorf("StartTerm = %q, want %q", got, "Fall 2026")
	}
	if got := pats.StartTerm.FindString("no term here"); got != "" {
		t.Errorf("StartTerm on no-term text = %q, want empty", got)
	}

	m := pats.University.FindStringSubmatch("rejected from Carnegie Mellon University today")
	if m == nil || m[1] != "Carnegie Mellon University" {
		t.Errorf("University match = %v, want Carnegie Mellon University", m)
	}
	if pats.University.MatchString("just some lowercase text") {
		t.Error("University pattern should not match lowercase text")
	}
}
