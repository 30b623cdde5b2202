package parser

import "testing"

const detailPageHTML = `<html><body>
<dl class="tw-divide-y">
  <div><dt>Institution</dt><dd>Stanford University</dd></div>
  <div><dt>Program</dt><dd>Computer Science</dd></div>
  <div><dt>Degree Type</dt><dd>PhD</dd></div>
  <div><dt>Undergrad GPA</dt><dd>3.85</dd></div>
  <div><dt>Degree's Country of Origin</dt><dd>International</dd></div>
  <div><dt>Decision</dt><dd>Accepted</dd></div>
  <div><dt>Notification</dt><dd>on 14/09/2025 via E-mail</dd></div>
  <div><dt>Notes</dt><dd>Funded offer, advisor reached out first.</dd></div>
  <div><dt>Timeline</dt><dd>ignored label</dd></div>
  <ul>
    <li><span class="tw-font-medium">GRE General:</span> <span>325</span></li>
    <li><span class="tw-font-medium">GRE Verbal:</span> <span>162</span></li>
    <li><span class="tw-font-medium">Analytical Writing:</span> <span>4.5</span></li>
  </ul>
</dl>
</body></html>`

func TestParseDetailPage(t *testing.T) {
	fields, err := NewDetailParser(NewPatterns()).Parse([]byte(detailPageHTML))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	checks := []struct {
		name  string
		field Field
		want  string
	}{
		{"University", fields.University, "Stanford University"},
		{"Program", fields.Program, "Computer Science"},
		{"Degree", fields.Degree, "PhD"},
		{"GPA", fields.GPA, "3.85"},
		{"CountryOfOrigin", fields.CountryOfOrigin, "International"},
		{"Decision", fields.Decision, "Accepted"},
		{"NotificationOn", fields.NotificationOn, "September 14, 2025"},
		{"Notes", fields.Notes, "Funded offer, advisor reached out first."},
		{"GRE", fields.GRE, "325"},
		{"GREVerbal", fields.GREVerbal, "162"},
		{"GREAW", fields.GREAW, "4.5"},
	}

	for _, c := range checks {
		if !c.field.Found {
			t.Errorf("%s not found", c.name)
			continue
		}
		if c.field.Value != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.field.Value, c.want)
		}
	}
}

func TestParseDetailPageEmpty(t *testing.T) {
	fields, err := NewDetailParser(NewPatterns()).Parse([]byte(`<html><body><p>nothing here</p></body></html>`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if fields != (DetailFields{}) {
		t.Errorf("Expected zero DetailFields, got %+v", fields)
	}
}

func TestParseDetailPageUnparseableNotificationDate(t *testing.T) {
	html := `<dl><div><dt>Notification</dt><dd>via Phone</dd></div></dl>`

	fields, err := NewDetailParser(NewPatterns()).Parse([]byte(html))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	// The label was present but held no parseable date: found, empty.
	if !fields.NotificationOn.Found {
		t.Error("NotificationOn should be marked found")
	}
	if fields.NotificationOn.Value != "" {
		t.Errorf("NotificationOn = %q, want empty", fields.NotificationOn.Value)
	}
}

func TestParseDetailPageEmptyValuesIgnored(t *testing.T) {
	html := `<dl>
	  <div><dt>Institution</dt><dd>  </dd></div>
	  <div><dt>Program</dt><dd>Physics</dd></div>
	</dl>`

	fields, err := NewDetailParser(NewPatterns()).Parse([]byte(html))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if fields.University.Found {
		t.Errorf("University = %+v, want not found for whitespace-only dd", fields.University)
	}
	if fields.Program.Value != "Physics" {
		t.Errorf("Program = %q", fields.Program.Value)
	}
}
