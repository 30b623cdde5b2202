package crawler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

type stubFetcher struct {
	status int
	body   string
	err    error
	calls  int
}

func (s *stubFetcher) Get(ctx context.Context, url string) (*HTTPResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &HTTPResponse{
		StatusCode: s.status,
		Headers:    http.Header{},
		Body:       []byte(s.body),
		FinalURL:   url,
	}, nil
}

func TestRobotsPolicy(t *testing.T) {
	robotsTxt := `
# admissions site robots
User-agent: *
Disallow: /admin/
Disallow: /private

User-agent: Googlebot
Disallow: /survey/
`

	tests := []struct {
		name    string
		path    string
		allowed bool
	}{
		{"root allowed", "/", true},
		{"survey allowed for wildcard group", "/survey/", true},
		{"admin disallowed", "/admin/", false},
		{"admin subpath disallowed", "/admin/users", false},
		{"private prefix disallowed", "/private-data", false},
		{"empty path treated as root", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewRobotsPolicy(&stubFetcher{status: 200, body: robotsTxt})
			got := policy.IsAllowed(context.Background(), "https://example.com", tt.path)
			if got != tt.allowed {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.path, got, tt.allowed)
			}
		})
	}
}

func TestRobotsPolicyDisallowsSurvey(t *testing.T) {
	robotsTxt := "User-agent: *\nDisallow: /survey/\n"
	policy := NewRobotsPolicy(&stubFetcher{status: 200, body: robotsTxt})

	if policy.IsAllowed(context.Background(), "https://example.com", "/survey/") {
		t.Error("Expected /survey/ to be disallowed")
	}
}

func TestRobotsPolicyFailsOpen(t *testing.T) {
	t.Run("fetch error", func(t *testing.T) {
		policy := NewRobotsPolicy(&stubFetcher{err: errors.New("connection refused")})
		if !policy.IsAllowed(context.Background(), "https://example.com", "/survey/") {
			t.Error("Expected allow when robots.txt is unreachable")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		policy := NewRobotsPolicy(&stubFetcher{status: 404, body: "not found"})
		if !policy.IsAllowed(context.Background(), "https://example.com", "/survey/") {
			t.Error("Expected allow when robots.txt is missing")
		}
	})

	t.Run("garbage content", func(t *testing.T) {
		policy := NewRobotsPolicy(&stubFetcher{status: 200, body: "<html>not robots</html>"})
		if !policy.IsAllowed(context.Background(), "https://example.com", "/survey/") {
			t.Error("Expected allow for unparseable robots.txt")
		}
	})
}

func TestParseWildcardDisallows(t *testing.T) {
	content := `
User-agent: *
Disallow: /a
Disallow:
Allow: /a/b

User-agent: OtherBot
Disallow: /b

User-agent: *
Disallow: /c
`
	rules := parseWildcardDisallows(content)

	want := []string{"/a", "/c"}
	if len(rules) != len(want) {
		t.Fatalf("rules = %v, want %v", rules, want)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Errorf("rules[%d] = %q, want %q", i, rules[i], want[i])
		}
	}
}
