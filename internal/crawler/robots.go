package crawler

import (
	"bufio"
	"context"
	"errors"
	"strings"
)

// ErrRobotsDisallowed is returned when robots.txt forbids the source path.
// It is fatal for the whole run: no listing page is fetched after it.
var ErrRobotsDisallowed = errors.New("path disallowed by robots.txt")

// RobotsPolicy evaluates a site's robots.txt once, before pagination
// begins. Only the wildcard (*) agent group is considered; named agent
// groups are ignored on purpose, mirroring the narrower of the common
// robots interpretations.
type RobotsPolicy struct {
	fetcher Fetcher
}

// NewRobotsPolicy creates a robots.txt evaluator.
func NewRobotsPolicy(fetcher Fetcher) *RobotsPolicy {
	return &RobotsPolicy{fetcher: fetcher}
}

// IsAllowed fetches <baseURL>/robots.txt and reports whether path is
// allowed for the wildcard agent group. It fails open: a missing,
// unreachable, or unparseable robots.txt allows crawling.
func (r *RobotsPolicy) IsAllowed(ctx context.Context, baseURL, path string) bool {
	robotsURL := strings.TrimSuffix(baseURL, "/") + "/robots.txt"

	resp, err := r.fetcher.Get(ctx, robotsURL)
	if err != nil || resp.StatusCode != 200 {
		return true
	}

	if path == "" {
		path = "/"
	}
	for _, rule := range parseWildcardDisallows(string(resp.Body)) {
		if strings.HasPrefix(path, rule) {
			return false
		}
	}
	return true
}

// parseWildcardDisallows returns the non-empty Disallow rules of the
// User-agent: * group(s).
func parseWildcardDisallows(content string) []string {
	var rules []string
	inStar := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		directive := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch directive {
		case "user-agent":
			inStar = value == "*"
		case "disallow":
			if inStar && value != "" {
				rules = append(rules, value)
			}
		}
	}

	return rules
}
