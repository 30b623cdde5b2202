// Package crawler implements the incremental admissions-results crawler:
// a single pagination loop that walks listing pages, enriches each new
// record from its detail page, and persists the deduplicated collection
// after every page so a rerun resumes instead of repeating work.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/masahif/admitcrawl/internal/config"
	"github.com/masahif/admitcrawl/internal/parser"
)

// Crawler is the pagination controller. It owns the crawl state and is the
// only writer of the record store; detail-page enrichment is the one
// concurrent part and feeds results back through a per-page slice so that
// accept order stays discovery order.
type Crawler struct {
	config       *config.CrawlConfig
	store        RecordStore
	fetcher      Fetcher
	patterns     *parser.Patterns
	listParser   *parser.ListParser
	detailParser *parser.DetailParser
	robots       *RobotsPolicy
	pacer        *Pacer
}

// New creates a crawler. A nil fetcher gets the default HTTP client built
// from the configured timeouts and User-Agent.
func New(cfg *config.CrawlConfig, store RecordStore, fetcher Fetcher) (*Crawler, error) {
	if _, err := url.Parse(cfg.SourceURL); err != nil {
		return nil, fmt.Errorf("invalid source URL %q: %w", cfg.SourceURL, err)
	}

	if fetcher == nil {
		fetcher = NewHTTPClient(cfg.UserAgent, cfg.ConnectTimeout, cfg.RequestTimeout)
	}

	pats := parser.NewPatterns()
	return &Crawler{
		config:       cfg,
		store:        store,
		fetcher:      fetcher,
		patterns:     pats,
		listParser:   parser.NewListParser(pats),
		detailParser: parser.NewDetailParser(pats),
		robots:       NewRobotsPolicy(fetcher),
		pacer:        NewPacer(cfg.RequestDelay, cfg.DetailDelay),
	}, nil
}

// Run executes one crawl. It checks robots.txt once, then pages through
// the listing until a page yields no new records, the target size is
// reached, or the context is cancelled. State is flushed after every page,
// so a failed or interrupted run loses at most one page of work and the
// next invocation resumes from the output file.
func (c *Crawler) Run(ctx context.Context) (CrawlStats, error) {
	stats := CrawlStats{StartTime: time.Now()}

	if err := c.store.Load(); err != nil {
		slog.Warn("Could not load previous records, starting empty", "error", err)
	}
	stats.RecordsBefore = c.store.Count()
	slog.Info("Starting crawl", "source", c.config.SourceURL, "resumed_records", stats.RecordsBefore)

	src, err := url.Parse(c.config.SourceURL)
	if err != nil {
		return c.finish(stats), fmt.Errorf("invalid source URL: %w", err)
	}

	if !c.config.IgnoreRobots {
		base := src.Scheme + "://" + src.Host
		path := src.Path
		if path == "" {
			path = "/"
		}
		if !c.robots.IsAllowed(ctx, base, path) {
			return c.finish(stats), fmt.Errorf("%s: %w", path, ErrRobotsDisallowed)
		}
	}

	state := crawlState{
		page:         1,
		totalRecords: c.store.Count(),
		targetSize:   c.config.TargetSize,
	}

	for {
		if state.targetSize > 0 && state.totalRecords >= state.targetSize {
			slog.Info("Target size reached", "total", state.totalRecords)
			break
		}
		if c.config.PageLimit > 0 && state.page > c.config.PageLimit {
			slog.Info("Page limit reached", "page_limit", c.config.PageLimit)
			break
		}
		if err := c.pacer.WaitPage(ctx); err != nil {
			break
		}

		pageURL := buildPageURL(src, state.page)
		resp, err := c.fetcher.Get(ctx, pageURL)
		if err != nil {
			// End of pagination for this run; already-flushed state makes
			// the next invocation the retry mechanism.
			slog.Info("Listing fetch failed, ending run", "page", state.page, "error", err)
			break
		}
		stats.PagesFetched++
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			slog.Info("Listing returned non-2xx, ending run", "page", state.page, "status", resp.StatusCode)
			break
		}

		stubs, err := c.listParser.Parse(resp.Body, pageURL)
		if err != nil {
			slog.Warn("Listing page unparseable, ending run", "page", state.page, "error", err)
			break
		}

		unseen := c.filterSeen(stubs)
		details := c.enrichAll(ctx, unseen)

		accepted := 0
		for i := range unseen {
			if ctx.Err() != nil {
				break
			}
			if c.store.Accept(AssembleRecord(unseen[i], details[i])) {
				accepted++
			}
		}
		state.totalRecords = c.store.Count()

		if err := c.store.Flush(); err != nil {
			return c.finish(stats), fmt.Errorf("failed to flush records: %w", err)
		}
		slog.Info("Page complete", "page", state.page, "stubs", len(stubs), "new_records", accepted, "total", state.totalRecords)

		if accepted == 0 {
			slog.Info("No new records on page, crawl is up to date", "page", state.page)
			break
		}
		if ctx.Err() != nil {
			slog.Info("Crawl cancelled", "page", state.page)
			break
		}
		state.page++
	}

	return c.finish(stats), nil
}

func (c *Crawler) finish(stats CrawlStats) CrawlStats {
	stats.RecordsAfter = c.store.Count()
	stats.Duration = time.Since(stats.StartTime)
	slog.Info("Crawl finished",
		"pages_fetched", stats.PagesFetched,
		"records_before", stats.RecordsBefore,
		"records_after", stats.RecordsAfter,
		"duration", stats.Duration)
	return stats
}

// filterSeen drops stubs whose identity is already captured, and collapses
// identity collisions within the page (the "#row" fallback identities
// collide on purpose).
func (c *Crawler) filterSeen(stubs []parser.RecordStub) []parser.RecordStub {
	inPage := make(map[string]struct{}, len(stubs))
	unseen := make([]parser.RecordStub, 0, len(stubs))
	for _, s := range stubs {
		if c.store.Seen(s.EntryURL) {
			continue
		}
		if _, dup := inPage[s.EntryURL]; dup {
			continue
		}
		inPage[s.EntryURL] = struct{}{}
		unseen = append(unseen, s)
	}
	return unseen
}

// enrichAll fetches detail pages for the given stubs with a bounded worker
// pool. Results land in a slice parallel to stubs, so callers can merge in
// discovery order regardless of fetch completion order. Failures degrade
// to zero DetailFields; the record is still produced from stub data.
func (c *Crawler) enrichAll(ctx context.Context, stubs []parser.RecordStub) []parser.DetailFields {
	details := make([]parser.DetailFields, len(stubs))

	workers := c.config.DetailConcurrency
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range stubs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			details[i] = c.enrich(ctx, stubs[i])
		}(i)
	}
	wg.Wait()

	return details
}

func (c *Crawler) enrich(ctx context.Context, stub parser.RecordStub) parser.DetailFields {
	// Fallback identities point back at the listing page, not a detail page.
	if !c.patterns.ResultPath.MatchString(stub.EntryURL) {
		return parser.DetailFields{}
	}

	if err := c.pacer.WaitDetail(ctx); err != nil {
		return parser.DetailFields{}
	}

	resp, err := c.fetcher.Get(ctx, stub.EntryURL)
	if err != nil {
		slog.Debug("Detail fetch failed, keeping stub data", "url", stub.EntryURL, "error", err)
		return parser.DetailFields{}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("Detail returned non-2xx, keeping stub data", "url", stub.EntryURL, "status", resp.StatusCode)
		return parser.DetailFields{}
	}

	fields, err := c.detailParser.Parse(resp.Body)
	if err != nil {
		slog.Debug("Detail page unparseable, keeping stub data", "url", stub.EntryURL, "error", err)
		return parser.DetailFields{}
	}
	return fields
}

// buildPageURL returns the listing URL for a page number. Page 1 is the
// bare source URL; later pages add ?page=N the way the site paginates.
func buildPageURL(src *url.URL, page int) string {
	if page <= 1 {
		return src.String()
	}
	u := *src
	q := u.Query()
	q.Set("page", fmt.Sprintf("%d", page))
	u.RawQuery = q.Encode()
	return u.String()
}
