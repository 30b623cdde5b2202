package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces requests toward the source server. Listing pages and detail
// pages are paced independently: the page interval is the politeness delay
// between pagination steps, the detail interval is shared across the whole
// enrichment worker pool so concurrency never multiplies request pressure.
type Pacer struct {
	pages   *rate.Limiter
	details *rate.Limiter
}

// NewPacer creates a pacer from the two configured delays. A zero or
// negative delay disables pacing for that class of request.
func NewPacer(pageDelay, detailDelay time.Duration) *Pacer {
	return &Pacer{
		pages:   newLimiter(pageDelay),
		details: newLimiter(detailDelay),
	}
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// WaitPage blocks until the next listing-page fetch may proceed.
func (p *Pacer) WaitPage(ctx context.Context) error {
	return p.pages.Wait(ctx)
}

// WaitDetail blocks until the next detail-page fetch may proceed.
func (p *Pacer) WaitDetail(ctx context.Context) error {
	return p.details.Wait(ctx)
}
