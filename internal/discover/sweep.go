package discover

import (
	"context"
	"log"
)

// Searcher is the one method of Client the sweep needs; tests substitute a
// canned implementation.
type Searcher interface {
	Search(ctx context.Context, query string, start int) (Page, error)
}

// Sweeper drives the prefix sweep: for every prefix it pages through
// `site:<host> <prefix>` and collects tenant slugs from result links.
type Sweeper struct {
	Searcher Searcher
	Host     string
	// MaxStart caps pagination per query (the API refuses offsets past it
	// anyway, and some responses keep advertising a next page regardless).
	MaxStart      int
	ProgressEvery int
}

// Sweep returns the deduplicated candidate slug set for one run. Individual
// query failures are logged and skipped; only context cancellation stops the
// sweep early.
func (s *Sweeper) Sweep(ctx context.Context) map[string]struct{} {
	found := make(map[string]struct{})
	prefixes := Prefixes()

	for i, prefix := range prefixes {
		if ctx.Err() != nil {
			log.Printf("[discover] cancelled after %d/%d prefixes", i, len(prefixes))
			return found
		}

		query := "site:" + s.Host
		if prefix != "" {
			query += " " + prefix
		}
		s.sweepQuery(ctx, query, found)

		if s.ProgressEvery > 0 && (i+1)%s.ProgressEvery == 0 {
			log.Printf("[discover] %d/%d prefixes done, %d slugs so far", i+1, len(prefixes), len(found))
		}
	}

	log.Printf("[discover] sweep complete: %d unique slugs", len(found))
	return found
}

func (s *Sweeper) sweepQuery(ctx context.Context, query string, found map[string]struct{}) {
	maxStart := s.MaxStart
	if maxStart <= 0 {
		maxStart = 100
	}

	start := 1
	for start >= 1 && start <= maxStart {
		page, err := s.Searcher.Search(ctx, query, start)
		if err != nil {
			log.Printf("[discover] query %q start=%d: %v", query, start, err)
			return
		}
		if len(page.Items) == 0 {
			return
		}
		for _, it := range page.Items {
			if slug, ok := ExtractSlug(it.Link, s.Host); ok {
				found[slug] = struct{}{}
			}
		}
		if page.NextStart <= start {
			return
		}
		start = page.NextStart
	}
}
