package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"boardwatch/internal/config"
	"boardwatch/internal/discover"
)

// runDiag walks through the failure modes seen in practice when a sweep
// silently finds nothing: missing credentials, an unreachable search API,
// exhausted quota, and rate limiting under rapid sequential calls.
func runDiag(ctx context.Context, cfg config.Config) {
	log.Printf("[diag] checking search credentials")
	if cfg.Search.APIKey == "" {
		log.Printf("[diag]   api key: MISSING")
	} else {
		log.Printf("[diag]   api key: present (length %d)", len(cfg.Search.APIKey))
	}
	if cfg.Search.EngineID == "" {
		log.Printf("[diag]   engine id: MISSING")
	} else {
		log.Printf("[diag]   engine id: present (length %d)", len(cfg.Search.EngineID))
	}

	// No limiter here on purpose: diag wants to observe the API's own
	// throttling behavior.
	client := discover.NewClient(cfg, nil)
	baseQuery := "site:" + cfg.Platform.Host

	log.Printf("[diag] single search call")
	diagCall(ctx, client, baseQuery)

	log.Printf("[diag] second call (quota / throttle check)")
	diagCall(ctx, client, baseQuery)

	log.Printf("[diag] prefix query")
	diagCall(ctx, client, baseQuery+" a")

	log.Printf("[diag] five rapid sequential calls")
	for i := 0; i < 5; i++ {
		q := fmt.Sprintf("%s %c", baseQuery, 'a'+i)
		if !diagCall(ctx, client, q) {
			log.Printf("[diag]   stopping early: call %d failed", i+1)
			return
		}
		time.Sleep(500 * time.Millisecond)
	}

	log.Printf("[diag] all checks passed")
}

func diagCall(ctx context.Context, client *discover.Client, query string) bool {
	started := time.Now()
	page, err := client.Search(ctx, query, 1)
	elapsed := time.Since(started)

	if err != nil {
		log.Printf("[diag]   %q failed after %s: %v", query, elapsed.Round(time.Millisecond), err)
		return false
	}
	log.Printf("[diag]   %q ok in %s: %d items, ~%s total",
		query, elapsed.Round(time.Millisecond), len(page.Items), page.TotalResults)
	return true
}
