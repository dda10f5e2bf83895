package main

import (
	"context"
	"log"

	"boardwatch/internal/batch"
	"boardwatch/internal/config"
	"boardwatch/internal/enrich"
	"boardwatch/internal/util"
	"boardwatch/internal/wordgen"
)

// staticSet feeds an already-known candidate set through the normal
// diff/enrich/persist pipeline.
type staticSet map[string]struct{}

func (s staticSet) Sweep(context.Context) map[string]struct{} { return s }

// runProbe tests generated word-combination slugs against the live board
// host. Speculative by nature, so it only reports hits unless --save asks for
// a registry merge.
func runProbe(ctx context.Context, cfg config.Config, limit int, save bool) error {
	fetchLim := util.NewHostLimiter(cfg.Pacing.FetchPerSec, cfg.Pacing.Burst)
	client := enrich.NewClient(cfg, fetchLim)

	candidates := wordgen.Candidates()
	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	log.Printf("[probe] testing %d candidates against %s", len(candidates), cfg.Platform.Host)

	hits := staticSet{}
	for i, slug := range candidates {
		if ctx.Err() != nil {
			log.Printf("[probe] cancelled after %d/%d candidates", i, len(candidates))
			break
		}
		if client.SlugExists(ctx, slug) {
			log.Printf("[probe] hit: %s", slug)
			hits[slug] = struct{}{}
		}
		if (i+1)%100 == 0 {
			log.Printf("[probe] %d/%d tested, %d hits", i+1, len(candidates), len(hits))
		}
	}
	log.Printf("[probe] done: %d hits", len(hits))

	if !save || len(hits) == 0 {
		return nil
	}

	runner := &batch.Runner{Cfg: cfg, Discoverer: hits, Enricher: client}
	_, err := runner.Run(ctx)
	return err
}
