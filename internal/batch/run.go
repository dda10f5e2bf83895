// Package batch is the single-shot driver: load the registry, sweep for
// candidate slugs, enrich whatever is new, bump last-checked dates, rewrite
// the files, report. Strictly sequential; any per-call failure is logged and
// absorbed, only registry I/O can fail a run.
package batch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"boardwatch/internal/config"
	"boardwatch/internal/enrich"
	"boardwatch/internal/registry"

	"github.com/google/uuid"
)

type Discoverer interface {
	Sweep(ctx context.Context) map[string]struct{}
}

type Enricher interface {
	CompanyName(ctx context.Context, slug string) (string, enrich.Outcome)
	JobCount(ctx context.Context, slug string) (int, enrich.Outcome)
}

type Runner struct {
	Cfg        config.Config
	Discoverer Discoverer
	Enricher   Enricher

	// Now is process-local "today"; overridable in tests.
	Now func() time.Time
}

type Report struct {
	RunID      string
	Total      int
	Discovered int
	New        int
	ZeroJobs   int
	LowJobs    int
}

const dateLayout = "2006-01-02"

// Run executes one full pass. The returned error is non-nil only for registry
// read/write failures.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	runID := uuid.NewString()[:8]
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	today := now().Format(dateLayout)

	regPath := filepath.Join(r.Cfg.App.DataDir, r.Cfg.Output.RegistryFile)

	reg, err := registry.Load(regPath)
	if err != nil {
		return Report{}, fmt.Errorf("load registry: %w", err)
	}
	log.Printf("[run %s] registry loaded: %d entries", runID, len(reg))

	candidates := r.Discoverer.Sweep(ctx)

	newSlugs := make([]string, 0)
	for slug := range candidates {
		if _, ok := reg[slug]; !ok {
			newSlugs = append(newSlugs, slug)
		}
	}
	sort.Strings(newSlugs)
	log.Printf("[run %s] discovered=%d new=%d", runID, len(candidates), len(newSlugs))

	for _, slug := range newSlugs {
		name, nameOut := r.Enricher.CompanyName(ctx, slug)
		count, countOut := r.Enricher.JobCount(ctx, slug)

		e := registry.Entry{
			Slug:        slug,
			CompanyName: name,
			FirstSeen:   today,
			LastChecked: today,
		}
		if countOut.Status != enrich.StatusFailed {
			n := count
			e.JobCount = &n
		}
		reg[slug] = e

		log.Printf("[run %s] new slug=%s name=%q (%s) jobs=%d (%s)",
			runID, slug, name, nameOut, count, countOut)
	}

	// Everything observed before this run gets its last-checked date bumped;
	// first-seen dates never move.
	for slug, e := range reg {
		if e.LastChecked != today {
			e.LastChecked = today
			reg[slug] = e
		}
	}

	if err := r.persist(regPath, reg); err != nil {
		return Report{}, err
	}

	rep := r.report(runID, reg, len(candidates), len(newSlugs))
	return rep, nil
}

func (r *Runner) persist(regPath string, reg registry.Registry) error {
	if err := registry.Save(regPath, reg); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}

	host := r.Cfg.Platform.Host
	zeroPath := filepath.Join(r.Cfg.App.DataDir, r.Cfg.Output.ZeroJobsFile)
	lowPath := filepath.Join(r.Cfg.App.DataDir, r.Cfg.Output.LowJobsFile)

	if err := registry.WriteZeroJobsView(zeroPath, reg, host); err != nil {
		return fmt.Errorf("save zero-jobs view: %w", err)
	}
	if err := registry.WriteLowJobsView(lowPath, reg, host, r.Cfg.Output.LowJobThreshold); err != nil {
		return fmt.Errorf("save low-jobs view: %w", err)
	}
	return nil
}

func (r *Runner) report(runID string, reg registry.Registry, discovered, added int) Report {
	rep := Report{
		RunID:      runID,
		Total:      len(reg),
		Discovered: discovered,
		New:        added,
	}
	for _, e := range reg {
		if e.JobCount == nil {
			continue
		}
		switch n := *e.JobCount; {
		case n == 0:
			rep.ZeroJobs++
		case n < r.Cfg.Output.LowJobThreshold:
			rep.LowJobs++
		}
	}
	log.Printf("[run %s] done: total=%d discovered=%d new=%d zero_jobs=%d low_jobs=%d",
		runID, rep.Total, rep.Discovered, rep.New, rep.ZeroJobs, rep.LowJobs)
	return rep
}
