package batch

import (
	"context"
	"os"
	"testing"
	"time"

	"boardwatch/internal/config"
	"boardwatch/internal/enrich"
	"boardwatch/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscoverer struct {
	slugs []string
}

func (f *fakeDiscoverer) Sweep(context.Context) map[string]struct{} {
	out := make(map[string]struct{}, len(f.slugs))
	for _, s := range f.slugs {
		out[s] = struct{}{}
	}
	return out
}

type fakeEnricher struct {
	names    map[string]string
	counts   map[string]int
	failures map[string]bool
	enriched []string
}

func (f *fakeEnricher) CompanyName(_ context.Context, slug string) (string, enrich.Outcome) {
	f.enriched = append(f.enriched, slug)
	if name, ok := f.names[slug]; ok {
		return name, enrich.Outcome{Status: enrich.StatusOK, Source: "title"}
	}
	return slug, enrich.Outcome{Status: enrich.StatusDegraded, Source: "slug"}
}

func (f *fakeEnricher) JobCount(_ context.Context, slug string) (int, enrich.Outcome) {
	if f.failures[slug] {
		return 0, enrich.Outcome{Status: enrich.StatusFailed, Source: "none", Reason: "unreachable"}
	}
	return f.counts[slug], enrich.Outcome{Status: enrich.StatusOK, Source: "feed"}
}

func newTestRunner(t *testing.T, disc Discoverer, enr Enricher, day string) *Runner {
	t.Helper()
	cfg := config.Default()
	cfg.App.DataDir = t.TempDir()
	cfg.Platform.Host = "jobs.example.com"

	when, err := time.Parse(dateLayout, day)
	require.NoError(t, err)

	return &Runner{
		Cfg:        cfg,
		Discoverer: disc,
		Enricher:   enr,
		Now:        func() time.Time { return when },
	}
}

func (r *Runner) loadRegistry(t *testing.T) registry.Registry {
	t.Helper()
	reg, err := registry.Load(r.Cfg.App.DataDir + "/" + r.Cfg.Output.RegistryFile)
	require.NoError(t, err)
	return reg
}

func TestRunNewVsExistingPartition(t *testing.T) {
	enr := &fakeEnricher{
		names:  map[string]string{"b": "B Co", "c": "C Co"},
		counts: map[string]int{"c": 7},
	}

	// Seed a registry with {a, b} on day one.
	seed := newTestRunner(t, &fakeDiscoverer{slugs: []string{"a", "b"}}, enr, "2026-08-01")
	rep, err := seed.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rep.New)

	// Day two discovers {b, c}: only c is new, b gets a fresh last-checked
	// date, a's first-seen never moves.
	enr.enriched = nil
	second := newTestRunner(t, &fakeDiscoverer{slugs: []string{"b", "c"}}, enr, "2026-08-02")
	second.Cfg.App.DataDir = seed.Cfg.App.DataDir

	rep, err = second.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.New)
	assert.Equal(t, 3, rep.Total)
	assert.Equal(t, []string{"c"}, enr.enriched)

	reg := second.loadRegistry(t)
	assert.Equal(t, "2026-08-01", reg["a"].FirstSeen)
	assert.Equal(t, "2026-08-02", reg["a"].LastChecked)
	assert.Equal(t, "2026-08-01", reg["b"].FirstSeen)
	assert.Equal(t, "2026-08-02", reg["b"].LastChecked)
	assert.Equal(t, "2026-08-02", reg["c"].FirstSeen)
	assert.Equal(t, 7, *reg["c"].JobCount)
}

func TestRunIsIdempotent(t *testing.T) {
	enr := &fakeEnricher{
		names:  map[string]string{"acme-co": "Acme"},
		counts: map[string]int{"acme-co": 4},
	}
	disc := &fakeDiscoverer{slugs: []string{"acme-co"}}

	r := newTestRunner(t, disc, enr, "2026-08-15")
	_, err := r.Run(context.Background())
	require.NoError(t, err)
	first := r.loadRegistry(t)

	// Same day, same external data: nothing may change, nothing duplicates.
	enr.enriched = nil
	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.New)
	assert.Empty(t, enr.enriched, "existing slugs are not re-enriched")
	assert.Equal(t, first, r.loadRegistry(t))
}

func TestRunFailedEnrichmentLeavesCountUnset(t *testing.T) {
	enr := &fakeEnricher{failures: map[string]bool{"down-co": true}}
	r := newTestRunner(t, &fakeDiscoverer{slugs: []string{"down-co"}}, enr, "2026-08-15")

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	reg := r.loadRegistry(t)
	require.Contains(t, reg, "down-co")
	assert.Nil(t, reg["down-co"].JobCount)
}

func TestRunReportBuckets(t *testing.T) {
	enr := &fakeEnricher{counts: map[string]int{
		"zero-co": 0,
		"low-co":  2,
		"big-co":  50,
	}}
	r := newTestRunner(t, &fakeDiscoverer{slugs: []string{"zero-co", "low-co", "big-co"}}, enr, "2026-08-15")

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Total)
	assert.Equal(t, 1, rep.ZeroJobs)
	assert.Equal(t, 1, rep.LowJobs)
}

func TestRunWritesViews(t *testing.T) {
	enr := &fakeEnricher{counts: map[string]int{"zero-co": 0, "low-co": 2}}
	r := newTestRunner(t, &fakeDiscoverer{slugs: []string{"zero-co", "low-co"}}, enr, "2026-08-15")

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	for _, name := range []string{r.Cfg.Output.ZeroJobsFile, r.Cfg.Output.LowJobsFile} {
		_, statErr := os.Stat(r.Cfg.App.DataDir + "/" + name)
		assert.NoError(t, statErr, name)
	}
}
