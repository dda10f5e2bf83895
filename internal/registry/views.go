package registry

import (
	"fmt"
	"strconv"
)

var viewHeader = []string{"slug", "company_name", "first_seen_date", "job_count", "url"}

// WriteZeroJobsView writes the subset of entries whose last known job count
// is exactly zero. Entries that were never counted are left out.
func WriteZeroJobsView(path string, reg Registry, host string) error {
	return writeView(path, reg, host, func(n int) bool { return n == 0 })
}

// WriteLowJobsView writes entries with 1 to threshold-1 open positions.
func WriteLowJobsView(path string, reg Registry, host string, threshold int) error {
	return writeView(path, reg, host, func(n int) bool { return n >= 1 && n < threshold })
}

func writeView(path string, reg Registry, host string, keep func(int) bool) error {
	rows := [][]string{viewHeader}
	for _, e := range sorted(reg) {
		if e.JobCount == nil || !keep(*e.JobCount) {
			continue
		}
		rows = append(rows, []string{
			e.Slug,
			e.CompanyName,
			e.FirstSeen,
			strconv.Itoa(*e.JobCount),
			fmt.Sprintf("https://%s/%s", host, e.Slug),
		})
	}
	return writeCSV(path, rows)
}
