package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gofrs/flock"
)

// Entry is one discovered board. Dates are calendar days (YYYY-MM-DD); the
// registry never tracks anything finer. JobCount is nil until an enrichment
// pass has produced a value.
type Entry struct {
	Slug        string
	CompanyName string
	FirstSeen   string
	LastChecked string
	JobCount    *int
}

type Registry map[string]Entry

var header = []string{"slug", "company_name", "first_seen_date", "last_checked_date", "job_count"}

// Load reads the registry CSV. A missing file is an empty registry, not an
// error; anything else (unreadable file, malformed rows) is fatal to the run.
func Load(path string) (Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Registry{}, nil
		}
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	reg := Registry{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("registry row %d: want at least 4 fields, got %d", i+1, len(row))
		}
		e := Entry{
			Slug:        row[0],
			CompanyName: row[1],
			FirstSeen:   row[2],
			LastChecked: row[3],
		}
		if len(row) >= 5 && row[4] != "" {
			n, err := strconv.Atoi(row[4])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("registry row %d: bad job_count %q", i+1, row[4])
			}
			e.JobCount = &n
		}
		reg[e.Slug] = e
	}
	return reg, nil
}

// Save rewrites the registry file in full, newest first. The write goes to a
// temp file in the same directory and is renamed into place while holding a
// lock on a sidecar, so a crash mid-write never clobbers the previous run.
func Save(path string, reg Registry) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock registry: %w", err)
	}
	defer lock.Unlock()

	rows := make([][]string, 0, len(reg)+1)
	rows = append(rows, header)
	for _, e := range sorted(reg) {
		count := ""
		if e.JobCount != nil {
			count = strconv.Itoa(*e.JobCount)
		}
		rows = append(rows, []string{e.Slug, e.CompanyName, e.FirstSeen, e.LastChecked, count})
	}
	return writeCSV(path, rows)
}

// sorted returns entries newest-first by first_seen_date, slug as tiebreak so
// output is deterministic run to run.
func sorted(reg Registry) []Entry {
	out := make([]Entry, 0, len(reg))
	for _, e := range reg {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstSeen != out[j].FirstSeen {
			return out[i].FirstSeen > out[j].FirstSeen
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

func writeCSV(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".boardwatch-*")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
