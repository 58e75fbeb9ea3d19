package bookmarks

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
)

//go:embed jobs.csv
var jobsCSV []byte

// listSep separates list values inside one CSV cell.
const listSep = ";"

// jobRow is the flat CSV form of a Job.
type jobRow struct {
	ID           int    `csv:"id"`
	Title        string `csv:"title"`
	Company      string `csv:"company"`
	Location     string `csv:"location"`
	Type         string `csv:"type"`
	Salary       string `csv:"salary"`
	Match        int    `csv:"match"`
	Logo         string `csv:"logo"`
	Skills       string `csv:"skills"`
	Posted       string `csv:"posted"`
	Applicants   int    `csv:"applicants"`
	Description  string `csv:"description"`
	Requirements string `csv:"requirements"`
	Benefits     string `csv:"benefits"`
	BookmarkedAt string `csv:"bookmarked_at"` // export only
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, listSep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func joinList(l []string) string {
	return strings.Join(l, listSep)
}

func rowOf(j Job) jobRow {
	return jobRow{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Type:         j.Type,
		Salary:       j.Salary,
		Match:        j.Match,
		Logo:         j.Logo,
		Skills:       joinList(j.Skills),
		Posted:       j.Posted,
		Applicants:   j.Applicants,
		Description:  j.Description,
		Requirements: joinList(j.Requirements),
		Benefits:     joinList(j.Benefits),
	}
}

func (r jobRow) job() Job {
	return Job{
		ID:           r.ID,
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Type:         r.Type,
		Salary:       r.Salary,
		Match:        r.Match,
		Logo:         r.Logo,
		Skills:       splitList(r.Skills),
		Posted:       r.Posted,
		Applicants:   r.Applicants,
		Description:  r.Description,
		Requirements: splitList(r.Requirements),
		Benefits:     splitList(r.Benefits),
	}
}

var (
	catalogOnce sync.Once
	catalog     []Job
	catalogErr  error
)

// Catalog returns the built-in job listings in id order.
func Catalog() ([]Job, error) {
	catalogOnce.Do(func() {
		var rows []jobRow
		if err := gocsv.UnmarshalBytes(jobsCSV, &rows); err != nil {
			catalogErr = fmt.Errorf("parsing job catalog: %w", err)
			return
		}
		catalog = make([]Job, len(rows))
		for i, r := range rows {
			catalog[i] = r.job()
		}
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	out := make([]Job, len(catalog))
	copy(out, catalog)
	return out, nil
}

// Lookup returns the catalog listing with the given id.
func Lookup(id int) (Job, error) {
	jobs, err := Catalog()
	if err != nil {
		return Job{}, err
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return Job{}, fmt.Errorf("no job with id %d: %w", id, ErrNotFound)
}
