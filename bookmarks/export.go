package bookmarks

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// ExportCSV writes list as CSV with a header row. List cells are joined
// with semicolons.
func ExportCSV(w io.Writer, list []BookmarkedJob) error {
	rows := make([]jobRow, len(list))
	for i, b := range list {
		rows[i] = rowOf(b.Job)
		rows[i].BookmarkedAt = b.BookmarkedAt.UTC().Format(time.RFC3339)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("exporting bookmarks: %w", err)
	}
	return nil
}

// ExportJobsCSV writes plain listings as CSV.
func ExportJobsCSV(w io.Writer, jobs []Job) error {
	rows := make([]jobRow, len(jobs))
	for i, j := range jobs {
		rows[i] = rowOf(j)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("exporting jobs: %w", err)
	}
	return nil
}
