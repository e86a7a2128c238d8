// Package export encodes entries and monthly reports into the file
// formats users download: CSV, Excel and PDF. All numeric values cross
// this boundary formatted to exactly two decimals.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"ore/internal/core"
)

var entryHeader = []string{
	"date", "project", "start", "end", "hours", "hourly_rate", "earnings", "notes",
}

// WriteEntriesCSV streams one month's entries as CSV. projectNames maps
// project ids to display names; unknown ids fall back to the raw id.
func WriteEntriesCSV(w io.Writer, entries []core.TimeEntry, projectNames map[string]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(entryHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.Date.Key(),
			projectName(projectNames, e.ProjectID),
			e.StartTime,
			e.EndTime,
			e.Duration.String(),
			e.HourlyRate.String(),
			e.Earnings.String(),
			e.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func projectName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

// Totals sums a slice of entries for the footer rows of the tabular
// exports. It reuses the aggregation fold so every format agrees with
// the monthly report.
func totals(entries []core.TimeEntry) (core.Duration, core.Money) {
	r := core.Aggregate("", 0, 0, entries, nil)
	return r.WorkedTime, r.TotalEarnings
}
