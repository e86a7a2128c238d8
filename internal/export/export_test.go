package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ore/internal/core"
)

func sampleEntries() ([]core.TimeEntry, map[string]string) {
	mk := func(day int, start, end string, rateCents int64, notes string) core.TimeEntry {
		e := core.TimeEntry{
			ID:         "e" + start,
			UserID:     "u1",
			ProjectID:  "p1",
			Date:       core.NewDate(2026, 3, day),
			StartTime:  start,
			EndTime:    end,
			HourlyRate: core.Money{Cents: rateCents},
			Notes:      notes,
		}
		if err := e.Recalculate(); err != nil {
			panic(err)
		}
		return e
	}
	entries := []core.TimeEntry{
		mk(2, "09:00", "12:00", 2000, "with, comma"),
		mk(3, "22:00", "06:00", 2500, ""),
	}
	return entries, map[string]string{"p1": "Engine"}
}

func TestWriteEntriesCSV(t *testing.T) {
	entries, names := sampleEntries()

	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, entries, names))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, entryHeader, records[0])
	require.Equal(t,
		[]string{"2026-03-02", "Engine", "09:00", "12:00", "3.00", "20.00", "60.00", "with, comma"},
		records[1])
	require.Equal(t,
		[]string{"2026-03-03", "Engine", "22:00", "06:00", "8.00", "25.00", "200.00", ""},
		records[2])
}

func TestWriteEntriesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, nil, nil))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestWriteEntriesExcel(t *testing.T) {
	entries, names := sampleEntries()

	var buf bytes.Buffer
	require.NoError(t, WriteEntriesExcel(&buf, entries, names))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Entries")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header, two entries, totals

	hours, err := f.GetCellValue("Entries", "E2")
	require.NoError(t, err)
	require.Equal(t, "3", hours)

	totalLabel, err := f.GetCellValue("Entries", "A4")
	require.NoError(t, err)
	require.Equal(t, "Total", totalLabel)

	totalEarnings, err := f.GetCellValue("Entries", "G4")
	require.NoError(t, err)
	require.Equal(t, "260", totalEarnings)
}

func TestWriteReportPDF(t *testing.T) {
	entries, names := sampleEntries()
	user := core.User{Username: "ada", Name: "Ada Lovelace", Email: "ada@example.com"}
	report := core.Aggregate("u1", 2026, 3, entries, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteReportPDF(&buf, user, report, entries, names))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
	require.Greater(t, buf.Len(), 500)
}
