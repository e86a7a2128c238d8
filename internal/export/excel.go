package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"ore/internal/core"
)

const entriesSheet = "Entries"

// WriteEntriesExcel writes one month's entries as an .xlsx workbook
// with a totals row, mirroring the CSV column layout.
func WriteEntriesExcel(w io.Writer, entries []core.TimeEntry, projectNames map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(entriesSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range entryHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(entriesSheet, cell, title); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, e := range entries {
		row := i + 2
		values := []any{
			e.Date.Key(),
			projectName(projectNames, e.ProjectID),
			e.StartTime,
			e.EndTime,
			core.Round2(e.Duration.Hours()),
			e.HourlyRate.Amount(),
			e.Earnings.Amount(),
			e.Notes,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("entry cell: %w", err)
			}
			if err := f.SetCellValue(entriesSheet, cell, v); err != nil {
				return fmt.Errorf("write entry row: %w", err)
			}
		}
	}

	workedTime, totalEarnings := totals(entries)
	totalRow := len(entries) + 2
	for col, v := range map[int]any{
		1: "Total",
		5: core.Round2(workedTime.Hours()),
		7: totalEarnings.Amount(),
	} {
		cell, err := excelize.CoordinatesToCellName(col, totalRow)
		if err != nil {
			return fmt.Errorf("total cell: %w", err)
		}
		if err := f.SetCellValue(entriesSheet, cell, v); err != nil {
			return fmt.Errorf("write totals: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
