package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"ore/internal/core"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Date", 24},
	{"Project", 40},
	{"Start", 16},
	{"End", 16},
	{"Hours", 20},
	{"Rate", 22},
	{"Earnings", 26},
}

// WriteReportPDF renders an invoice-style monthly summary: header with
// user and period, one line per entry, and the aggregated footer.
func WriteReportPDF(w io.Writer, user core.User, report core.MonthlyReport, entries []core.TimeEntry, projectNames map[string]string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Monthly report", false)
	pdf.AddPage()

	period := fmt.Sprintf("%s %d", time.Month(report.Month), report.Year)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Timesheet "+period)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	name := user.Name
	if name == "" {
		name = user.Username
	}
	pdf.Cell(0, 6, name)
	pdf.Ln(6)
	if user.Email != "" {
		pdf.Cell(0, 6, user.Email)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range entries {
		cells := []string{
			e.Date.Key(),
			projectName(projectNames, e.ProjectID),
			e.StartTime,
			e.EndTime,
			e.Duration.String(),
			e.HourlyRate.String(),
			e.Earnings.String(),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Hours worked: %.2f over %d days (avg %.2f/day)",
		core.Round2(report.HoursWorked()), report.DaysWorked, core.Round2(report.DailyAverage())))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Total earnings: "+report.TotalEarnings.String())
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 10)
	if report.IsCompleted {
		pdf.Cell(0, 6, "Status: completed")
	} else {
		pdf.Cell(0, 6, "Status: in progress")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
