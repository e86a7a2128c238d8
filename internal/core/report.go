package core

// Aggregate folds one month's entries into a MonthlyReport.
//
// The caller is expected to pass exactly the entries of (userID, year,
// month); the storage query already filters by month. Sums are integer
// arithmetic on minutes and cents, so the result is independent of the
// input order and loses no precision before formatting.
//
// prev is the previously persisted report for the same key, if any.
// Its IsCompleted flag (and row identity) carry over: recomputation
// never finalizes or reopens a month, that is an explicit user action.
func Aggregate(userID string, year, month int, entries []TimeEntry, prev *MonthlyReport) MonthlyReport {
	report := MonthlyReport{
		UserID: userID,
		Year:   year,
		Month:  month,
	}
	if prev != nil {
		report.ID = prev.ID
		report.IsCompleted = prev.IsCompleted
	}

	days := make(map[string]struct{})
	for _, e := range entries {
		report.WorkedTime.Minutes += e.Duration.Minutes
		report.TotalEarnings.Cents += e.Earnings.Cents
		days[e.Date.Key()] = struct{}{}
	}
	report.DaysWorked = len(days)

	return report
}
