package core

import (
	"errors"
	"strings"
	"time"
)

type (
	Date struct {
		time.Time
	}

	// TimeEntry is a single logged work session. Duration and Earnings
	// are derived fields: they are recomputed server-side from
	// StartTime, EndTime and HourlyRate on every write and never
	// accepted from a client.
	TimeEntry struct {
		ID         string
		UserID     string
		ProjectID  string
		Date       Date
		StartTime  string // "HH:MM", 24h
		EndTime    string // "HH:MM", 24h
		Duration   Duration
		HourlyRate Money
		Earnings   Money
		Notes      string
	}

	// MonthlyReport is the aggregate of one user's entries in one
	// calendar month, keyed uniquely by (UserID, Year, Month).
	MonthlyReport struct {
		ID            string
		UserID        string
		Year          int
		Month         int // 1-12
		WorkedTime    Duration
		DaysWorked    int
		TotalEarnings Money
		IsCompleted   bool
	}

	// Project is pure reference data for grouping and coloring entries.
	Project struct {
		ID     string
		UserID string
		Name   string
		Color  string
	}

	User struct {
		ID           string
		Username     string
		PasswordHash string
		Name         string
		Email        string
		HourlyRate   Money    // default for new entries, not enforced on them
		MonthlyGoal  Duration // target working time per month
		Initials     string
	}
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidClock       = errors.New("invalid time, expected HH:MM")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrProjectInUse       = errors.New("project has entries")
	ErrEmptyProject       = errors.New("empty project")
	ErrNotesTooLong       = errors.New("notes too long (max 500 characters)")
	ErrProjectNameTooLong = errors.New("project name too long (max 100 characters)")
	ErrEmptyProjectName   = errors.New("empty project name")
	ErrEmptyUsername      = errors.New("empty username")
	ErrEmptyPassword      = errors.New("empty password")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Key returns the calendar-day key used for distinct-day counting.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

// In reports whether the date falls in the given calendar month.
func (d Date) In(year, month int) bool {
	return d.Year() == year && int(d.Time.Month()) == month
}

// ValidateMonth checks a 1-12 month number.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Validate checks the user-supplied fields of an entry. Derived fields
// are not checked here; Recalculate enforces their consistency.
func (e TimeEntry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.ProjectID) == "" {
		return ErrEmptyProject
	}
	if _, err := ParseClock(e.StartTime); err != nil {
		return err
	}
	if _, err := ParseClock(e.EndTime); err != nil {
		return err
	}
	if e.HourlyRate.Cents < 0 {
		return ErrInvalidAmount
	}
	if len(e.Notes) > 500 {
		return ErrNotesTooLong
	}
	return nil
}

// Recalculate populates Duration and Earnings from StartTime, EndTime
// and HourlyRate. It must run on every create and on every edit that
// touches any of the three inputs.
func (e *TimeEntry) Recalculate() error {
	d, err := ComputeDuration(e.StartTime, e.EndTime)
	if err != nil {
		return err
	}
	e.Duration = d
	e.Earnings = EarningsFor(d, e.HourlyRate)
	return nil
}

func (p Project) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyProjectName
	}
	if len(p.Name) > 100 {
		return ErrProjectNameTooLong
	}
	return nil
}

// HoursWorked returns the month's total working time in hours.
func (r MonthlyReport) HoursWorked() float64 {
	return r.WorkedTime.Hours()
}

// DailyAverage returns hours worked per distinct working day,
// 0 for a month without entries.
func (r MonthlyReport) DailyAverage() float64 {
	if r.DaysWorked == 0 {
		return 0
	}
	return r.HoursWorked() / float64(r.DaysWorked)
}

// InitialsFor derives display initials from a full name, e.g.
// "Ada Lovelace" -> "AL". Falls back to the first rune of the username.
func InitialsFor(name, username string) string {
	var initials []rune
	for _, part := range strings.Fields(name) {
		initials = append(initials, []rune(part)[0])
		if len(initials) >= 2 {
			break
		}
	}
	if len(initials) == 0 {
		for _, r := range username {
			initials = append(initials, r)
			break
		}
	}
	return strings.ToUpper(string(initials))
}
