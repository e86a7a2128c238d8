package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validEntry() TimeEntry {
	return TimeEntry{
		UserID:     "u1",
		ProjectID:  "p1",
		Date:       NewDate(2026, 3, 12),
		StartTime:  "09:00",
		EndTime:    "17:30",
		HourlyRate: Money{Cents: 2000},
	}
}

func TestTimeEntryValidate(t *testing.T) {
	if err := validEntry().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []func(*TimeEntry){
		func(e *TimeEntry) { e.Date = Date{Time: time.Time{}} },
		func(e *TimeEntry) { e.ProjectID = " " },
		func(e *TimeEntry) { e.StartTime = "9:00" },
		func(e *TimeEntry) { e.EndTime = "17:60" },
		func(e *TimeEntry) { e.HourlyRate = Money{Cents: -1} },
	}
	for i, mutate := range bads {
		e := validEntry()
		mutate(&e)
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTimeEntryValidateNotesLimit(t *testing.T) {
	e := validEntry()
	e.Notes = strings.Repeat("x", 500)
	if err := e.Validate(); err != nil {
		t.Fatalf("expected ok at limit, got %v", err)
	}

	e.Notes = strings.Repeat("x", 501)
	if err := e.Validate(); !errors.Is(err, ErrNotesTooLong) {
		t.Fatalf("expected ErrNotesTooLong, got %v", err)
	}
}

func TestTimeEntryRecalculate(t *testing.T) {
	e := validEntry()
	if err := e.Recalculate(); err != nil {
		t.Fatal(err)
	}
	if e.Duration.Minutes != 510 {
		t.Fatalf("expected 510 minutes, got %d", e.Duration.Minutes)
	}
	if e.Earnings.Cents != 17000 { // 8.5h at 20.00
		t.Fatalf("expected 17000 cents, got %d", e.Earnings.Cents)
	}

	// Editing the inputs and recalculating must follow the same rules
	// as creation.
	e.EndTime = "06:00"
	e.StartTime = "22:00"
	e.HourlyRate = Money{Cents: 2500}
	if err := e.Recalculate(); err != nil {
		t.Fatal(err)
	}
	if e.Duration.Minutes != 480 || e.Earnings.Cents != 20000 {
		t.Fatalf("expected 480 min / 20000 cents, got %d / %d", e.Duration.Minutes, e.Earnings.Cents)
	}
}

func TestTimeEntryRecalculateRejectsMalformed(t *testing.T) {
	e := validEntry()
	e.StartTime = "24:00"
	if err := e.Recalculate(); err == nil {
		t.Fatal("expected error")
	}
}

func TestProjectValidate(t *testing.T) {
	if err := (Project{Name: "Client A", Color: "#ff8800"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Project{Name: "  "}).Validate(); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := (Project{Name: strings.Repeat("n", 101)}).Validate(); !errors.Is(err, ErrProjectNameTooLong) {
		t.Fatal("expected ErrProjectNameTooLong")
	}
}

func TestValidateMonth(t *testing.T) {
	for _, m := range []int{1, 6, 12} {
		if err := ValidateMonth(m); err != nil {
			t.Fatalf("month %d expected ok, got %v", m, err)
		}
	}
	for _, m := range []int{0, 13, -1} {
		if err := ValidateMonth(m); err == nil {
			t.Fatalf("month %d expected error", m)
		}
	}
}

func TestDateIn(t *testing.T) {
	d := NewDate(2026, 2, 28)
	if !d.In(2026, 2) {
		t.Fatal("expected date in 2026-02")
	}
	if d.In(2026, 3) || d.In(2025, 2) {
		t.Fatal("expected date not in other months")
	}
}

func TestInitialsFor(t *testing.T) {
	cases := []struct {
		name, username, want string
	}{
		{"Ada Lovelace", "ada", "AL"},
		{"prince", "p", "P"},
		{"", "grace", "G"},
		{"Jan Willem van Dam", "jw", "JW"},
		{"Åsa Berg", "asa", "ÅB"},
		{"", "Øyvind", "Ø"},
	}
	for _, tc := range cases {
		if got := InitialsFor(tc.name, tc.username); got != tc.want {
			t.Fatalf("(%q,%q) expected %s, got %s", tc.name, tc.username, tc.want, got)
		}
	}
}
