package core

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in  string
		out int
		ok  bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:30", 0, false},
		{"09-30", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
			if !errors.Is(err, ErrInvalidClock) {
				t.Fatalf("%q expected ErrInvalidClock, got %v", tc.in, err)
			}
		}
	}
}

func TestComputeDuration(t *testing.T) {
	cases := []struct {
		start, end string
		minutes    int64
	}{
		{"09:00", "17:00", 480},
		{"09:00", "09:01", 1},
		{"00:00", "23:59", 1439},
		// zero-length span, not a full-day wrap
		{"09:00", "09:00", 0},
		// overnight shifts
		{"22:00", "06:00", 480},
		{"23:30", "00:15", 45},
		{"17:00", "09:00", 960},
	}
	for _, tc := range cases {
		d, err := ComputeDuration(tc.start, tc.end)
		if err != nil {
			t.Fatalf("%s-%s unexpected error: %v", tc.start, tc.end, err)
		}
		if d.Minutes != tc.minutes {
			t.Fatalf("%s-%s expected %d minutes, got %d", tc.start, tc.end, tc.minutes, d.Minutes)
		}
	}
}

func TestComputeDurationHours(t *testing.T) {
	d, err := ComputeDuration("22:00", "06:00")
	if err != nil {
		t.Fatal(err)
	}
	if d.Hours() != 8.0 {
		t.Fatalf("expected 8.0 hours, got %v", d.Hours())
	}
	if d.String() != "8.00" {
		t.Fatalf("expected 8.00, got %s", d.String())
	}
}

func TestComputeDurationRejectsMalformed(t *testing.T) {
	for _, pair := range [][2]string{
		{"25:00", "09:00"},
		{"09:00", "09:65"},
		{"0900", "17:00"},
	} {
		if _, err := ComputeDuration(pair[0], pair[1]); err == nil {
			t.Fatalf("%v expected error", pair)
		}
	}
}

func TestDurationStringRounds(t *testing.T) {
	cases := []struct {
		minutes int64
		want    string
	}{
		{50, "0.83"},  // 0.8333...
		{55, "0.92"},  // 0.9166...
		{450, "7.50"},
		{0, "0.00"},
	}
	for _, tc := range cases {
		d := Duration{Minutes: tc.minutes}
		if got := d.String(); got != tc.want {
			t.Fatalf("%d minutes expected %s, got %s", tc.minutes, tc.want, got)
		}
	}
}
