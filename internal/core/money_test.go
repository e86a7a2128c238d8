package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"0", 0, true}, // unpaid rate is valid
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestEarningsFor(t *testing.T) {
	cases := []struct {
		minutes   int64
		rateCents int64
		want      int64
	}{
		{450, 2000, 15000}, // 7.5h at 20.00 = 150.00
		{480, 2000, 16000}, // 8h at 20.00
		{60, 1250, 1250},
		{0, 2000, 0},
		{30, 333, 167},    // 0.5h at 3.33 = 1.665 -> 1.67
		{30, -2000, -1000}, // negative rate passes through arithmetically
	}
	for _, tc := range cases {
		got := EarningsFor(Duration{Minutes: tc.minutes}, Money{Cents: tc.rateCents})
		if got.Cents != tc.want {
			t.Fatalf("%d min at %d cents expected %d, got %d", tc.minutes, tc.rateCents, tc.want, got.Cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{15000, "150.00"},
		{167, "1.67"},
		{5, "0.05"},
		{0, "0.00"},
		{-1250, "-12.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d expected %s, got %s", tc.cents, tc.want, got)
		}
	}
}
