// Package core holds the domain types and pure computations of ore:
// clock arithmetic, money handling and monthly aggregation.
//
// This file contains the duration calculator: parsing of HH:MM clock
// strings and the elapsed-time rule, including the overnight wrap.
package core

import (
	"fmt"
	"math"
)

const minutesPerDay = 24 * 60

// Duration is an elapsed working time, kept as whole minutes.
// Hours are derived views; nothing in the domain stores fractional hours.
type Duration struct {
	Minutes int64
}

// Hours returns the duration in hours at full precision.
func (d Duration) Hours() float64 {
	return float64(d.Minutes) / 60.0
}

// String formats the duration as hours with exactly two decimals,
// the wire format every consumer (API, exports) depends on.
func (d Duration) String() string {
	return fmt.Sprintf("%.2f", Round2(d.Hours()))
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseClock parses a 24h "HH:MM" string into minutes since midnight.
// It accepts exactly five bytes with 0<=HH<24 and 0<=MM<60.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hh*60 + mm, nil
}

// ComputeDuration derives the elapsed time between two clock strings.
//
// An end strictly earlier than the start always means the session crossed
// midnight and 24h are added; it is never treated as an input error.
// Equal start and end yields a zero-length span, not a full day, so the
// equality check must run before the wrap rule.
func ComputeDuration(start, end string) (Duration, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return Duration{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return Duration{}, err
	}
	if startMin == endMin {
		return Duration{Minutes: 0}, nil
	}
	delta := endMin - startMin
	if delta < 0 {
		delta += minutesPerDay
	}
	return Duration{Minutes: int64(delta)}, nil
}
