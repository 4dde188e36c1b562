// Package timeslot handles the time-of-day values bookings are made of.
// Times travel as zero-padded "HH:MM" strings; storage keeps them as
// TIME columns so interval comparisons run natively in SQL.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidClock = errors.New("invalid time of day, expected HH:MM")

// Minutes parses "HH:MM" (or "HH:MM:SS", seconds ignored) into minutes
// since midnight.
func Minutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return h*60 + m, nil
}

// Hours returns the exact fractional-hour span between start and end.
// A non-positive span is reported as an error.
func Hours(start, end string) (float64, error) {
	s, err := Minutes(start)
	if err != nil {
		return 0, err
	}
	e, err := Minutes(end)
	if err != nil {
		return 0, err
	}
	if e <= s {
		return 0, fmt.Errorf("end %q must be after start %q", end, start)
	}
	return float64(e-s) / 60, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not overlap.
// This is the in-memory mirror of the SQL conflict predicate.
func Overlaps(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := Minutes(aStart)
	if err != nil {
		return false, err
	}
	ae, err := Minutes(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := Minutes(bStart)
	if err != nil {
		return false, err
	}
	be, err := Minutes(bEnd)
	if err != nil {
		return false, err
	}
	return as < be && ae > bs, nil
}

// Normalize reformats a parseable clock value as zero-padded "HH:MM".
func Normalize(s string) (string, error) {
	m, err := Minutes(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60), nil
}
