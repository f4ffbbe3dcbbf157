// Package core holds the domain types shared by the schedule importer and
// the allowance reporter, plus the date normalization both rely on.
package core

import (
	"fmt"
	"strconv"
	"time"
)

// DateParts is a decomposed calendar date.
type DateParts struct {
	Year  int
	Month int // 1-12
	Day   int
}

// NormalizeDate converts a date string of unknown textual format into the
// canonical YYYY-MM-DD form.
//
// Accepted shapes:
//
//	2025-04-01 -> unchanged
//	2025/04/01 -> separators rewritten to "-"
//
// Everything else is rejected, including partial dates, non-numeric tokens,
// day-first or month-first orderings (e.g. "04/01/2025") and empty input.
// No fuzzy correction is attempted. The function is pure and idempotent:
// normalizing an already-normalized value returns it unchanged.
func NormalizeDate(s string) (string, error) {
	if !dateShaped(s, '-') && !dateShaped(s, '/') {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	out := s[0:4] + "-" + s[5:7] + "-" + s[8:10]
	if _, err := ParseDate(out); err != nil {
		return "", err
	}
	return out, nil
}

// ParseDate splits a canonical or slash-separated date string and verifies it
// names a real calendar day.
func ParseDate(s string) (DateParts, error) {
	if !dateShaped(s, '-') && !dateShaped(s, '/') {
		return DateParts{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DateParts{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateParts{Year: year, Month: month, Day: day}, nil
}

// dateShaped reports whether s is exactly dddd<sep>dd<sep>dd.
func dateShaped(s string, sep byte) bool {
	if len(s) != 10 || s[4] != sep || s[7] != sep {
		return false
	}
	for i, c := range []byte(s) {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// MonthRange returns the first and last day of a month in canonical form.
// Used when building fetch ranges for monthly reports.
func MonthRange(year, month int) (from, to string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// YearRange returns January 1st and December 31st of a year in canonical form.
func YearRange(year int) (from, to string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}
