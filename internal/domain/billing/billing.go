// Package billing computes membership billing dates.
//
// All dates are local calendar dates carried as "YYYY-MM-DD" strings; there
// is no timezone handling. The functions here are pure: no I/O and no error
// cases — every input produces a valid date.
package billing

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// timeNow is a variable for testability.
var timeNow = time.Now

// DaysInMonth returns the number of days in the given month, handling leap
// years via calendar rules.
// PRE: month is a valid time.Month
// POST: returns 28..31
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextBillingDate returns the next occurrence of the join day strictly after
// fromDate. The join date's day-of-month is the target day; in months too
// short for it (join day 29/30/31) the day clamps to the month's last day,
// and each month reclamps independently.
// PRE: none — absent or malformed inputs default to today
// POST: returned date parses under DateLayout and is strictly after fromDate
func NextBillingDate(joinDate, fromDate string) string {
	join := parseOrToday(joinDate)
	from := parseOrToday(fromDate)

	targetDay := join.Day()
	year, month := from.Year(), from.Month()
	candidate := clampToMonth(year, month, targetDay)
	if !candidate.After(from) {
		month++
		if month > time.December {
			month = time.January
			year++
		}
		candidate = clampToMonth(year, month, targetDay)
	}
	return candidate.Format(DateLayout)
}

// ParseDate parses a DateLayout string to a UTC-midnight time.
// POST: ok is false when s is empty or malformed
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today truncates now to its calendar date at UTC midnight, so date
// comparisons work at day granularity.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseOrToday(s string) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return Today(timeNow())
}

func clampToMonth(year int, month time.Month, day int) time.Time {
	if dim := DaysInMonth(year, month); day > dim {
		day = dim
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
