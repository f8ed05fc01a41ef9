// Package calendar holds the day counting used by the simulation, optionally
// on a 365-day calendar that drops 29 February.
package calendar

import "time"

var dim = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether year is a Gregorian leap year
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month m (1-12) in year. With
// skipLeap February always has 28 days.
func DaysInMonth(m time.Month, year int, skipLeap bool) int {
	if m == time.February && !skipLeap && IsLeap(year) {
		return 29
	}
	return dim[m-1]
}

// DaysInYear returns 365 or 366
func DaysInYear(year int, skipLeap bool) int {
	if !skipLeap && IsLeap(year) {
		return 366
	}
	return 365
}

// IsSkipped reports whether t is a day dropped from a 365-day calendar
func IsSkipped(t time.Time, skipLeap bool) bool {
	return skipLeap && t.Month() == time.February && t.Day() == 29
}
