// Package datex formats calendar values the way the public site displays
// them: long-form dates with ordinal suffixes and month names for the
// gallery archive.
package datex

import (
	"fmt"
	"time"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English month name for a 1–12 month number.
// The second return value is false for out-of-range input.
func MonthName(month int) (string, bool) {
	if month < 1 || month > 12 {
		return "", false
	}
	return monthNames[month-1], true
}

// FormatDisplayDate renders t as e.g. "Monday 1st January 2024".
// The UTC calendar date is used, matching how the site stores dates.
func FormatDisplayDate(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %s %s %d",
		t.Weekday().String(),
		ordinal(t.Day()),
		monthNames[int(t.Month())-1],
		t.Year(),
	)
}

func ordinal(n int) string {
	suffix := "th"
	if n%100 < 10 || n%100 > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
