package roster

import "time"

// calendar precomputes the weekday and weekend-block key of every day in
// the target month, so the search never touches the time package.
type calendar struct {
	year  int
	month time.Month
	days  int

	// weekdays and blocks are 1-based; index 0 is unused.
	weekdays []time.Weekday
	blocks   []time.Time
}

func newCalendar(year int, month time.Month) *calendar {
	days := daysInMonth(year, month)

	cal := &calendar{
		year:     year,
		month:    month,
		days:     days,
		weekdays: make([]time.Weekday, days+1),
		blocks:   make([]time.Time, days+1),
	}

	for day := 1; day <= days; day++ {
		date := cal.date(day)
		cal.weekdays[day] = date.Weekday()
		if key, ok := weekendBlockKey(date); ok {
			cal.blocks[day] = key
		}
	}

	return cal
}

// date returns the civil date of a day-of-month at midnight UTC.
func (c *calendar) date(day int) time.Time {
	return time.Date(c.year, c.month, day, 0, 0, 0, 0, time.UTC)
}

// weekday returns the weekday of a day-of-month.
func (c *calendar) weekday(day int) time.Weekday {
	return c.weekdays[day]
}

// blockKey returns the weekend-block key of a day and whether the day is
// part of a Friday/Saturday/Sunday triplet at all.
func (c *calendar) blockKey(day int) (time.Time, bool) {
	key := c.blocks[day]
	return key, !key.IsZero()
}

// isWeekend reports whether a day is Friday, Saturday or Sunday.
func (c *calendar) isWeekend(day int) bool {
	return !c.blocks[day].IsZero()
}

// weekendBlockKey canonicalizes a date to the Friday anchoring its
// Friday/Saturday/Sunday triplet. Two assignments share a weekend block
// iff their keys are equal. The anchor Friday may fall in the previous
// month when the month starts on a Saturday or Sunday.
func weekendBlockKey(date time.Time) (time.Time, bool) {
	switch date.Weekday() {
	case time.Friday:
		return date, true
	case time.Saturday:
		return date.AddDate(0, 0, -1), true
	case time.Sunday:
		return date.AddDate(0, 0, -2), true
	default:
		return time.Time{}, false
	}
}

// daysInMonth returns the day count of a calendar month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
