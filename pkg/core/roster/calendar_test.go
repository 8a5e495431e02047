package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 30, daysInMonth(2026, time.June))
	assert.Equal(t, 31, daysInMonth(2026, time.July))
	assert.Equal(t, 28, daysInMonth(2026, time.February))
	assert.Equal(t, 29, daysInMonth(2028, time.February)) // leap year
	assert.Equal(t, 31, daysInMonth(2026, time.December))
}

func TestWeekendBlockKey(t *testing.T) {
	// June 2026 starts on a Monday; the first weekend block is anchored
	// on Friday June 5.
	friday := time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)
	saturday := friday.AddDate(0, 0, 1)
	sunday := friday.AddDate(0, 0, 2)

	for _, date := range []time.Time{friday, saturday, sunday} {
		key, ok := weekendBlockKey(date)
		require.True(t, ok, "%s should be a weekend day", date.Weekday())
		assert.Equal(t, friday, key)
	}

	monday := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, ok := weekendBlockKey(monday)
	assert.False(t, ok)
}

func TestWeekendBlockKey_CrossMonthFriday(t *testing.T) {
	// March 1 2026 is a Sunday: its block is anchored on Friday
	// February 27, in the previous month.
	sunday := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())

	key, ok := weekendBlockKey(sunday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC), key)
}

func TestCalendar_June2026(t *testing.T) {
	cal := newCalendar(2026, time.June)

	require.Equal(t, 30, cal.days)
	assert.Equal(t, time.Monday, cal.weekday(1))
	assert.Equal(t, time.Tuesday, cal.weekday(2))
	assert.Equal(t, time.Tuesday, cal.weekday(30))

	// Weekend days carry the anchoring Friday's date as their block key.
	assert.False(t, cal.isWeekend(1))
	for _, day := range []int{5, 6, 7} {
		require.True(t, cal.isWeekend(day), "day %d", day)
		key, ok := cal.blockKey(day)
		require.True(t, ok)
		assert.Equal(t, cal.date(5), key)
	}

	// Days in different weekends never share a key.
	key1, _ := cal.blockKey(7)
	key2, _ := cal.blockKey(12)
	assert.NotEqual(t, key1, key2)
}
