package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Day codes follow original_source's direct isoweekday() comparison:
// 1=Monday .. 5=Friday carry the 08:00-17:00 (with lunch break on Monday)
// working windows, 6=Saturday and 7=Sunday are non-working.
const sampleClndrData = `(0||1()s|08:00|f|12:00s|13:00|f|17:00)(0||2()s|08:00|f|17:00)` +
	`(0||3()s|08:00|f|17:00)(0||4()s|08:00|f|17:00)(0||5()s|08:00|f|17:00)` +
	`(0||6())(0||7())` +
	`(0||45323(d|45323)(s|09:00|f|12:00)())(0||45324(d|45324)())`

func TestDecodeWeekdayWindows(t *testing.T) {
	c := Decode("C1", "Standard", sampleClndrData, 8, nil)

	monday := c.weekday[1]
	require.Len(t, monday, 2)
	assert.Equal(t, 8*60, monday[0].StartMinute)
	assert.Equal(t, 12*60, monday[0].EndMinute)

	saturday := c.weekday[6]
	assert.Empty(t, saturday)
}

func TestDecodeExceptionOverridesWeekday(t *testing.T) {
	c := Decode("C1", "Standard", sampleClndrData, 8, nil)

	d, ok := serialToDate("45323")
	require.True(t, ok)
	assert.True(t, c.IsWorkingDay(d))
	windows := c.Windows(d)
	require.Len(t, windows, 1)
	assert.Equal(t, 9*60, windows[0].StartMinute)
}

func TestDecodeExceptionWithNoHoursIsNonWorking(t *testing.T) {
	c := Decode("C1", "Standard", sampleClndrData, 8, nil)
	d, ok := serialToDate("45324")
	require.True(t, ok)
	assert.False(t, c.IsWorkingDay(d))
}

func TestIsWorkingDayOnCalendarWithNoWeekdayEntriesTreatsEveryDayAsWorking(t *testing.T) {
	c := Decode("C2", "Degenerate", "()", 8, nil)

	saturday := time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC)
	assert.True(t, c.IsWorkingDay(saturday))
}

func TestIsWorkingDayOnCalendarWithNoWeekdayEntriesStillHonorsExceptions(t *testing.T) {
	c := Decode("C2", "Degenerate", "(0||45323(d|45323)())", 8, nil)

	d, ok := serialToDate("45323")
	require.True(t, ok)
	assert.False(t, c.IsWorkingDay(d))
}

func TestSerialToDateBelowLeapBugThreshold(t *testing.T) {
	d, ok := serialToDate("1")
	require.True(t, ok)
	assert.Equal(t, time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), d)
}

func TestSerialToDateAtLeapBugThreshold(t *testing.T) {
	d, ok := serialToDate("60")
	require.True(t, ok)
	assert.Equal(t, time.Date(1900, time.February, 28, 0, 0, 0, 0, time.UTC), d)
}

func TestAddWorkingDaysSkipsWeekends(t *testing.T) {
	c := Decode("C1", "Standard", sampleClndrData, 8, nil)
	s := NewSet(c)

	friday := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	next, err := s.AddWorkingDays(friday, 1, "C1", 4000)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), next)
}

func TestAddWorkingDaysCeilingExceeded(t *testing.T) {
	c := Decode("C1", "NoWorkingDays", `(0||1())(0||2())(0||3())(0||4())(0||5())(0||6())(0||7())`, 8, nil)
	s := NewSet(c)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.AddWorkingDays(start, 1, "C1", 10)
	require.Error(t, err)
	var ceilingErr *ErrCeilingExceeded
	assert.ErrorAs(t, err, &ceilingErr)
}

func TestWorkingDaysBetweenCountsInclusiveRange(t *testing.T) {
	c := Decode("C1", "Standard", sampleClndrData, 8, nil)
	s := NewSet(c)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) // Monday
	end := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)   // Sunday
	assert.Equal(t, 5, s.WorkingDaysBetween(start, end, "C1"))
}
