package chrono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Eleven leap years per 30-year cycle, 10_631 days per cycle.
func TestHijrahLeapCycle(t *testing.T) {
	leapInCycle := map[int64]bool{
		2: true, 5: true, 7: true, 10: true, 13: true, 16: true,
		18: true, 21: true, 24: true, 26: true, 29: true,
	}
	var leaps int
	for y := int64(1); y <= 30; y++ {
		want := leapInCycle[y%30]
		assert.Equal(t, want, hijrahIsLeapYear(y), "year %d", y)
		if hijrahIsLeapYear(y) {
			leaps++
		}
	}
	assert.Equal(t, 11, leaps)
	assert.Equal(t, int64(10_631), hijrahDaysBeforeYear(31))

	// The pattern repeats cycle after cycle.
	assert.Equal(t, hijrahIsLeapYear(2), hijrahIsLeapYear(32))
	assert.Equal(t, hijrahIsLeapYear(1445%30), hijrahIsLeapYear(1445))
}

func TestHijrahMonthLength(t *testing.T) {
	for month := int64(1); month <= 11; month++ {
		want := int64(29)
		if month%2 == 1 {
			want = 30
		}
		assert.Equal(t, want, hijrahMonthLength(3, month), "month %d", month)
	}
	assert.Equal(t, int64(29), hijrahMonthLength(3, 12))
	assert.Equal(t, int64(30), hijrahMonthLength(2, 12))
}

func TestHijrahDaysBeforeMonth(t *testing.T) {
	assert.Equal(t, int64(0), hijrahDaysBeforeMonth(1))
	assert.Equal(t, int64(30), hijrahDaysBeforeMonth(2))
	assert.Equal(t, int64(59), hijrahDaysBeforeMonth(3))
	assert.Equal(t, int64(325), hijrahDaysBeforeMonth(12))
}

// 1 Muharram AH 1 falls on ISO 622-07-19 in the civil tabular calendar, and
// 1 Muharram AH 1445 on ISO 2023-07-19.
func TestHijrahEpochAnchors(t *testing.T) {
	assert.Equal(t, isoEpochDayFromYMD(622, 7, 19), hijrahEpochDayFromYMD(1, 1, 1))
	assert.Equal(t, int64(-492_148), hijrahEpochDayFromYMD(1, 1, 1))

	assert.Equal(t, isoEpochDayFromYMD(2023, 7, 19), hijrahEpochDayFromYMD(1445, 1, 1))
	assert.Equal(t, int64(19_557), hijrahEpochDayFromYMD(1445, 1, 1))
}

func TestHijrahCalendarFromEpochDay(t *testing.T) {
	cal := hijrahCalendarFromEpochDay(-492_148)
	assert.Equal(t, calendarFields{Year: 1, Month: 1, Day: 1, DayOfYear: 1}, cal)

	cal = hijrahCalendarFromEpochDay(19_557)
	assert.Equal(t, calendarFields{Year: 1445, Month: 1, Day: 1, DayOfYear: 1}, cal)

	// The leap day of AH 2 is the 355th day, 30 Dhu al-Hijjah.
	cal = hijrahCalendarFromEpochDay(hijrahEpochDayFromYearDay(2, 355))
	assert.Equal(t, calendarFields{Year: 2, Month: 12, Day: 30, DayOfYear: 355}, cal)
}

func TestHijrahRoundTrip(t *testing.T) {
	for _, year := range []int64{1, 2, 1445, 9999} {
		for month := int64(1); month <= 12; month++ {
			length := hijrahMonthLength(year, month)
			for _, day := range []int64{1, length} {
				ed := hijrahEpochDayFromYMD(year, month, day)
				cal := hijrahCalendarFromEpochDay(ed)
				require.Equal(t, year, cal.Year, "%d-%02d-%02d", year, month, day)
				require.Equal(t, month, cal.Month)
				require.Equal(t, day, cal.Day)
			}
		}
	}
}

func TestHijrahYearBoundaryContinuity(t *testing.T) {
	// AH 2 is leap, so its last day is doy 355.
	last := hijrahEpochDayFromYMD(2, 12, 30)
	first := hijrahEpochDayFromYMD(3, 1, 1)
	assert.Equal(t, last+1, first)

	// AH 3 is common; its last day is doy 354.
	assert.Equal(t, int64(354), hijrahCalendarFromEpochDay(hijrahEpochDayFromYMD(3, 12, 29)).DayOfYear)
}
