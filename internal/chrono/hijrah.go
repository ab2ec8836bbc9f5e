package chrono

// Tabular Hijrah calendar: twelve months alternating 30 and 29 days, with a
// 30-day twelfth month in leap years. Leap years follow the 30-year cycle of
// 10_631 days with intercalary years where (11*y + 14) mod 30 < 11.
// hijrahEpochShift is the day count from 1 Muharram AH 1 to 1970-01-01.
const hijrahEpochShift = 492_148

// hijrahIsLeapYear reports whether the year has the intercalary day.
func hijrahIsLeapYear(year int64) bool {
	return floorMod(11*year+14, 30) < 11
}

// hijrahMonthLength returns the number of days in the month.
func hijrahMonthLength(year, month int64) int64 {
	if month%2 == 1 {
		return 30
	}
	if month == 12 && hijrahIsLeapYear(year) {
		return 30
	}
	return 29
}

// hijrahYearLength returns the number of days in the year.
func hijrahYearLength(year int64) int64 {
	if hijrahIsLeapYear(year) {
		return 355
	}
	return 354
}

// hijrahDaysBeforeMonth returns the day count preceding the month in a
// common year: 29*(m-1) plus one for each completed 30-day month.
func hijrahDaysBeforeMonth(month int64) int64 {
	return 29*(month-1) + month/2
}

// hijrahDaysBeforeYear returns the day count from 1 Muharram AH 1 to the
// start of the year.
func hijrahDaysBeforeYear(year int64) int64 {
	return (year-1)*354 + (11*year+3)/30
}

// hijrahMoyFromDoy derives month-of-year directly from day-of-year. The
// month pattern is fixed apart from the appended leap day, so the split is
// deterministic without knowing the year; day 355 clamps into month 12.
func hijrahMoyFromDoy(dayOfYear int64) int64 {
	month := (2*(dayOfYear-1))/59 + 1
	if month > 12 {
		month = 12
	}
	return month
}

// hijrahDomFromDoy derives day-of-month directly from day-of-year.
func hijrahDomFromDoy(dayOfYear int64) int64 {
	return dayOfYear - hijrahDaysBeforeMonth(hijrahMoyFromDoy(dayOfYear))
}

// hijrahCalendarFromEpochDay converts an epoch day to tabular Hijrah fields
// using the closed-form cycle: y = (30*ed + 10_646) / 10_631.
func hijrahCalendarFromEpochDay(epochDay int64) calendarFields {
	ed := epochDay + hijrahEpochShift
	year := (30*ed + 10_646) / 10_631
	doy := ed - hijrahDaysBeforeYear(year) + 1
	return calendarFields{
		Year:      year,
		Month:     hijrahMoyFromDoy(doy),
		Day:       hijrahDomFromDoy(doy),
		DayOfYear: doy,
	}
}

// hijrahEpochDayFromYearDay converts (year, day-of-year) to an epoch day
// without validating that the day fits the year.
func hijrahEpochDayFromYearDay(year, dayOfYear int64) int64 {
	return hijrahDaysBeforeYear(year) + (dayOfYear - 1) - hijrahEpochShift
}

// hijrahEpochDayFromYMD converts tabular Hijrah fields to an epoch day.
func hijrahEpochDayFromYMD(year, month, day int64) int64 {
	return hijrahEpochDayFromYearDay(year, hijrahDaysBeforeMonth(month)+day)
}
