package chrono

// Coptic calendar: thirteen months, twelve of 30 days plus an epagomenal
// month of 5 days (6 in leap years). Leap years are those with y % 4 == 3.
// copticEpochShift is the day count from the calendar's year 1 day 1 to
// 1970-01-01; Coptic 1741-01-01 is 2024-09-11 ISO.
const copticEpochShift = 615_558

// copticIsLeapYear reports whether the Coptic year has an extra epagomenal
// day.
func copticIsLeapYear(year int64) bool {
	return floorMod(year, 4) == 3
}

// copticMonthLength returns the number of days in the month.
func copticMonthLength(year, month int64) int64 {
	if month < 13 {
		return 30
	}
	if copticIsLeapYear(year) {
		return 6
	}
	return 5
}

// copticYearLength returns the number of days in the year.
func copticYearLength(year int64) int64 {
	if copticIsLeapYear(year) {
		return 366
	}
	return 365
}

// copticCalendarFromEpochDay converts an epoch day to Coptic fields using
// the closed-form four-year cycle: y = (4*ed + 1463) / 1461, then the
// day-of-year offset against the days preceding year y.
func copticCalendarFromEpochDay(epochDay int64) calendarFields {
	ed := epochDay + copticEpochShift
	year := (ed*4 + 1463) / 1461
	doy0 := ed - ((year-1)*365 + year/4)
	return calendarFields{
		Year:      year,
		Month:     doy0/30 + 1,
		Day:       doy0%30 + 1,
		DayOfYear: doy0 + 1,
	}
}

// copticEpochDayFromYearDay converts (year, day-of-year) to an epoch day
// without validating that the day fits the year.
func copticEpochDayFromYearDay(year, dayOfYear int64) int64 {
	return (year-1)*365 + year/4 + (dayOfYear - 1) - copticEpochShift
}

// copticEpochDayFromYMD converts Coptic fields to an epoch day. Months are
// uniformly 30 days, so day-of-year is a direct product.
func copticEpochDayFromYMD(year, month, day int64) int64 {
	return copticEpochDayFromYearDay(year, (month-1)*30+day)
}

// copticDomFromDoy derives day-of-month directly from day-of-year.
func copticDomFromDoy(dayOfYear int64) int64 {
	return (dayOfYear-1)%30 + 1
}

// copticMoyFromDoy derives month-of-year directly from day-of-year.
func copticMoyFromDoy(dayOfYear int64) int64 {
	return (dayOfYear-1)/30 + 1
}
