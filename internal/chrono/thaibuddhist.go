package chrono

// Thai Buddhist calendar: proleptic Gregorian dates with years counted in
// the Buddhist Era, so BE year = ISO year + 543. Era 1 (BE) covers years
// >= 1; era 0 (BEFORE_BE) the rest, counted backwards.
const thaiBuddhistYearOffset = 543

// thaiBuddhistCalendarFromEpochDay converts an epoch day to Thai Buddhist
// fields.
func thaiBuddhistCalendarFromEpochDay(epochDay int64) calendarFields {
	cal := isoCalendarFromEpochDay(epochDay)
	cal.Year += thaiBuddhistYearOffset
	return cal
}

// thaiBuddhistEpochDayFromYMD converts Thai Buddhist fields to an epoch day.
func thaiBuddhistEpochDayFromYMD(year, month, day int64) int64 {
	return isoEpochDayFromYMD(year-thaiBuddhistYearOffset, month, day)
}

// thaiBuddhistEpochDayFromYearDay converts (year, day-of-year) to an epoch
// day.
func thaiBuddhistEpochDayFromYearDay(year, dayOfYear int64) int64 {
	return isoEpochDayFromYearDay(year-thaiBuddhistYearOffset, dayOfYear)
}

// thaiBuddhistIsLeapYear reports whether the BE year is a leap year.
func thaiBuddhistIsLeapYear(year int64) bool {
	return isoIsLeapYear(year - thaiBuddhistYearOffset)
}
