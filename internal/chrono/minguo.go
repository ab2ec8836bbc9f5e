package chrono

// Minguo (Republic of China) calendar: proleptic Gregorian dates with years
// counted from 1912 ISO, so Minguo year = ISO year - 1911. Era 1 (ROC)
// covers years >= 1; era 0 (BEFORE_ROC) the rest, counted backwards.
const minguoYearOffset = 1911

// minguoCalendarFromEpochDay converts an epoch day to Minguo fields.
func minguoCalendarFromEpochDay(epochDay int64) calendarFields {
	cal := isoCalendarFromEpochDay(epochDay)
	cal.Year -= minguoYearOffset
	return cal
}

// minguoEpochDayFromYMD converts Minguo fields to an epoch day.
func minguoEpochDayFromYMD(year, month, day int64) int64 {
	return isoEpochDayFromYMD(year+minguoYearOffset, month, day)
}

// minguoEpochDayFromYearDay converts (year, day-of-year) to an epoch day.
func minguoEpochDayFromYearDay(year, dayOfYear int64) int64 {
	return isoEpochDayFromYearDay(year+minguoYearOffset, dayOfYear)
}

// minguoIsLeapYear reports whether the Minguo year is a leap year.
func minguoIsLeapYear(year int64) bool {
	return isoIsLeapYear(year + minguoYearOffset)
}
