package chrono

// Proleptic Gregorian cycle arithmetic. One 400-year cycle spans 146_097
// days; 719_528 days separate 0000-01-01 from the 1970-01-01 epoch.
const (
	isoDaysPerCycle   = 146_097
	isoDays0000To1970 = (isoDaysPerCycle * 5) - (30*365 + 7)
)

// isoCumulativeDays[m-1] is the number of days before month m in a common
// year.
var isoCumulativeDays = [12]int64{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// isoIsLeapYear reports whether the proleptic year is a Gregorian leap year.
func isoIsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// isoMonthLength returns the number of days in the month.
func isoMonthLength(year, month int64) int64 {
	switch month {
	case 2:
		if isoIsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// isoYearLength returns the number of days in the year.
func isoYearLength(year int64) int64 {
	if isoIsLeapYear(year) {
		return 366
	}
	return 365
}

// isoDayOfYear returns the 1-based day-of-year for a date.
func isoDayOfYear(year, month, day int64) int64 {
	doy := isoCumulativeDays[month-1] + day
	if month > 2 && isoIsLeapYear(year) {
		doy++
	}
	return doy
}

// isoCalendarFromEpochDay converts an epoch day to proleptic Gregorian
// fields. The year estimate works in March-based years so the leap day falls
// at the end of the cycle, then shifts back to January-based fields.
func isoCalendarFromEpochDay(epochDay int64) calendarFields {
	zeroDay := epochDay + isoDays0000To1970
	zeroDay -= 60
	var adjust int64
	if zeroDay < 0 {
		adjustCycles := (zeroDay+1)/isoDaysPerCycle - 1
		adjust = adjustCycles * 400
		zeroDay += -adjustCycles * isoDaysPerCycle
	}
	yearEst := (400*zeroDay + 591) / isoDaysPerCycle
	doyEst := zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	if doyEst < 0 {
		yearEst--
		doyEst = zeroDay - (365*yearEst + yearEst/4 - yearEst/100 + yearEst/400)
	}
	yearEst += adjust

	marchDoy0 := doyEst
	marchMonth0 := (marchDoy0*5 + 2) / 153
	month := (marchMonth0+2)%12 + 1
	day := marchDoy0 - (marchMonth0*306+5)/10 + 1
	year := yearEst + marchMonth0/10

	return calendarFields{
		Year:      year,
		Month:     month,
		Day:       day,
		DayOfYear: isoDayOfYear(year, month, day),
	}
}

// isoEpochDayFromYMD converts proleptic Gregorian fields to an epoch day.
// The date is not validated; out-of-range days roll forward or backward.
func isoEpochDayFromYMD(year, month, day int64) int64 {
	total := 365 * year
	if year >= 0 {
		total += (year+3)/4 - (year+99)/100 + (year+399)/400
	} else {
		total -= year/-4 - year/-100 + year/-400
	}
	total += (367*month - 362) / 12
	total += day - 1
	if month > 2 {
		total--
		if !isoIsLeapYear(year) {
			total--
		}
	}
	return total - isoDays0000To1970
}

// isoEpochDayFromYearDay converts (year, day-of-year) to an epoch day
// without validating that the day fits the year.
func isoEpochDayFromYearDay(year, dayOfYear int64) int64 {
	return isoEpochDayFromYMD(year, 1, 1) + dayOfYear - 1
}
