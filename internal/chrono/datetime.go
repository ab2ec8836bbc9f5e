package chrono

import "fmt"

// DateTime is a complete date-time in one chronology: an epoch day, a
// time-of-day, and the owning chronology's identity. Immutable; every
// mutation returns a new value and enforces the chronology-safety check
// before anything else.
//
// The zero value has no chronology and is not usable; construct through the
// factories.
type DateTime struct {
	chrono   *Chronology
	epochDay int64
	time     TimeOfDay
}

// NewDateTime creates a date-time from an epoch day and time, validating
// the epoch day against the chronology's supported range.
func NewDateTime(c *Chronology, epochDay int64, t TimeOfDay) (DateTime, error) {
	if epochDay < c.minEpochDay || epochDay > c.maxEpochDay {
		return DateTime{}, &Error{
			Code:       CodeOutOfRange,
			Message:    fmt.Sprintf("epoch day %d outside supported range %d-%d", epochDay, c.minEpochDay, c.maxEpochDay),
			Chronology: c.name,
		}
	}
	return DateTime{chrono: c, epochDay: epochDay, time: t}, nil
}

// DateTimeOf creates a date-time from calendar fields, validating year,
// month, and day against the chronology.
func DateTimeOf(c *Chronology, year, month, day int64, t TimeOfDay) (DateTime, error) {
	if err := c.Rule(KindYear).CheckValue(year); err != nil {
		return DateTime{}, err
	}
	if err := c.Rule(KindMonthOfYear).CheckValue(month); err != nil {
		return DateTime{}, err
	}
	if day < 1 || day > c.MonthLength(year, month) {
		return DateTime{}, NewOutOfRangeError(c.Rule(KindDayOfMonth), day)
	}
	return NewDateTime(c, c.EpochDayFromYMD(year, month, day), t)
}

// DateTimeOfYearDay creates a date-time from a year and day-of-year.
func DateTimeOfYearDay(c *Chronology, year, dayOfYear int64, t TimeOfDay) (DateTime, error) {
	if err := c.Rule(KindYear).CheckValue(year); err != nil {
		return DateTime{}, err
	}
	if dayOfYear < 1 || dayOfYear > c.YearLength(year) {
		return DateTime{}, NewOutOfRangeError(c.Rule(KindDayOfYear), dayOfYear)
	}
	return NewDateTime(c, c.EpochDayFromYearDay(year, dayOfYear), t)
}

// Chronology returns the owning chronology.
func (dt DateTime) Chronology() *Chronology { return dt.chrono }

// EpochDay returns the chronology-neutral day count.
func (dt DateTime) EpochDay() int64 { return dt.epochDay }

// Time returns the time-of-day component.
func (dt DateTime) Time() TimeOfDay { return dt.time }

// WithTime returns a copy with the time-of-day replaced.
func (dt DateTime) WithTime(t TimeOfDay) DateTime {
	return DateTime{chrono: dt.chrono, epochDay: dt.epochDay, time: t}
}

// Get computes a field's value for this date-time. A rule belonging to a
// different chronology fails with an unsupported-field error; reads never
// coerce across calendars.
func (dt DateTime) Get(rule *FieldRule) (int64, error) {
	if rule.chrono.id != dt.chrono.id {
		return 0, NewUnsupportedFieldError(rule, dt.chrono)
	}
	v, ok := rule.ExtractFromEpoch(dt.epochDay, dt.time.NanoOfDay())
	if !ok {
		return 0, &Error{
			Code:       CodeUnsupportedField,
			Message:    fmt.Sprintf("rule %s not computable for this value", rule.Name()),
			Rule:       rule.Name(),
			Chronology: dt.chrono.name,
		}
	}
	return v, nil
}

// ConvertTo expresses the same instant in another chronology via the shared
// epoch day. Fails with an out-of-range error when the instant lies outside
// the target's supported range. This is the only sanctioned cross-calendar
// path; it is explicit, never implicit.
func (dt DateTime) ConvertTo(target *Chronology) (DateTime, error) {
	return NewDateTime(target, dt.epochDay, dt.time)
}

// PlusDays returns the date-time the given days later.
func (dt DateTime) PlusDays(days int64) (DateTime, error) {
	ed, err := safeAdd(dt.epochDay, days)
	if err != nil {
		return dt, err
	}
	next, err := NewDateTime(dt.chrono, ed, dt.time)
	if err != nil {
		return dt, err
	}
	return next, nil
}

// MinusDays returns the date-time the given days earlier.
func (dt DateTime) MinusDays(days int64) (DateTime, error) {
	neg, err := safeNegate(days)
	if err != nil {
		return dt, err
	}
	return dt.PlusDays(neg)
}

// PlusMonths returns the date-time the given months later. The month count
// runs zero-based through the rule's period conversion; the day-of-month is
// clamped to the destination month's length.
func (dt DateTime) PlusMonths(months int64) (DateTime, error) {
	cal, ok := dt.chrono.calendarFromEpochDay(dt.epochDay)
	if !ok {
		return dt, NewArithmeticOverflowError("month arithmetic")
	}
	moyRule := dt.chrono.Rule(KindMonthOfYear)
	month0 := moyRule.ConvertToPeriod(cal.Month)
	total, err := safeAdd(cal.Year*dt.chrono.monthsPerYear+month0, months)
	if err != nil {
		return dt, err
	}
	year := floorDiv(total, dt.chrono.monthsPerYear)
	month := moyRule.ConvertFromPeriod(floorMod(total, dt.chrono.monthsPerYear))
	return dt.rebuildDate(year, month, cal.Day)
}

// MinusMonths returns the date-time the given months earlier.
func (dt DateTime) MinusMonths(months int64) (DateTime, error) {
	neg, err := safeNegate(months)
	if err != nil {
		return dt, err
	}
	return dt.PlusMonths(neg)
}

// PlusYears returns the date-time the given years later, clamping the
// day-of-month to the destination month's length.
func (dt DateTime) PlusYears(years int64) (DateTime, error) {
	cal, ok := dt.chrono.calendarFromEpochDay(dt.epochDay)
	if !ok {
		return dt, NewArithmeticOverflowError("year arithmetic")
	}
	year, err := safeAdd(cal.Year, years)
	if err != nil {
		return dt, err
	}
	return dt.rebuildDate(year, cal.Month, cal.Day)
}

// MinusYears returns the date-time the given years earlier.
func (dt DateTime) MinusYears(years int64) (DateTime, error) {
	neg, err := safeNegate(years)
	if err != nil {
		return dt, err
	}
	return dt.PlusYears(neg)
}

// rebuildDate assembles a new date from fields, validating the year range
// and clamping the day to the month length.
func (dt DateTime) rebuildDate(year, month, day int64) (DateTime, error) {
	if err := dt.chrono.Rule(KindYear).CheckValue(year); err != nil {
		return dt, err
	}
	if max := dt.chrono.MonthLength(year, month); day > max {
		day = max
	}
	next, err := NewDateTime(dt.chrono, dt.chrono.EpochDayFromYMD(year, month, day), dt.time)
	if err != nil {
		return dt, err
	}
	return next, nil
}

// PlusPeriod applies a period: years, months, days, then the time-scale
// components, folding overflow days back into the date.
func (dt DateTime) PlusPeriod(p Period) (DateTime, error) {
	cur, err := dt.PlusYears(p.Years)
	if err != nil {
		return dt, err
	}
	cur, err = cur.PlusMonths(p.Months)
	if err != nil {
		return dt, err
	}
	cur, err = cur.PlusDays(p.Days)
	if err != nil {
		return dt, err
	}
	ov, err := cur.time.PlusPeriodWithOverflow(p)
	if err != nil {
		return dt, err
	}
	cur = cur.WithTime(ov.Time)
	cur, err = cur.PlusDays(ov.Days)
	if err != nil {
		return dt, err
	}
	return cur, nil
}

// MinusPeriod applies the negated period.
func (dt DateTime) MinusPeriod(p Period) (DateTime, error) {
	neg, err := p.Negated()
	if err != nil {
		return dt, err
	}
	return dt.PlusPeriod(neg)
}

// Set replaces one field's value, validating the rule's chronology, the
// value's range, and the assembled date. The chronology check runs before
// anything else; a mismatch leaves the target untouched.
func (dt DateTime) Set(rule *FieldRule, value int64) (DateTime, error) {
	if rule.chrono.id != dt.chrono.id {
		return dt, NewChronologyMismatchError(dt.chrono, rule.chrono)
	}
	if err := rule.CheckValue(value); err != nil {
		return dt, err
	}
	if rule.kind.IsTime() {
		nod, ok := rule.SetInto(value, dt.chrono.Rule(KindNanoOfDay), dt.time.NanoOfDay())
		if !ok {
			return dt, NewUnsupportedFieldError(rule, dt.chrono)
		}
		t, err := TimeOfNanoOfDay(nod)
		if err != nil {
			return dt, err
		}
		return dt.WithTime(t), nil
	}
	return dt.setDateField(rule, value)
}

// setDateField rebuilds the date component with one field replaced. Where
// the rule defines a direct set-into relation against day-of-year (the
// fixed-month calendars), that path is used; otherwise the date is rebuilt
// from its decomposed fields.
func (dt DateTime) setDateField(rule *FieldRule, value int64) (DateTime, error) {
	cal, ok := dt.chrono.calendarFromEpochDay(dt.epochDay)
	if !ok {
		return dt, NewArithmeticOverflowError("field set")
	}
	switch rule.kind {
	case KindDayOfMonth:
		doyRule := dt.chrono.Rule(KindDayOfYear)
		if doy, direct := rule.SetInto(value, doyRule, cal.DayOfYear); direct {
			if doy < 1 || doy > dt.chrono.YearLength(cal.Year) {
				return dt, NewOutOfRangeError(doyRule, doy)
			}
			next, err := NewDateTime(dt.chrono, dt.chrono.EpochDayFromYearDay(cal.Year, doy), dt.time)
			if err != nil {
				return dt, err
			}
			return next, nil
		}
		if value > dt.chrono.MonthLength(cal.Year, cal.Month) {
			return dt, NewOutOfRangeError(rule, value)
		}
		next, err := NewDateTime(dt.chrono, dt.chrono.EpochDayFromYMD(cal.Year, cal.Month, value), dt.time)
		if err != nil {
			return dt, err
		}
		return next, nil
	case KindDayOfYear:
		if value > dt.chrono.YearLength(cal.Year) {
			return dt, NewOutOfRangeError(rule, value)
		}
		next, err := NewDateTime(dt.chrono, dt.chrono.EpochDayFromYearDay(cal.Year, value), dt.time)
		if err != nil {
			return dt, err
		}
		return next, nil
	case KindMonthOfYear:
		return dt.rebuildDate(cal.Year, value, cal.Day)
	case KindYear:
		return dt.rebuildDate(value, cal.Month, cal.Day)
	case KindYearOfEra:
		era, err := dt.Get(dt.chrono.Rule(KindEra))
		if err != nil {
			return dt, err
		}
		return dt.rebuildDate(dt.chrono.YearFromEraYearOfEra(era, value), cal.Month, cal.Day)
	case KindEra:
		yoe, err := dt.Get(dt.chrono.Rule(KindYearOfEra))
		if err != nil {
			return dt, err
		}
		return dt.rebuildDate(dt.chrono.YearFromEraYearOfEra(value, yoe), cal.Month, cal.Day)
	}
	return dt, NewUnsupportedFieldError(rule, dt.chrono)
}

// Compare orders two date-times by the underlying instant: epoch day, then
// time-of-day. Values of different chronologies compare by instant.
func (dt DateTime) Compare(other DateTime) int {
	switch {
	case dt.epochDay < other.epochDay:
		return -1
	case dt.epochDay > other.epochDay:
		return 1
	default:
		return dt.time.Compare(other.time)
	}
}

// Equal reports whether two date-times are the same value in the same
// chronology. Equal instants in different chronologies are not equal.
func (dt DateTime) Equal(other DateTime) bool {
	return dt.chrono != nil && other.chrono != nil &&
		dt.chrono.id == other.chrono.id &&
		dt.epochDay == other.epochDay &&
		dt.time == other.time
}

// Before reports whether dt's instant precedes other's.
func (dt DateTime) Before(other DateTime) bool { return dt.Compare(other) < 0 }

// After reports whether dt's instant follows other's.
func (dt DateTime) After(other DateTime) bool { return dt.Compare(other) > 0 }

// CanonicalString renders the fixed, chronology-defined grammar. ISO values
// render "YYYY-MM-DDTHH:MM..." with the year zero-padded to four digits and
// a leading minus for negative years. Every other chronology renders
// "<Name> <EraName> <yearOfEra>-<MM>-<DD>T<time>".
func (dt DateTime) CanonicalString() string {
	cal, _ := dt.chrono.calendarFromEpochDay(dt.epochDay)
	if dt.chrono.id == ChronoISO {
		year := cal.Year
		sign := ""
		if year < 0 {
			sign = "-"
			year = -year
		}
		return fmt.Sprintf("%s%04d-%02d-%02dT%s", sign, year, cal.Month, cal.Day, dt.time)
	}
	era, _ := dt.chrono.Rule(KindEra).ExtractFromEpoch(dt.epochDay, 0)
	yoe, _ := dt.chrono.Rule(KindYearOfEra).ExtractFromEpoch(dt.epochDay, 0)
	return fmt.Sprintf("%s %s %d-%02d-%02dT%s",
		dt.chrono.name, dt.chrono.EraName(era), yoe, cal.Month, cal.Day, dt.time)
}

// String returns the canonical form.
func (dt DateTime) String() string {
	if dt.chrono == nil {
		return "DateTime(zero)"
	}
	return dt.CanonicalString()
}
