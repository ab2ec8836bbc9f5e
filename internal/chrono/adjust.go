package chrono

// Capability-based mutation: a caller hands the date-time an object
// exposing one of the adjuster interfaces; the date-time passes itself in,
// receives a candidate back, and verifies the candidate's chronology before
// anything replaces anything. A mismatch surfaces as a typed error with the
// target unmodified; partial application is never observable.

// WithAdjuster produces a full replacement for the current date-time.
type WithAdjuster interface {
	AdjustWith(current DateTime) (DateTime, error)
}

// PlusAdjuster produces the date-time resulting from an addition.
type PlusAdjuster interface {
	AdjustPlus(current DateTime) (DateTime, error)
}

// MinusAdjuster produces the date-time resulting from a subtraction.
type MinusAdjuster interface {
	AdjustMinus(current DateTime) (DateTime, error)
}

// FieldSetter produces the date-time resulting from setting one field.
type FieldSetter interface {
	SetField(current DateTime, value int64) (DateTime, error)
}

// AdjusterFunc adapts a function to the WithAdjuster interface.
type AdjusterFunc func(DateTime) (DateTime, error)

// AdjustWith implements WithAdjuster.
func (f AdjusterFunc) AdjustWith(current DateTime) (DateTime, error) {
	return f(current)
}

// checkCandidate verifies an adjuster's result against the target's
// chronology. Runs at every mutation entry point, not only at construction.
func (dt DateTime) checkCandidate(candidate DateTime) (DateTime, error) {
	if candidate.chrono == nil {
		return dt, &Error{
			Code:       CodeChronologyMismatch,
			Message:    "adjuster produced a value with no chronology",
			Chronology: dt.chrono.name,
		}
	}
	if candidate.chrono.id != dt.chrono.id {
		return dt, NewChronologyMismatchError(dt.chrono, candidate.chrono)
	}
	return candidate, nil
}

// With replaces this date-time with the adjuster's candidate after the
// chronology check.
func (dt DateTime) With(adjuster WithAdjuster) (DateTime, error) {
	candidate, err := adjuster.AdjustWith(dt)
	if err != nil {
		return dt, err
	}
	return dt.checkCandidate(candidate)
}

// Plus replaces this date-time with the adjuster's addition result after
// the chronology check.
func (dt DateTime) Plus(adjuster PlusAdjuster) (DateTime, error) {
	candidate, err := adjuster.AdjustPlus(dt)
	if err != nil {
		return dt, err
	}
	return dt.checkCandidate(candidate)
}

// Minus replaces this date-time with the adjuster's subtraction result
// after the chronology check.
func (dt DateTime) Minus(adjuster MinusAdjuster) (DateTime, error) {
	candidate, err := adjuster.AdjustMinus(dt)
	if err != nil {
		return dt, err
	}
	return dt.checkCandidate(candidate)
}

// SetWith replaces this date-time with the setter's result after the
// chronology check.
func (dt DateTime) SetWith(setter FieldSetter, value int64) (DateTime, error) {
	candidate, err := setter.SetField(dt, value)
	if err != nil {
		return dt, err
	}
	return dt.checkCandidate(candidate)
}

// FirstDayOfMonth returns an adjuster that moves to day 1 of the current
// month.
func FirstDayOfMonth() WithAdjuster {
	return AdjusterFunc(func(dt DateTime) (DateTime, error) {
		return dt.Set(dt.Chronology().Rule(KindDayOfMonth), 1)
	})
}

// LastDayOfMonth returns an adjuster that moves to the final day of the
// current month.
func LastDayOfMonth() WithAdjuster {
	return AdjusterFunc(func(dt DateTime) (DateTime, error) {
		cal, ok := dt.chrono.calendarFromEpochDay(dt.epochDay)
		if !ok {
			return dt, NewArithmeticOverflowError("month length")
		}
		return dt.Set(dt.Chronology().Rule(KindDayOfMonth), dt.chrono.MonthLength(cal.Year, cal.Month))
	})
}

// FirstDayOfYear returns an adjuster that moves to day 1 of the current
// year.
func FirstDayOfYear() WithAdjuster {
	return AdjusterFunc(func(dt DateTime) (DateTime, error) {
		return dt.Set(dt.Chronology().Rule(KindDayOfYear), 1)
	})
}

// LastDayOfYear returns an adjuster that moves to the final day of the
// current year.
func LastDayOfYear() WithAdjuster {
	return AdjusterFunc(func(dt DateTime) (DateTime, error) {
		cal, ok := dt.chrono.calendarFromEpochDay(dt.epochDay)
		if !ok {
			return dt, NewArithmeticOverflowError("year length")
		}
		return dt.Set(dt.Chronology().Rule(KindDayOfYear), dt.chrono.YearLength(cal.Year))
	})
}
