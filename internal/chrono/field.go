package chrono

// FieldKind is the closed set of calendar fields every chronology exposes.
//
// The declared order doubles as the rule ordinal: a rule's ordinal within its
// chronology's table equals int(kind). Ordinals are the only durable rule
// identity across a serialize/deserialize boundary, so this order must never
// be rearranged; append new kinds at the end.
type FieldKind uint8

const (
	KindDayOfMonth FieldKind = iota
	KindDayOfYear
	KindMonthOfYear
	KindYearOfEra
	KindYear
	KindEra
	KindNanoOfSecond
	KindNanoOfDay
	KindSecondOfMinute
	KindSecondOfDay
	KindMinuteOfHour
	KindHourOfDay

	fieldKindCount = 12
)

// periodThresholdKind is the last kind whose values are stored 1-based for
// humans but treated 0-based in period arithmetic. Kinds at or below it
// subtract one in ConvertToPeriod; kinds above pass through unchanged.
const periodThresholdKind = KindYearOfEra

// String returns the kind name used in rule names and request documents.
func (k FieldKind) String() string {
	switch k {
	case KindDayOfMonth:
		return "DayOfMonth"
	case KindDayOfYear:
		return "DayOfYear"
	case KindMonthOfYear:
		return "MonthOfYear"
	case KindYearOfEra:
		return "YearOfEra"
	case KindYear:
		return "Year"
	case KindEra:
		return "Era"
	case KindNanoOfSecond:
		return "NanoOfSecond"
	case KindNanoOfDay:
		return "NanoOfDay"
	case KindSecondOfMinute:
		return "SecondOfMinute"
	case KindSecondOfDay:
		return "SecondOfDay"
	case KindMinuteOfHour:
		return "MinuteOfHour"
	case KindHourOfDay:
		return "HourOfDay"
	}
	return "Unknown"
}

// IsDate reports whether the kind is a date field.
func (k FieldKind) IsDate() bool {
	switch k {
	case KindDayOfMonth, KindDayOfYear, KindMonthOfYear, KindYearOfEra, KindYear, KindEra:
		return true
	}
	return false
}

// IsTime reports whether the kind is a time-of-day field.
func (k FieldKind) IsTime() bool {
	return !k.IsDate()
}

// unit returns the granularity the kind counts in.
func (k FieldKind) unit() PeriodUnit {
	switch k {
	case KindDayOfMonth, KindDayOfYear:
		return UnitDays
	case KindMonthOfYear:
		return UnitMonths
	case KindYearOfEra, KindYear:
		return UnitYears
	case KindEra:
		return UnitEras
	case KindNanoOfSecond, KindNanoOfDay:
		return UnitNanos
	case KindSecondOfMinute, KindSecondOfDay:
		return UnitSeconds
	case KindMinuteOfHour:
		return UnitMinutes
	case KindHourOfDay:
		return UnitHours
	}
	return UnitForever
}

// rangeUnit returns the span the kind cycles over.
func (k FieldKind) rangeUnit() PeriodUnit {
	switch k {
	case KindDayOfMonth:
		return UnitMonths
	case KindDayOfYear, KindMonthOfYear:
		return UnitYears
	case KindYearOfEra:
		return UnitEras
	case KindYear, KindEra:
		return UnitForever
	case KindNanoOfSecond:
		return UnitSeconds
	case KindNanoOfDay:
		return UnitDays
	case KindSecondOfMinute:
		return UnitMinutes
	case KindSecondOfDay:
		return UnitDays
	case KindMinuteOfHour:
		return UnitHours
	case KindHourOfDay:
		return UnitDays
	}
	return UnitForever
}

// FieldKindByName resolves a kind from its name. The second return is false
// for unknown names.
func FieldKindByName(name string) (FieldKind, bool) {
	for k := FieldKind(0); k < fieldKindCount; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// FieldKinds returns all kinds in ordinal order.
func FieldKinds() []FieldKind {
	kinds := make([]FieldKind, fieldKindCount)
	for i := range kinds {
		kinds[i] = FieldKind(i)
	}
	return kinds
}
