package chrono

import (
	"fmt"
	"strings"
)

// ChronoID identifies one of the supported calendar systems. It is a closed
// enum: chronology safety checks compare IDs for equality and never rely on
// dynamic casting.
type ChronoID uint8

const (
	ChronoISO ChronoID = iota
	ChronoCoptic
	ChronoHijrah
	ChronoJapanese
	ChronoMinguo
	ChronoThaiBuddhist

	chronoCount = 6
)

// String returns the chronology name.
func (id ChronoID) String() string {
	switch id {
	case ChronoISO:
		return "ISO"
	case ChronoCoptic:
		return "Coptic"
	case ChronoHijrah:
		return "Hijrah"
	case ChronoJapanese:
		return "Japanese"
	case ChronoMinguo:
		return "Minguo"
	case ChronoThaiBuddhist:
		return "ThaiBuddhist"
	}
	return "Unknown"
}

// calendarFields is the per-chronology date decomposition of an epoch day.
type calendarFields struct {
	Year      int64
	Month     int64
	Day       int64
	DayOfYear int64
}

// Chronology is a complete, self-consistent calendar system: its field rule
// table plus the canonical conversions between epoch days and calendar
// fields.
//
// Chronologies are process-wide singletons built once at init, immutable
// thereafter. A FieldRule is scoped to exactly one Chronology and must never
// be evaluated against a value belonging to a different one.
type Chronology struct {
	id            ChronoID
	name          string
	rules         [fieldKindCount]*FieldRule
	monthsPerYear int64
	minEpochDay   int64
	maxEpochDay   int64
}

// Singleton chronologies, built at init. These are the only instances.
var (
	ISO          *Chronology
	Coptic       *Chronology
	Hijrah       *Chronology
	Japanese     *Chronology
	Minguo       *Chronology
	ThaiBuddhist *Chronology

	chronologies [chronoCount]*Chronology
)

func init() {
	ISO = newChronology(ChronoISO, 12,
		NewValueRange(1, 28, 31),
		NewValueRange(1, 365, 366),
		NewFixedValueRange(1, 12),
		NewValueRange(1, 9999, 10000),
		NewFixedValueRange(-9999, 9999),
		NewFixedValueRange(0, 1),
		isoEpochDayFromYMD(-9999, 1, 1),
		isoEpochDayFromYMD(9999, 12, 31),
	)
	Coptic = newChronology(ChronoCoptic, 13,
		NewValueRange(1, 5, 30),
		NewValueRange(1, 365, 366),
		NewFixedValueRange(1, 13),
		NewFixedValueRange(1, 9999),
		NewFixedValueRange(1, 9999),
		NewFixedValueRange(0, 1),
		copticEpochDayFromYMD(1, 1, 1),
		copticEpochDayFromYMD(9999, 13, copticMonthLength(9999, 13)),
	)
	Hijrah = newChronology(ChronoHijrah, 12,
		NewValueRange(1, 29, 30),
		NewValueRange(1, 354, 355),
		NewFixedValueRange(1, 12),
		NewFixedValueRange(1, 9999),
		NewFixedValueRange(1, 9999),
		NewFixedValueRange(1, 1),
		hijrahEpochDayFromYMD(1, 1, 1),
		hijrahEpochDayFromYMD(9999, 12, hijrahMonthLength(9999, 12)),
	)
	Japanese = newChronology(ChronoJapanese, 12,
		NewValueRange(1, 28, 31),
		NewValueRange(1, 365, 366),
		NewFixedValueRange(1, 12),
		NewValueRange(1, 15, 7981),
		NewFixedValueRange(1868, 9999),
		NewFixedValueRange(0, 4),
		japaneseEras[0].startEpochDay,
		isoEpochDayFromYMD(9999, 12, 31),
	)
	Minguo = newChronology(ChronoMinguo, 12,
		NewValueRange(1, 28, 31),
		NewValueRange(1, 365, 366),
		NewFixedValueRange(1, 12),
		NewValueRange(1, 8088, 11911),
		NewFixedValueRange(-11910, 8088),
		NewFixedValueRange(0, 1),
		isoEpochDayFromYMD(-9999, 1, 1),
		isoEpochDayFromYMD(9999, 12, 31),
	)
	ThaiBuddhist = newChronology(ChronoThaiBuddhist, 12,
		NewValueRange(1, 28, 31),
		NewValueRange(1, 365, 366),
		NewFixedValueRange(1, 12),
		NewValueRange(1, 9457, 10542),
		NewFixedValueRange(-9456, 10542),
		NewFixedValueRange(0, 1),
		isoEpochDayFromYMD(-9999, 1, 1),
		isoEpochDayFromYMD(9999, 12, 31),
	)

	chronologies = [chronoCount]*Chronology{ISO, Coptic, Hijrah, Japanese, Minguo, ThaiBuddhist}
}

// newChronology builds a chronology and its rule table. ISO rule names are
// the bare kind names; every other chronology prefixes its own name, so rule
// names are unique process-wide.
func newChronology(id ChronoID, monthsPerYear int64, dom, doy, moy, yoe, year, era ValueRange, minEpochDay, maxEpochDay int64) *Chronology {
	c := &Chronology{
		id:            id,
		name:          id.String(),
		monthsPerYear: monthsPerYear,
		minEpochDay:   minEpochDay,
		maxEpochDay:   maxEpochDay,
	}
	prefix := ""
	if id != ChronoISO {
		prefix = c.name
	}
	for k := FieldKind(0); k < fieldKindCount; k++ {
		c.rules[k] = &FieldRule{
			chrono:    c,
			kind:      k,
			name:      prefix + k.String(),
			unit:      k.unit(),
			rangeUnit: k.rangeUnit(),
			rng:       dateOrTimeRange(k, dom, doy, moy, yoe, year, era),
			ordinal:   int(k),
		}
	}
	return c
}

// dateOrTimeRange selects the range for a kind. Time ranges are identical
// across chronologies; date ranges are the chronology's own.
func dateOrTimeRange(k FieldKind, dom, doy, moy, yoe, year, era ValueRange) ValueRange {
	switch k {
	case KindDayOfMonth:
		return dom
	case KindDayOfYear:
		return doy
	case KindMonthOfYear:
		return moy
	case KindYearOfEra:
		return yoe
	case KindYear:
		return year
	case KindEra:
		return era
	case KindNanoOfSecond:
		return NewFixedValueRange(0, NanosPerSecond-1)
	case KindNanoOfDay:
		return NewFixedValueRange(0, NanosPerDay-1)
	case KindSecondOfMinute:
		return NewFixedValueRange(0, 59)
	case KindSecondOfDay:
		return NewFixedValueRange(0, SecondsPerDay-1)
	case KindMinuteOfHour:
		return NewFixedValueRange(0, 59)
	case KindHourOfDay:
		return NewFixedValueRange(0, 23)
	}
	return NewFixedValueRange(0, 0)
}

// ID returns the chronology's identity.
func (c *Chronology) ID() ChronoID { return c.id }

// Name returns the chronology name.
func (c *Chronology) Name() string { return c.name }

// String returns the chronology name.
func (c *Chronology) String() string { return c.name }

// Rule returns the chronology's rule for a kind.
func (c *Chronology) Rule(kind FieldKind) *FieldRule {
	return c.rules[kind]
}

// RuleByOrdinal restores the canonical rule singleton from its ordinal, the
// only durable rule identity across a serialize/deserialize boundary.
func (c *Chronology) RuleByOrdinal(ordinal int) (*FieldRule, error) {
	if ordinal < 0 || ordinal >= fieldKindCount {
		return nil, &Error{
			Code:       CodeUnsupportedField,
			Message:    fmt.Sprintf("no rule with ordinal %d", ordinal),
			Chronology: c.name,
		}
	}
	return c.rules[ordinal], nil
}

// Rules returns the rule table in ordinal order.
func (c *Chronology) Rules() []*FieldRule {
	out := make([]*FieldRule, fieldKindCount)
	copy(out[:], c.rules[:])
	return out
}

// MonthsPerYear returns the number of months in every year of this
// chronology.
func (c *Chronology) MonthsPerYear() int64 { return c.monthsPerYear }

// MinEpochDay returns the earliest supported epoch day.
func (c *Chronology) MinEpochDay() int64 { return c.minEpochDay }

// MaxEpochDay returns the latest supported epoch day.
func (c *Chronology) MaxEpochDay() int64 { return c.maxEpochDay }

// IsLeapYear reports whether the proleptic year is a leap year in this
// chronology.
func (c *Chronology) IsLeapYear(year int64) bool {
	switch c.id {
	case ChronoISO:
		return isoIsLeapYear(year)
	case ChronoCoptic:
		return copticIsLeapYear(year)
	case ChronoHijrah:
		return hijrahIsLeapYear(year)
	case ChronoJapanese:
		return isoIsLeapYear(year)
	case ChronoMinguo:
		return minguoIsLeapYear(year)
	case ChronoThaiBuddhist:
		return thaiBuddhistIsLeapYear(year)
	}
	return false
}

// MonthLength returns the number of days in a month of the proleptic year.
func (c *Chronology) MonthLength(year, month int64) int64 {
	switch c.id {
	case ChronoISO, ChronoJapanese:
		return isoMonthLength(year, month)
	case ChronoCoptic:
		return copticMonthLength(year, month)
	case ChronoHijrah:
		return hijrahMonthLength(year, month)
	case ChronoMinguo:
		return isoMonthLength(year+minguoYearOffset, month)
	case ChronoThaiBuddhist:
		return isoMonthLength(year-thaiBuddhistYearOffset, month)
	}
	return 0
}

// YearLength returns the number of days in the proleptic year.
func (c *Chronology) YearLength(year int64) int64 {
	if c.IsLeapYear(year) {
		switch c.id {
		case ChronoHijrah:
			return 355
		default:
			return 366
		}
	}
	switch c.id {
	case ChronoHijrah:
		return 354
	default:
		return 365
	}
}

// EpochDayFromYMD converts (year, month, day) to an epoch day without
// validating the day against the month length; out-of-range days roll over.
func (c *Chronology) EpochDayFromYMD(year, month, day int64) int64 {
	switch c.id {
	case ChronoISO, ChronoJapanese:
		return isoEpochDayFromYMD(year, month, day)
	case ChronoCoptic:
		return copticEpochDayFromYMD(year, month, day)
	case ChronoHijrah:
		return hijrahEpochDayFromYMD(year, month, day)
	case ChronoMinguo:
		return minguoEpochDayFromYMD(year, month, day)
	case ChronoThaiBuddhist:
		return thaiBuddhistEpochDayFromYMD(year, month, day)
	}
	return 0
}

// EpochDayFromYearDay converts (year, day-of-year) to an epoch day without
// validating the day against the year length.
func (c *Chronology) EpochDayFromYearDay(year, dayOfYear int64) int64 {
	switch c.id {
	case ChronoISO, ChronoJapanese:
		return isoEpochDayFromYearDay(year, dayOfYear)
	case ChronoCoptic:
		return copticEpochDayFromYearDay(year, dayOfYear)
	case ChronoHijrah:
		return hijrahEpochDayFromYearDay(year, dayOfYear)
	case ChronoMinguo:
		return minguoEpochDayFromYearDay(year, dayOfYear)
	case ChronoThaiBuddhist:
		return thaiBuddhistEpochDayFromYearDay(year, dayOfYear)
	}
	return 0
}

// YearFromEraYearOfEra converts an (era, year-of-era) pair to the proleptic
// year. The era value must already satisfy the era rule's range.
func (c *Chronology) YearFromEraYearOfEra(era, yearOfEra int64) int64 {
	switch c.id {
	case ChronoHijrah:
		return yearOfEra
	case ChronoJapanese:
		return japaneseYearFromEraYoe(era, yearOfEra)
	default:
		if era == 1 {
			return yearOfEra
		}
		return 1 - yearOfEra
	}
}

// EraName returns the display name for an era value.
func (c *Chronology) EraName(era int64) string {
	switch c.id {
	case ChronoISO:
		if era == 0 {
			return "BCE"
		}
		return "CE"
	case ChronoCoptic:
		if era == 0 {
			return "BEFORE_AM"
		}
		return "AM"
	case ChronoHijrah:
		return "AH"
	case ChronoJapanese:
		return japaneseEraName(era)
	case ChronoMinguo:
		if era == 0 {
			return "BEFORE_ROC"
		}
		return "ROC"
	case ChronoThaiBuddhist:
		if era == 0 {
			return "BEFORE_BE"
		}
		return "BE"
	}
	return "Unknown"
}

// calendarFromEpochDay decomposes an epoch day into this chronology's date
// fields. The second return is false outside the supported epoch range.
func (c *Chronology) calendarFromEpochDay(epochDay int64) (calendarFields, bool) {
	if epochDay < c.minEpochDay || epochDay > c.maxEpochDay {
		return calendarFields{}, false
	}
	switch c.id {
	case ChronoISO, ChronoJapanese:
		return isoCalendarFromEpochDay(epochDay), true
	case ChronoCoptic:
		return copticCalendarFromEpochDay(epochDay), true
	case ChronoHijrah:
		return hijrahCalendarFromEpochDay(epochDay), true
	case ChronoMinguo:
		return minguoCalendarFromEpochDay(epochDay), true
	case ChronoThaiBuddhist:
		return thaiBuddhistCalendarFromEpochDay(epochDay), true
	}
	return calendarFields{}, false
}

// Chronologies returns all chronology singletons in ID order.
func Chronologies() []*Chronology {
	out := make([]*Chronology, chronoCount)
	copy(out, chronologies[:])
	return out
}

// ChronologyByID returns the singleton for an ID.
func ChronologyByID(id ChronoID) (*Chronology, error) {
	if int(id) >= chronoCount {
		return nil, &Error{
			Code:    CodeUnsupportedField,
			Message: fmt.Sprintf("unknown chronology id %d", id),
		}
	}
	return chronologies[id], nil
}

// ChronologyByName resolves a chronology from its name, case-insensitively.
func ChronologyByName(name string) (*Chronology, error) {
	for _, c := range chronologies {
		if strings.EqualFold(c.name, name) {
			return c, nil
		}
	}
	return nil, &Error{
		Code:       CodeUnsupportedField,
		Message:    fmt.Sprintf("unknown chronology %q", name),
		Chronology: name,
	}
}
