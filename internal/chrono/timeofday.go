package chrono

import "fmt"

// Time unit constants. All time arithmetic reduces to nanos-of-day.
const (
	HoursPerDay      int64 = 24
	MinutesPerHour   int64 = 60
	SecondsPerMinute int64 = 60
	SecondsPerHour   int64 = 3600
	SecondsPerDay    int64 = 86_400
	NanosPerSecond   int64 = 1_000_000_000
	NanosPerMinute   int64 = 60 * NanosPerSecond
	NanosPerHour     int64 = 60 * NanosPerMinute
	NanosPerDay      int64 = 24 * NanosPerHour
)

// TimeOfDay is an immutable time without date or zone: hour, minute, second,
// and nanosecond, each always within range. Every construction path
// re-validates all four fields; arithmetic wraps within a day and reports
// absorbed days only through the WithOverflow entry points.
//
// Equality and ordering are lexicographic over (hour, minute, second, nano).
// The zero value is midnight.
type TimeOfDay struct {
	hour   uint8
	minute uint8
	second uint8
	nano   uint32
}

// hourCache holds the 24 whole-hour singletons. Factories return these
// values whenever minute, second, and nano are all zero, so whole hours are
// canonical. Built once at init, never repopulated.
var hourCache = buildHourCache()

func buildHourCache() [24]TimeOfDay {
	var hours [24]TimeOfDay
	for h := range hours {
		hours[h] = TimeOfDay{hour: uint8(h)}
	}
	return hours
}

// Midnight is the start of the day, 00:00.
var Midnight = hourCache[0]

// Midday is the middle of the day, 12:00.
var Midday = hourCache[12]

// makeTime assembles a value from pre-validated components, consulting the
// hour cache first.
func makeTime(hour, minute, second, nano int64) TimeOfDay {
	if minute|second|nano == 0 {
		return hourCache[hour]
	}
	return TimeOfDay{
		hour:   uint8(hour),
		minute: uint8(minute),
		second: uint8(second),
		nano:   uint32(nano),
	}
}

// NewTimeOfDay creates a time from hour, minute, second, and nanosecond,
// validating each against its range.
func NewTimeOfDay(hour, minute, second, nano int64) (TimeOfDay, error) {
	if err := ISO.Rule(KindHourOfDay).CheckValue(hour); err != nil {
		return Midnight, err
	}
	if err := ISO.Rule(KindMinuteOfHour).CheckValue(minute); err != nil {
		return Midnight, err
	}
	if err := ISO.Rule(KindSecondOfMinute).CheckValue(second); err != nil {
		return Midnight, err
	}
	if err := ISO.Rule(KindNanoOfSecond).CheckValue(nano); err != nil {
		return Midnight, err
	}
	return makeTime(hour, minute, second, nano), nil
}

// TimeOfSecondOfDay creates a time from a second-of-day count, with zero
// nanoseconds.
func TimeOfSecondOfDay(secondOfDay int64) (TimeOfDay, error) {
	if err := ISO.Rule(KindSecondOfDay).CheckValue(secondOfDay); err != nil {
		return Midnight, err
	}
	return makeTime(
		secondOfDay/SecondsPerHour,
		(secondOfDay/SecondsPerMinute)%MinutesPerHour,
		secondOfDay%SecondsPerMinute,
		0,
	), nil
}

// TimeOfNanoOfDay creates a time from a nano-of-day count.
func TimeOfNanoOfDay(nanoOfDay int64) (TimeOfDay, error) {
	if err := ISO.Rule(KindNanoOfDay).CheckValue(nanoOfDay); err != nil {
		return Midnight, err
	}
	return timeFromNanoOfDay(nanoOfDay), nil
}

// timeFromNanoOfDay decomposes a pre-validated nano-of-day count.
func timeFromNanoOfDay(nod int64) TimeOfDay {
	return makeTime(
		nod/NanosPerHour,
		(nod/NanosPerMinute)%MinutesPerHour,
		(nod/NanosPerSecond)%SecondsPerMinute,
		nod%NanosPerSecond,
	)
}

// Hour returns the hour-of-day, 0 to 23.
func (t TimeOfDay) Hour() int64 { return int64(t.hour) }

// Minute returns the minute-of-hour, 0 to 59.
func (t TimeOfDay) Minute() int64 { return int64(t.minute) }

// Second returns the second-of-minute, 0 to 59.
func (t TimeOfDay) Second() int64 { return int64(t.second) }

// Nano returns the nano-of-second, 0 to 999_999_999.
func (t TimeOfDay) Nano() int64 { return int64(t.nano) }

// SecondOfDay returns the time as a second-of-day count, discarding nanos.
func (t TimeOfDay) SecondOfDay() int64 {
	return t.Hour()*SecondsPerHour + t.Minute()*SecondsPerMinute + t.Second()
}

// NanoOfDay returns the time as a single nano-of-day count.
func (t TimeOfDay) NanoOfDay() int64 {
	return t.Hour()*NanosPerHour + t.Minute()*NanosPerMinute + t.Second()*NanosPerSecond + t.Nano()
}

// WithHour returns a copy with the hour replaced.
func (t TimeOfDay) WithHour(hour int64) (TimeOfDay, error) {
	return NewTimeOfDay(hour, t.Minute(), t.Second(), t.Nano())
}

// WithMinute returns a copy with the minute replaced.
func (t TimeOfDay) WithMinute(minute int64) (TimeOfDay, error) {
	return NewTimeOfDay(t.Hour(), minute, t.Second(), t.Nano())
}

// WithSecond returns a copy with the second replaced.
func (t TimeOfDay) WithSecond(second int64) (TimeOfDay, error) {
	return NewTimeOfDay(t.Hour(), t.Minute(), second, t.Nano())
}

// WithNano returns a copy with the nanosecond replaced.
func (t TimeOfDay) WithNano(nano int64) (TimeOfDay, error) {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second(), nano)
}

// plusWrapped adds a delta expressed in nanos without surfacing overflow
// days. The delta is reduced modulo a day before the addition, so the sum
// cannot overflow int64 and wraparound is consistent for either sign and
// any magnitude.
func (t TimeOfDay) plusWrapped(deltaNanos int64) TimeOfDay {
	nod := ((deltaNanos % NanosPerDay) + t.NanoOfDay() + NanosPerDay) % NanosPerDay
	return timeFromNanoOfDay(nod)
}

// PlusHours returns the time the given hours later, wrapping within the day.
func (t TimeOfDay) PlusHours(hours int64) TimeOfDay {
	return t.plusWrapped((hours % HoursPerDay) * NanosPerHour)
}

// PlusMinutes returns the time the given minutes later, wrapping within the
// day.
func (t TimeOfDay) PlusMinutes(minutes int64) TimeOfDay {
	return t.plusWrapped((minutes % (HoursPerDay * MinutesPerHour)) * NanosPerMinute)
}

// PlusSeconds returns the time the given seconds later, wrapping within the
// day.
func (t TimeOfDay) PlusSeconds(seconds int64) TimeOfDay {
	return t.plusWrapped((seconds % SecondsPerDay) * NanosPerSecond)
}

// PlusNanos returns the time the given nanos later, wrapping within the day.
func (t TimeOfDay) PlusNanos(nanos int64) TimeOfDay {
	return t.plusWrapped(nanos)
}

// MinusHours returns the time the given hours earlier, wrapping within the
// day.
func (t TimeOfDay) MinusHours(hours int64) TimeOfDay {
	return t.plusWrapped(-(hours % HoursPerDay) * NanosPerHour)
}

// MinusMinutes returns the time the given minutes earlier, wrapping within
// the day.
func (t TimeOfDay) MinusMinutes(minutes int64) TimeOfDay {
	return t.plusWrapped(-(minutes % (HoursPerDay * MinutesPerHour)) * NanosPerMinute)
}

// MinusSeconds returns the time the given seconds earlier, wrapping within
// the day.
func (t TimeOfDay) MinusSeconds(seconds int64) TimeOfDay {
	return t.plusWrapped(-(seconds % SecondsPerDay) * NanosPerSecond)
}

// MinusNanos returns the time the given nanos earlier, wrapping within the
// day.
func (t TimeOfDay) MinusNanos(nanos int64) TimeOfDay {
	return t.plusWrapped(-(nanos % NanosPerDay))
}

// Overflow pairs a time-of-day result with the signed count of whole days
// absorbed by the modulo reduction. The time never encodes date
// information; the days are applied at the date level by the caller.
type Overflow struct {
	Time TimeOfDay
	Days int64
}

// PlusNanosWithOverflow adds nanos and reports the whole days carried. The
// raw sum is overflow-checked before reduction; extreme magnitudes fail
// with an arithmetic-overflow error and no partial result.
func (t TimeOfDay) PlusNanosWithOverflow(nanos int64) (Overflow, error) {
	total, err := safeAdd(t.NanoOfDay(), nanos)
	if err != nil {
		return Overflow{}, err
	}
	days := floorDiv(total, NanosPerDay)
	nod := floorMod(total, NanosPerDay)
	return Overflow{Time: timeFromNanoOfDay(nod), Days: days}, nil
}

// MinusNanosWithOverflow subtracts nanos and reports the whole days
// carried, which are zero or negative.
func (t TimeOfDay) MinusNanosWithOverflow(nanos int64) (Overflow, error) {
	neg, err := safeNegate(nanos)
	if err != nil {
		return Overflow{}, err
	}
	return t.PlusNanosWithOverflow(neg)
}

// PlusHoursWithOverflow adds hours and reports the whole days carried. It
// agrees with PlusNanosWithOverflow on both the resulting time and the day
// count.
func (t TimeOfDay) PlusHoursWithOverflow(hours int64) (Overflow, error) {
	nanos, err := safeMultiply(hours, NanosPerHour)
	if err != nil {
		return Overflow{}, err
	}
	return t.PlusNanosWithOverflow(nanos)
}

// PlusPeriodWithOverflow applies the time-scale components of a period:
// hours, minutes, and seconds as one combined nano delta, then nanos, in
// that order, accumulating overflow days across both steps. The date-scale
// components (years, months, days) are ignored entirely.
func (t TimeOfDay) PlusPeriodWithOverflow(p Period) (Overflow, error) {
	coarse, err := p.timeScaleNanos()
	if err != nil {
		return Overflow{}, err
	}
	first, err := t.PlusNanosWithOverflow(coarse)
	if err != nil {
		return Overflow{}, err
	}
	second, err := first.Time.PlusNanosWithOverflow(p.Nanos)
	if err != nil {
		return Overflow{}, err
	}
	days, err := safeAdd(first.Days, second.Days)
	if err != nil {
		return Overflow{}, err
	}
	return Overflow{Time: second.Time, Days: days}, nil
}

// MinusPeriodWithOverflow applies the negated time-scale components of a
// period, accumulating overflow days.
func (t TimeOfDay) MinusPeriodWithOverflow(p Period) (Overflow, error) {
	neg, err := p.Negated()
	if err != nil {
		return Overflow{}, err
	}
	return t.PlusPeriodWithOverflow(neg)
}

// Compare orders two times lexicographically by hour, minute, second, then
// nano.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	a, b := t.NanoOfDay(), other.NanoOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t.Compare(other) < 0 }

// After reports whether t is later than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t.Compare(other) > 0 }

// String renders the canonical form: "HH:MM", extended to "HH:MM:SS" when
// second or nano is non-zero, extended further with a fraction of exactly
// 3, 6, or 9 digits chosen by the smallest grouping that represents the
// nanosecond value. No other fraction widths are ever produced.
func (t TimeOfDay) String() string {
	if t.second == 0 && t.nano == 0 {
		return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
	}
	if t.nano == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.hour, t.minute, t.second)
	}
	nano := int64(t.nano)
	switch {
	case nano%1_000_000 == 0:
		return fmt.Sprintf("%02d:%02d:%02d.%03d", t.hour, t.minute, t.second, nano/1_000_000)
	case nano%1_000 == 0:
		return fmt.Sprintf("%02d:%02d:%02d.%06d", t.hour, t.minute, t.second, nano/1_000)
	default:
		return fmt.Sprintf("%02d:%02d:%02d.%09d", t.hour, t.minute, t.second, nano)
	}
}
