package chrono

import "fmt"

// ValueRange is an immutable closed interval of valid values for a field.
//
// SmallestMax carries the smallest maximum the field can take in any context,
// which differs from Max for variable-length fields: day-of-month in the ISO
// calendar has SmallestMax 28 (February) and Max 31. For fixed-length fields
// SmallestMax equals Max.
//
// Invariant: Min <= SmallestMax <= Max. Ranges are created once per rule at
// init and never mutated.
type ValueRange struct {
	min         int64
	smallestMax int64
	max         int64
}

// NewValueRange creates a range with distinct smallest and largest maxima.
// Panics if min <= smallestMax <= max does not hold; ranges are only built
// from init-time tables, so a violation is a programming error.
func NewValueRange(min, smallestMax, max int64) ValueRange {
	if min > smallestMax || smallestMax > max {
		panic(fmt.Sprintf("chrono: invalid value range [%d, %d, %d]", min, smallestMax, max))
	}
	return ValueRange{min: min, smallestMax: smallestMax, max: max}
}

// NewFixedValueRange creates a range whose maximum never varies.
func NewFixedValueRange(min, max int64) ValueRange {
	return NewValueRange(min, max, max)
}

// Min returns the smallest valid value.
func (r ValueRange) Min() int64 { return r.min }

// SmallestMax returns the smallest maximum the field takes in any context.
func (r ValueRange) SmallestMax() int64 { return r.smallestMax }

// Max returns the largest valid value.
func (r ValueRange) Max() int64 { return r.max }

// IsFixed reports whether the maximum never varies by context.
func (r ValueRange) IsFixed() bool { return r.smallestMax == r.max }

// Contains reports whether value lies within [Min, Max].
func (r ValueRange) Contains(value int64) bool {
	return value >= r.min && value <= r.max
}

// String renders the range as "min-max" or "min-smallestMax/max" when the
// maximum varies.
func (r ValueRange) String() string {
	if r.IsFixed() {
		return fmt.Sprintf("%d-%d", r.min, r.max)
	}
	return fmt.Sprintf("%d-%d/%d", r.min, r.smallestMax, r.max)
}
