package chrono

// FieldRule describes one calendar field of one chronology: its name, the
// unit it counts in, the span it cycles over, its valid range, and the
// arithmetic to extract, derive, and set it.
//
// Rules are singletons created with their chronology at init. Two rules are
// equal only when they belong to the same chronology and share an ordinal;
// rules of different chronologies are never equal even when their kinds
// coincide.
type FieldRule struct {
	chrono    *Chronology
	kind      FieldKind
	name      string
	unit      PeriodUnit
	rangeUnit PeriodUnit
	rng       ValueRange
	ordinal   int
}

// Chronology returns the owning chronology.
func (r *FieldRule) Chronology() *Chronology { return r.chrono }

// Kind returns the field kind.
func (r *FieldRule) Kind() FieldKind { return r.kind }

// Name returns the process-wide unique rule name.
func (r *FieldRule) Name() string { return r.name }

// Unit returns the granularity the field counts in.
func (r *FieldRule) Unit() PeriodUnit { return r.unit }

// RangeUnit returns the span the field cycles over.
func (r *FieldRule) RangeUnit() PeriodUnit { return r.rangeUnit }

// Range returns the field's valid value range.
func (r *FieldRule) Range() ValueRange { return r.rng }

// Ordinal returns the rule's dense index within its chronology's table.
func (r *FieldRule) Ordinal() int { return r.ordinal }

// String returns the rule name.
func (r *FieldRule) String() string { return r.name }

// Equal reports whether two rules are the same singleton. Rules of
// different chronologies are never equal.
func (r *FieldRule) Equal(other *FieldRule) bool {
	if other == nil {
		return false
	}
	return r.chrono.id == other.chrono.id && r.ordinal == other.ordinal
}

// Compare orders rules by chronology ID, then ordinal. The ordering is
// meaningful within one chronology; across chronologies it is merely
// deterministic.
func (r *FieldRule) Compare(other *FieldRule) int {
	if r.chrono.id != other.chrono.id {
		if r.chrono.id < other.chrono.id {
			return -1
		}
		return 1
	}
	switch {
	case r.ordinal < other.ordinal:
		return -1
	case r.ordinal > other.ordinal:
		return 1
	default:
		return 0
	}
}

// CheckValue validates an externally supplied value against the rule's
// range. Violations fail immediately with an out-of-range error, never
// deferred.
func (r *FieldRule) CheckValue(value int64) error {
	if !r.rng.Contains(value) {
		return NewOutOfRangeError(r, value)
	}
	return nil
}

// ExtractFromEpoch computes the field's value from the chronology-neutral
// epoch representation. Pure and total over the chronology's supported
// range; the second return is false when the field cannot be computed from
// the given epoch pair (epoch day outside the supported range, or
// nano-of-day outside a day).
func (r *FieldRule) ExtractFromEpoch(epochDay, nanoOfDay int64) (int64, bool) {
	if r.kind.IsTime() {
		if nanoOfDay < 0 || nanoOfDay >= NanosPerDay {
			return 0, false
		}
		return extractTimeField(r.kind, nanoOfDay), true
	}

	cal, ok := r.chrono.calendarFromEpochDay(epochDay)
	if !ok {
		return 0, false
	}
	switch r.kind {
	case KindDayOfMonth:
		return cal.Day, true
	case KindDayOfYear:
		return cal.DayOfYear, true
	case KindMonthOfYear:
		return cal.Month, true
	case KindYear:
		return cal.Year, true
	case KindYearOfEra:
		switch r.chrono.id {
		case ChronoHijrah:
			return cal.Year, true
		case ChronoJapanese:
			era := japaneseEraOfEpochDay(epochDay)
			return japaneseYearOfEra(era, cal.Year), true
		default:
			if cal.Year < 1 {
				return 1 - cal.Year, true
			}
			return cal.Year, true
		}
	case KindEra:
		switch r.chrono.id {
		case ChronoHijrah:
			return 1, true
		case ChronoJapanese:
			return japaneseEraOfEpochDay(epochDay), true
		default:
			if cal.Year < 1 {
				return 0, true
			}
			return 1, true
		}
	}
	return 0, false
}

// extractTimeField computes a time field from nano-of-day. Time arithmetic
// is identical in every chronology.
func extractTimeField(kind FieldKind, nanoOfDay int64) int64 {
	switch kind {
	case KindNanoOfSecond:
		return nanoOfDay % NanosPerSecond
	case KindNanoOfDay:
		return nanoOfDay
	case KindSecondOfMinute:
		return (nanoOfDay / NanosPerSecond) % SecondsPerMinute
	case KindSecondOfDay:
		return nanoOfDay / NanosPerSecond
	case KindMinuteOfHour:
		return (nanoOfDay / NanosPerMinute) % MinutesPerHour
	case KindHourOfDay:
		return nanoOfDay / NanosPerHour
	}
	return 0
}

// DeriveFrom computes this field's value directly from another field's raw
// value, without an epoch round-trip, when a deterministic relation exists.
// The second return is false when no direct relation is known; callers fall
// back to the epoch path. Rules of different chronologies never derive from
// each other.
func (r *FieldRule) DeriveFrom(other *FieldRule, otherValue int64) (int64, bool) {
	if other == nil || r.chrono.id != other.chrono.id {
		return 0, false
	}
	if r.kind.IsTime() {
		return deriveTimeField(r.kind, other.kind, otherValue)
	}
	return r.deriveDateField(other.kind, otherValue)
}

// deriveTimeField handles the uniform aggregate-to-component relations:
// nano-of-day and second-of-day determine every coarser component.
func deriveTimeField(kind, from FieldKind, v int64) (int64, bool) {
	switch kind {
	case KindNanoOfSecond:
		if from == KindNanoOfDay {
			return v % NanosPerSecond, true
		}
	case KindSecondOfMinute:
		switch from {
		case KindNanoOfDay:
			return (v / NanosPerSecond) % SecondsPerMinute, true
		case KindSecondOfDay:
			return v % SecondsPerMinute, true
		}
	case KindSecondOfDay:
		if from == KindNanoOfDay {
			return v / NanosPerSecond, true
		}
	case KindMinuteOfHour:
		switch from {
		case KindNanoOfDay:
			return (v / NanosPerMinute) % MinutesPerHour, true
		case KindSecondOfDay:
			return (v / SecondsPerMinute) % MinutesPerHour, true
		}
	case KindHourOfDay:
		switch from {
		case KindNanoOfDay:
			return v / NanosPerHour, true
		case KindSecondOfDay:
			return v / SecondsPerHour, true
		}
	}
	return 0, false
}

// deriveDateField handles the chronology-specific date relations. Fixed
// 30-day months make Coptic day-of-year fully decomposable; the tabular
// Hijrah month pattern is likewise fixed. ISO-family month lengths vary by
// year, so day-of-year alone determines nothing there.
func (r *FieldRule) deriveDateField(from FieldKind, v int64) (int64, bool) {
	switch r.chrono.id {
	case ChronoCoptic:
		switch {
		case r.kind == KindDayOfMonth && from == KindDayOfYear:
			return copticDomFromDoy(v), true
		case r.kind == KindMonthOfYear && from == KindDayOfYear:
			return copticMoyFromDoy(v), true
		}
	case ChronoHijrah:
		switch {
		case r.kind == KindDayOfMonth && from == KindDayOfYear:
			return hijrahDomFromDoy(v), true
		case r.kind == KindMonthOfYear && from == KindDayOfYear:
			return hijrahMoyFromDoy(v), true
		case r.kind == KindYearOfEra && from == KindYear:
			return v, true
		case r.kind == KindEra && from == KindYear:
			return 1, true
		}
	case ChronoJapanese:
		// Era and year-of-era depend on the full date, not the year alone.
		return 0, false
	}

	switch {
	case r.kind == KindYearOfEra && from == KindYear:
		if v < 1 {
			return 1 - v, true
		}
		return v, true
	case r.kind == KindEra && from == KindYear:
		if v < 1 {
			return 0, true
		}
		return 1, true
	}
	return 0, false
}

// SetInto computes the new base value produced by replacing this field's
// component while holding the other fields implied by baseValue constant.
// The result may fall outside the base rule's normal range (day 31 of a
// 30-day month); validation is a separate, explicit step. The second return
// is false when the relation is undefined for this (rule, base) pair.
func (r *FieldRule) SetInto(newValue int64, base *FieldRule, baseValue int64) (int64, bool) {
	if base == nil || r.chrono.id != base.chrono.id {
		return 0, false
	}
	if r.kind == base.kind {
		return newValue, true
	}
	if r.kind.IsTime() {
		return setTimeField(r.kind, newValue, base.kind, baseValue)
	}

	switch r.chrono.id {
	case ChronoCoptic:
		switch {
		case r.kind == KindDayOfMonth && base.kind == KindDayOfYear:
			return baseValue + (newValue - copticDomFromDoy(baseValue)), true
		case r.kind == KindMonthOfYear && base.kind == KindDayOfYear:
			return baseValue + (newValue-copticMoyFromDoy(baseValue))*30, true
		}
	case ChronoHijrah:
		switch {
		case r.kind == KindDayOfMonth && base.kind == KindDayOfYear:
			return baseValue + (newValue - hijrahDomFromDoy(baseValue)), true
		case r.kind == KindMonthOfYear && base.kind == KindDayOfYear:
			return hijrahDaysBeforeMonth(newValue) + hijrahDomFromDoy(baseValue), true
		}
	}
	return 0, false
}

// setTimeField rebuilds a time aggregate with one component replaced.
func setTimeField(kind FieldKind, newValue int64, baseKind FieldKind, base int64) (int64, bool) {
	switch baseKind {
	case KindNanoOfDay:
		switch kind {
		case KindNanoOfSecond:
			return base + (newValue - base%NanosPerSecond), true
		case KindSecondOfMinute:
			return base + (newValue-(base/NanosPerSecond)%SecondsPerMinute)*NanosPerSecond, true
		case KindSecondOfDay:
			return base + (newValue-base/NanosPerSecond)*NanosPerSecond, true
		case KindMinuteOfHour:
			return base + (newValue-(base/NanosPerMinute)%MinutesPerHour)*NanosPerMinute, true
		case KindHourOfDay:
			return base + (newValue-base/NanosPerHour)*NanosPerHour, true
		}
	case KindSecondOfDay:
		switch kind {
		case KindSecondOfMinute:
			return base + (newValue - base%SecondsPerMinute), true
		case KindMinuteOfHour:
			return base + (newValue-(base/SecondsPerMinute)%MinutesPerHour)*SecondsPerMinute, true
		case KindHourOfDay:
			return base + (newValue-base/SecondsPerHour)*SecondsPerHour, true
		}
	}
	return 0, false
}

// ConvertToPeriod converts a field value to its zero-based period amount.
// Kinds stored 1-based for humans (day-of-month through year-of-era)
// subtract one; year, era, and the time fields pass through unchanged.
func (r *FieldRule) ConvertToPeriod(value int64) int64 {
	if r.kind <= periodThresholdKind {
		return value - 1
	}
	return value
}

// ConvertFromPeriod converts a zero-based period amount back to a field
// value, inverting ConvertToPeriod.
func (r *FieldRule) ConvertFromPeriod(amount int64) int64 {
	if r.kind <= periodThresholdKind {
		return amount + 1
	}
	return amount
}
