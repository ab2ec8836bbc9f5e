package chrono

// PeriodUnit identifies the granularity a field counts in and the span it
// cycles over. Units are ordered from finest to coarsest; UnitForever marks
// fields that never cycle (year, era).
type PeriodUnit uint8

const (
	UnitNanos PeriodUnit = iota
	UnitSeconds
	UnitMinutes
	UnitHours
	UnitDays
	UnitMonths
	UnitYears
	UnitEras
	UnitForever
)

// String returns the unit name.
func (u PeriodUnit) String() string {
	switch u {
	case UnitNanos:
		return "Nanos"
	case UnitSeconds:
		return "Seconds"
	case UnitMinutes:
		return "Minutes"
	case UnitHours:
		return "Hours"
	case UnitDays:
		return "Days"
	case UnitMonths:
		return "Months"
	case UnitYears:
		return "Years"
	case UnitEras:
		return "Eras"
	case UnitForever:
		return "Forever"
	}
	return "Unknown"
}

// Finer reports whether u counts in a smaller granularity than other.
func (u PeriodUnit) Finer(other PeriodUnit) bool {
	return u < other
}
