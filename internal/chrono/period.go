package chrono

import (
	"fmt"
	"strings"
)

// Period is an immutable amount of time expressed as seven independent
// signed components. No normalization ever occurs across units: 90 minutes
// stays 90 minutes, never 1 hour 30 minutes. Normalization, if wanted, is
// the caller's responsibility at the point of application.
//
// The zero value is the zero period. Literals are the intended construction
// form: Period{Years: 1, Days: 2}.
type Period struct {
	Years   int64
	Months  int64
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
	Nanos   int64
}

// ZeroPeriod is the period with every component zero.
var ZeroPeriod = Period{}

// IsZero reports whether every component is zero.
func (p Period) IsZero() bool {
	return p == ZeroPeriod
}

// Negated returns the period with every component negated, failing with an
// arithmetic-overflow error if any component is the minimum int64.
func (p Period) Negated() (Period, error) {
	components := [7]int64{p.Years, p.Months, p.Days, p.Hours, p.Minutes, p.Seconds, p.Nanos}
	for i, v := range components {
		n, err := safeNegate(v)
		if err != nil {
			return Period{}, err
		}
		components[i] = n
	}
	return Period{
		Years:   components[0],
		Months:  components[1],
		Days:    components[2],
		Hours:   components[3],
		Minutes: components[4],
		Seconds: components[5],
		Nanos:   components[6],
	}, nil
}

// timeScaleNanos combines hours, minutes, and seconds into one nano count,
// overflow-checked. Nanos are excluded; they are applied separately so the
// two-step application matches the field-by-field contract.
func (p Period) timeScaleNanos() (int64, error) {
	h, err := safeMultiply(p.Hours, NanosPerHour)
	if err != nil {
		return 0, err
	}
	m, err := safeMultiply(p.Minutes, NanosPerMinute)
	if err != nil {
		return 0, err
	}
	s, err := safeMultiply(p.Seconds, NanosPerSecond)
	if err != nil {
		return 0, err
	}
	total, err := safeAdd(h, m)
	if err != nil {
		return 0, err
	}
	return safeAdd(total, s)
}

// String renders the non-zero components, or "P0" for the zero period.
func (p Period) String() string {
	if p.IsZero() {
		return "P0"
	}
	var b strings.Builder
	b.WriteByte('P')
	write := func(v int64, suffix string) {
		if v != 0 {
			fmt.Fprintf(&b, "%d%s", v, suffix)
		}
	}
	write(p.Years, "Y")
	write(p.Months, "M")
	write(p.Days, "D")
	if p.Hours != 0 || p.Minutes != 0 || p.Seconds != 0 || p.Nanos != 0 {
		b.WriteByte('T')
		write(p.Hours, "H")
		write(p.Minutes, "M")
		write(p.Seconds, "S")
		write(p.Nanos, "N")
	}
	return b.String()
}
