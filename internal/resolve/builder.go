// Package resolve turns loose collections of field values into concrete
// date-times. A Builder accumulates (rule, value) pairs against a single
// chronology, then Resolve runs fixed-point derivation until no new field
// can be computed and assembles the result from whichever completion shape
// the accumulated fields form.
//
// Key design constraints:
//
//   - Resolution is deterministic: fields are visited in ordinal order,
//     sources in ordinal order, and the derivation trace of a given input
//     is byte-for-byte reproducible.
//   - Strictness is decided at resolve time, not at entry. Entry-time
//     checks (range, chronology) apply in both modes.
//   - Strict resolution rejects any disagreement between supplied and
//     derived values. Lenient resolution lets supplied values win and
//     carries out-of-range intermediates into neighboring periods.
package resolve

import (
	"fmt"
	"log/slog"

	"github.com/almanac-go/almanac/internal/chrono"
)

// Strictness selects the merge policy applied at resolve time.
type Strictness uint8

const (
	// Strict rejects any field whose derived value disagrees with a
	// supplied one and validates calendar-dependent bounds.
	Strict Strictness = iota

	// Lenient lets supplied values win over derived ones and carries
	// out-of-range intermediates instead of rejecting them.
	Lenient
)

func (s Strictness) String() string {
	switch s {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	}
	return fmt.Sprintf("Strictness(%d)", uint8(s))
}

// StrictnessByName maps "strict" and "lenient" to their Strictness values.
func StrictnessByName(name string) (Strictness, bool) {
	switch name {
	case "strict":
		return Strict, true
	case "lenient":
		return Lenient, true
	}
	return Strict, false
}

// fieldState is the accumulated knowledge about one field rule.
type fieldState struct {
	rule     *chrono.FieldRule
	value    int64
	supplied bool
	derived  bool

	// conflict marks a rule supplied twice with different values. The
	// first value is kept for diagnostics, the last write in value.
	conflict   bool
	firstValue int64

	from  string
	round int
}

// Builder accumulates field values for one chronology.
//
// The zero value is not usable; construct with NewBuilder.
type Builder struct {
	chrono *chrono.Chronology
	order  []int
	states map[int]*fieldState
	adds   []TraceStep
}

// NewBuilder returns an empty builder bound to c.
func NewBuilder(c *chrono.Chronology) *Builder {
	return &Builder{
		chrono: c,
		states: make(map[int]*fieldState),
	}
}

// Chronology returns the chronology this builder is bound to.
func (b *Builder) Chronology() *chrono.Chronology { return b.chrono }

// Len reports how many distinct field rules hold values.
func (b *Builder) Len() int { return len(b.states) }

// AddFieldValue records a value for rule. The rule must belong to the
// builder's chronology and the value must lie within the rule's range;
// both are enforced here regardless of the strictness chosen later.
// Supplying the same rule twice with different values is tolerated at
// entry: lenient resolution keeps the last write, strict resolution
// reports the disagreement as a conflict.
func (b *Builder) AddFieldValue(rule *chrono.FieldRule, value int64) error {
	if rule.Chronology().ID() != b.chrono.ID() {
		return chrono.NewChronologyMismatchError(b.chrono, rule.Chronology())
	}
	if err := rule.CheckValue(value); err != nil {
		return err
	}
	b.adds = append(b.adds, TraceStep{Kind: StepSupplied, Rule: rule.Name(), Value: value})
	ord := rule.Ordinal()
	if st, ok := b.states[ord]; ok {
		if st.value != value {
			st.conflict = true
			st.value = value
		}
		return nil
	}
	b.order = append(b.order, ord)
	b.states[ord] = &fieldState{
		rule:       rule,
		value:      value,
		supplied:   true,
		firstValue: value,
	}
	return nil
}

// Resolve combines the accumulated fields into a DateTime under mode.
func (b *Builder) Resolve(mode Strictness) (chrono.DateTime, error) {
	dt, _, err := b.ResolveTraced(mode)
	return dt, err
}

// ResolveTraced resolves like Resolve and additionally returns the
// derivation trace. The trace is populated even on failure, with the
// error recorded in its Err field.
func (b *Builder) ResolveTraced(mode Strictness) (chrono.DateTime, *Trace, error) {
	tr := &Trace{
		Chronology: b.chrono.Name(),
		Strictness: mode.String(),
		Steps:      append([]TraceStep(nil), b.adds...),
	}
	dt, err := b.resolve(mode, tr)
	if err != nil {
		tr.Err = err.Error()
		return chrono.DateTime{}, tr, err
	}
	tr.Canonical = dt.CanonicalString()
	slog.Debug("resolution complete",
		"chronology", b.chrono.Name(),
		"strictness", mode.String(),
		"fields", len(b.states),
		"canonical", tr.Canonical)
	return dt, tr, nil
}

func (b *Builder) resolve(mode Strictness, tr *Trace) (chrono.DateTime, error) {
	states := b.cloneStates()

	if mode == Strict {
		for _, ord := range b.order {
			st := states[ord]
			if st.conflict {
				return chrono.DateTime{}, chrono.NewResolutionConflictError(st.rule, st.firstValue, st.value)
			}
		}
	}

	if err := b.derive(mode, states, tr); err != nil {
		return chrono.DateTime{}, err
	}

	epochDay, err := b.completeDate(mode, states, tr)
	if err != nil {
		return chrono.DateTime{}, err
	}
	t, err := b.completeTime(states, tr)
	if err != nil {
		return chrono.DateTime{}, err
	}

	dt, err := chrono.NewDateTime(b.chrono, epochDay, t)
	if err != nil {
		return chrono.DateTime{}, err
	}
	if mode == Strict {
		if err := b.checkAgainst(dt, states); err != nil {
			return chrono.DateTime{}, err
		}
	}
	return dt, nil
}

func (b *Builder) cloneStates() map[int]*fieldState {
	out := make(map[int]*fieldState, len(b.states))
	for ord, st := range b.states {
		c := *st
		out[ord] = &c
	}
	return out
}

// derive runs derivation rounds until a full pass adds nothing new.
// Targets and sources are both visited in ordinal order, so the first
// derivation of a field is the same on every run.
func (b *Builder) derive(mode Strictness, states map[int]*fieldState, tr *Trace) error {
	for round := 1; ; round++ {
		changed := false
		for _, target := range b.chrono.Rules() {
			tOrd := target.Ordinal()
			for _, source := range b.chrono.Rules() {
				sOrd := source.Ordinal()
				if sOrd == tOrd {
					continue
				}
				src, ok := states[sOrd]
				if !ok {
					continue
				}
				candidate, ok := target.DeriveFrom(source, src.value)
				if !ok {
					continue
				}
				held, known := states[tOrd]
				if !known {
					st := &fieldState{
						rule:    target,
						value:   candidate,
						derived: true,
						from:    source.Name(),
						round:   round,
					}
					states[tOrd] = st
					tr.Steps = append(tr.Steps, TraceStep{
						Kind:  StepDerived,
						Rule:  target.Name(),
						Value: candidate,
						From:  source.Name(),
						Round: round,
					})
					changed = true
					continue
				}
				if held.value == candidate {
					continue
				}
				if mode == Strict {
					return chrono.NewResolutionConflictError(target, held.value, candidate)
				}
				// Lenient: supplied values beat derived ones, and the
				// first derivation of a field beats later ones.
			}
		}
		if !changed {
			return nil
		}
	}
}

// completeDate assembles an epoch day from whichever date shape the
// resolved fields form: a year plus either month-of-year/day-of-month or
// day-of-year, with the year itself optionally built from era and
// year-of-era.
func (b *Builder) completeDate(mode Strictness, states map[int]*fieldState, tr *Trace) (int64, error) {
	get := func(kind chrono.FieldKind) (int64, bool) {
		st, ok := states[b.chrono.Rule(kind).Ordinal()]
		if !ok {
			return 0, false
		}
		return st.value, true
	}

	year, haveYear := get(chrono.KindYear)
	if !haveYear {
		era, haveEra := get(chrono.KindEra)
		yoe, haveYoe := get(chrono.KindYearOfEra)
		if !haveEra || !haveYoe {
			return 0, chrono.NewResolutionIncompleteError(b.chrono, b.chrono.Rule(chrono.KindYear).Name())
		}
		year = b.chrono.YearFromEraYearOfEra(era, yoe)
		yearRule := b.chrono.Rule(chrono.KindYear)
		states[yearRule.Ordinal()] = &fieldState{rule: yearRule, value: year, derived: true}
		tr.Steps = append(tr.Steps, TraceStep{
			Kind:  StepDerived,
			Rule:  yearRule.Name(),
			Value: year,
			From:  b.chrono.Rule(chrono.KindEra).Name() + "," + b.chrono.Rule(chrono.KindYearOfEra).Name(),
		})
	}

	moy, haveMoy := get(chrono.KindMonthOfYear)
	dom, haveDom := get(chrono.KindDayOfMonth)
	doy, haveDoy := get(chrono.KindDayOfYear)

	switch {
	case haveMoy && haveDom:
		if mode == Strict {
			if err := b.chrono.Rule(chrono.KindYear).CheckValue(year); err != nil {
				return 0, err
			}
			if dom > b.chrono.MonthLength(year, moy) {
				return 0, chrono.NewOutOfRangeError(b.chrono.Rule(chrono.KindDayOfMonth), dom)
			}
			return b.chrono.EpochDayFromYMD(year, moy, dom), nil
		}
		return b.chrono.EpochDayFromYMD(year, moy, 1) + (dom - 1), nil
	case haveDoy:
		if mode == Strict {
			if err := b.chrono.Rule(chrono.KindYear).CheckValue(year); err != nil {
				return 0, err
			}
			if doy > b.chrono.YearLength(year) {
				return 0, chrono.NewOutOfRangeError(b.chrono.Rule(chrono.KindDayOfYear), doy)
			}
			return b.chrono.EpochDayFromYearDay(year, doy), nil
		}
		return b.chrono.EpochDayFromYearDay(year, 1) + (doy - 1), nil
	}

	missing := b.chrono.Rule(chrono.KindMonthOfYear).Name()
	if haveMoy {
		missing = b.chrono.Rule(chrono.KindDayOfMonth).Name()
	}
	return 0, chrono.NewResolutionIncompleteError(b.chrono, missing)
}

// completeTime assembles a time of day from the resolved time fields.
// A finer field without its coarser neighbor is incomplete; finer fields
// below the finest supplied one default to zero; no time fields at all
// means midnight.
func (b *Builder) completeTime(states map[int]*fieldState, tr *Trace) (chrono.TimeOfDay, error) {
	get := func(kind chrono.FieldKind) (int64, bool) {
		st, ok := states[b.chrono.Rule(kind).Ordinal()]
		if !ok {
			return 0, false
		}
		return st.value, true
	}

	hod, haveHod := get(chrono.KindHourOfDay)
	moh, haveMoh := get(chrono.KindMinuteOfHour)
	som, haveSom := get(chrono.KindSecondOfMinute)
	nos, haveNos := get(chrono.KindNanoOfSecond)

	if !haveHod && !haveMoh && !haveSom && !haveNos {
		return chrono.Midnight, nil
	}
	switch {
	case haveNos && !haveSom:
		return chrono.TimeOfDay{}, chrono.NewResolutionIncompleteError(b.chrono, b.chrono.Rule(chrono.KindSecondOfMinute).Name())
	case haveSom && !haveMoh:
		return chrono.TimeOfDay{}, chrono.NewResolutionIncompleteError(b.chrono, b.chrono.Rule(chrono.KindMinuteOfHour).Name())
	case haveMoh && !haveHod:
		return chrono.TimeOfDay{}, chrono.NewResolutionIncompleteError(b.chrono, b.chrono.Rule(chrono.KindHourOfDay).Name())
	}

	defaulted := func(kind chrono.FieldKind) {
		tr.Steps = append(tr.Steps, TraceStep{
			Kind: StepDefaulted,
			Rule: b.chrono.Rule(kind).Name(),
		})
	}
	if !haveMoh {
		defaulted(chrono.KindMinuteOfHour)
	}
	if !haveSom {
		defaulted(chrono.KindSecondOfMinute)
	}
	if !haveNos {
		defaulted(chrono.KindNanoOfSecond)
	}
	return chrono.NewTimeOfDay(hod, moh, som, nos)
}

// checkAgainst re-extracts every resolved date field from the final
// date-time and rejects any disagreement. This is what makes strict mode
// catch shapes the pairwise derivations cannot relate, such as a
// day-of-year that contradicts a supplied month/day pair, or an era that
// does not span the resolved date.
func (b *Builder) checkAgainst(dt chrono.DateTime, states map[int]*fieldState) error {
	for _, rule := range b.chrono.Rules() {
		if !rule.Kind().IsDate() {
			continue
		}
		st, ok := states[rule.Ordinal()]
		if !ok {
			continue
		}
		actual, ok := rule.ExtractFromEpoch(dt.EpochDay(), 0)
		if !ok {
			continue
		}
		if actual != st.value {
			return chrono.NewResolutionConflictError(rule, st.value, actual)
		}
	}
	return nil
}
