package resolve

import (
	"fmt"
	"strings"
)

// TraceStepKind categorizes derivation trace steps.
type TraceStepKind string

const (
	// StepSupplied records a field value handed to the builder.
	StepSupplied TraceStepKind = "supplied"

	// StepDerived records a value computed from another field.
	StepDerived TraceStepKind = "derived"

	// StepDefaulted records a missing finer time field filled with zero.
	StepDefaulted TraceStepKind = "defaulted"
)

// TraceStep is one step of a resolution run.
type TraceStep struct {
	Kind  TraceStepKind `json:"kind"`
	Rule  string        `json:"rule"`
	Value int64         `json:"value"`
	From  string        `json:"from,omitempty"`
	Round int           `json:"round,omitempty"`
}

// Trace is the deterministic record of one resolution run: every supplied
// pair in insertion order, every derivation in fixed-point order, every
// default, and the canonical result. Identical inputs produce an identical
// trace.
type Trace struct {
	Chronology string      `json:"chronology"`
	Strictness string      `json:"strictness"`
	Steps      []TraceStep `json:"steps"`
	Canonical  string      `json:"canonical,omitempty"`
	Err        string      `json:"error,omitempty"`
}

// Render formats the trace as stable plain text, one step per line.
func (tr *Trace) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "chronology: %s\n", tr.Chronology)
	fmt.Fprintf(&b, "strictness: %s\n", tr.Strictness)
	for _, s := range tr.Steps {
		switch s.Kind {
		case StepDerived:
			if s.Round > 0 {
				fmt.Fprintf(&b, "derived %s = %d from %s (round %d)\n", s.Rule, s.Value, s.From, s.Round)
			} else {
				fmt.Fprintf(&b, "derived %s = %d from %s\n", s.Rule, s.Value, s.From)
			}
		case StepDefaulted:
			fmt.Fprintf(&b, "defaulted %s = %d\n", s.Rule, s.Value)
		default:
			fmt.Fprintf(&b, "supplied %s = %d\n", s.Rule, s.Value)
		}
	}
	if tr.Err != "" {
		fmt.Fprintf(&b, "failed: %s\n", tr.Err)
		return b.String()
	}
	fmt.Fprintf(&b, "resolved %s\n", tr.Canonical)
	return b.String()
}
