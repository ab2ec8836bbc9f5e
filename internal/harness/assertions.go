package harness

import (
	"fmt"
	"strings"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/resolve"
)

// AssertionError is returned when an assertion fails.
// It includes the full trace to help debug the failure.
type AssertionError struct {
	Type     string              // Assertion type for categorization
	Expected string              // Human-readable expected outcome
	Actual   string              // Human-readable actual outcome
	Steps    []resolve.TraceStep // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Steps) > 0 {
		fmt.Fprintf(&buf, "\nTrace steps:\n")
		for i, s := range e.Steps {
			if s.From != "" {
				fmt.Fprintf(&buf, "  [%d] %s %s = %d from %s\n", i+1, s.Kind, s.Rule, s.Value, s.From)
			} else {
				fmt.Fprintf(&buf, "  [%d] %s %s = %d\n", i+1, s.Kind, s.Rule, s.Value)
			}
		}
	}

	return buf.String()
}

// evaluateAssertions runs every assertion and records failures on the
// result. Assertions are independent; one failure does not stop the rest.
func evaluateAssertions(result *Result, dt chrono.DateTime, resolved bool, assertions []Assertion) {
	steps := result.Steps()
	for _, assertion := range assertions {
		var err error
		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(steps, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(steps, assertion)
		case AssertTraceCount:
			err = assertTraceCount(steps, assertion)
		case AssertField:
			err = assertField(dt, resolved, assertion)
		default:
			err = fmt.Errorf("unknown assertion type %q", assertion.Type)
		}
		if err != nil {
			result.AddError(err.Error())
		}
	}
}

// assertTraceContains checks that a step matching the assertion appears
// somewhere in the trace. Kind, value, and from narrow the match only
// when specified.
func assertTraceContains(steps []resolve.TraceStep, assertion Assertion) error {
	for _, step := range steps {
		if stepMatches(step, assertion) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describeStepMatch(assertion),
		Actual:   "no matching step in trace",
		Steps:    steps,
	}
}

// stepMatches reports whether a trace step satisfies the assertion's
// rule, kind, value, and from constraints.
func stepMatches(step resolve.TraceStep, assertion Assertion) bool {
	if step.Rule != assertion.Rule {
		return false
	}
	if assertion.Kind != "" && string(step.Kind) != assertion.Kind {
		return false
	}
	if assertion.Value != nil && step.Value != *assertion.Value {
		return false
	}
	if assertion.From != "" && step.From != assertion.From {
		return false
	}
	return true
}

// describeStepMatch renders the constraints of a trace_contains assertion
// for failure messages.
func describeStepMatch(assertion Assertion) string {
	var parts []string
	if assertion.Kind != "" {
		parts = append(parts, fmt.Sprintf("kind %s", assertion.Kind))
	}
	parts = append(parts, fmt.Sprintf("rule %s", assertion.Rule))
	if assertion.Value != nil {
		parts = append(parts, fmt.Sprintf("value %d", *assertion.Value))
	}
	if assertion.From != "" {
		parts = append(parts, fmt.Sprintf("from %s", assertion.From))
	}
	return "step with " + strings.Join(parts, ", ")
}

// assertTraceOrder checks that rules first appear in the given order.
// Rules don't need to be consecutive (intervening steps are allowed).
func assertTraceOrder(steps []resolve.TraceStep, assertion Assertion) error {
	// Find the first position of each expected rule, 1-indexed for
	// readability.
	positions := make(map[string]int)
	for i, step := range steps {
		for _, rule := range assertion.Rules {
			if step.Rule == rule && positions[rule] == 0 {
				positions[rule] = i + 1
			}
		}
	}

	for _, rule := range assertion.Rules {
		if positions[rule] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all rules present: %v", assertion.Rules),
				Actual:   fmt.Sprintf("missing rule: %s", rule),
				Steps:    steps,
			}
		}
	}

	for i := 1; i < len(assertion.Rules); i++ {
		prev := assertion.Rules[i-1]
		curr := assertion.Rules[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("rules in order: %v", assertion.Rules),
				Actual: fmt.Sprintf("%s (step %d) should be before %s (step %d)",
					prev, positions[prev], curr, positions[curr]),
				Steps: steps,
			}
		}
	}

	return nil
}

// assertTraceCount checks that exactly Count steps match the assertion's
// kind and rule. An empty kind matches any kind; an empty rule matches
// any rule.
func assertTraceCount(steps []resolve.TraceStep, assertion Assertion) error {
	count := 0
	for _, step := range steps {
		if assertion.Kind != "" && string(step.Kind) != assertion.Kind {
			continue
		}
		if assertion.Rule != "" && step.Rule != assertion.Rule {
			continue
		}
		count++
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d matching steps", assertion.Count),
			Actual:   fmt.Sprintf("%d matching steps", count),
			Steps:    steps,
		}
	}

	return nil
}

// assertField extracts a field from the resolved date-time and compares
// it against the expected value. The rule is named by kind, as in request
// documents, so the same assertion works across chronologies.
func assertField(dt chrono.DateTime, resolved bool, assertion Assertion) error {
	expected := fmt.Sprintf("%s = %d", assertion.Rule, *assertion.Value)

	if !resolved {
		return &AssertionError{
			Type:     AssertField,
			Expected: expected,
			Actual:   "resolution failed; no date-time to query",
		}
	}

	kind, ok := chrono.FieldKindByName(assertion.Rule)
	if !ok {
		return &AssertionError{
			Type:     AssertField,
			Expected: expected,
			Actual:   fmt.Sprintf("unknown rule %q", assertion.Rule),
		}
	}

	got, err := dt.Get(dt.Chronology().Rule(kind))
	if err != nil {
		return &AssertionError{
			Type:     AssertField,
			Expected: expected,
			Actual:   err.Error(),
		}
	}

	if got != *assertion.Value {
		return &AssertionError{
			Type:     AssertField,
			Expected: expected,
			Actual:   fmt.Sprintf("%s = %d", assertion.Rule, got),
		}
	}

	return nil
}
