package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/resolve"
)

// sampleSteps builds a small trace for assertion tests: the leap day
// resolution with a defaulted nano step appended for kind coverage.
func sampleSteps() []resolve.TraceStep {
	return []resolve.TraceStep{
		{Kind: resolve.StepSupplied, Rule: "Year", Value: 2024},
		{Kind: resolve.StepSupplied, Rule: "MonthOfYear", Value: 2},
		{Kind: resolve.StepSupplied, Rule: "DayOfMonth", Value: 29},
		{Kind: resolve.StepDerived, Rule: "YearOfEra", Value: 2024, From: "Year", Round: 1},
		{Kind: resolve.StepDerived, Rule: "Era", Value: 1, From: "Year", Round: 1},
		{Kind: resolve.StepDefaulted, Rule: "NanoOfSecond"},
	}
}

// leapDay returns the resolved 2024-02-29 date-time.
func leapDay(t *testing.T) chrono.DateTime {
	t.Helper()
	dt, err := chrono.DateTimeOf(chrono.ISO, 2024, 2, 29, chrono.Midnight)
	require.NoError(t, err)
	return dt
}

func TestAssertTraceContains_Found(t *testing.T) {
	err := assertTraceContains(sampleSteps(), Assertion{
		Type: AssertTraceContains,
		Rule: "YearOfEra",
	})
	assert.NoError(t, err)
}

func TestAssertTraceContains_KindNarrows(t *testing.T) {
	err := assertTraceContains(sampleSteps(), Assertion{
		Type: AssertTraceContains,
		Kind: "supplied",
		Rule: "Year",
	})
	assert.NoError(t, err)

	err = assertTraceContains(sampleSteps(), Assertion{
		Type: AssertTraceContains,
		Kind: "derived",
		Rule: "Year",
	})
	require.Error(t, err)
}

func TestAssertTraceContains_ValueNarrows(t *testing.T) {
	err := assertTraceContains(sampleSteps(), Assertion{
		Type:  AssertTraceContains,
		Rule:  "Year",
		Value: int64p(2024),
	})
	assert.NoError(t, err)

	err = assertTraceContains(sampleSteps(), Assertion{
		Type:  AssertTraceContains,
		Rule:  "Year",
		Value: int64p(2023),
	})
	require.Error(t, err)
}

func TestAssertTraceContains_FromNarrows(t *testing.T) {
	err := assertTraceContains(sampleSteps(), Assertion{
		Type: AssertTraceContains,
		Rule: "YearOfEra",
		From: "Year",
	})
	assert.NoError(t, err)

	err = assertTraceContains(sampleSteps(), Assertion{
		Type: AssertTraceContains,
		Rule: "YearOfEra",
		From: "DayOfMonth",
	})
	require.Error(t, err)
}

func TestAssertTraceContains_FailureDetail(t *testing.T) {
	err := assertTraceContains(sampleSteps(), Assertion{
		Type:  AssertTraceContains,
		Kind:  "derived",
		Rule:  "MinuteOfHour",
		Value: int64p(30),
	})
	require.Error(t, err)

	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, AssertTraceContains, aerr.Type)
	assert.Equal(t, "step with kind derived, rule MinuteOfHour, value 30", aerr.Expected)
	assert.Equal(t, "no matching step in trace", aerr.Actual)

	// The message carries the full trace for debugging.
	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: trace_contains")
	assert.Contains(t, msg, "[1] supplied Year = 2024")
	assert.Contains(t, msg, "[4] derived YearOfEra = 2024 from Year")
}

func TestAssertTraceOrder_InOrder(t *testing.T) {
	err := assertTraceOrder(sampleSteps(), Assertion{
		Type:  AssertTraceOrder,
		Rules: []string{"Year", "YearOfEra", "Era"},
	})
	assert.NoError(t, err)
}

func TestAssertTraceOrder_MissingRule(t *testing.T) {
	err := assertTraceOrder(sampleSteps(), Assertion{
		Type:  AssertTraceOrder,
		Rules: []string{"Year", "HourOfDay"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing rule: HourOfDay")
}

func TestAssertTraceOrder_OutOfOrder(t *testing.T) {
	err := assertTraceOrder(sampleSteps(), Assertion{
		Type:  AssertTraceOrder,
		Rules: []string{"Era", "Year"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Era (step 5) should be before Year (step 1)")
}

func TestAssertTraceCount_KindAndRule(t *testing.T) {
	err := assertTraceCount(sampleSteps(), Assertion{
		Type:  AssertTraceCount,
		Kind:  "derived",
		Rule:  "Era",
		Count: 1,
	})
	assert.NoError(t, err)
}

func TestAssertTraceCount_KindOnly(t *testing.T) {
	err := assertTraceCount(sampleSteps(), Assertion{
		Type:  AssertTraceCount,
		Kind:  "supplied",
		Count: 3,
	})
	assert.NoError(t, err)
}

func TestAssertTraceCount_RuleOnly(t *testing.T) {
	err := assertTraceCount(sampleSteps(), Assertion{
		Type:  AssertTraceCount,
		Rule:  "Year",
		Count: 1,
	})
	assert.NoError(t, err)
}

func TestAssertTraceCount_Mismatch(t *testing.T) {
	err := assertTraceCount(sampleSteps(), Assertion{
		Type:  AssertTraceCount,
		Kind:  "derived",
		Count: 3,
	})
	require.Error(t, err)

	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "3 matching steps", aerr.Expected)
	assert.Equal(t, "2 matching steps", aerr.Actual)
}

func TestAssertField_Match(t *testing.T) {
	err := assertField(leapDay(t), true, Assertion{
		Type:  AssertField,
		Rule:  "DayOfYear",
		Value: int64p(60),
	})
	assert.NoError(t, err)
}

func TestAssertField_WrongValue(t *testing.T) {
	err := assertField(leapDay(t), true, Assertion{
		Type:  AssertField,
		Rule:  "DayOfYear",
		Value: int64p(61),
	})
	require.Error(t, err)

	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "DayOfYear = 61", aerr.Expected)
	assert.Equal(t, "DayOfYear = 60", aerr.Actual)
}

func TestAssertField_UnknownRule(t *testing.T) {
	err := assertField(leapDay(t), true, Assertion{
		Type:  AssertField,
		Rule:  "Fortnight",
		Value: int64p(1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown rule "Fortnight"`)
}

func TestAssertField_NotResolved(t *testing.T) {
	err := assertField(chrono.DateTime{}, false, Assertion{
		Type:  AssertField,
		Rule:  "Year",
		Value: int64p(2024),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolution failed; no date-time to query")
}

func TestAssertionError_Format(t *testing.T) {
	aerr := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "2 matching steps",
		Actual:   "1 matching steps",
		Steps: []resolve.TraceStep{
			{Kind: resolve.StepSupplied, Rule: "Year", Value: 2024},
			{Kind: resolve.StepDerived, Rule: "Era", Value: 1, From: "Year", Round: 1},
		},
	}

	want := "Assertion failed: trace_count\n" +
		"  Expected: 2 matching steps\n" +
		"  Actual: 1 matching steps\n" +
		"\nTrace steps:\n" +
		"  [1] supplied Year = 2024\n" +
		"  [2] derived Era = 1 from Year\n"
	assert.Equal(t, want, aerr.Error())
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	result := NewResult()
	evaluateAssertions(result, chrono.DateTime{}, false, []Assertion{{Type: "bogus"}})

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `unknown assertion type "bogus"`)
}

func TestEvaluateAssertions_FailuresAreIndependent(t *testing.T) {
	result := NewResult()
	result.Trace = &resolve.Trace{Steps: sampleSteps()}
	evaluateAssertions(result, leapDay(t), true, []Assertion{
		{Type: AssertTraceCount, Kind: "supplied", Count: 9},
		{Type: AssertField, Rule: "DayOfYear", Value: int64p(60)},
		{Type: AssertTraceContains, Rule: "HourOfDay"},
	})

	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 2)
}
