package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/almanac-go/almanac/internal/journal"
	"github.com/almanac-go/almanac/internal/resolve"
)

// TraceSnapshot captures the derivation trace of one scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string              `json:"scenario_name"`
	Chronology   string              `json:"chronology"`
	Strictness   string              `json:"strictness"`
	Steps        []resolve.TraceStep `json:"steps"`
	Canonical    string              `json:"canonical,omitempty"`
	Err          string              `json:"error,omitempty"`
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for
// canonical JSON serialization. This is required because
// journal.MarshalCanonical only handles maps, slices, and primitives.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	stepList := make([]any, len(s.Steps))
	for i, step := range s.Steps {
		stepMap := map[string]any{
			"kind":  string(step.Kind),
			"rule":  step.Rule,
			"value": step.Value,
		}
		if step.From != "" {
			stepMap["from"] = step.From
		}
		if step.Round > 0 {
			stepMap["round"] = step.Round
		}
		stepList[i] = stepMap
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"chronology":    s.Chronology,
		"strictness":    s.Strictness,
		"steps":         stepList,
	}
	if s.Canonical != "" {
		result["canonical"] = s.Canonical
	}
	if s.Err != "" {
		result["error"] = s.Err
	}
	return result
}

// RunWithGolden executes a scenario and compares its trace snapshot
// against the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for expected derivation
// behavior; any change to the fixed-point order or the canonical format
// shows up as a golden diff.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result without re-running.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{ScenarioName: name}
	if result.Trace != nil {
		snapshot.Chronology = result.Trace.Chronology
		snapshot.Strictness = result.Trace.Strictness
		snapshot.Steps = result.Trace.Steps
		snapshot.Canonical = result.Trace.Canonical
		snapshot.Err = result.Trace.Err
	}

	traceJSON, err := journal.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, traceJSON)

	return nil
}
