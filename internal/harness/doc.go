// Package harness provides conformance testing for the resolution engine.
//
// The harness loads request documents, resolves them, and validates the
// derivation traces as executable contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	request:
//	  chronology: ISO
//	  strictness: strict
//	  fields:
//	    - rule: Year
//	      value: 2024
//	    - rule: MonthOfYear
//	      value: 2
//	    - rule: DayOfMonth
//	      value: 29
//	expect:
//	  canonical: "2024-02-29T00:00"
//	assertions:
//	  - type: trace_contains
//	    kind: derived
//	    rule: YearOfEra
//	    value: 2024
//	  - type: field
//	    rule: DayOfYear
//	    value: 60
//
// A scenario may reference an external request document instead of the
// inline form:
//
//	request_file: requests/leap_day.cue
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - trace_contains: Verifies a step appears in the trace with matching
//     kind, rule, value, and derivation source
//   - trace_order: Verifies rules first appear in the specified order
//   - trace_count: Verifies exactly N steps match a kind and rule
//   - field: Verifies the resolved date-time yields an expected field value
//
// # Deterministic Testing
//
// Resolution visits fields in ordinal order and derivation sources in
// ordinal order, so the trace of a given request is byte-for-byte
// reproducible. Golden files capture trace snapshots in canonical JSON;
// any change to the fixed-point order or to the canonical string format
// shows up as a golden diff.
//
// # Usage
//
// Load a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/leap_day.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Execute it:
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
