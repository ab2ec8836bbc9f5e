package harness

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/request"
)

// Run executes a scenario and returns the result.
//
// The request document is compiled first; compile failures are hard errors
// because they indicate a broken scenario, not an outcome the scenario
// could assert on. Resolution failures are outcomes: they land in
// Result.ErrorCode with the trace populated up to the failure point.
//
// Execution flow:
//  1. Load the request document (inline or from request_file)
//  2. Compile the document against its chronology
//  3. Resolve with the requested strictness, capturing the trace
//  4. Evaluate the expect clause against the outcome
//  5. Evaluate assertions against the trace and resolved fields
func Run(scenario *Scenario) (*Result, error) {
	req, err := scenarioRequest(scenario)
	if err != nil {
		return nil, err
	}

	compiled, errs := request.Compile(req)
	if len(errs) > 0 {
		return nil, fmt.Errorf("compiling request for scenario %s: %w", scenario.Name, errors.Join(errs...))
	}

	result := NewResult()
	dt, tr, rerr := compiled.Resolve()
	result.Trace = tr
	if rerr != nil {
		result.ErrorCode = errorCode(rerr)
	} else {
		result.Canonical = dt.CanonicalString()
		result.EpochDay = dt.EpochDay()
		result.NanoOfDay = dt.Time().NanoOfDay()
	}

	evaluateExpect(result, scenario.Expect, rerr)
	evaluateAssertions(result, dt, rerr == nil, scenario.Assertions)
	return result, nil
}

// scenarioRequest produces the request document for a scenario, either
// from the inline form or by loading the referenced file.
func scenarioRequest(s *Scenario) (*request.Request, error) {
	if s.Request != nil {
		req := &request.Request{
			Chronology: s.Request.Chronology,
			Strictness: s.Request.Strictness,
			Note:       s.Request.Note,
		}
		for _, f := range s.Request.Fields {
			req.Fields = append(req.Fields, request.Field{Rule: f.Rule, Value: f.Value})
		}
		return req, nil
	}

	switch strings.ToLower(filepath.Ext(s.RequestFile)) {
	case ".cue":
		req, errs := request.LoadCUEFile(s.RequestFile)
		if len(errs) > 0 {
			return nil, fmt.Errorf("loading request file %s: %w", s.RequestFile, errors.Join(errs...))
		}
		return req, nil
	case ".yaml", ".yml":
		req, errs := request.LoadYAMLFile(s.RequestFile)
		if len(errs) > 0 {
			return nil, fmt.Errorf("loading request file %s: %w", s.RequestFile, errors.Join(errs...))
		}
		return req, nil
	}
	return nil, fmt.Errorf("unsupported request file extension: %s", s.RequestFile)
}

// errorCode extracts the calendrical error code from a resolution error.
func errorCode(err error) string {
	var cerr *chrono.Error
	if errors.As(err, &cerr) {
		return string(cerr.Code)
	}
	return "UNKNOWN"
}

// evaluateExpect compares the resolution outcome against the expect
// clause, recording mismatches on the result.
func evaluateExpect(result *Result, expect *ExpectClause, rerr error) {
	if expect == nil {
		return
	}

	if expect.ErrorCode != "" {
		if rerr == nil {
			result.AddError(fmt.Sprintf("expected error %s, resolution succeeded with %s", expect.ErrorCode, result.Canonical))
			return
		}
		if result.ErrorCode != expect.ErrorCode {
			result.AddError(fmt.Sprintf("expected error %s, got %s", expect.ErrorCode, result.ErrorCode))
		}
		return
	}

	if rerr != nil {
		result.AddError(fmt.Sprintf("expected success, resolution failed: %v", rerr))
		return
	}

	if expect.Canonical != "" && result.Canonical != expect.Canonical {
		result.AddError(fmt.Sprintf("expected canonical %s, got %s", expect.Canonical, result.Canonical))
	}
	if expect.EpochDay != nil && result.EpochDay != *expect.EpochDay {
		result.AddError(fmt.Sprintf("expected epoch day %d, got %d", *expect.EpochDay, result.EpochDay))
	}
	if expect.NanoOfDay != nil && result.NanoOfDay != *expect.NanoOfDay {
		result.AddError(fmt.Sprintf("expected nano of day %d, got %d", *expect.NanoOfDay, result.NanoOfDay))
	}
}
