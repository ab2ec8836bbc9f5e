package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/almanac-go/almanac/internal/resolve"
)

// Scenario defines a resolution test scenario.
// Scenarios feed one request document to the resolver and assert on the
// resulting date-time and derivation trace.
type Scenario struct {
	// Name uniquely identifies this scenario.
	// It is also the golden file name for trace comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Request is an inline request document.
	// Exactly one of Request and RequestFile must be set.
	Request *RequestDoc `yaml:"request,omitempty"`

	// RequestFile is a path to a request document, CUE or YAML by
	// extension. Relative paths resolve against the scenario file
	// location when loaded with LoadScenarioWithBasePath.
	RequestFile string `yaml:"request_file,omitempty"`

	// Expect specifies the expected resolution outcome.
	// If nil, only assertions are evaluated.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Assertions validate the derivation trace and the resolved fields.
	// Supported types: trace_contains, trace_order, trace_count, field
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// RequestDoc is an inline request document inside a scenario.
// It mirrors the YAML request format accepted by the request package.
type RequestDoc struct {
	// Chronology names the calendar system (e.g., "ISO", "Coptic").
	Chronology string `yaml:"chronology"`

	// Strictness is "strict" or "lenient". Empty means strict.
	Strictness string `yaml:"strictness,omitempty"`

	// Fields lists the field values to resolve, in submission order.
	Fields []FieldDoc `yaml:"fields"`

	// Note is an optional free-form annotation.
	Note string `yaml:"note,omitempty"`
}

// FieldDoc is one (rule, value) pair of an inline request.
type FieldDoc struct {
	// Rule is the field kind name (e.g., "Year", "DayOfMonth").
	Rule string `yaml:"rule"`

	// Value is the field value.
	Value int64 `yaml:"value"`
}

// ExpectClause specifies the expected resolution outcome.
type ExpectClause struct {
	// Canonical is the expected canonical string of the resolved
	// date-time (e.g., "2024-02-29T00:00").
	Canonical string `yaml:"canonical,omitempty"`

	// EpochDay is the expected epoch day of the resolved date-time.
	EpochDay *int64 `yaml:"epoch_day,omitempty"`

	// NanoOfDay is the expected nano-of-day of the resolved time.
	NanoOfDay *int64 `yaml:"nano_of_day,omitempty"`

	// ErrorCode is the expected resolution error code (e.g.,
	// "RESOLUTION_CONFLICT"). Mutually exclusive with the value
	// expectations above.
	ErrorCode string `yaml:"error_code,omitempty"`
}

// Assertion validates the derivation trace or a resolved field.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": a matching step appears in the trace
	// - "trace_order": rules first appear in the given order
	// - "trace_count": exactly N steps match kind and rule
	// - "field": the resolved date-time yields the expected field value
	Type string `yaml:"type"`

	// Kind is the step kind to match: "supplied", "derived", or
	// "defaulted" (used by trace_contains, trace_count). Empty matches
	// any kind.
	Kind string `yaml:"kind,omitempty"`

	// Rule is the field rule name (used by trace_contains, trace_count,
	// field). Trace assertions use full rule names as they appear in the
	// trace; field assertions use kind names as in request documents.
	Rule string `yaml:"rule,omitempty"`

	// Value is the expected value (optional narrowing for
	// trace_contains, required for field).
	Value *int64 `yaml:"value,omitempty"`

	// From is the expected derivation source (used by trace_contains).
	From string `yaml:"from,omitempty"`

	// Rules is the expected rule order (used by trace_order).
	Rules []string `yaml:"rules,omitempty"`

	// Count is the expected number of matching steps (used by
	// trace_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertField         = "field"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a relative request_file path against the provided base path.
// This is useful when scenario files reference request documents that
// live next to them rather than in the test's working directory.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.RequestFile != "" && !filepath.IsAbs(scenario.RequestFile) && basePath != "" {
		scenario.RequestFile = filepath.Join(basePath, scenario.RequestFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Request == nil && s.RequestFile == "" {
		return fmt.Errorf("either request or request_file is required")
	}
	if s.Request != nil && s.RequestFile != "" {
		return fmt.Errorf("request and request_file are mutually exclusive")
	}

	if s.Request != nil {
		if s.Request.Chronology == "" {
			return fmt.Errorf("request: chronology is required")
		}
		if len(s.Request.Fields) == 0 {
			return fmt.Errorf("request: fields list is required and must be non-empty")
		}
		for i, f := range s.Request.Fields {
			if f.Rule == "" {
				return fmt.Errorf("request.fields[%d]: rule is required", i)
			}
		}
	}

	if s.RequestFile != "" {
		switch strings.ToLower(filepath.Ext(s.RequestFile)) {
		case ".cue", ".yaml", ".yml":
		default:
			return fmt.Errorf("request_file must be a .cue, .yaml, or .yml file: %s", s.RequestFile)
		}
		if _, err := os.Stat(s.RequestFile); os.IsNotExist(err) {
			return fmt.Errorf("request file not found: %s", s.RequestFile)
		}
	}

	if s.Expect == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("at least one of expect or assertions is required")
	}

	if s.Expect != nil {
		if err := validateExpect(s.Expect); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateExpect checks that an expect clause names at least one outcome
// and does not mix error and value expectations.
func validateExpect(e *ExpectClause) error {
	hasValue := e.Canonical != "" || e.EpochDay != nil || e.NanoOfDay != nil
	if e.ErrorCode != "" && hasValue {
		return fmt.Errorf("expect: error_code is mutually exclusive with value expectations")
	}
	if e.ErrorCode == "" && !hasValue {
		return fmt.Errorf("expect: at least one expectation is required")
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Rule == "" {
			return fmt.Errorf("assertions[%d]: rule is required for trace_contains", index)
		}
		if a.Kind != "" && !validStepKind(a.Kind) {
			return fmt.Errorf("assertions[%d]: kind must be supplied, derived, or defaulted", index)
		}
	case AssertTraceOrder:
		if len(a.Rules) == 0 {
			return fmt.Errorf("assertions[%d]: rules list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Kind == "" && a.Rule == "" {
			return fmt.Errorf("assertions[%d]: kind or rule is required for trace_count", index)
		}
		if a.Kind != "" && !validStepKind(a.Kind) {
			return fmt.Errorf("assertions[%d]: kind must be supplied, derived, or defaulted", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertField:
		if a.Rule == "" {
			return fmt.Errorf("assertions[%d]: rule is required for field", index)
		}
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for field", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// validStepKind reports whether name is a trace step kind.
func validStepKind(name string) bool {
	switch resolve.TraceStepKind(name) {
	case resolve.StepSupplied, resolve.StepDerived, resolve.StepDefaulted:
		return true
	}
	return false
}
