package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes scenario YAML into a temp dir and returns its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ValidInlineRequest(t *testing.T) {
	path := writeScenario(t, `
name: leap_day
description: "Leap day resolves"
request:
  chronology: ISO
  strictness: strict
  fields:
    - rule: Year
      value: 2024
    - rule: MonthOfYear
      value: 2
    - rule: DayOfMonth
      value: 29
expect:
  canonical: "2024-02-29T00:00"
assertions:
  - type: trace_count
    kind: supplied
    count: 3
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "leap_day", scenario.Name)
	assert.Equal(t, "Leap day resolves", scenario.Description)
	require.NotNil(t, scenario.Request)
	assert.Equal(t, "ISO", scenario.Request.Chronology)
	assert.Equal(t, "strict", scenario.Request.Strictness)
	require.Len(t, scenario.Request.Fields, 3)
	assert.Equal(t, "Year", scenario.Request.Fields[0].Rule)
	assert.Equal(t, int64(2024), scenario.Request.Fields[0].Value)
	require.NotNil(t, scenario.Expect)
	assert.Equal(t, "2024-02-29T00:00", scenario.Expect.Canonical)
	assert.Len(t, scenario.Assertions, 1)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
description: "Missing name"
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
expect:
  canonical: "x"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_MissingDescription(t *testing.T) {
	path := writeScenario(t, `
name: test
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
expect:
  canonical: "x"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	// "assertion:" instead of "assertions:" must be caught, not ignored.
	path := writeScenario(t, `
name: typo
description: "Typo in key"
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
assertion:
  - type: trace_count
    kind: supplied
    count: 1
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_RequiresRequest(t *testing.T) {
	path := writeScenario(t, `
name: no_request
description: "Neither request form given"
expect:
  canonical: "x"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either request or request_file is required")
}

func TestLoadScenario_RejectsBothRequestForms(t *testing.T) {
	dir := t.TempDir()
	reqPath := filepath.Join(dir, "req.yaml")
	require.NoError(t, os.WriteFile(reqPath, []byte("chronology: ISO\nfields:\n  - rule: Year\n    value: 1\n"), 0o644))
	path := filepath.Join(dir, "scenario.yaml")
	content := fmt.Sprintf(`
name: both
description: "Both request forms given"
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
request_file: %s
expect:
  canonical: "x"
`, reqPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadScenario_EmptyFields(t *testing.T) {
	path := writeScenario(t, `
name: empty_fields
description: "No fields in inline request"
request:
  chronology: ISO
  fields: []
expect:
  canonical: "x"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fields list is required")
}

func TestLoadScenario_MissingFieldRule(t *testing.T) {
	path := writeScenario(t, `
name: missing_rule
description: "Field without a rule name"
request:
  chronology: ISO
  fields:
    - value: 2024
expect:
  canonical: "x"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request.fields[0]: rule is required")
}

func TestLoadScenario_RequiresExpectOrAssertions(t *testing.T) {
	path := writeScenario(t, `
name: no_checks
description: "Nothing validated"
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of expect or assertions is required")
}

func TestLoadScenario_EmptyExpect(t *testing.T) {
	path := writeScenario(t, `
name: empty_expect
description: "Expect clause with no expectations"
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
expect: {}
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one expectation is required")
}

func TestLoadScenario_ErrorCodeExclusive(t *testing.T) {
	path := writeScenario(t, `
name: mixed_expect
description: "Error code mixed with value expectations"
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
expect:
  canonical: "2024-01-01T00:00"
  error_code: OUT_OF_RANGE
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error_code is mutually exclusive")
}

func TestLoadScenario_RequestFileNotFound(t *testing.T) {
	path := writeScenario(t, `
name: missing_request_file
description: "Referenced request document does not exist"
request_file: /nonexistent/request.cue
expect:
  canonical: "x"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request file not found")
}

func TestLoadScenario_RequestFileBadExtension(t *testing.T) {
	path := writeScenario(t, `
name: bad_extension
description: "Request document with an unsupported extension"
request_file: request.json
expect:
  canonical: "x"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a .cue, .yaml, or .yml file")
}

func TestLoadScenarioWithBasePath_ResolvesRequestFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "requests"), 0o755))
	reqPath := filepath.Join(dir, "requests", "doc.yaml")
	require.NoError(t, os.WriteFile(reqPath, []byte("chronology: ISO\nfields:\n  - rule: Year\n    value: 1\n"), 0o644))

	scenarioPath := filepath.Join(dir, "scenario.yaml")
	content := `
name: relative_request
description: "Relative request_file resolves against the base path"
request_file: requests/doc.yaml
expect:
  canonical: "x"
`
	require.NoError(t, os.WriteFile(scenarioPath, []byte(content), 0o644))

	scenario, err := LoadScenarioWithBasePath(scenarioPath, dir)
	require.NoError(t, err)
	assert.Equal(t, reqPath, scenario.RequestFile)
}

func TestLoadScenario_AssertionValidation(t *testing.T) {
	tests := []struct {
		name      string
		assertion string
		wantErr   string
	}{
		{
			name:      "missing type",
			assertion: "  - rule: Year",
			wantErr:   "assertions[0]: type is required",
		},
		{
			name:      "trace_contains missing rule",
			assertion: "  - type: trace_contains\n    kind: derived",
			wantErr:   "rule is required for trace_contains",
		},
		{
			name:      "trace_contains bad kind",
			assertion: "  - type: trace_contains\n    rule: Year\n    kind: invented",
			wantErr:   "kind must be supplied, derived, or defaulted",
		},
		{
			name:      "trace_order missing rules",
			assertion: "  - type: trace_order",
			wantErr:   "rules list is required for trace_order",
		},
		{
			name:      "trace_count missing kind and rule",
			assertion: "  - type: trace_count\n    count: 2",
			wantErr:   "kind or rule is required for trace_count",
		},
		{
			name:      "trace_count negative count",
			assertion: "  - type: trace_count\n    kind: supplied\n    count: -1",
			wantErr:   "count must be non-negative",
		},
		{
			name:      "field missing rule",
			assertion: "  - type: field\n    value: 3",
			wantErr:   "rule is required for field",
		},
		{
			name:      "field missing value",
			assertion: "  - type: field\n    rule: MonthOfYear",
			wantErr:   "value is required for field",
		},
		{
			name:      "unknown type",
			assertion: "  - type: final_state\n    rule: Year",
			wantErr:   `unknown assertion type "final_state"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, `
name: assertion_validation
description: "Assertion shape checks"
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
assertions:
`+tt.assertion+"\n")

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
