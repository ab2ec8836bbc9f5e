package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: leap-day
description: ISO leap day resolves
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
    - rule: MonthOfYear
      value: 2
    - rule: DayOfMonth
      value: 29
expect:
  canonical: "2024-02-29T00:00"
  epoch_day: 19782
`

const failingScenario = `name: wrong-epoch
description: deliberately wrong epoch day
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
    - rule: MonthOfYear
      value: 2
    - rule: DayOfMonth
      value: 29
expect:
  epoch_day: 1
`

const copticScenario = `name: coptic-doy
description: Coptic day-of-year decomposes into month and day
request:
  chronology: Coptic
  fields:
    - rule: Year
      value: 1740
    - rule: DayOfYear
      value: 171
expect:
  canonical: "Coptic AM 1740-06-21T00:00"
assertions:
  - type: trace_contains
    kind: derived
    rule: CopticMonthOfYear
    value: 6
    from: CopticDayOfYear
`

// writeScenarios drops scenario files into a fresh directory.
func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestCheckAllPass(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"coptic-doy.yaml": copticScenario,
		"leap-day.yaml":   passingScenario,
	})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ coptic-doy")
	assert.Contains(t, output, "✓ leap-day")
	assert.Contains(t, output, "2 passed, 0 failed, 2 total")
}

func TestCheckReportsFailure(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"leap-day.yaml":    passingScenario,
		"wrong-epoch.yaml": failingScenario,
	})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✓ leap-day")
	assert.Contains(t, output, "✗ wrong-epoch")
	assert.Contains(t, output, "expected epoch day 1, got 19782")
	assert.Contains(t, output, "1 passed, 1 failed, 2 total")
}

// A scenario expecting a resolution error passes when the error occurs.
func TestCheckExpectedError(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"conflict.yaml": `name: conflict-detected
description: strict conflict is reported
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
    - rule: DayOfYear
      value: 100
expect:
  error_code: RESOLUTION_CONFLICT
`,
	})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ conflict-detected")
	assert.Contains(t, buf.String(), "1 passed, 0 failed, 1 total")
}

// A scenario that fails to load counts as a failure under its file name
// without stopping the rest of the run.
func TestCheckBrokenScenario(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"broken.yaml": "name: broken\nrequest:\n  chronology: ISO\n  fields:\n    - rule: Year\n      value: 2024\n",
		"leap.yaml":   passingScenario,
	})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "✗ broken.yaml")
	assert.Contains(t, output, "failed to load scenario")
	assert.Contains(t, output, "✓ leap-day")
	assert.Contains(t, output, "1 passed, 1 failed, 2 total")
}

func TestCheckFilter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"coptic-doy.yaml": copticScenario,
		"leap-day.yaml":   passingScenario,
	})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "--filter", "coptic-*"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ coptic-doy")
	assert.NotContains(t, output, "leap-day")
	assert.Contains(t, output, "1 passed, 0 failed, 1 total")
}

func TestCheckFilterInvalidPattern(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"leap-day.yaml": passingScenario})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "--filter", "["})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

// A scenario can reference a request document next to it.
func TestCheckRequestFile(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"from-file.yaml": `name: from-file
description: resolves a document referenced by relative path
request_file: leap.cue
expect:
  canonical: "2024-02-29T00:00"
`,
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leap.cue"), []byte(leapDayCUE), 0o644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ from-file")
}

func TestCheckEmptyDir(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No scenarios found.")
}

func TestCheckMissingDir(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestCheckJSON(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"leap-day.yaml":    passingScenario,
		"wrong-epoch.yaml": failingScenario,
	})

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewCheckCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SCENARIO_FAILURE", resp.Error.Code)
	assert.Equal(t, "1 scenario(s) failed", resp.Error.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["passed"])
	assert.Equal(t, float64(1), data["failed"])
	assert.Equal(t, float64(2), data["total"])
}
