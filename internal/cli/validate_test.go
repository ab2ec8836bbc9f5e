package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCUEDocument(t *testing.T) {
	path := writeDocument(t, "request.cue", leapDayCUE)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ Request document valid")
	assert.Contains(t, output, "chronology: ISO (strict), 3 field(s)")
}

func TestValidateYAMLDocument(t *testing.T) {
	path := writeDocument(t, "request.yaml", minguoYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "chronology: Minguo (strict), 4 field(s)")
}

func TestValidateJSON(t *testing.T) {
	path := writeDocument(t, "request.cue", leapDayCUE)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, "ISO", data["chronology"])
	assert.Equal(t, "strict", data["strictness"])
	assert.Equal(t, float64(3), data["fields"])
}

// A YAML document omitting strictness validates as strict.
func TestValidateDefaultsStrictness(t *testing.T) {
	path := writeDocument(t, "request.yaml", "chronology: ISO\nfields:\n  - rule: Year\n    value: 2024\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "chronology: ISO (strict), 1 field(s)")
}

const brokenYAML = `chronology: Julian
strictness: fuzzy
fields:
  - rule: Year
    value: 2024
  - rule: Year
    value: 2025
`

func TestValidateCollectsAllErrors(t *testing.T) {
	path := writeDocument(t, "request.yaml", brokenYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "3 error(s)")

	output := buf.String()
	assert.Contains(t, output, "✗ Validation failed")
	assert.Contains(t, output, `R002: chronology: unknown chronology "Julian"`)
	assert.Contains(t, output, "R005: strictness:")
	assert.Contains(t, output, `R006: fields[1].rule: rule "Year" already given at fields[0]`)
}

func TestValidateErrorsJSON(t *testing.T) {
	path := writeDocument(t, "request.yaml", brokenYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "R002", resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, details["valid"])
	errList, ok := details["errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, errList, 3)
}

func TestValidateNonIntegerValue(t *testing.T) {
	path := writeDocument(t, "request.yaml", "chronology: ISO\nfields:\n  - rule: Year\n    value: 2024.5\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "R007")
	assert.Contains(t, buf.String(), "value must be an integer")
}

func TestValidateMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E005]")
	assert.Contains(t, buf.String(), "request document not found")
}

func TestValidateDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "not a file")
}

func TestValidateBadExtension(t *testing.T) {
	path := writeDocument(t, "request.json", "{}")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E002]")
	assert.Contains(t, buf.String(), `unsupported request document extension ".json"`)
}
