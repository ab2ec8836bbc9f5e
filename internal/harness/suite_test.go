package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunSuite_CanonicalScenarios runs every committed scenario under
// testdata/scenarios, including the one backed by a CUE request document.
func TestRunSuite_CanonicalScenarios(t *testing.T) {
	suite, err := RunSuite(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	assert.Equal(t, 6, suite.TotalScenarios)
	assert.Equal(t, 6, suite.Passed)
	assert.Equal(t, 0, suite.Failed)
	assert.Empty(t, suite.Failures)
}

func TestScenarioFiles_LexicalOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "requests"), 0o755))

	paths, err := ScenarioFiles(dir)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yaml"),
	}
	assert.Equal(t, want, paths)
}

func TestRunSuite_MissingDirectory(t *testing.T) {
	_, err := RunSuite("/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario directory")
}

func TestRunSuite_BrokenScenarioCounted(t *testing.T) {
	dir := t.TempDir()

	good := `name: good
description: "Valid scenario"
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
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.yaml"), []byte(good), 0o644))

	broken := `name: broken
request:
  chronology: ISO
  fields:
    - rule: Year
      value: 2024
expect:
  canonical: "x"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(broken), 0o644))

	suite, err := RunSuite(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, suite.TotalScenarios)
	assert.Equal(t, 1, suite.Passed)
	assert.Equal(t, 1, suite.Failed)
	require.Len(t, suite.Failures, 1)
	assert.Contains(t, suite.Failures[0].Errors[0], "failed to load scenario")
}

func TestRunSuite_FailingScenarioCollected(t *testing.T) {
	dir := t.TempDir()

	failing := `name: wrong_canonical
description: "Expectation does not match the resolution"
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
  canonical: "2024-03-01T00:00"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "failing.yaml"), []byte(failing), 0o644))

	suite, err := RunSuite(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, suite.TotalScenarios)
	assert.Equal(t, 0, suite.Passed)
	assert.Equal(t, 1, suite.Failed)
	require.Len(t, suite.Failures, 1)
	assert.Equal(t, "wrong_canonical", suite.Failures[0].ScenarioName)
	require.NotEmpty(t, suite.Failures[0].Errors)
	assert.Contains(t, suite.Failures[0].Errors[0], "expected canonical")
}
