package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SuiteResult contains results from running a directory of scenarios.
type SuiteResult struct {
	TotalScenarios int               `json:"total_scenarios"`
	Passed         int               `json:"passed"`
	Failed         int               `json:"failed"`
	Failures       []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioFailure represents one failed scenario run.
type ScenarioFailure struct {
	ScenarioName string   `json:"scenario_name,omitempty"`
	ScenarioPath string   `json:"scenario_path"`
	Errors       []string `json:"errors"`
}

// ScenarioFiles lists the scenario YAML files directly under dir, in
// lexical order.
func ScenarioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// RunSuite loads and runs every scenario under dir and returns a summary.
//
// Relative request_file paths resolve against the scenario's own
// directory. A scenario that fails to load or compile counts as a failed
// scenario rather than aborting the suite, so one broken file doesn't
// hide results for the rest.
func RunSuite(dir string) (*SuiteResult, error) {
	paths, err := ScenarioFiles(dir)
	if err != nil {
		return nil, err
	}

	suite := &SuiteResult{}
	for _, path := range paths {
		suite.TotalScenarios++

		scenario, err := LoadScenarioWithBasePath(path, filepath.Dir(path))
		if err != nil {
			suite.Failed++
			suite.Failures = append(suite.Failures, ScenarioFailure{
				ScenarioPath: path,
				Errors:       []string{fmt.Sprintf("failed to load scenario: %v", err)},
			})
			continue
		}

		result, err := Run(scenario)
		if err != nil {
			suite.Failed++
			suite.Failures = append(suite.Failures, ScenarioFailure{
				ScenarioName: scenario.Name,
				ScenarioPath: path,
				Errors:       []string{fmt.Sprintf("failed to run scenario: %v", err)},
			})
			continue
		}

		if result.Pass {
			suite.Passed++
			continue
		}

		suite.Failed++
		suite.Failures = append(suite.Failures, ScenarioFailure{
			ScenarioName: scenario.Name,
			ScenarioPath: path,
			Errors:       result.Errors,
		})
	}

	return suite, nil
}
