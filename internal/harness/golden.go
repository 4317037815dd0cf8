package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// StateSnapshot captures the final context state for a scenario run.
// Tokens appear in registration order for deterministic comparison.
type StateSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Scope        string       `json:"scope"`
	Tokens       []TokenState `json:"tokens"`
}

// RunWithGolden executes a scenario and compares the final token state
// against a golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution or an assertion fails. Test failure
// (via goldie) occurs if the state doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, failure := range result.Failures {
		t.Error(failure)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-run result's state against a golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := StateSnapshot{
		ScenarioName: scenarioName,
		Scope:        result.Scope,
		Tokens:       result.States,
	}
	stateJSON, err := json.MarshalIndent(&snapshot, "", "  ")
	if err != nil {
		return err
	}
	stateJSON = append(stateJSON, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, stateJSON)

	return nil
}
