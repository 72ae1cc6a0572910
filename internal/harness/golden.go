package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is the fixture directory used by RunWithGolden, relative to the
// test's package directory.
const GoldenDir = "testdata/scenarios/golden"

// RunWithGolden executes a scenario and compares its formatted trace with
// testdata/scenarios/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result with its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, FormatTrace(scenarioName, result))
}
