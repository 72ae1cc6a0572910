package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	scenarioPath := filepath.Join(t.TempDir(), "test.yaml")
	content := `
name: test_scenario
description: "Test scenario for validation"
run_id: run-42
steps:
  - op: create_shelf
    shelf: Fantasy
  - op: sort
    shelf: Fantasy
    by: title
    expect:
      order: []
assertions:
  - type: shelf_count
    shelf: Fantasy
    count: 0
`
	require.NoError(t, os.WriteFile(scenarioPath, []byte(content), 0644))

	scenario, err := LoadScenario(scenarioPath)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "run-42", scenario.RunID)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, OpCreateShelf, scenario.Steps[0].Op)
	assert.Equal(t, "title", scenario.Steps[1].By)
	require.NotNil(t, scenario.Steps[1].Expect)
	assert.Len(t, scenario.Assertions, 1)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Testdata(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			_, err := LoadScenario(f)
			require.NoError(t, err)
		})
	}
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: y\nstep: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: y\nsteps:\n  - op: primes\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nsteps:\n  - op: primes\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: x\ndescription: y\nsteps: []\n",
			wantErr: "steps list is required",
		},
		{
			name:    "missing op",
			yaml:    "name: x\ndescription: y\nsteps:\n  - shelf: A\n",
			wantErr: "steps[0]: op is required",
		},
		{
			name:    "unknown op",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: burn\n",
			wantErr: `unknown op "burn"`,
		},
		{
			name:    "borrow without user",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: borrow\n    title: Dune\n",
			wantErr: "steps[0]: user is required for borrow",
		},
		{
			name:    "add_book without shelf",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: add_book\n    title: Dune\n",
			wantErr: "steps[0]: shelf is required for add_book",
		},
		{
			name:    "unknown error code",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: primes\n    expect:\n      error: OOPS\n",
			wantErr: `unknown error code "OOPS"`,
		},
		{
			name:    "unknown assertion",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: primes\nassertions:\n  - type: vibes\n",
			wantErr: `unknown assertion type "vibes"`,
		},
		{
			name:    "shelf_order without shelf",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: primes\nassertions:\n  - type: shelf_order\n",
			wantErr: "shelf is required for shelf_order",
		},
		{
			name:    "event_count negative",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: primes\nassertions:\n  - type: event_count\n    kind: book_added\n    count: -1\n",
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_SortAllowsAnyCriterion(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\ndescription: y\nsteps:\n  - op: sort\n    shelf: A\n"))
	require.NoError(t, err)
	assert.Empty(t, s.Steps[0].By)
}
