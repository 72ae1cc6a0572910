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

const harnessScenarios = "../harness/testdata/scenarios"

const passingScenario = `name: quick
description: "one shelf"
steps:
  - op: create_shelf
    shelf: Fantasy
assertions:
  - type: event_count
    kind: shelf_created
    count: 1
`

const failingScenario = `name: broken_expectation
description: "expects a failure that never happens"
steps:
  - op: create_shelf
    shelf: Fantasy
    expect:
      error: TOO_MANY_SHELVES
`

func writeScenario(t *testing.T, dir, file, content string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTestCommandMissingArgs(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/scenarios"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No scenarios found.")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestTestCommand_HarnessScenarios(t *testing.T) {
	buf, execute := newTestRoot("test", harnessScenarios)
	require.NoError(t, execute(), buf.String())

	out := buf.String()
	assert.Contains(t, out, "✓ usage_example")
	assert.Contains(t, out, "✓ borrow_twice")
	assert.Contains(t, out, "✓ shelf_capacity")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_FilterJSON(t *testing.T) {
	buf, execute := newTestRoot("--format", "json", "test", harnessScenarios, "--filter", "borrow*")
	require.NoError(t, execute())

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "borrow_twice", resp.Data.Scenarios[0].Name)
	assert.Equal(t, 1, resp.Data.Passed)
}

func TestTestCommand_Failure(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "bad.yaml", failingScenario)

	buf, execute := newTestRoot("test", dir)
	err := execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ broken_expectation")
	assert.Contains(t, buf.String(), "expected error TOO_MANY_SHELVES, got ok")
	assert.Contains(t, buf.String(), "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTestCommand_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "junk.yml", "name: [unterminated")

	buf, execute := newTestRoot("test", dir)
	require.Error(t, execute())
	assert.Contains(t, buf.String(), "✗ junk.yml")
	assert.Contains(t, buf.String(), "failed to load scenario")
}

func TestTestCommand_UpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "quick.yaml", passingScenario)

	_, execute := newTestRoot("test", dir, "--update")
	require.NoError(t, execute())

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "quick.golden"))
	require.NoError(t, err)
	assert.Equal(t, `scenario: quick
run: test-run-default
1 invoke create_shelf shelf="Fantasy"
2 event shelf_created "bookshelf Fantasy has been created"
3 complete ok
`, string(golden))

	_, execute = newTestRoot("test", dir)
	require.NoError(t, execute())

	// A stale golden file fails the run.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "quick.golden"), []byte("stale\n"), 0644))
	buf, execute := newTestRoot("test", dir)
	require.Error(t, execute())
	assert.Contains(t, buf.String(), "trace does not match golden file")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.yaml", passingScenario)
	writeScenario(t, dir, "b.yml", passingScenario)
	writeScenario(t, dir, "notes.txt", "ignore me")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	writeScenario(t, filepath.Join(dir, "nested"), "c.yaml", passingScenario)

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = findScenarioFiles(dir, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.yml")}, files)

	_, err = findScenarioFiles(dir, "[")
	require.Error(t, err)
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "quick.golden"),
		goldenFilePath(filepath.Join("scenarios", "quick.yaml"), "quick"))
}
