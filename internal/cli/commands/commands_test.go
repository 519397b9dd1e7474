package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuawjk/ecda/internal/config"
)

func TestNewRunCommand(t *testing.T) {
	cmd := NewRunCommand()

	assert.Equal(t, "run", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"year", "strict"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}

	require.NotEmpty(t, cmd.Aliases)
	assert.Equal(t, "forecast", cmd.Aliases[0])
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	require.NotEmpty(t, cmd.Aliases)
	assert.Equal(t, "validate", cmd.Aliases[0])
}

func TestNewCapacityCommand(t *testing.T) {
	cmd := NewCapacityCommand()

	assert.Equal(t, "capacity", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("year"), "flag year should exist")
}

func TestNewRunsCommand(t *testing.T) {
	cmd := NewRunsCommand()

	assert.Equal(t, "runs", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("limit"), "flag limit should exist")
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "ecda v1.2.3")
	assert.Contains(t, buf.String(), "abc123")
}

// writeTestData lays out a minimal, internally consistent data
// directory with two subzones.
func writeTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"subzones.csv": "id,name,geometry_ref\nS1,Riverside,geo-s1\nS2,Hilltop,geo-s2\n",
		"fertility.csv": "subzone,year,births\n" +
			"S1,2022,100\nS1,2023,110\nS1,2024,120\n" +
			"S2,2022,50\nS2,2023,50\nS2,2024,50\n",
		"housing.csv":    "subzone,completion_year,units,occupancy_rate\nS1,2026,500,0.9\n",
		"population.csv": "subzone,age_band,count\nS1,0-2,30\nS1,3-4,20\nS2,0-2,15\n",
		"preschools.csv": "subzone,name,capacity,status\nS1,Riverside Stars,80,operational\nS2,Hilltop Kids,40,operational\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func testConfig(t *testing.T, dataDir string) *config.Config {
	t.Helper()
	cfg, _, err := config.Load("", nil)
	require.NoError(t, err)
	cfg.DataDir = dataDir
	cfg.StatePath = ""
	cfg.ReferenceYear = 2024
	cfg.HorizonYear = 2027
	require.NoError(t, cfg.Validate())
	return cfg
}

// execute runs a command with a config injected the way the root
// command would and captures its combined output.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	cmd.SetContext(ContextWithConfig(context.Background(), cfg))
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunCommandTable(t *testing.T) {
	cfg := testConfig(t, writeTestData(t))

	out, err := execute(t, NewRunCommand(), cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "S2")
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "2027")
}

func TestRunCommandJSON(t *testing.T) {
	cfg := testConfig(t, writeTestData(t))
	cfg.Output = "json"

	out, err := execute(t, NewRunCommand(), cfg)
	require.NoError(t, err)

	assert.Contains(t, out, `"projections"`)
	assert.Contains(t, out, `"gaps"`)
	assert.Contains(t, out, `"manifest"`)
}

func TestRunCommandYearFilter(t *testing.T) {
	cfg := testConfig(t, writeTestData(t))

	out, err := execute(t, NewRunCommand(), cfg, "--year", "2026")
	require.NoError(t, err)

	assert.Contains(t, out, "2026")
	assert.NotContains(t, out, "2027")
}

func TestRunCommandPersistsHistory(t *testing.T) {
	cfg := testConfig(t, writeTestData(t))
	cfg.StatePath = filepath.Join(t.TempDir(), "nested", "state.db")

	_, err := execute(t, NewRunCommand(), cfg)
	require.NoError(t, err)

	store, err := openStore(cfg, nil)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2024, runs[0].ReferenceYear)

	gaps, err := store.GetGapResults(runs[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, gaps)
}

func TestRunCommandStrictFailure(t *testing.T) {
	dir := writeTestData(t)
	// S2 loses its fertility series, so it cannot be projected under
	// the default error fallback.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fertility.csv"),
		[]byte("subzone,year,births\nS1,2022,100\nS1,2023,110\nS1,2024,120\n"), 0o644))

	cfg := testConfig(t, dir)

	out, err := execute(t, NewRunCommand(), cfg)
	require.NoError(t, err, "without --strict a partial run succeeds")
	assert.Contains(t, out, "no data")

	_, err = execute(t, NewRunCommand(), cfg, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to project")
}

func TestCheckCommand(t *testing.T) {
	cfg := testConfig(t, writeTestData(t))

	out, err := execute(t, NewCheckCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 2 subzones")
}

func TestCheckCommandUnknownSubzone(t *testing.T) {
	dir := writeTestData(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preschools.csv"),
		[]byte("subzone,name,capacity,status\nGHOST,Phantom,50,operational\n"), 0o644))

	cfg := testConfig(t, dir)

	_, err := execute(t, NewCheckCommand(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GHOST")
}

func TestCapacityCommand(t *testing.T) {
	cfg := testConfig(t, writeTestData(t))

	out, err := execute(t, NewCapacityCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "80")
	assert.Contains(t, out, "40")
}

func TestRunsCommandDisabled(t *testing.T) {
	cfg := testConfig(t, writeTestData(t))

	_, err := execute(t, NewRunsCommand(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestRunsCommandEmpty(t *testing.T) {
	cfg := testConfig(t, writeTestData(t))
	cfg.StatePath = filepath.Join(t.TempDir(), "state.db")

	out, err := execute(t, NewRunsCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet")
}
