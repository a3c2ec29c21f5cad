package commands

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/runway/internal/config"
	"github.com/cleared-dev/runway/internal/engine"
	"github.com/cleared-dev/runway/internal/runlog"
)

const exampleConfig = `currency: "£"
start_date: 2025-01-01
accounts:
  main: 10000.00
  mortgage: -500000.00
generators:
  - type: mortgage
    amount: 123.45
    day: 1
    from: main
    to: mortgage
  - type: salary
    amount: 2000.00
    day: 6
    to: main
  - type: tithe
    percentage: 10
    day: 10
    from: main
`

func runRunway(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("RUNWAY_LOG_FORMAT", "json")

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runRunway(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultFile)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Len(t, cfg.Generators, len(config.Default().Generators))
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runRunway(t, "init", dir)
	require.NoError(t, err)

	_, _, err = runRunway(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runRunway(t, "init", dir, "--force")
	require.NoError(t, err)
}

func TestCheck(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	out, _, err := runRunway(t, "check", "-c", path)
	require.NoError(t, err)

	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "generators: 3")
	assert.Contains(t, out, "opening_balances")
	assert.Contains(t, out, "£490,000.00")
	assert.Contains(t, out, "charity_expenditure")
}

func TestCheck_UnknownAccount(t *testing.T) {
	path := writeConfig(t, strings.Replace(exampleConfig, "to: main", "to: wallet", 1))
	_, _, err := runRunway(t, "check", "-c", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrUnknownAccount)
	assert.Contains(t, err.Error(), "wallet")
}

func TestCheck_Malformed(t *testing.T) {
	path := writeConfig(t, "start_date: [\n")
	_, _, err := runRunway(t, "check", "-c", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestProject(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	out, logs, err := runRunway(t, "project", "-c", path, "--days", "6", "--filter", "all")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7, "header + 6 days")
	assert.Contains(t, lines[0], "main")
	assert.Contains(t, lines[0], "mortgage")
	assert.NotContains(t, lines[0], "opening_balances")
	assert.Contains(t, lines[6], "2025-01-07")
	assert.Contains(t, lines[6], "£12,000.00")
	assert.Contains(t, lines[6], "-£500,000.00")

	assert.Contains(t, logs, "projection started")
	assert.Contains(t, logs, "projection finished")
	assert.Contains(t, logs, "run_id")
}

func TestProject_MonthEndsWithAccountsAndAll(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	out, _, err := runRunway(t, "project", "-c", path, "--days", "59", "--all")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "header + Jan 31 + Feb 28")
	assert.Contains(t, lines[0], "opening_balances")
	assert.Contains(t, lines[1], "2025-01-31")
	assert.Contains(t, lines[2], "2025-02-28")

	out, _, err = runRunway(t, "project", "-c", path, "--days", "40", "-a", "charity_expenditure")
	require.NoError(t, err)
	assert.Contains(t, out, "£200.00")
	assert.NotContains(t, out, "mortgage")
}

func TestProject_DaysFromEnvironment(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	t.Setenv("RUNWAY_DAYS", "3")
	out, _, err := runRunway(t, "project", "-c", path, "--filter", "all")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 4)
}

func TestProject_PositiveMortgageFails(t *testing.T) {
	path := writeConfig(t, strings.Replace(exampleConfig, "mortgage: -500000.00", "mortgage: 5.00", 1))
	_, logs, err := runRunway(t, "project", "-c", path, "--days", "60")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrPositiveLiability)
	assert.Contains(t, err.Error(), "main: 11800.00")
	assert.Contains(t, logs, "projection failed")
	assert.Contains(t, logs, `"date":"2025-02-01"`)
	assert.Contains(t, logs, `"main":"11800.00"`, "failure log carries the balance sheet")
	assert.Contains(t, logs, `"charity_expenditure":"200.00"`)
}

func TestProject_BadFilter(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	_, _, err := runRunway(t, "project", "-c", path, "--filter", "weekly")
	assert.Error(t, err)
}

func TestProject_MetricsFile(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	metricsPath := filepath.Join(t.TempDir(), "runway.prom")
	_, _, err := runRunway(t, "project", "-c", path, "--days", "10", "--metrics-file", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "runway_days_simulated_total 10")
	assert.Contains(t, string(data), `runway_postings_total{kind="tithe"} 1`)
}

func TestExportCSV(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	outPath := filepath.Join(t.TempDir(), "main.csv")
	_, _, err := runRunway(t, "export", "csv", "-c", path, "--days", "10", "--account", "main", "-o", outPath)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11)
	assert.Equal(t, []string{"2025-01-11", "11800.00"}, records[10])
}

func TestExportCSV_RequiresAccount(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	_, _, err := runRunway(t, "export", "csv", "-c", path)
	assert.Error(t, err)

	_, _, err = runRunway(t, "export", "csv", "-c", path, "--account", "nope", "--days", "1")
	assert.Error(t, err)
}

func TestExportHistory(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	out, _, err := runRunway(t, "export", "history", "-c", path, "--days", "31", "--filter", "month-end")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"date", "main", "mortgage"},
		{"2025-01-31", "11800.00", "-500000.00"},
	}, records)
}

func TestExportPostings(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	out, _, err := runRunway(t, "export", "postings", "-c", path, "--days", "31")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header + salary + tithe + february mortgage")
	assert.Equal(t, "salary", records[1][2])
	assert.Equal(t, "tithe", records[2][2])
	assert.Equal(t, "charity_expenditure", records[2][4])
	assert.Equal(t, "mortgage", records[3][2])
	assert.Equal(t, "2025-02-01", records[3][1])
}

func TestExportChart(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	outPath := filepath.Join(t.TempDir(), "chart.html")
	_, _, err := runRunway(t, "export", "chart", "-c", path, "--days", "60", "-a", "main", "-a", "mortgage", "-o", outPath, "--title", "Five years")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Five years")
	assert.Equal(t, 2, strings.Count(string(data), "<polyline"))
}

func TestVersion(t *testing.T) {
	out, _, err := runRunway(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestRunLog(t *testing.T) {
	path := writeConfig(t, exampleConfig)
	logPath := filepath.Join(t.TempDir(), "logs", "runs.csv")
	t.Setenv("RUNWAY_RUN_LOG", logPath)

	_, _, err := runRunway(t, "project", "-c", path, "--days", "5")
	require.NoError(t, err)

	bad := writeConfig(t, strings.Replace(exampleConfig, "mortgage: -500000.00", "mortgage: 5.00", 1))
	_, _, err = runRunway(t, "project", "-c", bad, "--days", "60")
	require.Error(t, err)

	entries, err := runlog.Read(logPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, runlog.StatusOK, entries[0].Status)
	assert.Equal(t, "ended 2025-01-06", entries[0].Details)
	assert.Equal(t, 5, entries[0].Days)
	assert.Equal(t, runlog.StatusFailed, entries[1].Status)
	assert.Contains(t, entries[1].Details, "positive")
	assert.NotContains(t, entries[1].Details, "\n", "balance dump stays out of the run log")
	assert.NotEqual(t, entries[0].RunID, entries[1].RunID)

	out, _, err := runRunway(t, "runs", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "failed")
	assert.NotContains(t, out, "ended 2025-01-06")
}

func TestRunLog_RecordsLoadFailures(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "runs.csv")
	t.Setenv("RUNWAY_RUN_LOG", logPath)

	bad := writeConfig(t, strings.Replace(exampleConfig, "to: main", "to: wallet", 1))
	_, _, err := runRunway(t, "export", "postings", "-c", bad, "--days", "5")
	require.Error(t, err)

	_, _, err = runRunway(t, "project", "-c", filepath.Join(t.TempDir(), "missing.yaml"), "--days", "5")
	require.Error(t, err)

	entries, err := runlog.Read(logPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, runlog.StatusFailed, e.Status)
		assert.Empty(t, e.Start)
		assert.Equal(t, 5, e.Days)
		assert.NotEmpty(t, e.RunID)
	}
	assert.Contains(t, entries[0].Details, "wallet")
	assert.Contains(t, entries[1].Details, "reading config")
}

func TestRuns_RequiresLog(t *testing.T) {
	t.Setenv("RUNWAY_RUN_LOG", "")
	_, _, err := runRunway(t, "runs")
	assert.ErrorContains(t, err, "RUNWAY_RUN_LOG")
}
