package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCPMCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cpm", RunE: runCPM}
	cmd.Flags().StringVar(&cpmIn, "in", "", "")
	cmd.Flags().StringVar(&cpmOut, "out", "", "")
	cmd.Flags().StringVar(&cpmPlanStart, "plan-start", "", "")
	cmd.Flags().StringVar(&cpmDataDate, "data-date", "", "")
	cmd.Flags().Float64Var(&cpmHoursPerDay, "hours-per-workday", 0, "")
	cmd.Flags().IntVar(&cpmFloatThreshold, "critical-float-threshold-days", -1, "")
	return cmd
}

func TestRunCPMWritesScheduleReport(t *testing.T) {
	in := writeFixture(t)
	out := t.TempDir() + "/report.json"

	cmd := newTestCPMCmd()
	cmd.SetArgs([]string{"--in", in, "--out", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Contains(t, report, "project")
	assert.Contains(t, report, "critical_path")
}

func TestRunCPMMissingInputIsInputError(t *testing.T) {
	out := t.TempDir() + "/report.json"

	cmd := newTestCPMCmd()
	cmd.SetArgs([]string{"--in", "/nonexistent.xer", "--out", out})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, exitInput, exitCodeFor(err))
}
