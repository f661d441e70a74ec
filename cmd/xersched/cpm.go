package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/reporting"
)

var (
	cpmIn             string
	cpmOut            string
	cpmPlanStart      string
	cpmDataDate       string
	cpmHoursPerDay    float64
	cpmFloatThreshold int
)

var cpmCmd = &cobra.Command{
	Use:   "cpm",
	Short: "Run the total-float critical path method engine and emit a report",
	Long: `Cpm builds the activity-on-node graph, runs the forward and backward
passes, computes total float and the critical path, and writes a JSON
report bundle (spec.md section 4.6, component C9).`,
	RunE: runCPM,
}

func init() {
	cpmCmd.Flags().StringVar(&cpmIn, "in", "", "input XER file (required)")
	cpmCmd.Flags().StringVar(&cpmOut, "out", "", "output report JSON file (required)")
	cpmCmd.Flags().StringVar(&cpmPlanStart, "plan-start", "", "plan start date, YYYY-MM-DD (defaults to the project's recorded plan start)")
	cpmCmd.Flags().StringVar(&cpmDataDate, "data-date", "", "data date, YYYY-MM-DD (defaults to the project's recorded last recalc date)")
	cpmCmd.Flags().Float64Var(&cpmHoursPerDay, "hours-per-workday", 0, "override hours per workday (0 uses configuration default)")
	cpmCmd.Flags().IntVar(&cpmFloatThreshold, "critical-float-threshold-days", -1, "override critical float threshold in working days (-1 uses configuration default)")
	cpmCmd.MarkFlagRequired("in")
	cpmCmd.MarkFlagRequired("out")
}

func runCPM(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger("cpm", cfg)

	sched, err := loadSchedule(cpmIn)
	if err != nil {
		return err
	}

	planStart, dataDate, err := resolveRunDates(sched, cpmPlanStart, cpmDataDate)
	if err != nil {
		return err
	}

	engineCfg := cpm.DefaultConfig()
	engineCfg.HoursPerWorkday = cfg.HoursPerWorkday
	engineCfg.CriticalFloatThresholdDays = cfg.CriticalFloatThresholdDays
	engineCfg.WorkingDaySafetyCeiling = cfg.WorkingDaySafetyCeiling
	if cpmHoursPerDay > 0 {
		engineCfg.HoursPerWorkday = cpmHoursPerDay
	}
	if cpmFloatThreshold >= 0 {
		engineCfg.CriticalFloatThresholdDays = cpmFloatThreshold
	}

	graph, err := cpm.Run(sched.model, sched.calendars, engineCfg, planStart, dataDate, sched.diags)
	if err != nil {
		return fail(exitScheduling, "run cpm engine: %w", err)
	}

	report := reporting.BuildScheduleReport(sched.model, graph, sched.diags)
	log.Info("cpm run complete", "activities", report.Project.ActivityCount, "critical", report.Project.CriticalCount)

	writeDiagnostics(log, sched.diags)

	if err := writeReportJSON(cpmOut, report); err != nil {
		return err
	}

	successColor.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cpmOut)
	if code := severityExitCode(sched.diags); code != exitOK {
		warningColor.Fprintln(cmd.ErrOrStderr(), "fatal diagnostics recorded during the run")
		return fail(code, "fatal diagnostics recorded during the run")
	}
	return nil
}

// resolveRunDates falls back to the project's recorded plan start / last
// recalc date when the caller omits the corresponding flag.
func resolveRunDates(sched *loadedSchedule, planStartFlag, dataDateFlag string) (time.Time, time.Time, error) {
	var planStart, dataDate time.Time

	if sched.model != nil && len(sched.model.Projects) > 0 {
		p := sched.model.Projects[0]
		planStart = p.PlanStartDate
		dataDate = p.LastRecalcDate
	}

	if planStartFlag != "" {
		t, err := time.Parse("2006-01-02", planStartFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fail(exitCLI, "invalid --plan-start %q: %w", planStartFlag, err)
		}
		planStart = t
	}
	if dataDateFlag != "" {
		t, err := time.Parse("2006-01-02", dataDateFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fail(exitCLI, "invalid --data-date %q: %w", dataDateFlag, err)
		}
		dataDate = t
	}

	if planStart.IsZero() {
		return time.Time{}, time.Time{}, fail(exitCLI, "no plan start date available; pass --plan-start")
	}
	if dataDate.IsZero() {
		dataDate = planStart
	}
	return planStart, dataDate, nil
}

func writeReportJSON(path string, v any) error {
	enc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(exitCLI, "marshal report: %w", err)
	}
	if err := os.WriteFile(path, enc, 0o644); err != nil {
		return fail(exitInput, "write %s: %w", path, err)
	}
	return nil
}
