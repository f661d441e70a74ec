package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xerproject/xersched/internal/config"
	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/reporting"
	"github.com/xerproject/xersched/internal/window"
)

var (
	windowIn        string
	windowOut       string
	windowTs        string
	windowTe        string
	windowWatchList string
	windowWatchFile string
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Compare two reprojected snapshots across a monitoring period",
	Long: `Window reprojects and schedules the same file twice, once at ts and
once at te, then compares critical paths, monitored-task dates, and
activities opened or closed in the period (spec.md section 4.8, component
C8).`,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&windowIn, "in", "", "input XER file (required)")
	windowCmd.Flags().StringVar(&windowOut, "out", "", "output window report JSON file (required)")
	windowCmd.Flags().StringVar(&windowTs, "ts", "", "window start date, YYYY-MM-DD (required)")
	windowCmd.Flags().StringVar(&windowTe, "te", "", "window end date, YYYY-MM-DD (required)")
	windowCmd.Flags().StringVar(&windowWatchList, "watch", "", "comma-separated task ids to monitor")
	windowCmd.Flags().StringVar(&windowWatchFile, "watch-file", "", "file with one monitored task id per line")
	windowCmd.MarkFlagRequired("in")
	windowCmd.MarkFlagRequired("out")
	windowCmd.MarkFlagRequired("ts")
	windowCmd.MarkFlagRequired("te")
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger("window", cfg)

	ts, err := time.Parse("2006-01-02", windowTs)
	if err != nil {
		return fail(exitCLI, "invalid --ts %q: %w", windowTs, err)
	}
	te, err := time.Parse("2006-01-02", windowTe)
	if err != nil {
		return fail(exitCLI, "invalid --te %q: %w", windowTe, err)
	}

	sched, err := loadSchedule(windowIn)
	if err != nil {
		return err
	}

	watchList, err := resolveWatchList(cfg)
	if err != nil {
		return err
	}

	engineCfg := cpm.DefaultConfig()
	engineCfg.HoursPerWorkday = cfg.HoursPerWorkday
	engineCfg.CriticalFloatThresholdDays = cfg.CriticalFloatThresholdDays
	engineCfg.WorkingDaySafetyCeiling = cfg.WorkingDaySafetyCeiling

	result, err := window.Analyze(sched.model, ts, te, engineCfg, watchList, sched.diags)
	if err != nil {
		return fail(exitScheduling, "run window analysis: %w", err)
	}

	report := reporting.BuildWindowReport(result)
	log.Info("window analysis complete", "monitored_tasks", len(report.MonitoredTasks), "rapidly_completed", len(report.RapidlyCompleted))

	writeDiagnostics(log, sched.diags)

	if err := writeReportJSON(windowOut, report); err != nil {
		return err
	}

	successColor.Fprintf(cmd.OutOrStdout(), "wrote %s\n", windowOut)
	if code := severityExitCode(sched.diags); code != exitOK {
		warningColor.Fprintln(cmd.ErrOrStderr(), "fatal diagnostics recorded during the run")
		return fail(code, "fatal diagnostics recorded during the run")
	}
	return nil
}

// resolveWatchList concatenates the configuration file's monitored_tasks
// list, --watch, and --watch-file, in that order. Duplicates are kept, and
// the window package produces one report for each entry.
func resolveWatchList(cfg *config.Config) ([]string, error) {
	var list []string
	if cfg != nil {
		list = append(list, cfg.MonitoredTasks...)
	}
	if windowWatchList != "" {
		for _, code := range strings.Split(windowWatchList, ",") {
			if trimmed := strings.TrimSpace(code); trimmed != "" {
				list = append(list, trimmed)
			}
		}
	}
	if windowWatchFile != "" {
		data, err := os.ReadFile(windowWatchFile)
		if err != nil {
			return nil, fail(exitInput, "read %s: %w", windowWatchFile, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				list = append(list, trimmed)
			}
		}
	}
	return list, nil
}
