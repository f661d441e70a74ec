package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/reproject"
	"github.com/xerproject/xersched/internal/xer"
)

var (
	reprojectIn       string
	reprojectOut      string
	reprojectDataDate string
)

var reprojectCmd = &cobra.Command{
	Use:   "reproject",
	Short: "Recalculate actual/remaining progress as of a new data date",
	Long: `Reproject recalculates every activity's progress state as of a new
data date, per spec.md section 4.5: an activity not started by the data
date loses its actual dates and gets its full remaining duration, an
activity finished by then keeps its actuals with zero remaining duration,
an in-progress activity keeps its actual start, loses its actual finish and
has its remaining duration recomputed from elapsed time, and the project's
last recalc date is set to the data date. Missing actuals are not filled in.`,
	RunE: runReproject,
}

func init() {
	reprojectCmd.Flags().StringVar(&reprojectIn, "in", "", "input XER file (required)")
	reprojectCmd.Flags().StringVar(&reprojectOut, "out", "", "output XER file (required)")
	reprojectCmd.Flags().StringVar(&reprojectDataDate, "data-date", "", "new data date, YYYY-MM-DD (required)")
	reprojectCmd.MarkFlagRequired("in")
	reprojectCmd.MarkFlagRequired("out")
	reprojectCmd.MarkFlagRequired("data-date")
}

func runReproject(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger("reproject", cfg)

	dataDate, err := time.Parse("2006-01-02", reprojectDataDate)
	if err != nil {
		return fail(exitCLI, "invalid --data-date %q: %w", reprojectDataDate, err)
	}

	sched, err := loadSchedule(reprojectIn)
	if err != nil {
		return err
	}

	result := reproject.ToDate(sched.model, dataDate, cfg.HoursPerWorkday)
	log.Info("reprojected schedule", "activity_count", len(result.Model.Activities), "data_date", domain.FormatDateTime(dataDate, true))

	writeDiagnostics(log, sched.diags)

	if err := os.WriteFile(reprojectOut, xer.Write(result.Model.File), 0o644); err != nil {
		return fail(exitInput, "write %s: %w", reprojectOut, err)
	}

	successColor.Fprintf(cmd.OutOrStdout(), "wrote %s\n", reprojectOut)
	return nil
}
