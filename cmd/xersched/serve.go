package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/xerproject/xersched/internal/config"
	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/httpapi"
	"github.com/xerproject/xersched/internal/reporting"
)

var (
	serveIn     string
	serveListen string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine once and expose its report over the diagnostics HTTP surface",
	Long: `Serve runs the cpm engine pass over the input file once, publishes the
resulting report to an in-memory store, and serves it read-only over HTTP
until interrupted (spec.md section 6.3, component C14). It never re-reads
the input file or accepts mutating requests.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveIn, "in", "", "input XER file (required)")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (defaults to "+config.DefaultServeAddr+")")
	serveCmd.MarkFlagRequired("in")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger("serve", cfg)

	sched, err := loadSchedule(serveIn)
	if err != nil {
		return err
	}

	planStart, dataDate, err := resolveRunDates(sched, "", "")
	if err != nil {
		return err
	}

	engineCfg := cpm.DefaultConfig()
	engineCfg.HoursPerWorkday = cfg.HoursPerWorkday
	engineCfg.CriticalFloatThresholdDays = cfg.CriticalFloatThresholdDays
	engineCfg.WorkingDaySafetyCeiling = cfg.WorkingDaySafetyCeiling

	graph, err := cpm.Run(sched.model, sched.calendars, engineCfg, planStart, dataDate, sched.diags)
	if err != nil {
		return fail(exitScheduling, "run cpm engine: %w", err)
	}

	report := reporting.BuildScheduleReport(sched.model, graph, sched.diags)
	writeDiagnostics(log, sched.diags)

	listenAddr := serveListen
	if listenAddr == "" {
		listenAddr = config.DefaultServeAddr
	}

	server := httpapi.New(httpapi.Config{ListenAddr: listenAddr, Version: Version}, log)
	server.SetReport(report)

	infoColor.Fprintf(cmd.OutOrStdout(), "serving diagnostics surface on %s\n", listenAddr)
	if err := server.Run(10 * time.Second); err != nil {
		return fail(exitCLI, "diagnostics surface: %w", err)
	}
	return nil
}
