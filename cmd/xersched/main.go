/**
 * CONTEXT:   Single binary CLI for the XER schedule re-projection and CPM
 *            engine
 * INPUT:     Command line arguments selecting a subcommand and an input
 *            XER file
 * OUTPUT:    Reprojected/scheduled XER output, JSON report trees, or a
 *            running diagnostics HTTP surface, depending on subcommand
 * BUSINESS:  Single entry point for reproject/cpm/window/graph/serve,
 *            mirroring the teacher's one-binary-many-subcommands shape
 * CHANGE:    Initial command tree for the scheduling domain
 * RISK:      Low - Command routing; the real work happens in internal/*
 */

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version identifiers, set by the build process.
var (
	Version   = "0.1.0"
	BuildTime = "development"
	GitCommit = "unknown"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgMagenta, color.Bold)
)

// Global flags shared by every subcommand.
var (
	configFile string
	verbosity  int
	logFormat  string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "xersched",
	Short: "Schedule re-projection and total-float CPM engine for XER files",
	Long: `xersched recalculates a Primavera P6 XER schedule from its recorded
progress, runs a total-float critical path method pass over the result, and
exposes both as JSON or a re-serialized XER file.

  xersched reproject  --in schedule.xer --out updated.xer --data-date 2024-06-01
  xersched cpm        --in schedule.xer --out report.json
  xersched window      --in schedule.xer --out window.json --ts 2024-05-01 --te 2024-06-01
  xersched graph       --in schedule.xer --store ./graph.kuzu
  xersched serve       --in schedule.xer --listen localhost:8686`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log output format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(reprojectCmd)
	rootCmd.AddCommand(cpmCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("xersched v%s\n", Version)
		fmt.Printf("Build time: %s\n", BuildTime)
		fmt.Printf("Git commit: %s\n", GitCommit)
	},
}
