package main

import (
	"fmt"
	"os"

	"github.com/xerproject/xersched/internal/calendar"
	"github.com/xerproject/xersched/internal/config"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/logging"
	"github.com/xerproject/xersched/internal/xer"
)

// exitInput, exitSchema, and exitScheduling mirror spec.md section 6's exit
// codes; exitCLI is this binary's addition for argument errors.
const (
	exitOK         = 0
	exitInput      = 1
	exitSchema     = 2
	exitScheduling = 3
	exitCLI        = 4
)

// cliError carries an explicit exit code alongside its message, so main can
// report the right code without re-classifying a generic error.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func fail(code int, format string, args ...any) error {
	return &cliError{code: code, err: fmt.Errorf(format, args...)}
}

func exitCodeFor(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return exitCLI
}

// loadConfig applies the layered defaults-file-environment-flags policy of
// SPEC_FULL.md section 6.2. CLI flags that were explicitly set take final
// precedence over the file and environment, applied by each subcommand
// after this call.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fail(exitCLI, "load configuration: %w", err)
	}
	cfg.ApplyEnvironment()
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fail(exitCLI, "invalid configuration: %w", err)
	}
	return cfg, nil
}

func logLevelFor(verbosity int) string {
	switch {
	case verbosity >= 2:
		return "debug"
	case verbosity == 1:
		return "info"
	default:
		return "warn"
	}
}

func newLogger(component string, cfg *config.Config) *logging.Logger {
	level := cfg.LogLevel
	if verbosity > 0 {
		level = logLevelFor(verbosity)
	}
	format := logging.FormatText
	if cfg.LogFormat == "json" {
		format = logging.FormatJSON
	}
	return logging.New(component, level, format, os.Stderr)
}

// loadedSchedule bundles the parsed XER file, its typed entity model, and
// its decoded calendar set, which every subcommand except serve's config
// handling needs before it can do anything domain-specific.
type loadedSchedule struct {
	file      *xer.File
	model     *domain.Model
	calendars *calendar.Set
	diags     *diagnostics.List
}

func loadSchedule(path string) (*loadedSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fail(exitInput, "read %s: %w", path, err)
	}

	file, err := xer.Parse(data)
	if err != nil {
		return nil, fail(exitSchema, "parse %s: %w", path, err)
	}

	model, diags, err := domain.Build(file)
	if err != nil {
		return nil, fail(exitSchema, "build entity model: %w", err)
	}

	cals := calendar.BuildSet(model.Calendars, diags)

	return &loadedSchedule{file: file, model: model, calendars: cals, diags: diags}, nil
}

func writeDiagnostics(log *logging.Logger, diags *diagnostics.List) {
	if diags == nil {
		return
	}
	log.LogDiagnostics(diags.Items())
	for _, d := range diags.Items() {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

func severityExitCode(diags *diagnostics.List) int {
	if diags != nil && diags.HasFatal() {
		return exitScheduling
	}
	return exitOK
}
