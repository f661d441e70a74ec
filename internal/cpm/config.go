// Package cpm implements the total-float critical path method engine
// (SPEC_FULL.md component C6): graph construction over a reprojected
// snapshot, forward/backward passes, Kahn topological ordering with
// cycle detection, and total float / critical path determination.
package cpm

// Config tunes the numeric and scheduling-policy knobs of spec.md
// section 4.6. Zero-value Config is not valid; use DefaultConfig.
type Config struct {
	// HoursPerWorkday converts target_drtn_hr_cnt/lag_hr_cnt into working
	// days. Only the 8-hour default is exercised end to end; see
	// DESIGN.md's open question on non-default values.
	HoursPerWorkday float64

	// CriticalFloatThresholdDays is the maximum total float, in working
	// days, for an activity to be considered critical.
	CriticalFloatThresholdDays int

	// WorkingDaySafetyCeiling bounds calendar.Set.AddWorkingDays calls
	// made while scheduling, guarding against a calendar with no working
	// days at all.
	WorkingDaySafetyCeiling int
}

// DefaultConfig matches spec.md section 6's configuration defaults.
func DefaultConfig() Config {
	return Config{
		HoursPerWorkday:            8,
		CriticalFloatThresholdDays: 0,
		WorkingDaySafetyCeiling:    4000,
	}
}
