/**
 * CONTEXT:   Data structures for the pure-data report tree built from a
 *            reprojected schedule or a window analysis
 * INPUT:     No input - type definitions consumed by builder.go
 * OUTPUT:    Report structures with JSON tags for an external renderer
 * BUSINESS:  Keeps presentation decisions (Markdown, tables, colors) out of
 *            this package; cmd/xersched and internal/httpapi render these
 * CHANGE:    Replaced the work-tracking report types with schedule report
 *            types; same file role, new domain
 * RISK:      Low - Pure type definitions, no behavior
 */

package reporting

import (
	"time"

	"github.com/google/uuid"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/window"
)

// ProjectSummary is the header block of a ScheduleReport.
type ProjectSummary struct {
	ProjID        string    `json:"proj_id"`
	ShortName     string    `json:"short_name"`
	PlanStartDate time.Time `json:"plan_start_date"`
	DataDate      time.Time `json:"data_date"`
	ActivityCount int       `json:"activity_count"`
	CriticalCount int       `json:"critical_count"`
	Unscheduled   int       `json:"unscheduled_count"`
}

// WBSSummary rolls up schedule state for one WBS node's direct activities.
type WBSSummary struct {
	WBSID         string    `json:"wbs_id"`
	FullCode      string    `json:"full_code"`
	ActivityCount int       `json:"activity_count"`
	CriticalCount int       `json:"critical_count"`
	EarliestStart time.Time `json:"earliest_start"`
	LatestFinish  time.Time `json:"latest_finish"`
	MinFloatDays  int       `json:"min_float_days"`
}

// ActivityLine is one row of the flat activity table, combining the
// entity model's identity fields with the CPM engine's derived state.
type ActivityLine struct {
	TaskID         string    `json:"task_id"`
	TaskCode       string    `json:"task_code"`
	TaskName       string    `json:"task_name"`
	WBSFullCode    string    `json:"wbs_full_code"`
	TaskType       string    `json:"task_type"`
	EarlyStart     time.Time `json:"early_start"`
	EarlyFinish    time.Time `json:"early_finish"`
	LateStart      time.Time `json:"late_start"`
	LateFinish     time.Time `json:"late_finish"`
	TotalFloatDays int       `json:"total_float_days"`
	IsCritical     bool      `json:"is_critical"`
	Scheduled      bool      `json:"scheduled"`
}

// FloatStats summarizes the total-float distribution across scheduled,
// non-LOE activities.
type FloatStats struct {
	MinFloatDays     int     `json:"min_float_days"`
	MaxFloatDays     int     `json:"max_float_days"`
	MeanFloatDays    float64 `json:"mean_float_days"`
	CriticalCount    int     `json:"critical_count"`
	UnscheduledCount int     `json:"unscheduled_count"`
}

// ScheduleReport is the report tree for a single reprojected-and-scheduled
// snapshot: one data date, one CPM run.
type ScheduleReport struct {
	RunID        string                   `json:"run_id"`
	Project      ProjectSummary           `json:"project"`
	WBSBreakdown []WBSSummary             `json:"wbs_breakdown"`
	Activities   []ActivityLine           `json:"activities"`
	CriticalPath []string                 `json:"critical_path"`
	FloatStats   FloatStats               `json:"float_stats"`
	Diagnostics  []diagnostics.Diagnostic `json:"diagnostics"`
	Insights     []string                 `json:"insights"`
}

// WindowReport is the report tree for a two-endpoint window analysis; it
// wraps window.Result's comparison data with narrative insights and drops
// the internal Endpoint.Model/Graph handles an external renderer has no
// use for.
type WindowReport struct {
	RunID              string                             `json:"run_id"`
	Ts                 time.Time                         `json:"ts"`
	Te                 time.Time                         `json:"te"`
	MonitoredTasks     []window.MonitoredTaskReport      `json:"monitored_tasks"`
	CriticalPathDiff   window.CriticalPathComparison     `json:"critical_path_diff"`
	ActivitiesInPeriod window.ActivitiesInPeriod         `json:"activities_in_period"`
	RapidlyCompleted   []window.RapidlyCompletedActivity `json:"rapidly_completed"`
	Insights           []string                          `json:"insights"`
}
