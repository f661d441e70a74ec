// Package window implements the window analyzer (SPEC_FULL.md component
// C8): it composes two reprojection+CPM runs at dates Ts < Te and diffs
// their results into a pure report structure, grounded on
// original_source's window_xer.py and compare.py.
package window

import (
	"time"

	"github.com/xerproject/xersched/internal/calendar"
	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/reproject"
)

// Endpoint is one side of the window: a reprojected snapshot and its CPM
// result.
type Endpoint struct {
	DataDate time.Time
	Model    *domain.Model
	Graph    *cpm.Graph
}

// DateTimePair holds a task's start/finish dates at one endpoint, along
// with whether each came from an actual or from the CPM schedule.
type DateTimePair struct {
	Start       time.Time
	StartActual bool
	Finish      time.Time
	FinishActual bool
}

// MonitoredTaskReport is one watch-list task's comparison across the
// window, per spec.md section 4.8.
type MonitoredTaskReport struct {
	TaskID string
	AtTs   DateTimePair
	AtTe   DateTimePair

	StartDriftDays  int
	FinishDriftDays int
}

// CriticalPathComparison is the symmetric difference between the two
// endpoints' critical sets, restricted to activities whose earliest
// reference date (ES at Ts) is before Ts, plus the index where the two
// ordered critical paths first diverge.
type CriticalPathComparison struct {
	OnlyAtTs        []string
	OnlyAtTe        []string
	DivergenceIndex int // -1 if the paths are identical; the shorter length if one is a prefix of the other
}

// ActivitiesInPeriod groups activities touching the window by how they
// relate to it, per spec.md section 4.8.
type ActivitiesInPeriod struct {
	PlannedInPeriod        []string
	CompletedInPeriod      []string
	StartedButNotFinished  []string
}

// RapidlyCompletedActivity is an activity whose actual duration came in
// at 70% or less of its planned duration.
type RapidlyCompletedActivity struct {
	TaskID          string
	PlannedDays     float64
	ActualDays      float64
}

// Result is the pure data structure spec.md section 4.8 describes: no
// rendering, just the comparison data an external renderer consumes.
type Result struct {
	Ts, Te time.Time

	AtTs Endpoint
	AtTe Endpoint

	MonitoredTasks   []MonitoredTaskReport
	CriticalPath     CriticalPathComparison
	ActivitiesInPeriod ActivitiesInPeriod
	RapidlyCompleted []RapidlyCompletedActivity
}

// Analyze runs the two reprojection+CPM passes and composes the window
// report, per spec.md section 4.8. watchList is the caller-supplied set
// of task ids for the monitored-task report.
func Analyze(m *domain.Model, ts, te time.Time, cfg cpm.Config, watchList []string, diags *diagnostics.List) (*Result, error) {
	atTs, err := runEndpoint(m, ts, cfg, diags)
	if err != nil {
		return nil, err
	}
	atTe, err := runEndpoint(m, te, cfg, diags)
	if err != nil {
		return nil, err
	}

	r := &Result{Ts: ts, Te: te, AtTs: *atTs, AtTe: *atTe}
	r.MonitoredTasks = monitoredTaskReports(atTs, atTe, watchList)
	r.CriticalPath = compareCriticalPaths(atTs, atTe, ts)
	r.ActivitiesInPeriod = activitiesInPeriod(atTe.Model, ts, te)
	r.RapidlyCompleted = rapidlyCompleted(atTe.Model, cfg.HoursPerWorkday)

	return r, nil
}

func runEndpoint(m *domain.Model, dataDate time.Time, cfg cpm.Config, diags *diagnostics.List) (*Endpoint, error) {
	reprojected := reproject.ToDate(m, dataDate, cfg.HoursPerWorkday)
	snapshot := reprojected.Model

	cals := calendar.BuildSet(snapshot.Calendars, diags)
	planStart := dataDate
	if len(snapshot.Projects) > 0 {
		planStart = snapshot.Projects[0].PlanStartDate
	}

	g, err := cpm.Run(snapshot, cals, cfg, planStart, dataDate, diags)
	if err != nil {
		return nil, err
	}
	return &Endpoint{DataDate: dataDate, Model: snapshot, Graph: g}, nil
}
