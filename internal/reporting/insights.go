package reporting

import "fmt"

/**
 * CONTEXT:   Generate narrative observations for a ScheduleReport
 * INPUT:     A report already populated with project, WBS, and float data
 * OUTPUT:    A short list of plain-text observations an external renderer
 *            can surface as-is
 * BUSINESS:  Mirrors the teacher's threshold-based insight generation,
 *            adapted from work-tracking metrics to schedule health metrics
 * CHANGE:    Initial insight generation for the report model builder
 * RISK:      Low - Pure text generation, no mutation of the report
 */
func scheduleInsights(r *ScheduleReport) []string {
	var out []string

	if r.Project.ActivityCount == 0 {
		return append(out, "no activities in this snapshot")
	}

	criticalPct := 100 * float64(len(r.CriticalPath)) / float64(r.Project.ActivityCount)
	switch {
	case criticalPct >= 50:
		out = append(out, fmt.Sprintf("critical path covers %.0f%% of activities; schedule has little slack overall", criticalPct))
	case criticalPct == 0:
		out = append(out, "no activities are on the critical path")
	}

	if r.FloatStats.UnscheduledCount > 0 {
		out = append(out, fmt.Sprintf("%d activities could not be scheduled and were excluded from the critical path", r.FloatStats.UnscheduledCount))
	}

	if r.FloatStats.MinFloatDays < 0 {
		out = append(out, fmt.Sprintf("negative float detected (%d days); constraints or actuals have pushed the schedule past its late dates", r.FloatStats.MinFloatDays))
	}

	tight := 0
	for _, wbs := range r.WBSBreakdown {
		if wbs.MinFloatDays <= 0 {
			tight++
		}
	}
	if tight > 0 && len(r.WBSBreakdown) > 0 {
		out = append(out, fmt.Sprintf("%d of %d WBS branches contain a zero-or-negative-float activity", tight, len(r.WBSBreakdown)))
	}

	var fatal, warn int
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case "fatal":
			fatal++
		case "warn":
			warn++
		}
	}
	if fatal > 0 {
		out = append(out, fmt.Sprintf("%d fatal diagnostics recorded during this run", fatal))
	}
	if warn > 0 {
		out = append(out, fmt.Sprintf("%d warnings recorded during this run", warn))
	}

	return out
}

/**
 * CONTEXT:   Generate narrative observations for a WindowReport
 * INPUT:     A report already populated with the window comparison data
 * OUTPUT:    A short list of plain-text observations
 * BUSINESS:  Surfaces the window analyzer's comparison data as prose an
 *            external renderer can use without recomputing thresholds
 * CHANGE:    Initial insight generation for the report model builder
 * RISK:      Low - Pure text generation, no mutation of the report
 */
func windowInsights(r *WindowReport) []string {
	var out []string

	if len(r.RapidlyCompleted) > 0 {
		out = append(out, fmt.Sprintf("%d activities finished at 70%% or less of their planned duration", len(r.RapidlyCompleted)))
	}

	if n := len(r.CriticalPathDiff.OnlyAtTs) + len(r.CriticalPathDiff.OnlyAtTe); n > 0 {
		out = append(out, fmt.Sprintf("critical path changed for %d eligible activities between the two endpoints", n))
	}
	if r.CriticalPathDiff.DivergenceIndex == 0 {
		out = append(out, "critical path diverges from its first activity")
	}

	if n := len(r.ActivitiesInPeriod.StartedButNotFinished); n > 0 {
		out = append(out, fmt.Sprintf("%d activities started in the window and have not yet finished", n))
	}

	var slipped, advanced int
	for _, m := range r.MonitoredTasks {
		switch {
		case m.FinishDriftDays > 0:
			slipped++
		case m.FinishDriftDays < 0:
			advanced++
		}
	}
	if slipped > 0 {
		out = append(out, fmt.Sprintf("%d monitored tasks slipped their finish date", slipped))
	}
	if advanced > 0 {
		out = append(out, fmt.Sprintf("%d monitored tasks pulled their finish date in", advanced))
	}

	return out
}
