package reporting

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/window"
)

/**
 * CONTEXT:   Build a ScheduleReport from one reprojected-and-scheduled
 *            entity snapshot
 * INPUT:     The entity model, its CPM graph, and the diagnostics
 *            accumulated while building both
 * OUTPUT:    A pure-data report tree with no rendering
 * BUSINESS:  Component C9: converts engine output into the structure an
 *            external renderer consumes
 * CHANGE:    Initial report model builder
 * RISK:      Low - Read-only aggregation over already-computed schedule state
 */
func BuildScheduleReport(m *domain.Model, g *cpm.Graph, diags *diagnostics.List) *ScheduleReport {
	r := &ScheduleReport{RunID: uuid.New().String()}
	r.Project = buildProjectSummary(m, g)
	r.WBSBreakdown = buildWBSBreakdown(m, g)
	r.Activities = buildActivityLines(m, g)
	r.CriticalPath = criticalPathIDs(g)
	r.FloatStats = buildFloatStats(g)
	if diags != nil {
		r.Diagnostics = diags.Items()
	}
	r.Insights = scheduleInsights(r)
	return r
}

func buildProjectSummary(m *domain.Model, g *cpm.Graph) ProjectSummary {
	var s ProjectSummary
	if len(m.Projects) > 0 {
		p := m.Projects[0]
		s.ProjID = p.ProjID
		s.ShortName = p.ShortName
		s.PlanStartDate = p.PlanStartDate
		s.DataDate = p.LastRecalcDate
	}
	s.ActivityCount = len(m.Activities)
	for _, n := range g.Nodes {
		if n.IsCritical {
			s.CriticalCount++
		}
		if !n.Scheduled {
			s.Unscheduled++
		}
	}
	return s
}

func buildWBSBreakdown(m *domain.Model, g *cpm.Graph) []WBSSummary {
	type acc struct {
		summary WBSSummary
		started bool
	}
	byWBS := map[string]*acc{}
	var order []string

	for _, a := range m.Activities {
		n, ok := g.Node(a.TaskID)
		if !ok {
			continue
		}
		entry, seen := byWBS[a.WBSID]
		if !seen {
			entry = &acc{summary: WBSSummary{WBSID: a.WBSID, FullCode: m.WBS.FullCode(a.WBSID), MinFloatDays: math.MaxInt32}}
			byWBS[a.WBSID] = entry
			order = append(order, a.WBSID)
		}
		entry.summary.ActivityCount++
		if n.IsCritical {
			entry.summary.CriticalCount++
		}
		if n.Scheduled {
			if !entry.started || n.ES.Before(entry.summary.EarliestStart) {
				entry.summary.EarliestStart = n.ES
			}
			if !entry.started || n.EF.After(entry.summary.LatestFinish) {
				entry.summary.LatestFinish = n.EF
			}
			entry.started = true
		}
		if !n.IsLOE && n.TotalFloatDays < entry.summary.MinFloatDays {
			entry.summary.MinFloatDays = n.TotalFloatDays
		}
	}

	out := make([]WBSSummary, 0, len(order))
	for _, id := range order {
		s := byWBS[id].summary
		if s.MinFloatDays == math.MaxInt32 {
			s.MinFloatDays = 0
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullCode < out[j].FullCode })
	return out
}

func buildActivityLines(m *domain.Model, g *cpm.Graph) []ActivityLine {
	lines := make([]ActivityLine, 0, len(m.Activities))
	for _, a := range m.Activities {
		n, ok := g.Node(a.TaskID)
		if !ok {
			continue
		}
		lines = append(lines, ActivityLine{
			TaskID:         a.TaskID,
			TaskCode:       a.TaskCode,
			TaskName:       a.TaskName,
			WBSFullCode:    m.WBS.FullCode(a.WBSID),
			TaskType:       string(a.TaskType),
			EarlyStart:     n.ES,
			EarlyFinish:    n.EF,
			LateStart:      n.LS,
			LateFinish:     n.LF,
			TotalFloatDays: n.TotalFloatDays,
			IsCritical:     n.IsCritical,
			Scheduled:      n.Scheduled,
		})
	}
	return lines
}

func criticalPathIDs(g *cpm.Graph) []string {
	nodes := cpm.CriticalPath(g)
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.TaskID)
	}
	return ids
}

func buildFloatStats(g *cpm.Graph) FloatStats {
	stats := FloatStats{MinFloatDays: math.MaxInt32, MaxFloatDays: math.MinInt32}
	var sum, count int
	for _, n := range g.Nodes {
		if n.IsLOE {
			continue
		}
		if !n.Scheduled {
			stats.UnscheduledCount++
			continue
		}
		if n.TotalFloatDays < stats.MinFloatDays {
			stats.MinFloatDays = n.TotalFloatDays
		}
		if n.TotalFloatDays > stats.MaxFloatDays {
			stats.MaxFloatDays = n.TotalFloatDays
		}
		sum += n.TotalFloatDays
		count++
		if n.IsCritical {
			stats.CriticalCount++
		}
	}
	if count == 0 {
		stats.MinFloatDays, stats.MaxFloatDays = 0, 0
		return stats
	}
	stats.MeanFloatDays = float64(sum) / float64(count)
	return stats
}

/**
 * CONTEXT:   Build a WindowReport from a two-endpoint window analysis
 * INPUT:     The window.Result produced by internal/window's Analyze
 * OUTPUT:    A pure-data report tree carrying the comparison plus
 *            narrative insights, with the heavy Endpoint handles dropped
 * BUSINESS:  Component C9's second entry point: the window side of the
 *            report model
 * CHANGE:    Initial report model builder
 * RISK:      Low - Read-only projection of window.Result
 */
func BuildWindowReport(r *window.Result) *WindowReport {
	out := &WindowReport{
		RunID:              uuid.New().String(),
		Ts:                 r.Ts,
		Te:                 r.Te,
		MonitoredTasks:     r.MonitoredTasks,
		CriticalPathDiff:   r.CriticalPath,
		ActivitiesInPeriod: r.ActivitiesInPeriod,
		RapidlyCompleted:   r.RapidlyCompleted,
	}
	out.Insights = windowInsights(out)
	return out
}
