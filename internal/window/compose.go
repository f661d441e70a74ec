package window

import (
	"time"

	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/domain"
)

func monitoredTaskReports(atTs, atTe *Endpoint, watchList []string) []MonitoredTaskReport {
	reports := make([]MonitoredTaskReport, 0, len(watchList))
	for _, taskID := range watchList {
		tsNode, tsOK := atTs.Graph.Node(taskID)
		teNode, teOK := atTe.Graph.Node(taskID)
		if !tsOK || !teOK {
			continue
		}

		r := MonitoredTaskReport{
			TaskID: taskID,
			AtTs:   datePairFromNode(tsNode),
			AtTe:   datePairFromNode(teNode),
		}
		r.StartDriftDays = int(r.AtTe.Start.Sub(r.AtTs.Start).Hours() / 24)
		r.FinishDriftDays = int(r.AtTe.Finish.Sub(r.AtTs.Finish).Hours() / 24)
		reports = append(reports, r)
	}
	return reports
}

func datePairFromNode(n *cpm.Node) DateTimePair {
	pair := DateTimePair{Start: n.ES, Finish: n.EF}
	if n.HasActStart {
		pair.Start = n.ActStart
		pair.StartActual = true
	}
	if n.HasActEnd {
		pair.Finish = n.ActEnd
		pair.FinishActual = true
	}
	return pair
}

// compareCriticalPaths computes the symmetric difference of the two
// endpoints' critical sets restricted to activities whose ES at Ts is
// before ts, and the first index at which the two ordered critical
// paths diverge, per spec.md section 4.8.
func compareCriticalPaths(atTs, atTe *Endpoint, ts time.Time) CriticalPathComparison {
	tsCritical := cpm.CriticalPath(atTs.Graph)
	teCritical := cpm.CriticalPath(atTe.Graph)

	tsSet := map[string]bool{}
	for _, n := range tsCritical {
		tsSet[n.TaskID] = true
	}
	teSet := map[string]bool{}
	for _, n := range teCritical {
		teSet[n.TaskID] = true
	}

	eligible := func(taskID string) bool {
		n, ok := atTs.Graph.Node(taskID)
		return ok && n.ES.Before(ts)
	}

	var onlyTs, onlyTe []string
	for id := range tsSet {
		if !teSet[id] && eligible(id) {
			onlyTs = append(onlyTs, id)
		}
	}
	for id := range teSet {
		if !tsSet[id] && eligible(id) {
			onlyTe = append(onlyTe, id)
		}
	}

	divergence := -1
	n := len(tsCritical)
	if len(teCritical) < n {
		n = len(teCritical)
	}
	for i := 0; i < n; i++ {
		if tsCritical[i].TaskID != teCritical[i].TaskID {
			divergence = i
			break
		}
	}
	if divergence == -1 && len(tsCritical) != len(teCritical) {
		divergence = n
	}

	return CriticalPathComparison{OnlyAtTs: onlyTs, OnlyAtTe: onlyTe, DivergenceIndex: divergence}
}

func activitiesInPeriod(m *domain.Model, ts, te time.Time) ActivitiesInPeriod {
	var out ActivitiesInPeriod
	for _, a := range m.Activities {
		if a.HasTargetStart && inRange(a.TargetStartDate, ts, te) {
			out.PlannedInPeriod = append(out.PlannedInPeriod, a.TaskID)
		}
		if a.HasActEnd && inRange(a.ActEndDate, ts, te) {
			out.CompletedInPeriod = append(out.CompletedInPeriod, a.TaskID)
		}
		if a.HasActStart && inRange(a.ActStartDate, ts, te) && !(a.HasActEnd && inRange(a.ActEndDate, ts, te)) {
			out.StartedButNotFinished = append(out.StartedButNotFinished, a.TaskID)
		}
	}
	return out
}

func inRange(d, lo, hi time.Time) bool {
	return !d.Before(lo) && !d.After(hi)
}

// rapidlyCompleted finds activities whose actual duration came in at 70%
// or less of their planned duration, with planned duration at least one
// day, per spec.md section 4.8.
func rapidlyCompleted(m *domain.Model, hoursPerWorkday float64) []RapidlyCompletedActivity {
	var out []RapidlyCompletedActivity
	for _, a := range m.Activities {
		if !a.HasActStart || !a.HasActEnd {
			continue
		}
		plannedDays := a.TargetDurationHours / hoursPerWorkday
		if plannedDays < 1 {
			continue
		}
		actualDays := a.ActEndDate.Sub(a.ActStartDate).Hours() / 24
		if actualDays <= 0.7*plannedDays {
			out = append(out, RapidlyCompletedActivity{
				TaskID:      a.TaskID,
				PlannedDays: plannedDays,
				ActualDays:  actualDays,
			})
		}
	}
	return out
}
