package cpm

import (
	"math"
	"sort"
	"time"

	"github.com/xerproject/xersched/internal/calendar"
	"github.com/xerproject/xersched/internal/diagnostics"
)

// TotalFloat computes total float and critical-path membership for every
// node, per spec.md section 4.6.6.
func TotalFloat(g *Graph, dataDate time.Time, diags *diagnostics.List) {
	topo, err := g.TopologicalOrder()
	var rank map[string]int
	if err == nil {
		rank = make(map[string]int, len(topo))
		for i, n := range topo {
			rank[n.TaskID] = i
		}
	}

	for _, n := range g.Nodes {
		if n.IsLOE {
			n.TotalFloatDays = math.MaxInt32
			n.IsCritical = false
			continue
		}
		if completed(n, dataDate) {
			n.TotalFloatDays = 0
			continue
		}
		es := maxDate(n.ES, dataDate)
		n.TotalFloatDays = floatWorkingDays(g.Calendars, es, n.LS, n.ClndrID)
	}

	threshold := g.Config.CriticalFloatThresholdDays
	var critical []*Node
	for _, n := range g.Nodes {
		if n.IsLOE {
			continue
		}
		if n.TotalFloatDays <= threshold {
			critical = append(critical, n)
		}
	}

	sort.SliceStable(critical, func(i, j int) bool {
		iDone, jDone := completed(critical[i], dataDate), completed(critical[j], dataDate)
		if iDone != jDone {
			return iDone
		}
		if iDone && jDone {
			return false
		}
		ri, iok := rank[critical[i].TaskID]
		rj, jok := rank[critical[j].TaskID]
		if iok && jok {
			return ri < rj
		}
		return false
	})

	for _, n := range critical {
		n.IsCritical = true
	}
	g.criticalPath = critical

	diagnoseCriticalPathBounds(critical, diags)
}

func completed(n *Node, dataDate time.Time) bool {
	return n.HasActEnd && !n.ActEnd.After(dataDate)
}

// floatWorkingDays turns working_days_between's inclusive-range count (it
// counts the start day itself) into a signed offset that is zero when es
// and ls land on the same day, matching the "no slack" reading of total
// float. See DESIGN.md's open question on total float's off-by-one.
func floatWorkingDays(cals *calendar.Set, es, ls time.Time, clndrID string) int {
	if sameDay(es, ls) {
		return 0
	}
	if ls.After(es) {
		return cals.WorkingDaysBetween(es, ls, clndrID) - 1
	}
	return -(cals.WorkingDaysBetween(ls, es, clndrID) - 1)
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func diagnoseCriticalPathBounds(critical []*Node, diags *diagnostics.List) {
	if len(critical) == 0 {
		return
	}
	first, last := critical[0], critical[len(critical)-1]
	if len(first.Predecessors) > 0 {
		diags.Warnf(diagnostics.KindUnscheduledActivity, first.TaskID,
			"critical path does not start at a project boundary: task has predecessors")
	}
	if len(last.Successors) > 0 {
		diags.Warnf(diagnostics.KindUnscheduledActivity, last.TaskID,
			"critical path does not end at a project boundary: task has successors")
	}

	criticalSet := make(map[string]bool, len(critical))
	for _, n := range critical {
		criticalSet[n.TaskID] = true
	}
	for i := 1; i < len(critical); i++ {
		prev, cur := critical[i-1], critical[i]
		if !directlyLinked(prev, cur) {
			diags.Warnf(diagnostics.KindUnscheduledActivity, cur.TaskID,
				"consecutive critical activities %s -> %s are not directly linked", prev.TaskID, cur.TaskID)
		}
	}
}

func directlyLinked(a, b *Node) bool {
	for _, e := range a.Successors {
		if e.To == b {
			return true
		}
	}
	return false
}

// CriticalPath returns the critical-path nodes in the order established
// by TotalFloat: completed critical activities first (original order),
// then the remaining critical activities in topological order.
func CriticalPath(g *Graph) []*Node {
	return g.criticalPath
}
