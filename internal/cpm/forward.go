package cpm

import (
	"time"

	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
)

// Forward runs the forward pass of spec.md section 4.6.3 over order,
// which must already be a valid topological ordering (non-LOE nodes).
// dataDate is T, planStart is P.
func Forward(order []*Node, g *Graph, dataDate, planStart time.Time, diags *diagnostics.List) {
	for _, n := range order {
		if n.IsLOE {
			continue
		}
		forwardNode(n, g, dataDate, planStart, diags)
	}
	deferLOEForward(g, dataDate)
}

func forwardNode(n *Node, g *Graph, dataDate, planStart time.Time, diags *diagnostics.List) {
	switch {
	case n.HasActStart && !n.ActStart.After(dataDate):
		n.ES = n.ActStart
		if n.HasActEnd && !n.ActEnd.After(dataDate) {
			n.EF = n.ActEnd
		} else {
			added, err := g.Calendars.AddWorkingDays(n.ActStart, n.Duration, n.ClndrID, g.Config.WorkingDaySafetyCeiling)
			if err != nil {
				diags.Warnf(diagnostics.KindDateOutOfRange, n.TaskID, "%s", err)
			}
			n.EF = maxDate(dataDate, added)
		}
	default:
		var es time.Time
		if len(n.Predecessors) == 0 {
			es = maxDate(planStart, dataDate)
		} else {
			var candidate time.Time
			first := true
			for _, e := range n.Predecessors {
				c := forwardCandidate(e, n, g, diags)
				if first || c.After(candidate) {
					candidate = c
					first = false
				}
			}
			es = maxDate(candidate, dataDate)
		}
		es = applyForwardConstraints(n, es, diags)
		n.ES = es

		switch {
		case n.TaskType.IsMilestone():
			n.EF = n.ES
		case n.TaskType == domain.TaskTypeWBSSummary:
			n.EF = wbsSubtaskBound(n, g, true)
		default:
			added, err := g.Calendars.AddWorkingDays(n.ES, n.Duration, n.ClndrID, g.Config.WorkingDaySafetyCeiling)
			if err != nil {
				diags.Warnf(diagnostics.KindDateOutOfRange, n.TaskID, "%s", err)
			}
			n.EF = added
		}
	}
	n.Scheduled = true
}

// forwardCandidate computes the candidate ES contribution of predecessor
// edge e on successor n, per spec.md section 4.6.3's four relationship
// kinds. Lag and n's own duration are both working-day offsets (section
// 4.6.6 and the glossary), so they're applied through AddWorkingDays on
// n's calendar rather than as calendar-day time.Duration math.
func forwardCandidate(e *Edge, n *Node, g *Graph, diags *diagnostics.List) time.Time {
	switch e.Kind {
	case domain.RelStartToStart:
		return addWorkingDaysOrWarn(g, e.From.ES, e.LagDays, n, diags)
	case domain.RelFinishToFinish:
		return addWorkingDaysOrWarn(g, e.From.EF, e.LagDays-n.Duration, n, diags)
	case domain.RelStartToFinish:
		return addWorkingDaysOrWarn(g, e.From.ES, e.LagDays-n.Duration, n, diags)
	default: // FS
		return addWorkingDaysOrWarn(g, e.From.EF, e.LagDays, n, diags)
	}
}

// addWorkingDaysOrWarn offsets from by the given number of working days on
// n's calendar, reporting (and tolerating) a safety-ceiling overrun the
// same way the duration-application call sites in forwardNode/backwardNode
// do.
func addWorkingDaysOrWarn(g *Graph, from time.Time, offsetDays int, n *Node, diags *diagnostics.List) time.Time {
	added, err := g.Calendars.AddWorkingDays(from, offsetDays, n.ClndrID, g.Config.WorkingDaySafetyCeiling)
	if err != nil {
		diags.Warnf(diagnostics.KindDateOutOfRange, n.TaskID, "%s", err)
	}
	return added
}

func applyForwardConstraints(n *Node, es time.Time, diags *diagnostics.List) time.Time {
	es = applyOneForwardConstraint(n, n.Activity.CstrType, n.Activity.HasCstr, n.Activity.CstrDate, n.Activity.HasCstrDate, es, diags)
	es = applyOneForwardConstraint(n, n.Activity.CstrType2, n.Activity.HasCstr2, n.Activity.CstrDate2, n.Activity.HasCstrDate2, es, diags)
	return es
}

func applyOneForwardConstraint(n *Node, kind domain.ConstraintType, has bool, date time.Time, hasDate bool, es time.Time, diags *diagnostics.List) time.Time {
	if !has {
		return es
	}
	switch kind {
	case domain.ConstraintMandatoryStart, domain.ConstraintStartOn:
		if hasDate {
			return date
		}
	case domain.ConstraintStartOnOrAfter:
		if hasDate && date.After(es) {
			return date
		}
	case domain.ConstraintStartOnOrBefore:
		if hasDate && date.Before(es) {
			return date
		}
	case domain.ConstraintAsLateAsPossible:
		diags.Infof(diagnostics.KindAsLateAsPossiblePreference, n.TaskID,
			"as-late-as-possible constraint recorded as a preference, no forward effect")
	}
	return es
}

func wbsSubtaskBound(n *Node, g *Graph, wantMax bool) time.Time {
	var result time.Time
	first := true
	for _, sub := range g.Nodes {
		if sub.WBSID != n.WBSID || sub == n {
			continue
		}
		candidate := sub.EF
		if !wantMax {
			candidate = sub.LS
		}
		if first {
			result = candidate
			first = false
			continue
		}
		if wantMax && candidate.After(result) {
			result = candidate
		}
		if !wantMax && candidate.Before(result) {
			result = candidate
		}
	}
	if first {
		return n.ES
	}
	return result
}

// deferLOEForward schedules level-of-effort activities after the main
// traversal, per spec.md section 4.6.3's deferred LOE handling.
func deferLOEForward(g *Graph, dataDate time.Time) {
	for _, n := range g.Nodes {
		if !n.IsLOE {
			continue
		}
		if len(n.Predecessors) == 0 {
			n.ES = dataDate
		} else {
			first := true
			for _, e := range n.Predecessors {
				if first || e.From.ES.Before(n.ES) {
					n.ES = e.From.ES
					first = false
				}
			}
		}
		if len(n.Successors) == 0 {
			n.EF = projectEnd(g)
		} else {
			first := true
			for _, e := range n.Successors {
				if first || e.To.EF.After(n.EF) {
					n.EF = e.To.EF
					first = false
				}
			}
		}
		n.Scheduled = true
	}
}

func projectEnd(g *Graph) time.Time {
	var end time.Time
	first := true
	for _, n := range g.Nodes {
		if n.IsLOE || !n.Scheduled {
			continue
		}
		if first || n.EF.After(end) {
			end = n.EF
			first = false
		}
	}
	return end
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
