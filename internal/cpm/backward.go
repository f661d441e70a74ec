package cpm

import (
	"time"

	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
)

// Backward runs the backward pass of spec.md section 4.6.4 over order,
// which must be in forward topological order (it is walked in reverse
// here). dataDate is T.
func Backward(order []*Node, g *Graph, dataDate time.Time, diags *diagnostics.List) {
	projectEnd := forwardProjectEnd(order)

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if n.IsLOE {
			continue
		}
		backwardNode(n, g, dataDate, projectEnd, diags)
	}
	deferLOEBackward(g, dataDate)

	for _, n := range g.Nodes {
		if n.IsLOE {
			continue
		}
		if !n.HasActStart {
			n.LS = maxDate(n.LS, dataDate)
			n.LF = maxDate(n.LF, dataDate)
		}
	}
}

func forwardProjectEnd(order []*Node) time.Time {
	var end time.Time
	first := true
	for _, n := range order {
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

func backwardNode(n *Node, g *Graph, dataDate, projectEnd time.Time, diags *diagnostics.List) {
	switch {
	case n.HasActEnd && !n.ActEnd.After(dataDate):
		n.LF = n.ActEnd
		n.LS = n.ActStart
	case n.HasActStart && !n.ActStart.After(dataDate):
		n.LS = n.ActStart
		added, err := g.Calendars.AddWorkingDays(n.ActStart, n.Duration, n.ClndrID, g.Config.WorkingDaySafetyCeiling)
		if err != nil {
			diags.Warnf(diagnostics.KindDateOutOfRange, n.TaskID, "%s", err)
		}
		n.LF = maxDate(dataDate, added)
	default:
		var lf time.Time
		if len(n.Successors) == 0 {
			lf = projectEnd
		} else {
			first := true
			for _, e := range n.Successors {
				c := backwardCandidate(e, n, g, diags)
				if first || c.Before(lf) {
					lf = c
					first = false
				}
			}
		}
		lf = applyBackwardConstraints(n, lf, diags)
		n.LF = lf

		switch {
		case n.TaskType.IsMilestone():
			n.LS = n.LF
		case n.TaskType == domain.TaskTypeWBSSummary:
			n.LS = wbsSubtaskBound(n, g, false)
		default:
			added, err := g.Calendars.AddWorkingDays(n.LF, -n.Duration, n.ClndrID, g.Config.WorkingDaySafetyCeiling)
			if err != nil {
				diags.Warnf(diagnostics.KindDateOutOfRange, n.TaskID, "%s", err)
			}
			n.LS = added
		}
	}
}

// backwardCandidate computes the candidate LF/LS contribution of
// successor edge e on predecessor n, per spec.md section 4.6.4. Lag and
// n's own duration are both working-day offsets, applied through
// AddWorkingDays on n's calendar rather than as calendar-day time.Duration
// math (see forwardCandidate).
func backwardCandidate(e *Edge, n *Node, g *Graph, diags *diagnostics.List) time.Time {
	switch e.Kind {
	case domain.RelStartToStart:
		return addWorkingDaysOrWarn(g, e.To.LS, n.Duration-e.LagDays, n, diags)
	case domain.RelFinishToFinish:
		return addWorkingDaysOrWarn(g, e.To.LF, -e.LagDays, n, diags)
	case domain.RelStartToFinish:
		return addWorkingDaysOrWarn(g, e.To.LF, -e.LagDays, n, diags)
	default: // FS
		return addWorkingDaysOrWarn(g, e.To.LS, -e.LagDays, n, diags)
	}
}

func applyBackwardConstraints(n *Node, lf time.Time, diags *diagnostics.List) time.Time {
	lf = applyOneBackwardConstraint(n, n.Activity.CstrType, n.Activity.HasCstr, n.Activity.CstrDate, n.Activity.HasCstrDate, lf, diags)
	lf = applyOneBackwardConstraint(n, n.Activity.CstrType2, n.Activity.HasCstr2, n.Activity.CstrDate2, n.Activity.HasCstrDate2, lf, diags)
	return lf
}

func applyOneBackwardConstraint(n *Node, kind domain.ConstraintType, has bool, date time.Time, hasDate bool, lf time.Time, diags *diagnostics.List) time.Time {
	if !has {
		return lf
	}
	switch kind {
	case domain.ConstraintMandatoryFinish, domain.ConstraintFinishOn:
		if hasDate {
			return date
		}
	case domain.ConstraintFinishOnOrAfter:
		if hasDate && date.After(lf) {
			return date
		}
	case domain.ConstraintFinishOnOrBefore:
		if hasDate && date.Before(lf) {
			return date
		}
	case domain.ConstraintAsLateAsPossible:
		diags.Infof(diagnostics.KindAsLateAsPossiblePreference, n.TaskID,
			"as-late-as-possible constraint recorded as a preference, no backward effect")
	}
	return lf
}

func deferLOEBackward(g *Graph, dataDate time.Time) {
	for _, n := range g.Nodes {
		if !n.IsLOE {
			continue
		}
		// LOE forward pass already set ES/EF from predecessor/successor
		// bounds; float is meaningless for LOE (spec.md section 4.6.6), so
		// LS/LF simply mirror ES/EF to keep downstream reads well-defined.
		n.LS = n.ES
		n.LF = n.EF
	}
}
