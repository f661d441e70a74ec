package cpm

import (
	"math"
	"time"

	"github.com/xerproject/xersched/internal/calendar"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
)

// Node is one activity's schedule state through the forward/backward
// passes, carrying the immutable inputs the passes read plus the dates
// they compute.
type Node struct {
	Activity *domain.Activity
	TaskID   string
	Duration int // working days
	ClndrID  string
	TaskType domain.TaskType
	WBSID    string

	HasActStart bool
	ActStart    time.Time
	HasActEnd   bool
	ActEnd      time.Time

	Predecessors []*Edge
	Successors   []*Edge

	ES, EF, LS, LF time.Time
	Scheduled      bool

	TotalFloatDays int
	IsCritical     bool
	IsLOE          bool
}

// Edge is one relationship in the graph, already carrying its lag
// converted to working days.
type Edge struct {
	From, To *Node
	Kind     domain.RelKind
	LagDays  int
}

// Graph is the directed activity network a schedule run operates on.
type Graph struct {
	Nodes     []*Node
	byID      map[string]*Node
	Calendars *calendar.Set
	Config    Config

	criticalPath []*Node
}

// Build constructs the graph from a (already reprojected) domain.Model,
// per spec.md section 4.6's "Graph construction". Self-loop and
// unknown-endpoint relationships are skipped; domain.Build already
// diagnosed those, so Build only forwards new, graph-specific
// diagnostics (duration truncation is not one of them).
func Build(m *domain.Model, cals *calendar.Set, cfg Config, diags *diagnostics.List) *Graph {
	g := &Graph{
		byID:      map[string]*Node{},
		Calendars: cals,
		Config:    cfg,
	}

	for _, a := range m.Activities {
		n := &Node{
			Activity:    a,
			TaskID:      a.TaskID,
			ClndrID:     a.ClndrID,
			TaskType:    a.TaskType,
			WBSID:       a.WBSID,
			HasActStart: a.HasActStart,
			ActStart:    a.ActStartDate,
			HasActEnd:   a.HasActEnd,
			ActEnd:      a.ActEndDate,
			IsLOE:       a.TaskType == domain.TaskTypeLevelOfEffort,
		}
		n.Duration = durationDays(a, cfg)
		g.Nodes = append(g.Nodes, n)
		g.byID[n.TaskID] = n
	}

	for _, r := range m.Relationships {
		if r.IsSelfLoop() {
			continue
		}
		from, fromOK := g.byID[r.PredTaskID]
		to, toOK := g.byID[r.SuccTaskID]
		if !fromOK || !toOK {
			continue
		}
		e := &Edge{From: from, To: to, Kind: r.Kind, LagDays: lagDays(r.LagHours, cfg)}
		from.Successors = append(from.Successors, e)
		to.Predecessors = append(to.Predecessors, e)
	}

	return g
}

// Node looks up a node by task id.
func (g *Graph) Node(taskID string) (*Node, bool) {
	n, ok := g.byID[taskID]
	return n, ok
}

func durationDays(a *domain.Activity, cfg Config) int {
	switch a.TaskType {
	case domain.TaskTypeStartMilestone, domain.TaskTypeFinishMilestone, domain.TaskTypeWBSSummary:
		return 0
	default:
		if cfg.HoursPerWorkday <= 0 {
			return 0
		}
		return int(math.Trunc(a.TargetDurationHours / cfg.HoursPerWorkday))
	}
}

func lagDays(lagHours float64, cfg Config) int {
	if cfg.HoursPerWorkday <= 0 {
		return 0
	}
	return int(math.Trunc(lagHours / cfg.HoursPerWorkday))
}
